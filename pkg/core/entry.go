// Package core holds the domain model and the ports of the query pipeline.
package core

import (
	"strings"
	"time"
	"unicode"
)

// Status represents the publication state of an entry.
type Status string

const (
	StatusPublished Status = "publish"
	StatusDraft     Status = "draft"
	StatusPrivate   Status = "private"
)

// ToggleStatus represents an open/closed discussion flag.
type ToggleStatus string

const (
	ToggleOpen   ToggleStatus = "open"
	ToggleClosed ToggleStatus = "closed"
)

// Default entry shape.
const (
	DefaultType   = "page"
	DefaultAuthor = "admin"
)

// Entry is the central entity of the domain.
// It represents a single content item as the templating layer sees it,
// whether it was read from storage or synthesized by a provider.
type Entry struct {
	ID            int64        `json:"id"`
	Author        string       `json:"author"`
	Date          time.Time    `json:"date"`
	DateGMT       time.Time    `json:"date_gmt"`
	Content       string       `json:"content"`
	Title         string       `json:"title"`
	Excerpt       string       `json:"excerpt"`
	Status        Status       `json:"status"`
	CommentStatus ToggleStatus `json:"comment_status"`
	PingStatus    ToggleStatus `json:"ping_status"`
	Password      string       `json:"password,omitempty"`
	Slug          string       `json:"slug"`
	Modified      time.Time    `json:"modified"`
	ModifiedGMT   time.Time    `json:"modified_gmt"`
	Parent        int64        `json:"parent"`
	GUID          string       `json:"guid"`
	MenuOrder     int          `json:"menu_order"`
	Type          string       `json:"type"`
	MIMEType      string       `json:"mime_type,omitempty"`
	CommentCount  int64        `json:"comment_count"`
}

// Slugify converts an arbitrary title into a URL-safe slug.
// Lowercase, alphanumerics kept, everything else collapsed to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // Suppress leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// EventType represents the type of change in the content directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the content directory.
type Event struct {
	Type      EventType
	Slug      string
	Timestamp int64 // Unix timestamp
}

// String makes Event usable as a lifecycle.Event.
func (e Event) String() string {
	return string(e.Type) + " " + e.Slug
}
