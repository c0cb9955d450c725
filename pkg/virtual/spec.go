package virtual

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phantomcms/phantom/pkg/core"
)

// EntrySpec is a partial entry specification. Zero-valued fields are
// treated as absent and filled with defaults when the spec is
// finalized. Malformed or missing values never fail: the builder
// defaults silently so a spec file can stay minimal.
type EntrySpec struct {
	ID            int64     `yaml:"id,omitempty"`
	Author        string    `yaml:"author,omitempty"`
	Date          time.Time `yaml:"date,omitempty"`
	Content       string    `yaml:"content,omitempty"`
	Title         string    `yaml:"title,omitempty"`
	Excerpt       string    `yaml:"excerpt,omitempty"`
	Status        string    `yaml:"status,omitempty"`
	CommentStatus string    `yaml:"comment_status,omitempty"`
	PingStatus    string    `yaml:"ping_status,omitempty"`
	Password      string    `yaml:"password,omitempty"`
	Slug          string    `yaml:"slug,omitempty"`
	Modified      time.Time `yaml:"modified,omitempty"`
	Parent        int64     `yaml:"parent,omitempty"`
	GUID          string    `yaml:"guid,omitempty"`
	MenuOrder     int       `yaml:"menu_order,omitempty"`
	Type          string    `yaml:"type,omitempty"`
	MIMEType      string    `yaml:"mime_type,omitempty"`
	CommentCount  int64     `yaml:"comment_count,omitempty"`
}

// finalize merges a spec against the default entry shape.
//
// Derivation rules:
//   - ID falls back to now + count of already-held entries. Unique as
//     long as a single provider is not fed thousands of specs within
//     one second, which matches how these entries are actually used.
//   - Modified falls back to Date, GMT pairs are derived from their
//     local counterparts.
//   - Slug falls back to the slugified title.
//   - GUID is built from the site URL and slug. Without a site URL we
//     fall back to a UUID URN so the GUID is still globally unique.
func finalize(s EntrySpec, siteURL string, now time.Time, count int) core.Entry {
	id := s.ID
	if id == 0 {
		id = now.Unix() + int64(count)
	}

	date := s.Date
	if date.IsZero() {
		date = now
	}

	modified := s.Modified
	if modified.IsZero() {
		modified = date
	}

	slug := s.Slug
	if slug == "" {
		slug = core.Slugify(s.Title)
	}

	e := core.Entry{
		ID:            id,
		Author:        defaultString(s.Author, core.DefaultAuthor),
		Date:          date,
		DateGMT:       date.UTC(),
		Content:       s.Content,
		Title:         s.Title,
		Excerpt:       s.Excerpt,
		Status:        core.Status(defaultString(s.Status, string(core.StatusPublished))),
		CommentStatus: core.ToggleStatus(defaultString(s.CommentStatus, string(core.ToggleClosed))),
		PingStatus:    core.ToggleStatus(defaultString(s.PingStatus, string(core.ToggleClosed))),
		Password:      s.Password,
		Slug:          slug,
		Modified:      modified,
		ModifiedGMT:   modified.UTC(),
		Parent:        s.Parent,
		GUID:          s.GUID,
		MenuOrder:     s.MenuOrder,
		Type:          defaultString(s.Type, core.DefaultType),
		MIMEType:      s.MIMEType,
		CommentCount:  s.CommentCount,
	}

	if e.GUID == "" {
		e.GUID = deriveGUID(siteURL, slug, id)
	}

	return e
}

// deriveGUID builds a stable permalink-style GUID.
func deriveGUID(siteURL, slug string, id int64) string {
	if siteURL == "" {
		return "urn:uuid:" + uuid.NewString()
	}

	base := strings.TrimRight(siteURL, "/")
	if slug == "" {
		// No slug to link to, fall back to the numeric query form.
		return fmt.Sprintf("%s/?p=%d", base, id)
	}
	return base + "/" + slug
}

func defaultString(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
