package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phantomcms/phantom/pkg/core"
)

// Repository implements core.Repository over a directory of Markdown
// files with YAML frontmatter. It is strictly read-only: the pipeline
// never writes content, it only serves it.
type Repository struct {
	Path   string
	cache  *cache
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	MustExist    bool
	Logger       *slog.Logger
	SystemDir    string      // e.g. ".phantom"
	ErrorHandler func(error) // Invoked for runtime watcher failures
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = ".phantom"
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		cache:  newCache(config.Path, config.SystemDir),
	}
}

// Initialize performs the necessary setup for the repository.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("content path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("content path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}
	return nil
}

// Get retrieves an entry by slug.
//
// Workflow:
//  1. Probe {Path}/{slug}.md directly.
//  2. Fall back to a full List scan, since the slug in the frontmatter
//     may differ from the file path.
func (r *Repository) Get(ctx context.Context, slug string) (core.Entry, error) {
	fullPath := filepath.Join(r.Path, filepath.FromSlash(slug)+".md")

	if f, err := os.Open(fullPath); err == nil {
		defer f.Close()

		info, statErr := f.Stat()
		entry, parseErr := parseEntry(f, slug)
		if parseErr != nil {
			return core.Entry{}, fmt.Errorf("failed to parse entry %s: %w", slug, parseErr)
		}
		if statErr == nil {
			fillFileDefaults(&entry, info.ModTime())
		}
		return entry, nil
	}

	entries, err := r.List(ctx)
	if err != nil {
		return core.Entry{}, err
	}
	for _, e := range entries {
		if e.Slug == slug {
			return e, nil
		}
	}
	return core.Entry{}, core.ErrNotFound
}

// List scans the content directory for all entries.
//
// Strategy:
//  1. Load the existing index cache from disk.
//  2. Walk the directory tree (skipping dot and system dirs).
//  3. For each Markdown file:
//     a. Cache hit (based on mtime): use the cached entry (FAST).
//     b. Cache miss: full parse. Update the cache.
//  4. Prune stale index rows and save the cache back to disk.
func (r *Repository) List(ctx context.Context) ([]core.Entry, error) {
	var entries []core.Entry

	if err := r.cache.Load(); err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Debug("index cache load failed, starting empty", "error", err)
		}
	}
	seen := make(map[string]bool)

	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if r.isSystemDir(d.Name()) && path != r.Path {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(d.Name()) != ".md" {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		info, err := d.Info()
		if err != nil {
			return nil
		}
		mtime := info.ModTime()

		seen[relPath] = true

		if cached, hit := r.cache.Get(relPath, mtime); hit {
			entries = append(entries, cached.Entry)
			return nil
		}

		entry, err := r.parseFile(path, relPath, mtime)
		if err != nil {
			// Skip unparseable files but surface the problem.
			if r.config.Logger != nil {
				r.config.Logger.Warn("skipping unparseable entry", "path", relPath, "error", err)
			}
			return nil
		}

		r.cache.Set(relPath, &indexEntry{
			Entry:        entry,
			LastModified: mtime,
		})

		entries = append(entries, entry)
		return nil
	})

	if err != nil {
		return nil, err
	}

	r.cache.Prune(seen)
	if err := r.cache.Save(); err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Debug("index cache save failed", "error", err)
		}
	}

	return entries, nil
}

// parseFile reads and maps one Markdown file into an Entry.
func (r *Repository) parseFile(fullPath, relPath string, mtime time.Time) (core.Entry, error) {
	f, err := os.Open(fullPath)
	if err != nil {
		return core.Entry{}, err
	}
	defer f.Close()

	slug := strings.TrimSuffix(relPath, ".md")
	entry, err := parseEntry(f, slug)
	if err != nil {
		return core.Entry{}, err
	}
	fillFileDefaults(&entry, mtime)

	if r.config.Logger != nil {
		r.config.Logger.Debug("parsed entry", "slug", entry.Slug)
	}
	return entry, nil
}

func (r *Repository) isSystemDir(name string) bool {
	return name == r.config.SystemDir || strings.HasPrefix(name, ".")
}

// --- Frontmatter Parsing (Private) ---

// parseEntry decodes a Markdown stream with optional YAML frontmatter.
// The slug argument is the path-derived fallback; a "slug" frontmatter
// key wins over it.
func parseEntry(rd io.Reader, slug string) (core.Entry, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return core.Entry{}, err
	}

	entry := core.Entry{Slug: slug}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		// No frontmatter, treat everything as content.
		entry.Content = string(data)
		return entry, nil
	}

	rest := data[3:]
	parts := bytes.SplitN(rest, []byte("---"), 2)
	if len(parts) == 1 {
		return core.Entry{}, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return core.Entry{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	fm.apply(&entry)

	content := strings.TrimPrefix(string(parts[1]), "\n")
	entry.Content = strings.TrimPrefix(content, "\r\n")

	return entry, nil
}

// frontmatter is the recognized key set. Unknown keys are dropped by
// the YAML decoder; the entry shape is fixed on purpose.
type frontmatter struct {
	ID            int64     `yaml:"id"`
	Title         string    `yaml:"title"`
	Author        string    `yaml:"author"`
	Date          time.Time `yaml:"date"`
	Modified      time.Time `yaml:"modified"`
	Excerpt       string    `yaml:"excerpt"`
	Status        string    `yaml:"status"`
	Type          string    `yaml:"type"`
	Slug          string    `yaml:"slug"`
	Parent        int64     `yaml:"parent"`
	MenuOrder     int       `yaml:"menu_order"`
	MIMEType      string    `yaml:"mime_type"`
	CommentStatus string    `yaml:"comment_status"`
	PingStatus    string    `yaml:"ping_status"`
	Password      string    `yaml:"password"`
	GUID          string    `yaml:"guid"`
	CommentCount  int64     `yaml:"comment_count"`
}

func (fm frontmatter) apply(e *core.Entry) {
	e.ID = fm.ID
	e.Title = fm.Title
	e.Author = fm.Author
	e.Date = fm.Date
	e.Modified = fm.Modified
	e.Excerpt = fm.Excerpt
	e.Parent = fm.Parent
	e.MenuOrder = fm.MenuOrder
	e.MIMEType = fm.MIMEType
	e.Password = fm.Password
	e.GUID = fm.GUID
	e.CommentCount = fm.CommentCount

	if fm.Status != "" {
		e.Status = core.Status(fm.Status)
	}
	if fm.Type != "" {
		e.Type = fm.Type
	}
	if fm.Slug != "" {
		e.Slug = fm.Slug
	}
	if fm.CommentStatus != "" {
		e.CommentStatus = core.ToggleStatus(fm.CommentStatus)
	}
	if fm.PingStatus != "" {
		e.PingStatus = core.ToggleStatus(fm.PingStatus)
	}
}

// fillFileDefaults completes an entry parsed from disk: timestamps fall
// back to the file mtime, GMT pairs are derived, and the discussion
// flags close by default.
func fillFileDefaults(e *core.Entry, mtime time.Time) {
	if e.Date.IsZero() {
		e.Date = mtime
	}
	if e.Modified.IsZero() {
		e.Modified = e.Date
	}
	e.DateGMT = e.Date.UTC()
	e.ModifiedGMT = e.Modified.UTC()

	if e.Author == "" {
		e.Author = core.DefaultAuthor
	}
	if e.Status == "" {
		e.Status = core.StatusPublished
	}
	if e.Type == "" {
		e.Type = core.DefaultType
	}
	if e.CommentStatus == "" {
		e.CommentStatus = core.ToggleClosed
	}
	if e.PingStatus == "" {
		e.PingStatus = core.ToggleClosed
	}
}
