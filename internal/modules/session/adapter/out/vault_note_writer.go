package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"readtrack/internal/modules/session/domain"
	sessionout "readtrack/internal/modules/session/port/out"
	"readtrack/internal/platform/markdown"
	"readtrack/internal/platform/slug"
)

const (
	sessionsBlockStart = "<!-- readtrack:sessions:start -->"
	sessionsBlockEnd   = "<!-- readtrack:sessions:end -->"
)

type sessionMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            int64  `yaml:"id"`
	BookID        int64  `yaml:"book_id"`
	Book          string `yaml:"book"`
	Date          string `yaml:"date"`
	Duration      int    `yaml:"duration_minutes"`
	PagesRead     int    `yaml:"pages_read"`
}

type bookMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	BookID        int64  `yaml:"book_id"`
	Title         string `yaml:"title"`
	Sessions      int    `yaml:"sessions"`
	TotalMinutes  int    `yaml:"total_minutes"`
}

// VaultNoteWriter renders sessions as markdown notes with YAML frontmatter.
type VaultNoteWriter struct {
	vaultPath string
}

func NewVaultNoteWriter(vaultPath string) sessionout.NoteWriter {
	return &VaultNoteWriter{vaultPath: vaultPath}
}

func (w *VaultNoteWriter) Dir() string { return w.vaultPath }

func (w *VaultNoteWriter) WriteSession(_ context.Context, session domain.ReadingSession, bookTitle string) (string, error) {
	date := session.Date.UTC()
	dir := filepath.Join(w.vaultPath, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%d-%s.md", date.Format("150405"), session.ID, slug.Make(bookTitle)))

	meta := sessionMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            session.ID,
		BookID:        session.BookID,
		Book:          bookTitle,
		Date:          date.Format(time.RFC3339),
		Duration:      session.Duration,
		PagesRead:     session.PagesRead,
	}
	body := fmt.Sprintf("# Session on %s\n\n- Book: [[%s]]\n- Duration: %d minutes\n- Pages read: %d\n",
		date.Format("2006-01-02"), bookNoteName(session.BookID, bookTitle), session.Duration, session.PagesRead)
	if notes := strings.TrimSpace(session.Notes); notes != "" {
		body += "\n## Notes\n\n" + notes + "\n"
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

// WriteBook refreshes the managed session list of a book note, keeping
// whatever the reader wrote around it.
func (w *VaultNoteWriter) WriteBook(_ context.Context, note sessionout.BookNote) (string, error) {
	dir := filepath.Join(w.vaultPath, "books")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create book dir: %w", err)
	}
	path := filepath.Join(dir, bookNoteName(note.BookID, note.Title)+".md")

	body := fmt.Sprintf("# %s\n", note.Title)
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		var discard bookMeta
		body, err = markdown.SplitFrontmatter(string(existing), &discard)
		if err != nil {
			return "", fmt.Errorf("parse book note %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read book note: %w", err)
	}

	lines := make([]string, 0, len(note.Sessions))
	for _, s := range note.Sessions {
		line := fmt.Sprintf("- %s: %d min", s.Date.UTC().Format("2006-01-02"), s.Duration)
		if s.PagesRead > 0 {
			line += fmt.Sprintf(", %d pages", s.PagesRead)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, "_No sessions yet._")
	}
	body = markdown.ReplaceManagedBlock(body, sessionsBlockStart, sessionsBlockEnd, strings.Join(lines, "\n"))

	meta := bookMeta{
		SchemaVersion: domain.SchemaVersion,
		BookID:        note.BookID,
		Title:         note.Title,
		Sessions:      len(note.Sessions),
		TotalMinutes:  domain.TotalMinutes(note.Sessions),
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write book note: %w", err)
	}
	return path, nil
}

func bookNoteName(bookID int64, title string) string {
	return fmt.Sprintf("%d-%s", bookID, slug.Make(title))
}
