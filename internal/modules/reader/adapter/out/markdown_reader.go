package out

import (
	"context"
	"fmt"
	"os"
	"strings"

	readerout "readtrack/internal/modules/reader/port/out"
	"readtrack/internal/platform/markdown"
)

// LocalMarkdownReader returns the prose of a text or markdown file: the
// frontmatter and heading lines are dropped.
type LocalMarkdownReader struct{}

func NewLocalMarkdownReader() readerout.MarkdownReader {
	return &LocalMarkdownReader{}
}

func (r *LocalMarkdownReader) Read(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	var meta map[string]any
	body, err := markdown.SplitFrontmatter(string(b), &meta)
	if err != nil {
		body = string(b)
	}
	lines := strings.Split(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), nil
}
