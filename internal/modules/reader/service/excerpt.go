package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"readtrack/internal/modules/reader/domain"
	readerout "readtrack/internal/modules/reader/port/out"
	apperrors "readtrack/internal/platform/errors"
)

// ExcerptImporter replaces a book's excerpt with text taken from a file.
type ExcerptImporter struct {
	mdReader  readerout.MarkdownReader
	pdfReader readerout.PDFReader
	books     readerout.BookSource
}

func NewExcerptImporter(mdReader readerout.MarkdownReader, pdfReader readerout.PDFReader, books readerout.BookSource) *ExcerptImporter {
	return &ExcerptImporter{mdReader: mdReader, pdfReader: pdfReader, books: books}
}

type Imported struct {
	Excerpt   string
	Format    string
	Page      int
	TotalPage int
}

func (s *ExcerptImporter) Import(ctx context.Context, bookID int64, path string, page, maxRunes int) (Imported, error) {
	if strings.TrimSpace(path) == "" {
		return Imported{}, fmt.Errorf("excerpt path is required: %w", apperrors.ErrInvalidInput)
	}
	if _, ok := s.books.Book(ctx, bookID); !ok {
		return Imported{}, fmt.Errorf("book %d: %w", bookID, apperrors.ErrNotFound)
	}

	result := Imported{}
	var raw string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		if page <= 0 {
			page = 1
		}
		text, total, err := s.pdfReader.ReadPage(ctx, path, page)
		if err != nil {
			return Imported{}, err
		}
		if total > 0 && page > total {
			page = total
		}
		raw, result.Format, result.Page, result.TotalPage = text, "pdf", page, total
	default:
		text, err := s.mdReader.Read(ctx, path)
		if err != nil {
			return Imported{}, err
		}
		raw, result.Format = text, "text"
	}

	result.Excerpt = domain.NormalizeExcerpt(raw, maxRunes)
	if result.Excerpt == "" {
		return Imported{}, fmt.Errorf("no text found in %s: %w", path, apperrors.ErrInvalidInput)
	}
	if !s.books.SetExcerpt(ctx, bookID, result.Excerpt) {
		return Imported{}, fmt.Errorf("book %d: %w", bookID, apperrors.ErrNotFound)
	}
	return result, nil
}
