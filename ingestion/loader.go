package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/praxisworks/ragchat/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// Format identifies a supported document format.
// The set is closed: unknown extensions are rejected before any resource
// allocation.
type Format int

const (
	// FormatPDF covers .pdf files, loaded page by page.
	FormatPDF Format = iota + 1
	// FormatMarkdown covers .md files, loaded as plain text.
	FormatMarkdown
	// FormatText covers .txt files.
	FormatText
	// FormatCSV covers .csv and .tsv spreadsheet exports, one row per document.
	FormatCSV
	// FormatHTML covers .html and .htm files.
	FormatHTML
)

// String returns the format name for logging.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	case FormatCSV:
		return "csv"
	case FormatHTML:
		return "html"
	}
	return "unknown"
}

// formatForFilename resolves the document format from the file extension.
// Returns core.ErrUnsupportedFormat for unrecognized extensions.
func formatForFilename(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".md":
		return FormatMarkdown, nil
	case ".txt":
		return FormatText, nil
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return 0, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, ext)
}

// loadDocuments reads the file's content as one or more logical documents
// (PDF pages, CSV rows, or a single text body).
func loadDocuments(ctx context.Context, format Format, file *os.File) ([]schema.Document, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	var loader documentloaders.Loader
	switch format {
	case FormatPDF:
		loader = documentloaders.NewPDF(file, info.Size())
	case FormatCSV:
		loader = documentloaders.NewCSV(file)
	case FormatHTML:
		loader = documentloaders.NewHTML(file)
	case FormatMarkdown, FormatText:
		loader = documentloaders.NewText(file)
	default:
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupportedFormat, format)
	}

	return loader.Load(ctx)
}
