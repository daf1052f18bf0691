package extractor

import (
	"fmt"
	"strings"
)

// DefaultMaxPages is how many leading pages of a statement are read.
// Card statements carry their summary box on the first two pages.
const DefaultMaxPages = 2

// Document is an opened statement whose pages can be read as plain text.
// Pages are numbered from 1.
type Document interface {
	NumPage() int
	PageText(page int) (string, error)
	Close() error
}

// OpenFunc opens the document at path.
type OpenFunc func(path string) (Document, error)

// ReadBlob concatenates the text of the first min(maxPages, NumPage) pages,
// each followed by a newline. A maxPages <= 0 reads every page.
func ReadBlob(doc Document, maxPages int) (string, error) {
	n := doc.NumPage()
	if maxPages > 0 && n > maxPages {
		n = maxPages
	}

	var b strings.Builder
	for i := 1; i <= n; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// StaticDocument is an in-memory Document, used when the text is already known.
type StaticDocument struct {
	Pages []string
}

func (d *StaticDocument) NumPage() int { return len(d.Pages) }

func (d *StaticDocument) PageText(page int) (string, error) {
	if page < 1 || page > len(d.Pages) {
		return "", fmt.Errorf("page %d out of range (document has %d)", page, len(d.Pages))
	}
	return d.Pages[page-1], nil
}

func (d *StaticDocument) Close() error { return nil }
