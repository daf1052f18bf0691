package extractor

import (
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadableText is returned when a PDF opens but none of the extraction
// methods yields text that reads as a statement, e.g. scanned pages or fonts
// with a custom encoding.
var ErrUnreadableText = errors.New("no readable text could be extracted from PDF; it may be image-based/scanned or use custom font encodings")

// OpenPDF opens a statement PDF. It uses the ledongthuc/pdf library and falls
// back to the external pdftotext command (poppler-utils) when the library
// cannot open the file or its leading pages do not pass IsReadableText.
func OpenPDF(filePath string) (Document, error) {
	return openReadable(filePath, openWithLibrary, openWithPdftotext)
}

var pdfOpen = pdf.Open

// openReadable tries each opener in turn and returns the first document whose
// first DefaultMaxPages pages are readable. The first open error is returned
// when no opener could open the file, ErrUnreadableText when some did but
// produced garbage.
func openReadable(filePath string, openers ...OpenFunc) (Document, error) {
	var firstErr error
	opened := false
	for _, open := range openers {
		doc, err := open(filePath)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		opened = true

		text, err := ReadBlob(doc, DefaultMaxPages)
		if err == nil && IsReadableText(text) {
			return doc, nil
		}
		doc.Close()
	}

	if opened {
		return nil, ErrUnreadableText
	}
	return nil, firstErr
}

// commonWords appear in virtually every card statement. Text with none of
// them is taken to be garbage.
var commonWords = []string{
	"bank", "card", "account", "balance", "date", "payment", "statement",
	"total", "amount", "credit", "debit", "due", "limit", "minimum",
	"transaction", "purchase", "charges", "period", "page",
}

// textQuality returns the share of characters that are ASCII letters, digits,
// whitespace or common punctuation and currency symbols, from 0 to 1.
// unicode.IsLetter is too broad: identity-encoded fonts decode to accented
// letters.
func textQuality(text string) float64 {
	total, readable := 0, 0
	for _, r := range text {
		total++
		if isReadableRune(r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"$₹£€%&@#!?+=*", r)
}

func containsCommonWords(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// IsReadableText reports whether text looks like a decoded statement: more
// than 50 characters, over 60% plain characters and at least one common
// statement word.
func IsReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	return containsCommonWords(text)
}

type libraryDocument struct {
	f *os.File
	r *pdf.Reader
}

func openWithLibrary(filePath string) (doc Document, err error) {
	var f *os.File
	defer func() {
		if r := recover(); r != nil {
			if f != nil {
				f.Close()
			}
			doc = nil
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, reader, err := pdfOpen(filePath)
	if err != nil {
		return nil, err
	}
	if reader.NumPage() == 0 {
		f.Close()
		return nil, fmt.Errorf("PDF has no pages")
	}
	return &libraryDocument{f: f, r: reader}, nil
}

func (d *libraryDocument) NumPage() int { return d.r.NumPage() }

func (d *libraryDocument) Close() error { return d.f.Close() }

// PageText tries reading the page by rows, then by positioned content, then
// as the plain text stream. The first readable result wins; otherwise the
// first non-empty one is returned.
func (d *libraryDocument) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed on page %d: %v", n, r)
		}
	}()

	page := d.r.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d not found", n)
	}

	var first string
	for _, method := range []func(pdf.Page) string{pageTextByRow, pageTextByContent, pagePlainText} {
		text := method(page)
		if IsReadableText(text) {
			return text, nil
		}
		if first == "" {
			first = text
		}
	}
	return first, nil
}

func pageTextByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}
	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// pageTextByContent rebuilds lines from the page's positioned glyphs: glyphs
// are grouped by rounded Y (top to bottom) and ordered by X, with a gap wider
// than 15pt rendered as a column break.
func pageTextByContent(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type glyph struct {
		x float64
		s string
	}
	rows := make(map[int][]glyph)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" && t.S != " " {
			continue
		}
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], glyph{x: t.X, s: t.S})
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	var lines []string
	for _, y := range ys {
		glyphs := rows[y]
		sort.SliceStable(glyphs, func(a, b int) bool { return glyphs[a].x < glyphs[b].x })

		var b strings.Builder
		for i, g := range glyphs {
			if i > 0 && g.x-glyphs[i-1].x > 15 {
				b.WriteString("  ")
			}
			b.WriteString(g.s)
		}
		if line := strings.TrimSpace(b.String()); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func pagePlainText(page pdf.Page) string {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// popplerDocument reads pages through the pdftotext command.
type popplerDocument struct {
	path     string
	numPages int
}

func openWithPdftotext(filePath string) (Document, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %v", err)
	}
	if _, err := os.Stat(filePath); err != nil {
		return nil, err
	}

	n := pdfinfoPageCount(filePath)
	if n == 0 {
		return nil, fmt.Errorf("pdfinfo could not read page count of %s", filePath)
	}
	return &popplerDocument{path: filePath, numPages: n}, nil
}

func (d *popplerDocument) NumPage() int { return d.numPages }

func (d *popplerDocument) Close() error { return nil }

func (d *popplerDocument) PageText(n int) (string, error) {
	pageStr := strconv.Itoa(n)
	out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, d.path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed on page %d: %v", n, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// pdfinfoPageCount returns the number of pages reported by pdfinfo, or 0.
func pdfinfoPageCount(filePath string) int {
	out, err := exec.Command("pdfinfo", filePath).Output()
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
			if err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}
