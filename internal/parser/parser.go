// Package parser routes credit-card statement text to an issuer profile and
// extracts the summary fields from it.
package parser

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/card-statement-parser/internal/extractor"
	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// StatementParser reads a statement document, detects its issuer and extracts
// the seven result fields. It holds no per-call state and may be shared
// between goroutines.
type StatementParser struct {
	router   *Router
	open     extractor.OpenFunc
	maxPages int
	log      logrus.FieldLogger
}

// Option configures a StatementParser.
type Option func(*StatementParser)

// WithRouter replaces the built-in issuer router.
func WithRouter(r *Router) Option {
	return func(p *StatementParser) { p.router = r }
}

// WithOpener replaces the PDF opener, e.g. with a fake document source in tests.
func WithOpener(open extractor.OpenFunc) Option {
	return func(p *StatementParser) { p.open = open }
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *StatementParser) {
		if log != nil {
			p.log = log
		}
	}
}

// New returns a StatementParser over the default issuers, reading the first
// two pages of each PDF.
func New(opts ...Option) *StatementParser {
	p := &StatementParser{
		router:   DefaultRouter(),
		open:     extractor.OpenPDF,
		maxPages: extractor.DefaultMaxPages,
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Supported lists the issuers this parser recognises.
func (p *StatementParser) Supported() []string {
	return p.router.Supported()
}

// ParseFile extracts the statement fields from the document at path.
// It returns an *AcquisitionError if the document cannot be read and an
// *UnrecognizedIssuerError if no issuer matches its text.
func (p *StatementParser) ParseFile(path string) (*models.ExtractionResult, error) {
	text, err := p.readText(path)
	if err != nil {
		p.log.WithField("file", path).WithError(err).Debug("statement text could not be read")
		return nil, &AcquisitionError{Path: path, Err: err}
	}
	return p.ParseText(text)
}

// ParseText extracts the statement fields from already extracted text.
func (p *StatementParser) ParseText(text string) (*models.ExtractionResult, error) {
	iss, ok := p.router.Detect(text)
	if !ok {
		p.log.Debug("no issuer signature found in statement text")
		return nil, &UnrecognizedIssuerError{Supported: p.router.Supported()}
	}

	log := p.log.WithField("issuer", iss.ID())
	log.Debug("issuer detected")

	res := Extract(iss, text)
	for _, f := range res.Fields() {
		if !f.Value.OK() {
			log.WithField("field", f.Name).Debug("field not found")
		}
	}
	return res, nil
}

// Parse returns either the *models.ExtractionResult or a *models.ErrorResult
// for the document at path, never both.
func (p *StatementParser) Parse(path string) interface{} {
	res, err := p.ParseFile(path)
	if err != nil {
		return models.NewErrorResult(err)
	}
	return res
}

func (p *StatementParser) readText(path string) (string, error) {
	doc, err := p.open(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	text, err := extractor.ReadBlob(doc, p.maxPages)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	p.log.WithFields(logrus.Fields{
		"file":  path,
		"pages": doc.NumPage(),
		"chars": len(text),
	}).Debug("statement text read")
	return text, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
