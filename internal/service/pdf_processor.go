package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"pdf-chatbot-api/internal/domain"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

const defaultPageTimeout = 90 * time.Second

// pageSource is an opened PDF that yields text page by page (0-indexed).
type pageSource interface {
	NumPage() int
	PageText(index int) (string, error)
	Close() error
}

// pdfEngine opens a PDF from memory.
type pdfEngine struct {
	name string
	open func(data []byte) (pageSource, error)
}

// PDFProcessor implements domain.TextExtractor. MuPDF (go-fitz) is tried
// first; documents it cannot open are retried with the pure Go reader.
type PDFProcessor struct {
	engines     []pdfEngine
	pageTimeout time.Duration
	logger      domain.Logger
}

// NewPDFProcessor creates a new PDF processor
func NewPDFProcessor(logger domain.Logger) *PDFProcessor {
	return &PDFProcessor{
		engines: []pdfEngine{
			{name: "mupdf", open: openFitz},
			{name: "pdf", open: openPurePDF},
		},
		pageTimeout: defaultPageTimeout,
		logger:      logger,
	}
}

// ExtractText concatenates the text of every page that has any, with no
// separator. It returns domain.NoTextFound when no page yields text.
func (p *PDFProcessor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty PDF")
	}

	var errs []string
	for _, engine := range p.engines {
		doc, err := engine.open(data)
		if err != nil {
			p.logger.Warn("PDF engine could not open document", "engine", engine.name, "error", err)
			errs = append(errs, fmt.Sprintf("%s: %v", engine.name, err))
			continue
		}

		text, pending := p.extractPages(doc, engine.name)
		if pending == nil {
			doc.Close()
		} else {
			// a page call is still running against doc; close once it returns
			go func(doc pageSource) {
				<-pending
				doc.Close()
			}(doc)
		}

		if text == "" {
			return domain.NoTextFound, nil
		}
		return text, nil
	}

	return "", fmt.Errorf("failed to open PDF: %s", strings.Join(errs, "; "))
}

type pageResult struct {
	text string
	err  error
}

// extractPages reads pages in order. When a page exceeds pageTimeout the
// remaining pages are abandoned and the channel of the still running call is
// returned, so the caller can defer Close until the engine is idle.
func (p *PDFProcessor) extractPages(doc pageSource, engine string) (string, <-chan pageResult) {
	var out strings.Builder
	numPages := doc.NumPage()

	for pageNum := 0; pageNum < numPages; pageNum++ {
		p.logger.Debug("PDF processing page", "engine", engine, "page", pageNum+1, "total", numPages)

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.PageText(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var res pageResult
		select {
		case res = <-resultCh:
		case <-time.After(p.pageTimeout):
			p.logger.Warn("PDF page extraction timeout; skipping remaining pages",
				"engine", engine, "page", pageNum+1, "total", numPages, "timeout_sec", int(p.pageTimeout.Seconds()))
			return out.String(), resultCh
		}
		if res.err != nil {
			p.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", res.err)
			continue
		}

		text := sanitizeText(res.text)
		if text == "" {
			continue
		}
		out.WriteString(text)
	}

	return out.String(), nil
}

// sanitizeText drops NUL characters and invalid UTF-8, which BSON strings
// cannot carry.
func sanitizeText(text string) string {
	text = strings.ToValidUTF8(text, "")
	return strings.ReplaceAll(text, "\x00", "")
}

// --- go-fitz engine ---

type fitzSource struct {
	doc *fitz.Document
}

func openFitz(data []byte) (pageSource, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &fitzSource{doc: doc}, nil
}

func (s *fitzSource) NumPage() int                   { return s.doc.NumPage() }
func (s *fitzSource) PageText(i int) (string, error) { return s.doc.Text(i) }
func (s *fitzSource) Close() error                   { return s.doc.Close() }

// --- ledongthuc/pdf engine ---

type purePDFSource struct {
	reader *pdf.Reader
}

func openPurePDF(data []byte) (src pageSource, err error) {
	// the reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &purePDFSource{reader: reader}, nil
}

func (s *purePDFSource) NumPage() int { return s.reader.NumPage() }

func (s *purePDFSource) PageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v", i+1, r)
		}
	}()

	page := s.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func (s *purePDFSource) Close() error { return nil }
