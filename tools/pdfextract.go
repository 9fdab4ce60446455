package tools

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadableDocument means the uploaded bytes are not a document we can
// parse.
var ErrUnreadableDocument = errors.New("could not read the uploaded document")

// PDFExtractor pulls plain text out of PDF uploads.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText concatenates the text of every page in page order, separated
// by newlines. Malformed files surface as ErrUnreadableDocument; a valid
// document with no extractable text (an image-only scan, say) yields an
// empty string, not an error.
func (e *PDFExtractor) ExtractText(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs instead of returning an
	// error; treat those as unreadable too.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = ErrUnreadableDocument
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ErrUnreadableDocument
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", ErrUnreadableDocument
		}
		pages = append(pages, strings.TrimSpace(content))
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}
