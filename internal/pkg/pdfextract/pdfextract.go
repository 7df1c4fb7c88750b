package pdfextract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Summary describes a stored PDF for the asset record.
type Summary struct {
	Pages int
	Text  string
}

// Summarize opens the PDF at path and returns its page count plus at most
// maxLen bytes of plain text. A PDF without extractable text yields an empty
// Text and no error.
func Summarize(path string, maxLen int) (summary *Summary, err error) {
	// The parser panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			summary, err = nil, fmt.Errorf("parse pdf failed: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf failed: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text failed: %w", err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, io.LimitReader(plain, int64(maxLen))); err != nil {
		return nil, fmt.Errorf("read pdf text failed: %w", err)
	}
	return &Summary{Pages: reader.NumPage(), Text: strings.TrimSpace(b.String())}, nil
}
