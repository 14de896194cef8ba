package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Report summarizes a rendered PDF.
type Report struct {
	Pages int
	Text  string
}

// ErrEmpty is returned for a zero-length payload.
var ErrEmpty = errors.New("empty document")

// Inspect parses a PDF payload and returns its page count and plain text.
// Library used: github.com/ledongthuc/pdf.
func Inspect(ctx context.Context, data []byte) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	if len(data) == 0 {
		return Report{}, ErrEmpty
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Report{}, fmt.Errorf("open pdf: %w", err)
	}
	text, err := plainText(reader)
	if err != nil {
		return Report{}, fmt.Errorf("extract pdf text: %w", err)
	}
	return Report{Pages: reader.NumPage(), Text: text}, nil
}

func plainText(reader *pdf.Reader) (string, error) {
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
