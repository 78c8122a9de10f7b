package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/markdave123-py/Resumely/internal/core/textproc"
)

// ErrUnsupportedFormat is returned for file extensions outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor turns raw file bytes into best-effort plain text. Apart from the
// unsupported-format case every failure degrades to empty text: a corrupt
// page should never sink a whole batch.
type Extractor struct {
	ocr *OCR
}

func New(ocr *OCR) *Extractor {
	return &Extractor{ocr: ocr}
}

// Text dispatches on the lowercase filename extension and runs the result
// through line-level fuzzy deduplication to shrink downstream token usage.
func (e *Extractor) Text(ctx context.Context, data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	switch ext {
	case ".pdf":
		text = e.pdfText(ctx, data)
	case ".docx":
		text = e.docxText(data)
	case ".txt":
		text = plainText(data)
	case ".png", ".jpg", ".jpeg", ".tiff", ".bmp":
		text = e.imageText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	lines := textproc.DeduplicateLines(strings.Split(text, "\n"), textproc.DefaultSimilarityThreshold)
	return strings.Join(lines, "\n"), nil
}
