package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/Resumely/internal/core/textproc"
)

// Pages whose embedded text is shorter than this (trimmed) are assumed to be
// scanned and go through the OCR fallback.
const minEmbeddedTextChars = 30

const ocrResolutionDPI = 300

// pdfText extracts embedded text page by page. Scanned pages are rasterized
// and OCRed; when a page has both embedded and OCR text, the two line pools
// are merged through fuzzy deduplication. Per-page failures degrade to the
// embedded text alone. A document the page reader cannot handle falls back to
// a whole-document docconv (pdftotext) pass.
func (e *Extractor) pdfText(ctx context.Context, data []byte) string {
	text, err := e.pdfPageText(ctx, data)
	if err != nil {
		log.Printf("extract: pdf reader failed, falling back to pdftotext: %v", err)
		return e.pdfTextDocconv(data)
	}
	return text
}

// pdfPageText walks the document page by page. The pdf library reports some
// malformed structures by panicking after NewReader has already accepted the
// file, so the walk converts panics into errors.
func (e *Extractor) pdfPageText(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	total := reader.NumPage()
	log.Printf("extract: processing PDF with %d pages", total)

	var sb strings.Builder
	for i := 1; i <= total; i++ {
		pageText := embeddedPageText(reader, i)

		if len(strings.TrimSpace(pageText)) < minEmbeddedTextChars && e.ocr.CanRasterizePDF() {
			ocrText, err := e.ocrPDFPage(ctx, data, i)
			switch {
			case err != nil:
				log.Printf("extract: OCR fallback failed for page %d: %v", i, err)
			case strings.TrimSpace(pageText) != "" && strings.TrimSpace(ocrText) != "":
				// Both sources have content: merge into one pool and deduplicate.
				combined := append(strings.Split(pageText, "\n"), strings.Split(ocrText, "\n")...)
				deduped := textproc.DeduplicateLines(combined, textproc.DefaultSimilarityThreshold)
				pageText = strings.Join(deduped, "\n")
			case strings.TrimSpace(ocrText) != "":
				pageText = ocrText
			}
		}

		fmt.Fprintf(&sb, "\n--- Page %d ---\n%s", i, pageText)
	}

	return sb.String(), nil
}

func embeddedPageText(reader *pdf.Reader, pageNum int) string {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		log.Printf("extract: embedded text failed for page %d: %v", pageNum, err)
		return ""
	}
	return text
}

// pdfTextDocconv is the whole-document fallback for PDFs the page reader
// rejects (broken xref tables, odd encodings).
func (e *Extractor) pdfTextDocconv(data []byte) string {
	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", false)
	if err != nil {
		log.Printf("extract: pdftotext fallback failed: %v", err)
		return ""
	}
	return res.Body
}

// ocrPDFPage rasterizes one page at 300 DPI via pdftoppm and runs it through
// Tesseract.
func (e *Extractor) ocrPDFPage(ctx context.Context, data []byte, pageNum int) (string, error) {
	dir, err := os.MkdirTemp("", "resumely-ocr-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return "", err
	}

	prefix := filepath.Join(dir, "page")
	page := strconv.Itoa(pageNum)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-f", page, "-l", page,
		"-r", strconv.Itoa(ocrResolutionDPI),
		"-png", src, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm: %v: %s", err, bytes.TrimSpace(out))
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(matches) == 0 {
		return "", errors.New("pdftoppm produced no page image")
	}

	img, err := os.ReadFile(matches[0])
	if err != nil {
		return "", err
	}
	return e.ocr.Recognize(img, false)
}
