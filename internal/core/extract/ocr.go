package extract

import (
	"log"
	"os/exec"

	"github.com/otiai10/gosseract/v2"
)

// OCR holds the result of the startup capability probe. The zero value means
// no OCR support; construct via ProbeOCR.
type OCR struct {
	tesseract bool
	pdftoppm  bool
}

// ProbeOCR checks once, at startup, whether Tesseract is usable and whether
// pdftoppm is on PATH for PDF page rasterization. The result is threaded
// through to the extractors instead of being re-checked per call.
func ProbeOCR() *OCR {
	o := &OCR{}

	client := gosseract.NewClient()
	defer client.Close()
	if langs, err := client.GetAvailableLanguages(); err == nil && len(langs) > 0 {
		o.tesseract = true
	} else {
		log.Printf("extract: tesseract not usable, OCR disabled: %v", err)
	}

	if _, err := exec.LookPath("pdftoppm"); err == nil {
		o.pdftoppm = true
	} else if o.tesseract {
		log.Println("extract: pdftoppm not found, PDF OCR fallback disabled")
	}

	return o
}

// Available reports whether image OCR can run.
func (o *OCR) Available() bool {
	return o.tesseract
}

// CanRasterizePDF reports whether scanned PDF pages can go through OCR.
func (o *OCR) CanRasterizePDF() bool {
	return o.tesseract && o.pdftoppm
}

// Recognize runs Tesseract over an encoded image. singleBlock selects the
// page-segmentation mode tuned for one uniform block of text.
// A fresh client per call: gosseract clients are not goroutine-safe.
func (o *OCR) Recognize(image []byte, singleBlock bool) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("eng"); err != nil {
		return "", err
	}
	if singleBlock {
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
			return "", err
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	return client.Text()
}
