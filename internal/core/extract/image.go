package extract

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"

	xdraw "golang.org/x/image/draw"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/markdave123-py/Resumely/internal/core/textproc"
)

// imageText OCRs a standalone image. Preprocessing: grayscale, 2x upscale
// with high-quality resampling, then mean-threshold binarization. Small or
// low-contrast scans recognize far better after this.
func (e *Extractor) imageText(data []byte) string {
	if !e.ocr.Available() {
		log.Println("extract: OCR not available, skipping image")
		return ""
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("extract: image decode failed: %v", err)
		return ""
	}
	log.Printf("extract: processing %s image %v", format, src.Bounds().Size())

	gray := toGray(src)
	scaled := upscale(gray, 2)
	binarize(scaled)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		log.Printf("extract: image encode failed: %v", err)
		return ""
	}

	text, err := e.ocr.Recognize(buf.Bytes(), true)
	if err != nil {
		log.Printf("extract: image OCR failed: %v", err)
		return ""
	}

	return textproc.FixOCRArtifacts(text)
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

func upscale(src *image.Gray, factor int) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// binarize applies an adaptive threshold in place: pixels above the image
// mean go to white, the rest to black.
func binarize(img *image.Gray) {
	if len(img.Pix) == 0 {
		return
	}

	var sum uint64
	for _, p := range img.Pix {
		sum += uint64(p)
	}
	threshold := uint8(sum / uint64(len(img.Pix)))

	for i, p := range img.Pix {
		if p > threshold {
			img.Pix[i] = 255
		} else {
			img.Pix[i] = 0
		}
	}
}
