package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/phpdave11/gofpdf"
)

const mmPerInch = 25.4

// encodePDF writes img as a single-page PDF sized so the image renders at the
// configured DPI.
func (l *Library) encodePDF(w io.Writer, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode page image: %w", err)
	}

	bounds := img.Bounds()
	pageWidth := float64(bounds.Dx()) / float64(l.pdfDPI) * mmPerInch
	pageHeight := float64(bounds.Dy()) / float64(l.pdfDPI) * mmPerInch

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "mm"})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight})

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("page", opts, &buf)
	pdf.ImageOptions("page", 0, 0, pageWidth, pageHeight, false, opts, 0, "")

	if pdf.Err() {
		return fmt.Errorf("compose pdf: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
