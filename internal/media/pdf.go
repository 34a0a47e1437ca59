// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package media

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

// Print canvas: A4 at 300dpi in pixels, and the matching page in points.
const (
	pdfCanvasWidth  = 2480
	pdfCanvasHeight = 3508

	a4WidthPt  = 595.28
	a4HeightPt = 841.89

	// One 300dpi pixel in PDF points (72/300).
	pxToPt = 0.24
)

// DeriveCoverPDF renders the source into a single-page A4 PDF.
//
// The source is fit-contained into the 300dpi pixel canvas with
// scale = min(cw/w, ch/h, 1), so it is centered but never upscaled past
// its native resolution. The fitted image is embedded losslessly as PNG.
func DeriveCoverPDF(src []byte) ([]byte, error) {
	source, err := decodeOriented(src)
	if err != nil {
		return nil, err
	}

	bounds := source.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	scale := min(
		float64(pdfCanvasWidth)/float64(srcW),
		float64(pdfCanvasHeight)/float64(srcH),
		1.0,
	)
	fitW := int(float64(srcW)*scale + 0.5)
	fitH := int(float64(srcH)*scale + 0.5)
	if fitW < 1 {
		fitW = 1
	}
	if fitH < 1 {
		fitH = 1
	}

	fitted := imaging.Resize(source, fitW, fitH, imaging.Lanczos)

	var pngBuf bytes.Buffer
	if err := imaging.Encode(&pngBuf, fitted, imaging.PNG); err != nil {
		return nil, fmt.Errorf("media: encode pdf raster: %w", err)
	}

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	options := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("cover", options, &pngBuf)

	// Center the fitted image on the page in point units.
	imgWPt := float64(fitW) * pxToPt
	imgHPt := float64(fitH) * pxToPt
	x := (a4WidthPt - imgWPt) / 2
	y := (a4HeightPt - imgHPt) / 2

	doc.ImageOptions("cover", x, y, imgWPt, imgHPt, false, options, 0, "")

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, fmt.Errorf("media: render pdf: %w", err)
	}
	return out.Bytes(), nil
}
