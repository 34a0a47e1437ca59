// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package media derives the standardized asset variants for a coloring page.

Every upload is transformed into a fixed portrait set regardless of the
source aspect ratio:

  - Cover: 1600x2260 white canvas, source fit-contained, WebP q90.
  - Large thumbnail: cover fit inside 800x1130, WebP q85.
  - Small thumbnail: cover fit inside 400x566, WebP q80.
  - Print PDF: source fit-contained into an A4-at-300dpi canvas.

Derivation is pure: no I/O, no side effects. Any decode or encode error
aborts the whole set; a partial result is never returned.
*/
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Fixed canvas and box dimensions for the portrait asset set.
const (
	CoverWidth  = 1600
	CoverHeight = 2260

	ThumbLargeWidth  = 800
	ThumbLargeHeight = 1130

	ThumbSmallWidth  = 400
	ThumbSmallHeight = 566

	coverQuality      = 90
	thumbLargeQuality = 85
	thumbSmallQuality = 80
)

// AssetSet holds every derived variant plus the source dimensions.
type AssetSet struct {
	Cover      []byte
	ThumbLarge []byte
	ThumbSmall []byte

	// SourceWidth/SourceHeight are the pixel dimensions of the decoded
	// source after orientation normalization.
	SourceWidth  int
	SourceHeight int
}

// DeriveAssets decodes the source image and produces the full variant set.
//
// Thumbnails are derived from the cover, not the original, so they share
// the cover's white padding and aspect. Fit never upscales, which keeps a
// small cover's thumbnails at the cover's own dimensions.
func DeriveAssets(src []byte) (*AssetSet, error) {
	source, err := decodeOriented(src)
	if err != nil {
		return nil, err
	}

	bounds := source.Bounds()
	cover := composeCover(source)

	coverBytes, err := encodeWebP(cover, coverQuality)
	if err != nil {
		return nil, fmt.Errorf("media: encode cover: %w", err)
	}

	thumbLarge := imaging.Fit(cover, ThumbLargeWidth, ThumbLargeHeight, imaging.Lanczos)
	thumbLargeBytes, err := encodeWebP(thumbLarge, thumbLargeQuality)
	if err != nil {
		return nil, fmt.Errorf("media: encode large thumbnail: %w", err)
	}

	thumbSmall := imaging.Fit(cover, ThumbSmallWidth, ThumbSmallHeight, imaging.Lanczos)
	thumbSmallBytes, err := encodeWebP(thumbSmall, thumbSmallQuality)
	if err != nil {
		return nil, fmt.Errorf("media: encode small thumbnail: %w", err)
	}

	return &AssetSet{
		Cover:        coverBytes,
		ThumbLarge:   thumbLargeBytes,
		ThumbSmall:   thumbSmallBytes,
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
	}, nil
}

// decodeOriented decodes the source and applies EXIF auto-rotation before
// any resize touches the pixels.
func decodeOriented(src []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("media: decode source: %w", err)
	}
	return img, nil
}

// composeCover fit-contains the source into the fixed cover canvas, padded
// with white. Unlike the thumbnails, the cover scale may exceed 1:1 so a
// small source still fills the portrait frame.
func composeCover(source image.Image) image.Image {
	bounds := source.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	scale := min(float64(CoverWidth)/float64(srcW), float64(CoverHeight)/float64(srcH))
	fitW := int(float64(srcW)*scale + 0.5)
	fitH := int(float64(srcH)*scale + 0.5)
	if fitW < 1 {
		fitW = 1
	}
	if fitH < 1 {
		fitH = 1
	}

	fitted := imaging.Resize(source, fitW, fitH, imaging.Lanczos)
	canvas := imaging.New(CoverWidth, CoverHeight, color.White)
	return imaging.PasteCenter(canvas, fitted)
}

// encodeWebP encodes the image as lossy WebP at the given quality.
func encodeWebP(img image.Image, quality float32) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
