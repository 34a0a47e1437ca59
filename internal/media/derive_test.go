// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

package media_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardakose/boyama/internal/media"
)

// pngSource encodes a solid test image of the given dimensions as PNG.
func pngSource(t *testing.T, width, height int) []byte {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestDeriveAssets_Dimensions(t *testing.T) {
	src := pngSource(t, 1200, 900)

	set, err := media.DeriveAssets(src)
	require.NoError(t, err)

	// Source dimensions are recorded as decoded.
	assert.Equal(t, 1200, set.SourceWidth)
	assert.Equal(t, 900, set.SourceHeight)

	// Cover always fills the fixed portrait canvas.
	w, h := decodeDims(t, set.Cover)
	assert.Equal(t, media.CoverWidth, w)
	assert.Equal(t, media.CoverHeight, h)

	// Thumbnails fit inside their boxes.
	w, h = decodeDims(t, set.ThumbLarge)
	assert.LessOrEqual(t, w, media.ThumbLargeWidth)
	assert.LessOrEqual(t, h, media.ThumbLargeHeight)

	w, h = decodeDims(t, set.ThumbSmall)
	assert.LessOrEqual(t, w, media.ThumbSmallWidth)
	assert.LessOrEqual(t, h, media.ThumbSmallHeight)
}

func TestDeriveAssets_Determinism(t *testing.T) {
	src := pngSource(t, 640, 480)

	first, err := media.DeriveAssets(src)
	require.NoError(t, err)
	second, err := media.DeriveAssets(src)
	require.NoError(t, err)

	w1, h1 := decodeDims(t, first.Cover)
	w2, h2 := decodeDims(t, second.Cover)
	assert.Equal(t, w1, w2)
	assert.Equal(t, h1, h2)

	assert.Equal(t, first.SourceWidth, second.SourceWidth)
	assert.Equal(t, first.SourceHeight, second.SourceHeight)
}

func TestDeriveAssets_SmallSourceUpscalesCoverOnly(t *testing.T) {
	// A tiny source is upscaled into the cover frame, but thumbnails are
	// derived from the cover with a no-upscale fit.
	src := pngSource(t, 100, 141)

	set, err := media.DeriveAssets(src)
	require.NoError(t, err)

	w, h := decodeDims(t, set.Cover)
	assert.Equal(t, media.CoverWidth, w)
	assert.Equal(t, media.CoverHeight, h)

	w, h = decodeDims(t, set.ThumbLarge)
	assert.LessOrEqual(t, w, media.ThumbLargeWidth)
	assert.LessOrEqual(t, h, media.ThumbLargeHeight)
}

func TestDeriveAssets_RejectsGarbage(t *testing.T) {
	_, err := media.DeriveAssets([]byte("not an image"))
	assert.Error(t, err)

	_, err = media.DeriveAssets(nil)
	assert.Error(t, err)
}

func TestDeriveCoverPDF(t *testing.T) {
	src := pngSource(t, 800, 1100)

	pdf, err := media.DeriveCoverPDF(src)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Greater(t, len(pdf), 1000)
}

func TestDeriveCoverPDF_RejectsGarbage(t *testing.T) {
	_, err := media.DeriveCoverPDF([]byte{0x00, 0x01})
	assert.Error(t, err)
}
