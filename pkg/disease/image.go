// Copyright (c) 2025, The Agro24 Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package disease

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/draw"

	"github.com/agro24/agrod/pkg/defaults"
	cnserrors "github.com/agro24/agrod/pkg/errors"
)

// MsgInvalidFileType is returned when the claimed filename is not an allowed image type.
const MsgInvalidFileType = "Invalid file type. Please upload PNG or JPEG images"

// AllowedExtensions are the accepted filename suffixes, compared case-insensitively.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg"}

// CheckExtension validates the claimed filename only; content is not inspected.
func CheckExtension(filename string) error {
	name := strings.ToLower(filename)
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(name, ext) {
			return nil
		}
	}
	return cnserrors.NewWithContext(cnserrors.ErrCodeUnsupportedFormat, MsgInvalidFileType,
		map[string]any{"filename": filename})
}

// Decode decodes PNG or JPEG bytes, sniffing the content rather than
// trusting the filename. Images larger than defaults.MaxImagePixels are
// rejected from their header, before any pixel data is allocated.
func Decode(data []byte) (image.Image, error) {
	var (
		decode       func(io.Reader) (image.Image, error)
		decodeConfig func(io.Reader) (image.Config, error)
	)
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		decode, decodeConfig = png.Decode, png.DecodeConfig
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		decode, decodeConfig = jpeg.Decode, jpeg.DecodeConfig
	default:
		return nil, unidentified(fmt.Errorf("unrecognized image data"))
	}

	cfg, err := decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, unidentified(err)
	}
	if px := int64(cfg.Width) * int64(cfg.Height); px > defaults.MaxImagePixels {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidImage,
			fmt.Sprintf("image too large: %dx%d exceeds %d pixels", cfg.Width, cfg.Height, defaults.MaxImagePixels),
			map[string]any{"width": cfg.Width, "height": cfg.Height})
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, unidentified(err)
	}
	return img, nil
}

func unidentified(err error) error {
	return cnserrors.Wrap(cnserrors.ErrCodeInvalidImage,
		fmt.Sprintf("cannot identify image file: %v", err), err)
}

// FlattenRGB returns an opaque copy of img whose color channels are the
// straight (non-premultiplied) values of the source. Alpha is discarded, not
// blended against a background.
func FlattenRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return out
}

// Tensor is a dense float32 tensor in row-major order.
type Tensor struct {
	Shape []int
	Data  []float32
}

// PreprocessConfig describes the image processor.
type PreprocessConfig struct {
	ShortestEdge int        `json:"shortestEdge" yaml:"shortestEdge"`
	CropSize     int        `json:"cropSize" yaml:"cropSize"`
	Mean         [3]float32 `json:"mean" yaml:"mean"`
	Std          [3]float32 `json:"std" yaml:"std"`
}

// DefaultPreprocessConfig matches a 224x224 MobileNetV2 image processor.
func DefaultPreprocessConfig() PreprocessConfig {
	return PreprocessConfig{
		ShortestEdge: defaults.ImageShortestEdge,
		CropSize:     defaults.ImageCropSize,
		Mean:         [3]float32{defaults.ImageMean, defaults.ImageMean, defaults.ImageMean},
		Std:          [3]float32{defaults.ImageStd, defaults.ImageStd, defaults.ImageStd},
	}
}

// Validate checks the configuration is usable.
func (c PreprocessConfig) Validate() error {
	if c.CropSize <= 0 || c.ShortestEdge <= 0 {
		return fmt.Errorf("image sizes must be positive")
	}
	if c.CropSize > c.ShortestEdge {
		return fmt.Errorf("crop size %d exceeds shortest edge %d", c.CropSize, c.ShortestEdge)
	}
	for i, s := range c.Std {
		if s <= 0 {
			return fmt.Errorf("std[%d] must be positive", i)
		}
	}
	return nil
}

// Preprocess resizes the shortest edge, center crops, rescales to [0, 1] and
// normalizes per channel into a [1, 3, CropSize, CropSize] tensor. Only the
// source region under the crop is scaled, so the work is bounded by the crop
// size whatever the aspect ratio.
func Preprocess(img image.Image, cfg PreprocessConfig) (Tensor, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return Tensor{}, cnserrors.New(cnserrors.ErrCodeInvalidImage, "image has no pixels")
	}

	size := cfg.CropSize
	crop := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(crop, crop.Bounds(), img, cropSource(b, cfg.ShortestEdge, size), draw.Src, nil)

	plane := size * size
	data := make([]float32, 3*plane)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := crop.RGBAAt(x, y)
			i := y*size + x
			data[i] = (float32(c.R)/255 - cfg.Mean[0]) / cfg.Std[0]
			data[plane+i] = (float32(c.G)/255 - cfg.Mean[1]) / cfg.Std[1]
			data[2*plane+i] = (float32(c.B)/255 - cfg.Mean[2]) / cfg.Std[2]
		}
	}

	return Tensor{Shape: []int{1, 3, size, size}, Data: data}, nil
}

// cropSource returns the centered square of b that a shortest-edge resize to
// edge followed by a size x size center crop would keep.
func cropSource(b image.Rectangle, edge, size int) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	span := int(math.Round(float64(size) * float64(min(w, h)) / float64(edge)))
	span = max(1, min(span, w, h))

	x0 := b.Min.X + (w-span)/2
	y0 := b.Min.Y + (h-span)/2
	return image.Rect(x0, y0, x0+span, y0+span)
}
