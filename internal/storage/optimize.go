package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

const (
	MaxImageWidth  = 1920
	MaxImageHeight = 1080
	JPEGQuality    = 85
)

// optimizeImage downscales content to fit within MaxImageWidth x
// MaxImageHeight, keeping the aspect ratio. Images already within bounds
// and unsupported formats come back unchanged with resized=false.
func optimizeImage(content []byte, contentType string) (out []byte, resized bool, err error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return content, false, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return nil, false, fmt.Errorf("decode image config: %w", err)
	}
	w, h := fitWithin(cfg.Width, cfg.Height, MaxImageWidth, MaxImageHeight)
	if w == cfg.Width && h == cfg.Height {
		return content, false, nil
	}

	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch contentType {
	case "image/jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality})
	default:
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}

func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	// scale = min(maxW/w, maxH/h)
	if w*maxH > h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}
