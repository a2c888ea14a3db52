// Package debug provides developer utilities for the viewer.
package debug

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrPixelSize is returned when the pixel buffer does not match the dimensions.
var ErrPixelSize = errors.New("pixel data size mismatch")

// ScreenshotCapture writes framebuffer captures as PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string

	now func() time.Time
}

// NewScreenshotCapture creates a new screenshot capture handler.
func NewScreenshotCapture(outputDir, prefix string) *ScreenshotCapture {
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// OutputDir returns the directory screenshots are written to.
func (sc *ScreenshotCapture) OutputDir() string {
	return sc.outputDir
}

// FlipRows converts bottom-up RGBA rows, as read from OpenGL, into a top-down image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if width < 0 || height < 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: expected %d bytes for %dx%d, got %d",
			ErrPixelSize, width*height*4, width, height, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CaptureFromPixels saves bottom-up RGBA pixel data and returns the file path.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}

	if sc.outputDir != "" {
		if err := os.MkdirAll(sc.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename, err := sc.nextFilename()
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

// GenerateFilename returns the timestamped name for a capture taken now.
func (sc *ScreenshotCapture) GenerateFilename() string {
	return sc.filename(0)
}

// nextFilename returns the first timestamped name not already on disk.
// Several captures within one second get a numeric suffix.
func (sc *ScreenshotCapture) nextFilename() (string, error) {
	for n := 0; n < 1000; n++ {
		name := sc.filename(n)
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
	}
	return "", fmt.Errorf("no free screenshot name in %s", sc.outputDir)
}

func (sc *ScreenshotCapture) filename(n int) string {
	name := fmt.Sprintf("%s_%s", sc.prefix, sc.now().Format("2006-01-02_15-04-05"))
	if n > 0 {
		name = fmt.Sprintf("%s_%d", name, n)
	}
	name += ".png"
	if sc.outputDir != "" {
		name = filepath.Join(sc.outputDir, name)
	}
	return name
}
