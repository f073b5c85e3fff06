// Package detector extracts infrared reflection blobs from camera frames.
package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// Blob is a single connected region of qualifying pixels in one frame.
// Blobs are transient: the pipeline never keeps them across frames.
type Blob struct {
	// Centroid is the center of mass of the region.
	Centroid image.Point
	// Pixels is the number of qualifying pixels in the region.
	Pixels int
	// Rect is the axis-aligned bounding box of the region.
	Rect image.Rectangle
}

// Detector defines the interface for blob detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the detected blobs.
	// Returns an empty slice if no blobs are found. No ordering is
	// guaranteed.
	Detect(frame *gocv.Mat) ([]Blob, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for blob detection.
type Config struct {
	// ThresholdMin is the lower grayscale bound for a qualifying pixel.
	ThresholdMin float32

	// ThresholdMax is the upper grayscale bound for a qualifying pixel.
	ThresholdMax float32

	// MinPixels is the minimum region size; smaller regions are noise.
	MinPixels int
}

// DefaultConfig returns a Config tuned for the fixed-exposure IR setup.
func DefaultConfig() Config {
	return Config{
		ThresholdMin: 10,
		ThresholdMax: 255,
		MinPixels:    50,
	}
}
