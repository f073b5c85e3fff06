package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	blobs []Blob
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetBlobs sets the blobs that will be returned by Detect.
func (m *MockDetector) SetBlobs(blobs []Blob) {
	m.blobs = blobs
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured blobs or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Blob, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.blobs, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// BlobAt returns a preset Blob centered at (x, y) with the given pixel
// count, sized as a square reflection around the centroid.
func BlobAt(x, y, pixels int) Blob {
	half := 5
	return Blob{
		Centroid: image.Pt(x, y),
		Pixels:   pixels,
		Rect:     image.Rect(x-half, y-half, x+half, y+half),
	}
}
