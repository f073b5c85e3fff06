package detector

import (
	"errors"
	"image"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ThresholdMin != 10 || cfg.ThresholdMax != 255 {
		t.Errorf("threshold = [%v, %v], want [10, 255]", cfg.ThresholdMin, cfg.ThresholdMax)
	}
	if cfg.MinPixels != 50 {
		t.Errorf("MinPixels = %d, want 50", cfg.MinPixels)
	}
}

func TestNewThresholdDetector_FillsDefaults(t *testing.T) {
	d := NewThresholdDetector(Config{})
	if d.config.ThresholdMin != 10 || d.config.ThresholdMax != 255 || d.config.MinPixels != 50 {
		t.Errorf("zero config not defaulted: %+v", d.config)
	}

	d = NewThresholdDetector(Config{ThresholdMin: 5, MinPixels: 20})
	if d.config.ThresholdMin != 5 || d.config.MinPixels != 20 {
		t.Errorf("explicit values overridden: %+v", d.config)
	}
}

func TestThresholdDetector_NilFrame(t *testing.T) {
	d := NewThresholdDetector(DefaultConfig())
	blobs, err := d.Detect(nil)
	if err != nil {
		t.Fatalf("Detect(nil) error = %v", err)
	}
	if len(blobs) != 0 {
		t.Errorf("Detect(nil) = %d blobs, want 0", len(blobs))
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	blobs, err := m.Detect(nil)
	if err != nil || len(blobs) != 0 {
		t.Fatalf("empty mock returned (%v, %v)", blobs, err)
	}

	m.SetBlobs([]Blob{BlobAt(180, 160, 120)})
	blobs, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(blobs) != 1 {
		t.Fatalf("got %d blobs, want 1", len(blobs))
	}
	if blobs[0].Centroid != image.Pt(180, 160) {
		t.Errorf("centroid = %v, want (180,160)", blobs[0].Centroid)
	}
	if blobs[0].Pixels != 120 {
		t.Errorf("pixels = %d, want 120", blobs[0].Pixels)
	}

	wantErr := errors.New("detector offline")
	m.SetError(wantErr)
	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}
