package capture

import (
	"errors"
	"testing"
)

func TestMockCamera_OpenClose(t *testing.T) {
	c := NewMockCamera(nil, false)

	if c.IsOpen() {
		t.Error("camera should start closed")
	}

	if _, err := c.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open error = %v, want ErrCameraNotOpen", err)
	}

	if err := c.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !c.IsOpen() {
		t.Error("camera should be open")
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if c.IsOpen() {
		t.Error("camera should be closed")
	}
}

func TestMockCamera_BlankFrames(t *testing.T) {
	c := NewMockCamera(nil, false)
	if err := c.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	frame, err := c.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() error = %v", err)
	}
	defer frame.Close()

	if frame.Cols() != DefaultWidth || frame.Rows() != DefaultHeight {
		t.Errorf("blank frame is %dx%d, want %dx%d",
			frame.Cols(), frame.Rows(), DefaultWidth, DefaultHeight)
	}
}
