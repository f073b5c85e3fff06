package detector

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// ThresholdDetector finds bright IR reflections by binary thresholding and
// connected-component extraction.
type ThresholdDetector struct {
	config Config
	mu     sync.Mutex
}

// NewThresholdDetector creates a ThresholdDetector with the given config.
// Zero-valued fields fall back to DefaultConfig.
func NewThresholdDetector(config Config) *ThresholdDetector {
	def := DefaultConfig()
	if config.ThresholdMax <= 0 {
		config.ThresholdMax = def.ThresholdMax
	}
	if config.ThresholdMin <= 0 {
		config.ThresholdMin = def.ThresholdMin
	}
	if config.MinPixels <= 0 {
		config.MinPixels = def.MinPixels
	}
	return &ThresholdDetector{config: config}
}

// Detect thresholds the frame and returns one Blob per connected bright
// region of at least MinPixels pixels.
//
// Algorithm:
// 1. Convert frame to grayscale
// 2. Binary threshold at [ThresholdMin, ThresholdMax]
// 3. Extract external contours
// 4. For each contour: area, bounding box, centroid via moments
// 5. Discard regions smaller than MinPixels
func (d *ThresholdDetector) Detect(frame *gocv.Mat) ([]Blob, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if frame == nil || frame.Empty() {
		return nil, nil
	}

	// Convert to grayscale
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	// Binary threshold: qualifying pixels become white
	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(gray, &thresh, d.config.ThresholdMin, d.config.ThresholdMax, gocv.ThresholdBinary)

	// Connected regions via external contours
	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var blobs []Blob
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if int(area) < d.config.MinPixels {
			continue
		}

		rect := gocv.BoundingRect(contour)

		// Centroid from spatial moments; fall back to the bounding box
		// center for degenerate contours.
		region := thresh.Region(rect)
		m := gocv.Moments(region, true)
		region.Close()
		centroid := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		if m["m00"] > 0 {
			centroid = image.Pt(
				rect.Min.X+int(m["m10"]/m["m00"]),
				rect.Min.Y+int(m["m01"]/m["m00"]),
			)
		}

		blobs = append(blobs, Blob{
			Centroid: centroid,
			Pixels:   int(area),
			Rect:     rect,
		})
	}

	return blobs, nil
}

// Close is a no-op; the detector holds no persistent gocv state.
func (d *ThresholdDetector) Close() error {
	return nil
}

// SetMinPixels updates the minimum region size.
// Values less than or equal to 0 are ignored.
func (d *ThresholdDetector) SetMinPixels(n int) {
	if n <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.config.MinPixels = n
}
