package keys

import "github.com/ayusman/lumikey/internal/detector"

// DominantBlob picks the single blob the pipeline tracks for a frame: the
// one with the most qualifying pixels. Ties go to the first blob in detector
// order. Returns false for an empty frame.
//
// Multiple simultaneous blobs are deliberately collapsed to one; the system
// models a single pressing finger.
func DominantBlob(blobs []detector.Blob) (detector.Blob, bool) {
	if len(blobs) == 0 {
		return detector.Blob{}, false
	}
	best := blobs[0]
	for _, b := range blobs[1:] {
		if b.Pixels > best.Pixels {
			best = b
		}
	}
	return best, true
}
