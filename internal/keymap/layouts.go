package keymap

import "image"

// Builtin layouts carry the calibration data for the two printed overlays
// shipped with the tracker. Coordinates are in QVGA (320x240) pixels.

// QwertyCluster returns the calibrated letter-cluster layout.
func QwertyCluster() *Layout {
	l, err := NewLayout("keys", []Zone{
		{Key: "J", Rect: R(174, 152, 30, 30), Center: image.Pt(179, 161)},
		{Key: "H", Rect: R(138, 141, 30, 30), Center: image.Pt(143, 150)},
		{Key: "L", Rect: R(222, 140, 30, 30), Center: image.Pt(227, 149)},
		{Key: "R", Rect: R(57, 111, 30, 30), Center: image.Pt(62, 120)},
		{Key: "G", Rect: R(115, 141, 30, 30), Center: image.Pt(120, 150)},
		{Key: "Z", Rect: R(0, 176, 30, 30), Center: image.Pt(5, 185)},
		{Key: "D", Rect: R(45, 146, 30, 30), Center: image.Pt(50, 151)},
		{Key: "SPACE", Rect: R(110, 206, 100, 30), Center: image.Pt(160, 191)},
		{Key: "-", Rect: R(57, 104, 30, 30), Center: image.Pt(62, 113)},
		{Key: "BACK", Rect: R(217, 90, 10, 17), Center: image.Pt(222, 99)},
	})
	if err != nil {
		panic(err) // builtin data, validated by tests
	}
	return l
}

// PianoOctave returns the calibrated one-octave piano layout (C4 to E5).
// The black keys are listed first so that a touch in the region where a
// black key overhangs a white key resolves to the black key.
func PianoOctave() *Layout {
	black := []Zone{
		{Key: "CS4", Rect: R(33, 100, 14, 50), Center: image.Pt(40, 125)},
		{Key: "DS4", Rect: R(53, 100, 14, 50), Center: image.Pt(60, 125)},
		{Key: "FS4", Rect: R(93, 100, 14, 50), Center: image.Pt(100, 125)},
		{Key: "GS4", Rect: R(113, 100, 14, 50), Center: image.Pt(120, 125)},
		{Key: "AS4", Rect: R(133, 100, 14, 50), Center: image.Pt(140, 125)},
		{Key: "CS5", Rect: R(173, 100, 14, 50), Center: image.Pt(180, 125)},
		{Key: "DS5", Rect: R(193, 100, 14, 50), Center: image.Pt(200, 125)},
	}
	white := []Zone{
		{Key: "C4", Rect: R(40, 150, 20, 80), Center: image.Pt(50, 190)},
		{Key: "D4", Rect: R(60, 150, 20, 80), Center: image.Pt(70, 190)},
		{Key: "E4", Rect: R(80, 150, 20, 80), Center: image.Pt(90, 190)},
		{Key: "F4", Rect: R(100, 150, 20, 80), Center: image.Pt(110, 190)},
		{Key: "G4", Rect: R(120, 150, 20, 80), Center: image.Pt(130, 190)},
		{Key: "A4", Rect: R(140, 150, 20, 80), Center: image.Pt(150, 190)},
		{Key: "B4", Rect: R(160, 150, 20, 80), Center: image.Pt(170, 190)},
		{Key: "C5", Rect: R(180, 150, 20, 80), Center: image.Pt(190, 190)},
		{Key: "D5", Rect: R(200, 150, 20, 80), Center: image.Pt(210, 190)},
		{Key: "E5", Rect: R(220, 150, 20, 80), Center: image.Pt(230, 190)},
	}
	l, err := NewLayout("piano", append(black, white...))
	if err != nil {
		panic(err)
	}
	return l
}

// Builtin returns the named builtin layout, or nil if the name is unknown.
func Builtin(name string) *Layout {
	switch name {
	case "keys":
		return QwertyCluster()
	case "piano":
		return PianoOctave()
	default:
		return nil
	}
}
