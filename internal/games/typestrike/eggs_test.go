package typestrike

import "testing"

func TestEggDetectorFiresOncePerSession(t *testing.T) {
	var d eggDetector
	d.Reset()

	var fired []string
	for _, c := range "XSOSYSOS" {
		for _, e := range d.Push(c) {
			fired = append(fired, e.Code)
		}
	}
	if len(fired) != 1 || fired[0] != "SOS" {
		t.Errorf("fired = %v, expected [SOS]", fired)
	}
	if d.Found() != 1 {
		t.Errorf("Found() = %d, expected 1", d.Found())
	}

	d.Reset()
	var again []EasterEgg
	for _, c := range "SOS" {
		again = append(again, d.Push(c)...)
	}
	if len(again) != 1 {
		t.Errorf("after Reset fired %d eggs, expected 1", len(again))
	}
}

func TestEggDetectorCodes(t *testing.T) {
	tests := []struct {
		typed string
		code  string
	}{
		{"WOW", "WOW"},
		{"ZEN", "ZEN"},
		{"007", "007"},
		{"RUSH", "RUSH"},
		{"GODMODE", "GODMODE"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var d eggDetector
			var last []EasterEgg
			for _, c := range tt.typed {
				last = d.Push(c)
			}
			if len(last) != 1 || last[0].Code != tt.code {
				t.Errorf("Push(%q) = %v, expected %s", tt.typed, last, tt.code)
			}
		})
	}
}
