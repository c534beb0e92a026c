package export

import (
	"errors"
	"testing"
)

type window struct{ start, end int64 }

func (w window) Start() int64 { return w.start }
func (w window) End() int64   { return w.end }

func TestBuildRejectsNonIncreasingRange(t *testing.T) {
	for _, w := range []window{{0, 0}, {5000, 5000}, {8000, 3000}, {1, 0}} {
		_, err := Build(w, "HD (720p)", 10)
		var rangeErr *InvalidRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("expected InvalidRangeError for %+v, got %v", w, err)
		}
		if rangeErr.StartMs != w.start || rangeErr.EndMs != w.end {
			t.Fatalf("unexpected error payload: %+v", rangeErr)
		}
	}
}

func TestBuildRangeCheckRunsBeforeResolution(t *testing.T) {
	_, err := Build(window{3000, 1000}, "4K", 10)
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected range validation first, got %v", err)
	}
}

func TestBuildSucceedsForKnownLabels(t *testing.T) {
	want := map[string]int{
		"360p":            360,
		"SD (480p)":       480,
		"HD (720p)":       720,
		"Full HD (1080p)": 1080,
	}
	for _, label := range ResolutionLabels() {
		p, err := Build(window{0, 1}, label, 1)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", label, err)
		}
		if p.VerticalResolution != want[label] {
			t.Fatalf("label %q mapped to %d", label, p.VerticalResolution)
		}
	}
	if len(ResolutionLabels()) != len(want) {
		t.Fatalf("unexpected label catalog: %v", ResolutionLabels())
	}
}

func TestBuildResolutionIsIndependentOfOtherInputs(t *testing.T) {
	for _, tc := range []struct {
		w   window
		fps int
	}{{window{0, 1000}, 1}, {window{2500, 9000}, 30}, {window{100, 200}, 12}} {
		p, err := Build(tc.w, "HD (720p)", tc.fps)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.VerticalResolution != 720 {
			t.Fatalf("expected 720, got %d", p.VerticalResolution)
		}
	}
}

func TestBuildUnknownResolution(t *testing.T) {
	for _, label := range []string{"", "720p", "hd (720p)", "4K"} {
		_, err := Build(window{0, 1000}, label, 10)
		var resErr *UnknownResolutionError
		if !errors.As(err, &resErr) || resErr.Label != label {
			t.Fatalf("expected UnknownResolutionError for %q, got %v", label, err)
		}
	}
}

func TestBuildDerivesSecondsAndFormatting(t *testing.T) {
	p, err := Build(window{2000, 7000}, "SD (480p)", 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StartSeconds != 2.0 || p.DurationSeconds != 5.0 || p.FPS != 15 || p.VerticalResolution != 480 {
		t.Fatalf("unexpected parameters: %+v", p)
	}
	if p.StartArg() != "2.00" || p.DurationArg() != "5.00" {
		t.Fatalf("unexpected formatting: start=%s duration=%s", p.StartArg(), p.DurationArg())
	}
	if p.Filter() != "fps=15,scale=-1:480:flags=lanczos" {
		t.Fatalf("unexpected filter: %s", p.Filter())
	}

	p, err = Build(window{1234, 5678}, "360p", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.StartArg() != "1.23" || p.DurationArg() != "4.44" {
		t.Fatalf("unexpected rounding: start=%s duration=%s", p.StartArg(), p.DurationArg())
	}
}

func TestFPSPassesThroughUnchanged(t *testing.T) {
	p, err := Build(window{0, 1000}, "360p", 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FPS != 45 {
		t.Fatalf("fps must not be re-validated here, got %d", p.FPS)
	}
}
