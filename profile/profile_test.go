package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/p"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/p", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}
}

func TestProfiler_Start_Ignored(t *testing.T) {
	for _, mode := range []string{"", "bogus"} {
		stop := New(WithMode(mode), WithPath(t.TempDir())).Start()

		if _, ok := stop.(ignore); !ok {
			t.Errorf("Start() with mode %q = %T, want ignore", mode, stop)
		}

		stop.Stop()
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	if slices.Contains(modes, "quiet") {
		t.Errorf("Modes() contains quiet: %v", modes)
	}
}
