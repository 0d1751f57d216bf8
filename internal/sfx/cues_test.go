package sfx

import (
	"testing"
	"time"
)

// drain streams s to completion and returns the sample count.
func drain(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+j, buf[j][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never finished")
	return 0
}

func TestRumble_LengthMatchesDuration(t *testing.T) {
	r := newRumble(sampleRate, 200*time.Millisecond, 1)
	if got, want := drain(t, r), sampleRate.N(200*time.Millisecond); got != want {
		t.Fatalf("expected %d samples, got %d", want, got)
	}
}

func TestSweep_LengthMatchesDuration(t *testing.T) {
	s := newSweep(sampleRate, 400, 800, 50*time.Millisecond)
	if got, want := drain(t, s), sampleRate.N(50*time.Millisecond); got != want {
		t.Fatalf("expected %d samples, got %d", want, got)
	}
}

func TestCollapseDuration_ScalesAndCaps(t *testing.T) {
	if collapseDuration(1) >= collapseDuration(4) {
		t.Fatal("bigger cascades should rumble longer")
	}
	if collapseDuration(500) != 1500*time.Millisecond {
		t.Fatalf("expected cap at 1.5s, got %v", collapseDuration(500))
	}
}

func TestBuild_EveryCueFinishes(t *testing.T) {
	for _, c := range []Cue{CueRemove, CueCollapse, CueCreature, CueShoo} {
		if n := drain(t, Build(c, 3, 0.5)); n == 0 {
			t.Fatalf("cue %s produced no samples", c)
		}
	}
}

func TestPlayer_PlayBeforeInitIsSilent(t *testing.T) {
	p := NewPlayer(0.5)
	p.Play(CueCollapse, 4) // must not panic without a device
	if !p.ToggleMute() || !p.Muted() {
		t.Fatal("expected player muted after toggle")
	}
	p.Close()
}
