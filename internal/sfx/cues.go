// Package sfx synthesizes the game's sound cues. Nothing is loaded from disk.
package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(44100)

// Cue names a sound the game can ask for.
type Cue int

const (
	CueRemove   Cue = iota // a piece pulled out cleanly
	CueCollapse            // pieces fell; length scales with the cascade
	CueCreature            // a creature appeared
	CueShoo                // a creature was chased off
)

func (c Cue) String() string {
	switch c {
	case CueRemove:
		return "remove"
	case CueCollapse:
		return "collapse"
	case CueCreature:
		return "creature"
	case CueShoo:
		return "shoo"
	default:
		return "unknown"
	}
}

// rumble is low filtered noise with an exponential decay, the sound of
// wood tumbling.
type rumble struct {
	sr    beep.SampleRate
	rng   *rand.Rand
	pos   int
	total int
	last  float64
}

func newRumble(sr beep.SampleRate, d time.Duration, seed int64) *rumble {
	return &rumble{
		sr:    sr,
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- audio noise
		total: sr.N(d),
	}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if r.pos >= r.total {
			return i, i > 0
		}
		t := float64(r.pos) / float64(r.sr)
		progress := float64(r.pos) / float64(r.total)
		// one-pole low-pass keeps the noise boomy
		noise := r.rng.Float64()*2 - 1
		r.last += 0.08 * (noise - r.last)
		thump := math.Sin(2 * math.Pi * 55 * t)
		amp := 0.6 * math.Exp(-4*progress)
		v := amp * (0.7*r.last*3 + 0.3*thump)
		v = math.Max(-1, math.Min(1, v))
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// sweep is a sine whose frequency glides from f0 to f1 with a short
// attack and linear release.
type sweep struct {
	sr     beep.SampleRate
	f0, f1 float64
	phase  float64
	pos    int
	total  int
}

func newSweep(sr beep.SampleRate, f0, f1 float64, d time.Duration) *sweep {
	return &sweep{sr: sr, f0: f0, f1: f1, total: sr.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.f0 + (s.f1-s.f0)*progress
		env := math.Min(progress/0.05, 1) * (1 - progress)
		v := 0.5 * env * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += freq / float64(s.sr)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// collapseDuration grows with the number of fallen pieces, capped so a
// whole-pile collapse does not drone on.
func collapseDuration(fallen int) time.Duration {
	d := 250*time.Millisecond + time.Duration(fallen)*80*time.Millisecond
	if d > 1500*time.Millisecond {
		d = 1500 * time.Millisecond
	}
	return d
}

// Build returns a fresh streamer for the cue. size is the cascade size
// for CueCollapse and ignored otherwise.
func Build(c Cue, size int, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueRemove:
		s = newSweep(sampleRate, 900, 500, 60*time.Millisecond)
	case CueCollapse:
		s = newRumble(sampleRate, collapseDuration(size), int64(size)+1)
	case CueCreature:
		s = beep.Seq(
			newSweep(sampleRate, 1200, 1800, 70*time.Millisecond),
			newSweep(sampleRate, 1400, 2200, 70*time.Millisecond),
		)
	case CueShoo:
		s = newSweep(sampleRate, 700, 250, 120*time.Millisecond)
	default:
		s = beep.Silence(0)
	}
	return withVolume(s, vol)
}

// withVolume scales linear volume onto beep's log2 volume effect.
// Log2(0) is -Inf, so zero is treated as silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
