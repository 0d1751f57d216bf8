package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Stack-Sense/internal/pile"
)

const (
	panelWidth      = 300
	panelMaxEntries = 60
	panelLineHeight = 14
)

// EventPanel is a ring buffer of recent engine events rendered on-screen.
type EventPanel struct {
	entries []pile.Event
	head    int
	count   int
	lastSeq int
}

// NewEventPanel creates a panel with a fixed capacity.
func NewEventPanel() *EventPanel {
	return &EventPanel{
		entries: make([]pile.Event, panelMaxEntries),
	}
}

// Add appends an event to the panel.
func (ep *EventPanel) Add(e pile.Event) {
	ep.entries[ep.head] = e
	ep.head = (ep.head + 1) % panelMaxEntries
	if ep.count < panelMaxEntries {
		ep.count++
	}
}

// Sync pulls every event logged since the last call.
func (ep *EventPanel) Sync(l *pile.EventLog) {
	for _, e := range l.Since(ep.lastSeq) {
		ep.Add(e)
	}
	ep.lastSeq = l.Seq()
}

// Recent returns entries in chronological order (oldest first).
func (ep *EventPanel) Recent() []pile.Event {
	result := make([]pile.Event, ep.count)
	for i := 0; i < ep.count; i++ {
		idx := (ep.head - ep.count + i + panelMaxEntries) % panelMaxEntries
		result[i] = ep.entries[idx]
	}
	return result
}

// categoryColor is the dot colour for an event category.
func categoryColor(category string) color.RGBA {
	switch category {
	case pile.CategoryCascade:
		return color.RGBA{R: 220, G: 70, B: 50, A: 255}
	case pile.CategoryCreature:
		return color.RGBA{R: 120, G: 200, B: 90, A: 255}
	case pile.CategoryStability:
		return color.RGBA{R: 90, G: 140, B: 220, A: 255}
	default:
		return color.RGBA{R: 200, G: 170, B: 110, A: 255}
	}
}

// Draw renders the panel on the right side of the screen.
func (ep *EventPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), float32(panelH), color.RGBA{R: 24, G: 18, B: 12, A: 240}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 90, G: 70, B: 45, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), 16, color.RGBA{R: 40, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "PILE LOG", panelX+8, 1)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+panelWidth), 16, 1.0, color.RGBA{R: 90, G: 70, B: 45, A: 200}, false)

	entries := ep.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / panelLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(panelWidth-4), float32(panelLineHeight), color.RGBA{R: 50, G: 38, B: 25, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, categoryColor(e.Category), false)
		line := fmt.Sprintf("%3d %-4s %s %s", e.Seq, e.Piece, e.Key, e.Value)
		if len(line) > 46 {
			line = line[:46]
		}
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += panelLineHeight
	}
}
