package pile

import (
	"fmt"
	"strings"
)

// Event categories recorded by the engine and the game layer.
const (
	CategoryRemoval   = "removal"
	CategoryCascade   = "cascade"
	CategoryStability = "stability"
	CategoryCreature  = "creature"
)

// Event is one recorded engine event.
type Event struct {
	Seq      int
	Piece    string // piece id, or "--" for pile-wide events
	Category string
	Key      string
	Value    string
	NumVal   float64
}

// String formats the event as a fixed-width log line.
//
//	[#007] p12    cascade    fell            after p04
func (e Event) String() string {
	return fmt.Sprintf("[#%03d] %-6s %-10s %-15s %s",
		e.Seq, e.Piece, e.Category, e.Key, e.Value)
}

// EventLog collects structured events in order. It is unbounded and
// meant for tests, reports and the on-screen panel.
type EventLog struct {
	entries []Event
	seq     int
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records a new event.
func (l *EventLog) Add(piece, category, key, value string, numVal float64) {
	l.seq++
	l.entries = append(l.entries, Event{
		Seq:      l.seq,
		Piece:    piece,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded events.
func (l *EventLog) Entries() []Event {
	return l.entries
}

// Since returns the events with a sequence number greater than seq.
func (l *EventLog) Since(seq int) []Event {
	for i, e := range l.entries {
		if e.Seq > seq {
			return l.entries[i:]
		}
	}
	return nil
}

// Seq is the sequence number of the latest event.
func (l *EventLog) Seq() int {
	return l.seq
}

// Filter returns events matching category and/or key. Empty matches any.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many events match category and key.
func (l *EventLog) CountCategory(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent event matching category+key.
func (l *EventLog) LastOf(category, key string) (Event, bool) {
	events := l.Filter(category, key)
	if len(events) == 0 {
		return Event{}, false
	}
	return events[len(events)-1], true
}

// HasEntry reports whether an event matches category, key and value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the whole log, one event per line.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
