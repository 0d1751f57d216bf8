package game

import (
	"math/rand"

	"github.com/Garsondee/Stack-Sense/internal/pile"
)

// CreatureKind is the species that climbed onto the pile.
type CreatureKind int

const (
	CreatureBeetle CreatureKind = iota
	CreatureMouse
	CreatureSquirrel
)

func (k CreatureKind) String() string {
	switch k {
	case CreatureBeetle:
		return "beetle"
	case CreatureMouse:
		return "mouse"
	case CreatureSquirrel:
		return "squirrel"
	default:
		return "unknown"
	}
}

// Creature occupies one piece until it is shooed off or its deadline
// passes, at which point it bites.
type Creature struct {
	Kind      CreatureKind
	PieceID   string
	SpawnTick int
	Deadline  int
}

// Remaining is the number of ticks left to react, never negative.
func (c *Creature) Remaining(tick int) int {
	if r := c.Deadline - tick; r > 0 {
		return r
	}
	return 0
}

// creatureOn returns the creature occupying p, or nil.
func creatureOn(p *pile.Piece) *Creature {
	if p == nil {
		return nil
	}
	c, _ := p.Creature.(*Creature)
	return c
}

// CreatureSpawner decides when and where creatures appear.
type CreatureSpawner struct {
	rng        *rand.Rand
	interval   int // mean ticks between spawns
	reactTicks int
	maxActive  int
	nextTick   int
}

// NewCreatureSpawner creates a spawner. The first spawn is one interval out.
func NewCreatureSpawner(rng *rand.Rand, interval, reactTicks, maxActive int) *CreatureSpawner {
	cs := &CreatureSpawner{
		rng:        rng,
		interval:   interval,
		reactTicks: reactTicks,
		maxActive:  maxActive,
	}
	cs.schedule(0)
	return cs
}

// schedule picks the next spawn tick with ±50% jitter.
func (cs *CreatureSpawner) schedule(now int) {
	jitter := cs.interval / 2
	cs.nextTick = now + cs.interval
	if jitter > 0 {
		cs.nextTick += cs.rng.Intn(2*jitter+1) - jitter
	}
}

// Maybe spawns a creature on a random free piece when one is due.
// Ground pieces are skipped: a creature there could never be shaken
// loose by a collapse. Returns the new creature, or nil.
func (cs *CreatureSpawner) Maybe(tick int, pieces []*pile.Piece, onGround func(*pile.Piece) bool) *Creature {
	if tick < cs.nextTick {
		return nil
	}
	cs.schedule(tick)

	active := 0
	var free []*pile.Piece
	for _, p := range pieces {
		if p.Removed() {
			continue
		}
		if creatureOn(p) != nil {
			active++
			continue
		}
		if !onGround(p) {
			free = append(free, p)
		}
	}
	if active >= cs.maxActive || len(free) == 0 {
		return nil
	}
	p := free[cs.rng.Intn(len(free))]
	c := &Creature{
		Kind:      CreatureKind(cs.rng.Intn(3)),
		PieceID:   p.ID,
		SpawnTick: tick,
		Deadline:  tick + cs.reactTicks,
	}
	p.Creature = c
	return c
}
