package game

import (
	"fmt"
	"math/rand"

	"github.com/Garsondee/Stack-Sense/internal/pile"
	"github.com/Garsondee/Stack-Sense/internal/sfx"
)

// Config is the tunable setup of one round.
type Config struct {
	Width  float64
	Height float64
	Rows   int
	Seed   int64
	Tuning pile.Tuning

	StartHealth      int
	CreatureInterval int // mean ticks between creature spawns
	CreatureReact    int // ticks the player has to shoo a creature
	CreatureMax      int
	CreatureBite     int // health lost when a creature is ignored
}

// DefaultConfig is the round the desktop build starts with.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		Rows:             9,
		Seed:             1,
		Tuning:           pile.DefaultTuning(),
		StartHealth:      100,
		CreatureInterval: 60 * 6,
		CreatureReact:    60 * 3,
		CreatureMax:      2,
		CreatureBite:     15,
	}
}

// SoundSink plays cues. *sfx.Player satisfies it; tests pass a recorder.
type SoundSink interface {
	Play(c sfx.Cue, size int)
}

// ClickOutcome says what a click on the playfield did.
type ClickOutcome int

const (
	ClickNothing ClickOutcome = iota
	ClickRemoved
	ClickCollapse
	ClickShoo
)

// Session is one round of play with no rendering attached. Game drives it
// from ebiten; tests and tools drive it directly.
type Session struct {
	cfg       Config
	store     *pile.Store
	geom      *pile.Geometry
	manager   *pile.CollisionManager
	predictor *pile.Predictor
	log       *pile.EventLog
	spawner   *CreatureSpawner
	anim      *Animator
	sound     SoundSink

	tick      int
	health    int
	score     int
	removals  int
	collapses int
	shake     float64
	over      bool
	stability pile.Stability
}

// NewSession generates a pile and wires the engine to the game state.
func NewSession(cfg Config, sound SoundSink) (*Session, error) {
	store, geom, err := pile.Generate(pile.GenerateConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
		Rows:   cfg.Rows,
		Seed:   cfg.Seed,
		Tuning: cfg.Tuning,
	})
	if err != nil {
		return nil, fmt.Errorf("generate pile: %w", err)
	}
	rng := rand.New(rand.NewSource(cfg.Seed + 7777)) // #nosec G404 -- game only
	s := &Session{
		cfg:       cfg,
		store:     store,
		geom:      geom,
		predictor: pile.NewPredictor(geom),
		log:       pile.NewEventLog(),
		spawner:   NewCreatureSpawner(rng, cfg.CreatureInterval, cfg.CreatureReact, cfg.CreatureMax),
		anim:      NewAnimator(rng, cfg.Height),
		sound:     sound,
		health:    cfg.StartHealth,
	}
	s.manager = pile.NewCollisionManager(geom,
		pile.WithEventLog(s.log),
		pile.WithCollapseCallback(s.onCollapse),
	)
	s.manager.UpdateCollapseRisks(store.Pieces())
	s.stability = s.manager.CheckStability(store.Pieces())
	return s, nil
}

// onCollapse is the engine's collapse callback.
func (s *Session) onCollapse(damage int, cascade []*pile.Piece) {
	s.collapses++
	s.health -= damage
	if s.health <= 0 {
		s.health = 0
		s.over = true
	}
	for _, p := range cascade {
		if c := creatureOn(p); c != nil {
			p.Creature = nil
			s.log.Add(p.ID, pile.CategoryCreature, "fled", c.Kind.String(), 0)
		}
	}
	s.anim.Start(cascade)
	s.shake = 4 + float64(len(cascade))*1.5
	s.play(sfx.CueCollapse, len(cascade))
}

func (s *Session) play(c sfx.Cue, size int) {
	if s.sound != nil {
		s.sound.Play(c, size)
	}
}

// Hover returns the predicted risk of every piece affected by removing
// the piece under the cursor, keyed by id. Creature pieces cannot be
// removed, so hovering them predicts nothing.
func (s *Session) Hover(x, y float64) (hovered *pile.Piece, risks map[string]pile.Risk) {
	if s.over {
		return nil, nil
	}
	p := s.store.PieceAt(x, y)
	if p == nil || creatureOn(p) != nil {
		return p, nil
	}
	return p, s.predictor.RiskMap(p, s.store.Pieces())
}

// Click removes the piece under the cursor, or shoos its creature.
func (s *Session) Click(x, y float64) ClickOutcome {
	if s.over {
		return ClickNothing
	}
	p := s.store.PieceAt(x, y)
	if p == nil {
		return ClickNothing
	}
	if c := creatureOn(p); c != nil {
		p.Creature = nil
		s.score += 2
		s.log.Add(p.ID, pile.CategoryCreature, "shooed", c.Kind.String(), float64(c.Remaining(s.tick)))
		s.play(sfx.CueShoo, 0)
		return ClickShoo
	}

	// The clicked piece starts falling before its cascade, which the
	// collapse callback queues behind it.
	s.anim.Start([]*pile.Piece{p})
	res := s.manager.HandlePotentialCollapse(p, s.store.Pieces())
	if res.Removed == nil {
		return ClickNothing
	}
	s.removals++
	s.score++
	s.stability = res.Stability
	if len(res.Cascade) > 0 {
		return ClickCollapse
	}
	s.play(sfx.CueRemove, 0)
	return ClickRemoved
}

// Tick advances creatures, animations and screen shake by one frame.
func (s *Session) Tick() {
	s.tick++
	s.anim.Step()
	s.shake *= 0.85
	if s.shake < 0.1 {
		s.shake = 0
	}
	if s.over {
		return
	}

	if c := s.spawner.Maybe(s.tick, s.store.Pieces(), s.geom.IsOnGround); c != nil {
		s.log.Add(c.PieceID, pile.CategoryCreature, "appeared", c.Kind.String(), float64(c.Deadline))
		s.play(sfx.CueCreature, 0)
	}

	for _, p := range s.store.Pieces() {
		c := creatureOn(p)
		if c == nil || p.Removed() || c.Remaining(s.tick) > 0 {
			continue
		}
		p.Creature = nil
		s.health -= s.cfg.CreatureBite
		s.log.Add(p.ID, pile.CategoryCreature, "bit", c.Kind.String(), float64(s.cfg.CreatureBite))
		if s.health <= 0 {
			s.health = 0
			s.over = true
		}
	}

	if len(s.store.Active()) == 0 {
		s.over = true
	}
}

// Pieces returns every piece of the round, removed ones included.
func (s *Session) Pieces() []*pile.Piece { return s.store.Pieces() }

func (s *Session) Geometry() *pile.Geometry { return s.geom }
func (s *Session) Log() *pile.EventLog { return s.log }
func (s *Session) Falling() []*FallingPiece { return s.anim.Falling() }
func (s *Session) Stability() pile.Stability { return s.stability }
func (s *Session) Health() int { return s.health }
func (s *Session) Score() int { return s.score }
func (s *Session) CurrentTick() int { return s.tick }
func (s *Session) Over() bool { return s.over }
func (s *Session) Shake() float64 { return s.shake }
func (s *Session) Config() Config { return s.cfg }
func (s *Session) Manager() *pile.CollisionManager { return s.manager }

// Counts returns how many removals and collapses the round has seen.
func (s *Session) Counts() (removals, collapses int) { return s.removals, s.collapses }
