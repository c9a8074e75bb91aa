package engine

import (
	"slices"

	"github.com/vovakirdan/pokerdice/internal/core"
	"github.com/vovakirdan/pokerdice/internal/dice"
)

// Config tunes the scripted engine.
type Config struct {
	SurfaceDelay int       // Ticks until the surface is "detected"
	SettleTicks  int       // Ticks a die is in flight before it rests
	TableRadius  float64   // Radius of the flat table disc
	TableCenter  core.Vec3 // Center of the table disc
	Flight       float64   // Horizontal travel per unit of impulse
	Tumble       float64   // Extra rotation per unit of impulse
}

// DefaultConfig returns a small table with a one-second scan at 30 fps.
func DefaultConfig() Config {
	return Config{
		SurfaceDelay: 30,
		SettleTicks:  20,
		TableRadius:  0.6,
		Flight:       0.4,
		Tumble:       1.7,
	}
}

// Body is a die the scripted engine is holding.
type Body struct {
	Die     dice.DieDescriptor
	Age     int
	Settled bool
	Landing core.Vec3
	Face    dice.BoxFace
	settle  int
}

// Position interpolates the die between its spawn point and landing point.
func (b Body) Position() core.Vec3 {
	if b.Settled || b.settle <= 0 {
		return b.Landing
	}
	f := float64(b.Age) / float64(b.settle)
	return b.Die.Position.Add(b.Landing.Sub(b.Die.Position).Scale(f))
}

// Scripted is a deterministic Engine. It finds the surface after a fixed
// delay, flies each die along its horizontal impulse, and rests it on the
// face that points down after tumbling. It does no collision detection.
type Scripted struct {
	cfg Config

	tick       int
	armedAt    int
	found      bool
	lostQueued bool
	bodies     map[int]*Body
}

// NewScripted creates a scripted engine. Non-positive SettleTicks is raised to 1.
func NewScripted(cfg Config) *Scripted {
	if cfg.SettleTicks < 1 {
		cfg.SettleTicks = 1
	}
	return &Scripted{
		cfg:    cfg,
		bodies: make(map[int]*Body),
	}
}

// Config returns the engine configuration.
func (s *Scripted) Config() Config {
	return s.cfg
}

// SurfaceTracked reports whether the table surface is currently known.
func (s *Scripted) SurfaceTracked() bool {
	return s.found
}

// LoseSurface drops tracking. A SurfaceLostEvent is reported on the next
// Step and detection starts over.
func (s *Scripted) LoseSurface() {
	if !s.found {
		return
	}
	s.found = false
	s.lostQueued = true
	s.armedAt = s.tick
}

// Spawn implements Engine.
func (s *Scripted) Spawn(d dice.DieDescriptor) {
	landing := d.Position.Add(core.V3(d.Impulse.X, 0, d.Impulse.Z).Scale(s.cfg.Flight))
	landing.Y = s.cfg.TableCenter.Y

	final := d.Rotation.Add(d.Impulse.Scale(s.cfg.Tumble))
	down := core.InverseRotateEuler(core.V3(0, -1, 0), final)

	s.bodies[d.Index] = &Body{
		Die:     d,
		Landing: landing,
		Face:    dice.DominantFace(down),
		settle:  s.cfg.SettleTicks,
	}
}

// Remove implements Engine.
func (s *Scripted) Remove(index int) {
	delete(s.bodies, index)
}

// Clear implements Engine.
func (s *Scripted) Clear() {
	clear(s.bodies)
}

// Bodies returns the dice on the table ordered by spawn index.
func (s *Scripted) Bodies() []Body {
	out := make([]Body, 0, len(s.bodies))
	for _, b := range s.bodies {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b Body) int { return a.Die.Index - b.Die.Index })
	return out
}

// HitTest implements Engine. The ray must hit the table disc after the
// surface has been found.
func (s *Scripted) HitTest(camera core.Pose) (core.Pose, bool) {
	if !s.found {
		return core.Pose{}, false
	}
	dir := camera.Forward()
	if dir.Y >= 0 {
		return core.Pose{}, false
	}
	t := (s.cfg.TableCenter.Y - camera.Position.Y) / dir.Y
	if t < 0 {
		return core.Pose{}, false
	}
	hit := camera.Position.Add(dir.Scale(t))
	if hit.Sub(s.cfg.TableCenter).Horizontal() > s.cfg.TableRadius {
		return core.Pose{}, false
	}
	return core.Pose{Position: hit, ZAxis: core.V3(0, 1, 0)}, true
}

// Step implements Engine.
func (s *Scripted) Step() []Event {
	s.tick++
	var events []Event

	if s.lostQueued {
		s.lostQueued = false
		events = append(events, SurfaceLostEvent{})
	}
	if !s.found && s.tick-s.armedAt >= s.cfg.SurfaceDelay {
		s.found = true
		events = append(events, SurfaceFoundEvent{
			Pose: core.Pose{Position: s.cfg.TableCenter, ZAxis: core.V3(0, 1, 0)},
		})
	}

	for _, b := range s.Bodies() {
		body := s.bodies[b.Die.Index]
		if body.Settled {
			continue
		}
		body.Age++
		if body.Age < body.settle {
			continue
		}
		if body.Landing.Sub(s.cfg.TableCenter).Horizontal() > s.cfg.TableRadius {
			delete(s.bodies, b.Die.Index)
			events = append(events, OutOfBoundsEvent{Die: b.Die.Index})
			continue
		}
		body.Settled = true
		events = append(events, FaceContactEvent{Die: b.Die.Index, Face: body.Face})
	}

	return events
}

var _ Engine = (*Scripted)(nil)
