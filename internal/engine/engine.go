// Package engine defines the collaborator boundary between the dice
// controller and whatever materializes dice on a table, and ships a
// scripted engine that stands in for real AR tracking and physics.
package engine

import (
	"github.com/vovakirdan/pokerdice/internal/core"
	"github.com/vovakirdan/pokerdice/internal/dice"
)

// Engine spawns dice, tracks the table surface, and reports what happened
// each frame. Implementations are driven from a single goroutine.
type Engine interface {
	// Spawn materializes a thrown die.
	Spawn(d dice.DieDescriptor)
	// Remove collects the die at the given spawn index, if present.
	Remove(index int)
	// Clear removes every die.
	Clear()
	// HitTest casts the camera's forward ray at the table surface.
	HitTest(camera core.Pose) (core.Pose, bool)
	// Step advances one frame and returns the events it produced, in order.
	Step() []Event
}

// Event is something the engine observed during a frame.
type Event interface {
	engineEvent()
}

// SurfaceFoundEvent reports a detected table surface.
type SurfaceFoundEvent struct {
	Pose core.Pose
}

func (SurfaceFoundEvent) engineEvent() {}

// SurfaceLostEvent reports that the table surface is no longer tracked.
type SurfaceLostEvent struct{}

func (SurfaceLostEvent) engineEvent() {}

// FaceContactEvent reports the face of a die resting on the table.
type FaceContactEvent struct {
	Die  int
	Face dice.BoxFace
}

func (FaceContactEvent) engineEvent() {}

// OutOfBoundsEvent reports a die that fell off the table.
type OutOfBoundsEvent struct {
	Die int
}

func (OutOfBoundsEvent) engineEvent() {}
