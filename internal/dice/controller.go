package dice

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/pokerdice/internal/core"
)

// Policy selects between the phase rules of the two known table behaviors.
type Policy struct {
	// StartFrom is the only phase Start is accepted from.
	StartFrom Phase
	// HoldPlayOnTrackingLoss keeps SwipeToPlay once play has started,
	// even when the engine stops tracking the surface.
	HoldPlayOnTrackingLoss bool
}

// Options configures a Controller.
type Options struct {
	MaxDice           int
	ImpulseMultiplier float64 // Scales the focus distance into impulse strength
	VerticalOffset    float64 // Subtracted from the camera axis Y before scaling
	Policy            Policy
	Seed              int64
}

// DefaultOptions returns the table's standard settings: five dice and a
// throw that lifts the dice by a quarter turn above the camera axis.
func DefaultOptions() Options {
	return Options{
		MaxDice:           5,
		ImpulseMultiplier: 2.5,
		VerticalOffset:    math.Pi / 4,
		Policy: Policy{
			StartFrom:              PhasePointToSurface,
			HoldPlayOnTrackingLoss: true,
		},
	}
}

// DieDescriptor is everything the engine needs to materialize a thrown die.
type DieDescriptor struct {
	Index    int
	Name     string
	Style    Style
	Position core.Vec3
	Rotation core.Vec3 // Euler angles in radians
	Impulse  core.Vec3
}

// Controller owns dice count, style, phase and score.
// It is not safe for concurrent use; drive it from the frame loop.
type Controller struct {
	opts Options
	rng  *rand.Rand

	count   int
	live    []bool
	style   Style
	phase   Phase
	score   []Value
	started bool

	focus    core.Vec3
	hasFocus bool

	observers []registration
	nextObsID int
}

type registration struct {
	id  int
	obs Observer
}

// New creates a controller in PhaseDetectSurface with no dice thrown.
// MaxDice below 1 is raised to 1.
func New(opts Options) *Controller {
	if opts.MaxDice < 1 {
		opts.MaxDice = 1
	}
	return &Controller{
		opts:  opts,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		live:  make([]bool, opts.MaxDice),
		score: make([]Value, opts.MaxDice),
		style: StyleCracked,
		phase: PhaseDetectSurface,
	}
}

// Subscribe registers an observer. The returned function unregisters it.
func (c *Controller) Subscribe(obs Observer) (cancel func()) {
	c.nextObsID++
	id := c.nextObsID
	c.observers = append(c.observers, registration{id: id, obs: obs})
	return func() {
		c.observers = slices.DeleteFunc(c.observers, func(r registration) bool {
			return r.id == id
		})
	}
}

func (c *Controller) emit(e Event) {
	for _, r := range slices.Clone(c.observers) {
		r.obs.Notify(e)
	}
}

func (c *Controller) emitCount() {
	c.emit(DiceCountChangedEvent{Count: c.count, Max: c.opts.MaxDice})
}

func (c *Controller) emitScore() {
	c.emit(ScoreChangedEvent{Values: c.Score()})
}

// MaxDice returns the number of dice slots.
func (c *Controller) MaxDice() int { return c.opts.MaxDice }

// Count returns the number of dice currently on the table.
func (c *Controller) Count() int { return c.count }

// Style returns the style the next die is thrown with.
func (c *Controller) Style() Style { return c.style }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Started reports whether Start succeeded since the last Reset.
func (c *Controller) Started() bool { return c.started }

// Policy returns the phase policy in effect.
func (c *Controller) Policy() Policy { return c.opts.Policy }

// Focus returns the last known focus anchor position.
func (c *Controller) Focus() (core.Vec3, bool) { return c.focus, c.hasFocus }

// Score returns a copy of the score sequence, indexed by spawn index.
func (c *Controller) Score() []Value {
	return slices.Clone(c.score)
}

// Live reports whether a die currently occupies the slot.
func (c *Controller) Live(index int) bool {
	c.checkIndex(index)
	return c.live[index]
}

// Complete reports whether every slot holds a settled value.
func (c *Controller) Complete() bool {
	return !slices.Contains(c.score, ValueNone)
}

// ThrowDie allocates the lowest free spawn index and computes the throw.
// The impulse pushes away from the camera, scaled by the distance between
// the focus anchor and the origin. State is unchanged on error.
func (c *Controller) ThrowDie(origin core.Pose) (DieDescriptor, error) {
	if c.count >= c.opts.MaxDice {
		return DieDescriptor{}, ErrMaxDiceReached
	}

	index := slices.Index(c.live, false)

	rotation := core.V3(
		c.rng.Float64()*math.Pi,
		c.rng.Float64()*math.Pi,
		c.rng.Float64()*math.Pi,
	)

	strength := -c.focus.Distance(origin.Position) * c.opts.ImpulseMultiplier
	z := origin.ZAxis
	impulse := core.V3(z.X, z.Y-c.opts.VerticalOffset, z.Z).Scale(strength)

	c.live[index] = true
	c.count++
	c.emitCount()

	return DieDescriptor{
		Index:    index,
		Name:     DieNodeName(index),
		Style:    c.style,
		Position: origin.Position,
		Rotation: rotation,
		Impulse:  impulse,
	}, nil
}

// ChangeStyle advances to the next style, wrapping after the last.
func (c *Controller) ChangeStyle() {
	c.style = c.style.Next()
	c.emit(StyleChangedEvent{Style: c.style})
}

// Start enters PhaseSwipeToPlay. It is accepted only from the policy's
// StartFrom phase and reports whether the transition happened.
func (c *Controller) Start() bool {
	if c.phase != c.opts.Policy.StartFrom || c.phase == PhaseSwipeToPlay {
		return false
	}
	c.started = true
	c.SetPhase(PhaseSwipeToPlay)
	return true
}

// Reset returns to a fresh game: no dice, first style, PhaseDetectSurface,
// all score entries cleared.
func (c *Controller) Reset() {
	c.count = 0
	clear(c.live)
	for i := range c.score {
		c.score[i] = ValueNone
	}
	c.style = StyleCracked
	c.started = false
	c.hasFocus = false
	c.focus = core.Vec3{}

	c.SetPhase(PhaseDetectSurface)
	c.emitCount()
	c.emit(StyleChangedEvent{Style: c.style})
	c.emitScore()
}

// ResolveFaceContact records the value of the face touching the table for
// the die at index and returns it. It panics on an out-of-range index.
func (c *Controller) ResolveFaceContact(index int, face BoxFace) Value {
	c.checkIndex(index)
	v := FaceValue(face)
	c.score[index] = v
	c.emitScore()
	return v
}

// RemoveDie frees the slot at index and clears its score entry.
// Removing a slot that holds no die only clears the score.
func (c *Controller) RemoveDie(index int) {
	c.checkIndex(index)
	if c.live[index] {
		c.live[index] = false
		c.count--
		c.emitCount()
	}
	c.score[index] = ValueNone
	c.emitScore()
}

// SetPhase moves to p and notifies observers only when p differs.
func (c *Controller) SetPhase(p Phase) {
	if p == c.phase {
		return
	}
	old := c.phase
	c.phase = p
	c.emit(PhaseChangedEvent{Old: old, New: p})
}

// OnSurfaceFound anchors the focus at the found surface.
func (c *Controller) OnSurfaceFound(pose core.Pose) {
	c.focus = pose.Position
	c.hasFocus = true
	if c.phase == PhaseDetectSurface {
		c.SetPhase(PhasePointToSurface)
	}
}

// OnSurfaceLost drops back to PhasePointToSurface unless the policy holds play.
func (c *Controller) OnSurfaceLost() {
	c.hasFocus = false
	if c.phase == PhaseSwipeToPlay && !c.opts.Policy.HoldPlayOnTrackingLoss {
		c.SetPhase(PhasePointToSurface)
	}
}

// OnUpdate applies the engine's per-frame hit-test result. While tracking
// the focus follows the hit; a started game that lost the surface resumes
// play once tracking returns.
func (c *Controller) OnUpdate(hit core.Pose, tracking bool) {
	if !tracking {
		if c.phase == PhaseSwipeToPlay && !c.opts.Policy.HoldPlayOnTrackingLoss {
			c.SetPhase(PhasePointToSurface)
		}
		return
	}

	c.focus = hit.Position
	c.hasFocus = true
	switch c.phase {
	case PhaseDetectSurface:
		c.SetPhase(PhasePointToSurface)
	case PhasePointToSurface:
		if c.started {
			c.SetPhase(PhaseSwipeToPlay)
		}
	}
}

// OnFaceContact resolves the face a die settled on.
func (c *Controller) OnFaceContact(index int, face BoxFace) Value {
	return c.ResolveFaceContact(index, face)
}

// OnDieOutOfBounds removes a die that left the table.
func (c *Controller) OnDieOutOfBounds(index int) {
	c.RemoveDie(index)
}

func (c *Controller) checkIndex(index int) {
	if index < 0 || index >= c.opts.MaxDice {
		panic(fmt.Sprintf("dice: die index %d out of range [0, %d)", index, c.opts.MaxDice))
	}
}
