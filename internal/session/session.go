// Package session binds a dice controller to an engine and to player input.
// It plays the role of the table's view controller: it forwards frame
// callbacks, turns engine events into controller calls, and records each
// finished round.
package session

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pokerdice/internal/core"
	"github.com/vovakirdan/pokerdice/internal/dice"
	"github.com/vovakirdan/pokerdice/internal/engine"
)

// RoundResult is a finished round: every die has settled on the table.
type RoundResult struct {
	Player string
	Style  dice.Style // style of the round's first die
	Hand   dice.Hand
}

// RoundRecorder persists finished rounds.
type RoundRecorder interface {
	RecordRound(RoundResult) error
}

// Camera placement and aim limits.
var (
	DefaultCameraPosition = core.V3(0, 0.5, 0.6)
)

const (
	DefaultPitch = 0.7
	minPitch     = 0.05
	maxPitch     = 1.5
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithRecorder records every finished round.
func WithRecorder(r RoundRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithPlayer names the player in recorded rounds.
func WithPlayer(name string) Option {
	return func(s *Session) { s.player = name }
}

// Session drives one table. It is not safe for concurrent use.
type Session struct {
	ctrl     *dice.Controller
	eng      engine.Engine
	log      *log.Logger
	recorder RoundRecorder
	player   string

	yaw, pitch float64

	recorded   bool
	lastHand   *dice.Hand
	message    string
	roundStyle dice.Style
	thrown     bool
}

// New creates a session for the given controller and engine.
func New(ctrl *dice.Controller, eng engine.Engine, opts ...Option) *Session {
	s := &Session{
		ctrl:  ctrl,
		eng:   eng,
		log:   log.New(io.Discard),
		pitch: DefaultPitch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Controller returns the game state controller.
func (s *Session) Controller() *dice.Controller {
	return s.ctrl
}

// Camera returns the current camera pose.
func (s *Session) Camera() core.Pose {
	return core.LookingDown(DefaultCameraPosition, s.yaw, s.pitch)
}

// LastHand returns the most recently finished hand.
func (s *Session) LastHand() (dice.Hand, bool) {
	if s.lastHand == nil {
		return dice.Hand{}, false
	}
	return *s.lastHand, true
}

// Status returns the feedback line for the player.
func (s *Session) Status() string {
	if s.message != "" {
		return s.message
	}
	if h, ok := s.LastHand(); ok && s.recorded {
		return fmt.Sprintf("%s for %d points. Press R to play again", h.Category, h.Points)
	}
	return s.ctrl.Phase().Hint()
}

// Step runs one frame: engine events first, then the hit-test feedback,
// then round completion.
func (s *Session) Step() {
	for _, ev := range s.eng.Step() {
		s.dispatch(ev)
	}

	hit, tracking := s.eng.HitTest(s.Camera())
	s.ctrl.OnUpdate(hit, tracking)

	s.checkRound()
}

func (s *Session) dispatch(ev engine.Event) {
	switch e := ev.(type) {
	case engine.SurfaceFoundEvent:
		s.ctrl.OnSurfaceFound(e.Pose)
		s.log.Debug("surface found", "position", e.Pose.Position)
	case engine.SurfaceLostEvent:
		s.ctrl.OnSurfaceLost()
		s.log.Debug("surface lost")
	case engine.FaceContactEvent:
		v := s.ctrl.OnFaceContact(e.Die, e.Face)
		s.log.Debug("die settled", "die", e.Die, "face", e.Face, "value", v)
	case engine.OutOfBoundsEvent:
		s.ctrl.OnDieOutOfBounds(e.Die)
		s.message = fmt.Sprintf("Die %d fell off the table", e.Die+1)
		s.log.Info("die out of bounds", "die", e.Die)
	default:
		s.log.Warn("unknown engine event", "event", fmt.Sprintf("%T", ev))
	}
}

func (s *Session) checkRound() {
	if !s.ctrl.Complete() {
		return
	}
	if s.recorded {
		return
	}
	s.recorded = true
	s.message = ""

	hand := dice.Evaluate(s.ctrl.Score())
	s.lastHand = &hand
	s.log.Info("round finished",
		"dice", dice.FormatValues(hand.Values),
		"hand", hand.Category.String(),
		"points", hand.Points,
	)

	if s.recorder == nil {
		return
	}
	err := s.recorder.RecordRound(RoundResult{Player: s.player, Style: s.roundStyle, Hand: hand})
	if err != nil {
		s.log.Warn("could not record round", "error", err)
	}
}

// Finished reports whether the current round has been scored.
func (s *Session) Finished() bool {
	return s.recorded
}

// Throw throws a die from the camera. It does nothing outside
// PhaseSwipeToPlay and returns dice.ErrMaxDiceReached when every slot is used.
func (s *Session) Throw() error {
	s.message = ""
	if s.ctrl.Phase() != dice.PhaseSwipeToPlay {
		return nil
	}

	d, err := s.ctrl.ThrowDie(s.Camera())
	if errors.Is(err, dice.ErrMaxDiceReached) {
		s.message = fmt.Sprintf("All %d dice are on the table", s.ctrl.MaxDice())
		return err
	}
	if err != nil {
		return err
	}

	if !s.thrown {
		s.thrown = true
		s.roundStyle = d.Style
	}
	s.eng.Spawn(d)
	s.log.Debug("die thrown", "die", d.Index, "style", d.Style, "impulse", d.Impulse)
	return nil
}

// ChangeStyle switches the style of the next die.
func (s *Session) ChangeStyle() {
	s.message = ""
	s.ctrl.ChangeStyle()
}

// Start begins play if the policy allows it from the current phase.
func (s *Session) Start() bool {
	s.message = ""
	ok := s.ctrl.Start()
	if ok {
		s.log.Info("game started", "player", s.player)
	}
	return ok
}

// Reset clears the table and returns to surface detection.
func (s *Session) Reset() {
	s.ctrl.Reset()
	s.eng.Clear()
	s.recorded = false
	s.thrown = false
	s.lastHand = nil
	s.message = ""
	s.yaw, s.pitch = 0, DefaultPitch
	s.log.Debug("game reset")
}

// Collect picks every die up off the table so a new round can be thrown
// without rescanning the surface.
func (s *Session) Collect() {
	for i := 0; i < s.ctrl.MaxDice(); i++ {
		if s.ctrl.Live(i) {
			s.eng.Remove(i)
		}
		s.ctrl.RemoveDie(i)
	}
	s.recorded = false
	s.thrown = false
	s.message = ""
}

// Aim turns the camera. Pitch is clamped so the camera always looks down.
func (s *Session) Aim(dyaw, dpitch float64) {
	s.AimAt(s.yaw+dyaw, s.pitch+dpitch)
}

// AimAt points the camera at an absolute yaw and pitch. Yaw 0 with
// DefaultPitch aims at the table center.
func (s *Session) AimAt(yaw, pitch float64) {
	s.yaw = math.Remainder(yaw, 2*math.Pi)
	s.pitch = core.ClampF(pitch, minPitch, maxPitch)
}

// ErrRoundStalled is returned by PlayRound when no hand was scored in time.
var ErrRoundStalled = errors.New("session: round did not finish")

// PlayRound drives the table until a hand is scored: it starts play as soon
// as the policy allows and throws whenever a slot is free. aim, if not nil,
// is called before every throw. A finished round is collected first.
func (s *Session) PlayRound(maxSteps int, aim func(*Session)) (dice.Hand, error) {
	if s.recorded {
		s.Collect()
	}

	for range maxSteps {
		s.Step()
		if s.recorded {
			return *s.lastHand, nil
		}

		if !s.ctrl.Started() {
			s.Start()
		}
		if s.ctrl.Phase() != dice.PhaseSwipeToPlay || s.ctrl.Count() >= s.ctrl.MaxDice() {
			continue
		}
		if aim != nil {
			aim(s)
		}
		if err := s.Throw(); err != nil {
			return dice.Hand{}, err
		}
	}
	return dice.Hand{}, fmt.Errorf("%w after %d steps", ErrRoundStalled, maxSteps)
}
