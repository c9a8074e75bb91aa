package dice

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/pokerdice/internal/core"
)

func newTestController(t *testing.T, maxDice int) (*Controller, *Queue) {
	t.Helper()
	opts := DefaultOptions()
	opts.MaxDice = maxDice
	opts.Seed = 42
	c := New(opts)
	q := &Queue{}
	c.Subscribe(q)
	return c, q
}

func camera() core.Pose {
	return core.LookingDown(core.V3(0, 0.5, 0.6), 0, math.Pi/4)
}

func startPlaying(t *testing.T, c *Controller) {
	t.Helper()
	c.OnSurfaceFound(core.Pose{Position: core.V3(0, 0, 0)})
	if !c.Start() {
		t.Fatalf("Start() from %v should succeed", PhasePointToSurface)
	}
}

func TestNewControllerInitialState(t *testing.T) {
	c, _ := newTestController(t, 5)

	if c.Phase() != PhaseDetectSurface {
		t.Errorf("Phase() = %v, expected %v", c.Phase(), PhaseDetectSurface)
	}
	if c.Count() != 0 {
		t.Errorf("Count() = %d, expected 0", c.Count())
	}
	if c.Style() != StyleCracked {
		t.Errorf("Style() = %v, expected %v", c.Style(), StyleCracked)
	}
	score := c.Score()
	if len(score) != 5 {
		t.Fatalf("len(Score()) = %d, expected 5", len(score))
	}
	for i, v := range score {
		if v != ValueNone {
			t.Errorf("Score()[%d] = %v, expected none", i, v)
		}
	}
}

func TestThrowDieRespectsMax(t *testing.T) {
	c, _ := newTestController(t, 5)
	startPlaying(t, c)

	for i := 0; i < 5; i++ {
		desc, err := c.ThrowDie(camera())
		if err != nil {
			t.Fatalf("ThrowDie() #%d failed: %v", i+1, err)
		}
		if desc.Index != i {
			t.Errorf("ThrowDie() #%d index = %d, expected %d", i+1, desc.Index, i)
		}
		if desc.Name != DieNodeName(i) {
			t.Errorf("ThrowDie() #%d name = %q, expected %q", i+1, desc.Name, DieNodeName(i))
		}
	}

	_, err := c.ThrowDie(camera())
	if !errors.Is(err, ErrMaxDiceReached) {
		t.Fatalf("6th ThrowDie() error = %v, expected ErrMaxDiceReached", err)
	}
	if c.Count() != 5 {
		t.Errorf("Count() after failed throw = %d, expected 5", c.Count())
	}
	if len(c.Score()) != 5 {
		t.Errorf("len(Score()) = %d, expected 5", len(c.Score()))
	}
}

func TestThrowDieFailureLeavesStateAndEventsUnchanged(t *testing.T) {
	c, q := newTestController(t, 1)
	startPlaying(t, c)
	if _, err := c.ThrowDie(camera()); err != nil {
		t.Fatalf("ThrowDie() failed: %v", err)
	}
	q.Drain()

	if _, err := c.ThrowDie(camera()); !errors.Is(err, ErrMaxDiceReached) {
		t.Fatalf("ThrowDie() error = %v, expected ErrMaxDiceReached", err)
	}
	if q.Len() != 0 {
		t.Errorf("failed throw emitted %d events, expected 0", q.Len())
	}
}

func TestThrowDieDescriptor(t *testing.T) {
	c, _ := newTestController(t, 5)
	c.OnSurfaceFound(core.Pose{Position: core.V3(0, 0, -1)})
	c.Start()
	c.ChangeStyle()

	origin := core.Pose{Position: core.V3(0, 0, 0), ZAxis: core.V3(0, 0, 1)}
	desc, err := c.ThrowDie(origin)
	if err != nil {
		t.Fatalf("ThrowDie() failed: %v", err)
	}

	if desc.Style != StyleMetal {
		t.Errorf("Style = %v, expected %v", desc.Style, StyleMetal)
	}
	if desc.Position != origin.Position {
		t.Errorf("Position = %v, expected %v", desc.Position, origin.Position)
	}
	for _, a := range []float64{desc.Rotation.X, desc.Rotation.Y, desc.Rotation.Z} {
		if a < 0 || a > math.Pi {
			t.Errorf("rotation component %f outside [0, pi]", a)
		}
	}

	// Distance 1, multiplier 2.5: impulse = -2.5 * (0, -pi/4, 1).
	want := core.V3(0, 2.5*math.Pi/4, -2.5)
	if math.Abs(desc.Impulse.X-want.X) > 1e-9 ||
		math.Abs(desc.Impulse.Y-want.Y) > 1e-9 ||
		math.Abs(desc.Impulse.Z-want.Z) > 1e-9 {
		t.Errorf("Impulse = %v, expected %v", desc.Impulse, want)
	}
}

func TestThrowDieReusesLowestFreeIndex(t *testing.T) {
	c, _ := newTestController(t, 3)
	startPlaying(t, c)
	for i := 0; i < 3; i++ {
		c.ThrowDie(camera())
	}

	c.RemoveDie(0)
	desc, err := c.ThrowDie(camera())
	if err != nil {
		t.Fatalf("ThrowDie() after removal failed: %v", err)
	}
	if desc.Index != 0 {
		t.Errorf("index = %d, expected freed slot 0", desc.Index)
	}
	for i := 0; i < 3; i++ {
		if !c.Live(i) {
			t.Errorf("Live(%d) = false, expected every slot in use", i)
		}
	}
}

func TestChangeStyleCycles(t *testing.T) {
	c, _ := newTestController(t, 5)
	original := c.Style()

	for i := 0; i < len(Styles); i++ {
		c.ChangeStyle()
		if i < len(Styles)-1 && c.Style() == original {
			t.Fatalf("style returned to %v after only %d changes", original, i+1)
		}
	}
	if c.Style() != original {
		t.Errorf("Style() after %d changes = %v, expected %v", len(Styles), c.Style(), original)
	}
}

func TestStartRequiresPolicyPhase(t *testing.T) {
	c, _ := newTestController(t, 5)

	if c.Start() {
		t.Error("Start() from detect_surface should be refused by default policy")
	}
	if c.Phase() != PhaseDetectSurface {
		t.Errorf("Phase() = %v, expected unchanged", c.Phase())
	}

	c.OnSurfaceFound(core.Pose{})
	if !c.Start() {
		t.Error("Start() from point_to_surface should succeed")
	}
	if c.Start() {
		t.Error("second Start() should be refused")
	}
}

func TestStartFromDetectSurfacePolicy(t *testing.T) {
	opts := DefaultOptions()
	opts.Policy.StartFrom = PhaseDetectSurface
	c := New(opts)

	if !c.Start() {
		t.Fatal("Start() from detect_surface should succeed with StartFrom=detect_surface")
	}
	if c.Phase() != PhaseSwipeToPlay {
		t.Errorf("Phase() = %v, expected %v", c.Phase(), PhaseSwipeToPlay)
	}
}

func TestResetFromAnyState(t *testing.T) {
	c, _ := newTestController(t, 5)
	startPlaying(t, c)
	c.ChangeStyle()
	c.ChangeStyle()
	for i := 0; i < 3; i++ {
		c.ThrowDie(camera())
	}
	c.ResolveFaceContact(1, FaceBack)

	c.Reset()

	if c.Count() != 0 {
		t.Errorf("Count() = %d, expected 0", c.Count())
	}
	if c.Phase() != PhaseDetectSurface {
		t.Errorf("Phase() = %v, expected %v", c.Phase(), PhaseDetectSurface)
	}
	if c.Style() != StyleCracked {
		t.Errorf("Style() = %v, expected %v", c.Style(), StyleCracked)
	}
	if c.Started() {
		t.Error("Started() should be false after Reset()")
	}
	for i, v := range c.Score() {
		if v != ValueNone {
			t.Errorf("Score()[%d] = %v, expected none", i, v)
		}
	}
}

func TestResolveFaceContactTable(t *testing.T) {
	expected := map[BoxFace]Value{
		FaceRight:  ValueQueen,
		FaceLeft:   ValueJack,
		FaceTop:    ValueNine,
		FaceBottom: ValueAce,
		FaceFront:  ValueTen,
		FaceBack:   ValueKing,
	}

	c, _ := newTestController(t, 1)
	for face, want := range expected {
		for range 3 {
			if got := c.ResolveFaceContact(0, face); got != want {
				t.Errorf("ResolveFaceContact(0, %v) = %v, expected %v", face, got, want)
			}
		}
		if c.Score()[0] != want {
			t.Errorf("Score()[0] = %v, expected %v", c.Score()[0], want)
		}
	}
}

func TestContactThenRemove(t *testing.T) {
	c, _ := newTestController(t, 5)
	startPlaying(t, c)
	if _, err := c.ThrowDie(camera()); err != nil {
		t.Fatalf("ThrowDie() failed: %v", err)
	}

	c.OnFaceContact(0, FaceTop)
	if c.Score()[0] != ValueNine {
		t.Errorf("Score()[0] = %v, expected 9", c.Score()[0])
	}

	before := c.Count()
	c.RemoveDie(0)
	if c.Score()[0] != ValueNone {
		t.Errorf("Score()[0] after RemoveDie = %v, expected none", c.Score()[0])
	}
	if c.Count() != before-1 {
		t.Errorf("Count() = %d, expected %d", c.Count(), before-1)
	}
}

func TestRemoveEmptySlotKeepsCount(t *testing.T) {
	c, _ := newTestController(t, 3)
	startPlaying(t, c)
	c.ThrowDie(camera())

	c.RemoveDie(2)
	if c.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", c.Count())
	}
}

func TestOutOfRangeIndexPanics(t *testing.T) {
	c, _ := newTestController(t, 2)

	tests := []struct {
		name string
		fn   func()
	}{
		{"resolve negative", func() { c.ResolveFaceContact(-1, FaceTop) }},
		{"resolve past end", func() { c.ResolveFaceContact(2, FaceTop) }},
		{"remove past end", func() { c.RemoveDie(5) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestSetPhaseIsEdgeTriggered(t *testing.T) {
	c, q := newTestController(t, 5)

	c.SetPhase(PhaseDetectSurface)
	if q.Len() != 0 {
		t.Errorf("SetPhase to same phase emitted %d events", q.Len())
	}

	c.SetPhase(PhasePointToSurface)
	events := q.Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev, ok := events[0].(PhaseChangedEvent)
	if !ok {
		t.Fatalf("event = %T, expected PhaseChangedEvent", events[0])
	}
	if ev.Old != PhaseDetectSurface || ev.New != PhasePointToSurface {
		t.Errorf("event = %+v, expected detect_surface -> point_to_surface", ev)
	}
}

func TestTrackingHoldsPlayByDefault(t *testing.T) {
	c, _ := newTestController(t, 5)
	startPlaying(t, c)

	c.OnUpdate(core.Pose{}, false)
	c.OnSurfaceLost()
	if c.Phase() != PhaseSwipeToPlay {
		t.Errorf("Phase() = %v, expected play to hold after tracking loss", c.Phase())
	}
}

func TestTrackingCyclesWithoutHold(t *testing.T) {
	opts := DefaultOptions()
	opts.Policy.HoldPlayOnTrackingLoss = false
	c := New(opts)

	c.OnUpdate(core.Pose{Position: core.V3(0, 0, -1)}, true)
	if c.Phase() != PhasePointToSurface {
		t.Fatalf("Phase() = %v, expected tracking to leave detect_surface", c.Phase())
	}

	// Before start, tracking alone must not enter play.
	c.OnUpdate(core.Pose{}, true)
	if c.Phase() != PhasePointToSurface {
		t.Fatalf("Phase() = %v, expected to wait for Start()", c.Phase())
	}

	c.Start()
	c.OnUpdate(core.Pose{}, false)
	if c.Phase() != PhasePointToSurface {
		t.Errorf("Phase() = %v, expected revert on tracking loss", c.Phase())
	}
	c.OnUpdate(core.Pose{}, true)
	if c.Phase() != PhaseSwipeToPlay {
		t.Errorf("Phase() = %v, expected play to resume", c.Phase())
	}
}

func TestOnUpdateMovesFocus(t *testing.T) {
	c, _ := newTestController(t, 5)
	c.OnUpdate(core.Pose{Position: core.V3(1, 0, 2)}, true)

	focus, ok := c.Focus()
	if !ok || focus != core.V3(1, 0, 2) {
		t.Errorf("Focus() = %v, %v; expected (1, 0, 2), true", focus, ok)
	}
}

func TestSubscribeCancel(t *testing.T) {
	c := New(DefaultOptions())
	var got int
	cancel := c.Subscribe(ObserverFunc(func(Event) { got++ }))

	c.ChangeStyle()
	cancel()
	c.ChangeStyle()

	if got != 1 {
		t.Errorf("observer called %d times, expected 1", got)
	}
}

func TestCompleteAfterAllFacesResolve(t *testing.T) {
	c, _ := newTestController(t, 2)
	startPlaying(t, c)
	c.ThrowDie(camera())
	c.ThrowDie(camera())

	c.OnFaceContact(0, FaceTop)
	if c.Complete() {
		t.Error("Complete() should be false with one die unresolved")
	}
	c.OnFaceContact(1, FaceBottom)
	if !c.Complete() {
		t.Error("Complete() should be true once every die resolved")
	}
}

func TestSeededThrowsAreDeterministic(t *testing.T) {
	a, _ := newTestController(t, 5)
	b, _ := newTestController(t, 5)
	startPlaying(t, a)
	startPlaying(t, b)

	for i := 0; i < 5; i++ {
		da, _ := a.ThrowDie(camera())
		db, _ := b.ThrowDie(camera())
		if da != db {
			t.Fatalf("throw %d differs: %+v vs %+v", i, da, db)
		}
	}
}
