// Package dice implements the poker-dice game state: dice inventory,
// dice style, game phase, and the face-to-card scoring table.
//
// The package never touches rendering or physics. A collaborator engine
// materializes the DieDescriptor values returned by ThrowDie and reports
// surface and contact events back through the Controller's On* hooks.
package dice

import "fmt"

// Style is the look of a die. Styles cycle in declaration order.
type Style int

const (
	StyleCracked Style = iota
	StyleMetal
	StyleIvory
	StyleWood
	StylePlate
)

// Styles lists every style in cycle order.
var Styles = []Style{StyleCracked, StyleMetal, StyleIvory, StyleWood, StylePlate}

// Next returns the following style, wrapping to the first after the last.
func (s Style) Next() Style {
	switch s {
	case StyleCracked:
		return StyleMetal
	case StyleMetal:
		return StyleIvory
	case StyleIvory:
		return StyleWood
	case StyleWood:
		return StylePlate
	case StylePlate:
		return StyleCracked
	default:
		panic(fmt.Sprintf("dice: unknown style %d", int(s)))
	}
}

// String returns a human-readable name for the style.
func (s Style) String() string {
	switch s {
	case StyleCracked:
		return "cracked"
	case StyleMetal:
		return "metal"
	case StyleIvory:
		return "ivory"
	case StyleWood:
		return "wood"
	case StylePlate:
		return "plate"
	default:
		return "unknown"
	}
}

// ParseStyle returns the style with the given name.
func ParseStyle(name string) (Style, error) {
	for _, s := range Styles {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("dice: unknown style %q", name)
}

// Phase is the stage of a game session.
type Phase int

const (
	// PhaseDetectSurface waits for the engine to find a table surface.
	PhaseDetectSurface Phase = iota
	// PhasePointToSurface waits for the player to aim at the surface and start.
	PhasePointToSurface
	// PhaseSwipeToPlay accepts throws.
	PhaseSwipeToPlay
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseDetectSurface:
		return "detect_surface"
	case PhasePointToSurface:
		return "point_to_surface"
	case PhaseSwipeToPlay:
		return "swipe_to_play"
	default:
		return "unknown"
	}
}

// Hint returns the status line shown to the player in this phase.
func (p Phase) Hint() string {
	switch p {
	case PhaseDetectSurface:
		return "Scan the table to find a flat surface"
	case PhasePointToSurface:
		return "Point at the surface and press Enter to start"
	case PhaseSwipeToPlay:
		return "Swipe (Space) to throw the dice"
	default:
		return ""
	}
}

// ParsePhase returns the phase with the given name.
func ParsePhase(name string) (Phase, error) {
	for _, p := range []Phase{PhaseDetectSurface, PhasePointToSurface, PhaseSwipeToPlay} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("dice: unknown phase %q", name)
}

// BoxFace is one of the six faces of a die, named by its local outward axis.
type BoxFace int

const (
	FaceRight  BoxFace = iota // +X
	FaceLeft                  // -X
	FaceTop                   // +Y
	FaceBottom                // -Y
	FaceFront                 // +Z
	FaceBack                  // -Z
)

// Faces lists all six faces.
var Faces = []BoxFace{FaceRight, FaceLeft, FaceTop, FaceBottom, FaceFront, FaceBack}

// String returns a human-readable name for the face.
func (f BoxFace) String() string {
	switch f {
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the six faces.
func (f BoxFace) Valid() bool {
	return f >= FaceRight && f <= FaceBack
}

// Value is the poker-card value a settled die shows.
type Value int

const (
	ValueNone Value = iota
	ValueNine
	ValueTen
	ValueJack
	ValueQueen
	ValueKing
	ValueAce
)

// Symbol returns the short card symbol for the value.
func (v Value) Symbol() string {
	switch v {
	case ValueNone:
		return "-"
	case ValueNine:
		return "9"
	case ValueTen:
		return "10"
	case ValueJack:
		return "J"
	case ValueQueen:
		return "Q"
	case ValueKing:
		return "K"
	case ValueAce:
		return "A"
	default:
		return "?"
	}
}

// String returns the card symbol.
func (v Value) String() string {
	return v.Symbol()
}

// ParseValue converts a card symbol back to a Value.
func ParseValue(symbol string) (Value, error) {
	for v := ValueNone; v <= ValueAce; v++ {
		if v.Symbol() == symbol {
			return v, nil
		}
	}
	return ValueNone, fmt.Errorf("dice: unknown card symbol %q", symbol)
}
