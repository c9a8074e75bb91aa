package dice

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/pokerdice/internal/core"
)

// Node name prefixes the engine uses as opaque handles.
const (
	DieNodePrefix           = "dice"
	FaceIndicatorNodePrefix = "diceFaceIndicator"
)

// FaceValue maps the face touching the table to its card value.
func FaceValue(face BoxFace) Value {
	switch face {
	case FaceRight:
		return ValueQueen
	case FaceLeft:
		return ValueJack
	case FaceTop:
		return ValueNine
	case FaceBottom:
		return ValueAce
	case FaceFront:
		return ValueTen
	case FaceBack:
		return ValueKing
	default:
		panic(fmt.Sprintf("dice: unknown face %d", int(face)))
	}
}

// FaceFromNormal returns the face whose outward axis matches a contact
// normal given in the die's local frame. Components are rounded, so the
// normal must be within 30 degrees or so of an axis.
func FaceFromNormal(n core.Vec3) (BoxFace, bool) {
	switch {
	case math.Round(n.X) == -1:
		return FaceLeft, true
	case math.Round(n.X) == 1:
		return FaceRight, true
	case math.Round(n.Y) == -1:
		return FaceBottom, true
	case math.Round(n.Y) == 1:
		return FaceTop, true
	case math.Round(n.Z) == -1:
		return FaceBack, true
	case math.Round(n.Z) == 1:
		return FaceFront, true
	}
	return 0, false
}

// DominantFace snaps a local direction to the face with the largest
// matching component. It never fails for a non-zero vector.
func DominantFace(n core.Vec3) BoxFace {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax >= ay && ax >= az:
		if n.X < 0 {
			return FaceLeft
		}
		return FaceRight
	case ay >= az:
		if n.Y < 0 {
			return FaceBottom
		}
		return FaceTop
	default:
		if n.Z < 0 {
			return FaceBack
		}
		return FaceFront
	}
}

// IndicatorOffset returns where the contact indicator for face sits in the
// die's local frame, halfExtent away from the center.
func IndicatorOffset(face BoxFace, halfExtent float64) core.Vec3 {
	axis := halfExtent
	if int(face)%2 == 1 {
		axis = -halfExtent
	}
	switch {
	case face >= FaceFront:
		return core.V3(0, 0, axis)
	case face >= FaceTop:
		return core.V3(0, axis, 0)
	default:
		return core.V3(axis, 0, 0)
	}
}

// DieNodeName returns the engine handle for the die at the given spawn index.
func DieNodeName(index int) string {
	return DieNodePrefix + "_" + strconv.Itoa(index)
}

// ParseDieNodeName extracts the spawn index from a die handle.
func ParseDieNodeName(name string) (int, bool) {
	n, ok := parseSuffix(name, DieNodePrefix)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// FaceIndicatorName returns the engine handle for a face indicator.
func FaceIndicatorName(face BoxFace) string {
	return FaceIndicatorNodePrefix + "_" + strconv.Itoa(int(face))
}

// ParseFaceIndicatorName extracts the face from an indicator handle.
func ParseFaceIndicatorName(name string) (BoxFace, bool) {
	n, ok := parseSuffix(name, FaceIndicatorNodePrefix)
	if !ok || !BoxFace(n).Valid() {
		return 0, false
	}
	return BoxFace(n), true
}

func parseSuffix(name, prefix string) (int, bool) {
	rest, found := strings.CutPrefix(name, prefix+"_")
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
