package dice

import (
	"slices"
	"strings"
)

// Category ranks a poker-dice hand. Higher is better.
type Category int

const (
	CategoryIncomplete Category = iota // At least one die has not settled
	CategoryBust
	CategoryOnePair
	CategoryTwoPair
	CategoryThreeOfAKind
	CategoryStraight
	CategoryFullHouse
	CategoryFourOfAKind
	CategoryFiveOfAKind
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryIncomplete:
		return "Incomplete"
	case CategoryBust:
		return "Bust"
	case CategoryOnePair:
		return "One Pair"
	case CategoryTwoPair:
		return "Two Pair"
	case CategoryThreeOfAKind:
		return "Three of a Kind"
	case CategoryStraight:
		return "Straight"
	case CategoryFullHouse:
		return "Full House"
	case CategoryFourOfAKind:
		return "Four of a Kind"
	case CategoryFiveOfAKind:
		return "Five of a Kind"
	default:
		return "Unknown"
	}
}

// Hand is an evaluated roll.
type Hand struct {
	Values   []Value
	Category Category
	Points   int
}

// Evaluate ranks a roll. Points are the category times 100 plus the sum of
// the card ranks (nine = 1 through ace = 6); incomplete rolls score zero.
func Evaluate(values []Value) Hand {
	h := Hand{Values: slices.Clone(values), Category: CategoryIncomplete}
	if len(values) == 0 || slices.Contains(values, ValueNone) {
		return h
	}

	counts := make(map[Value]int, len(values))
	sum := 0
	for _, v := range values {
		counts[v]++
		sum += int(v)
	}

	groups := make([]int, 0, len(counts))
	for _, n := range counts {
		groups = append(groups, n)
	}
	slices.SortFunc(groups, func(a, b int) int { return b - a })

	switch {
	case groups[0] >= 5:
		h.Category = CategoryFiveOfAKind
	case groups[0] == 4:
		h.Category = CategoryFourOfAKind
	case groups[0] == 3 && len(groups) > 1 && groups[1] >= 2:
		h.Category = CategoryFullHouse
	case isStraight(values):
		h.Category = CategoryStraight
	case groups[0] == 3:
		h.Category = CategoryThreeOfAKind
	case groups[0] == 2 && len(groups) > 1 && groups[1] == 2:
		h.Category = CategoryTwoPair
	case groups[0] == 2:
		h.Category = CategoryOnePair
	default:
		h.Category = CategoryBust
	}

	h.Points = int(h.Category)*100 + sum
	return h
}

// isStraight reports five distinct consecutive values: 9-K or 10-A.
func isStraight(values []Value) bool {
	if len(values) != 5 {
		return false
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// FormatValues renders values as space-separated card symbols.
func FormatValues(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Symbol()
	}
	return strings.Join(parts, " ")
}

// ParseValues is the inverse of FormatValues.
func ParseValues(s string) ([]Value, error) {
	fields := strings.Fields(s)
	values := make([]Value, 0, len(fields))
	for _, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
