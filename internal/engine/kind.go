// Package engine implements the falling-block simulation: the grid, the active
// piece state machine, collision, line clears, scoring, hold, garbage exchange,
// the bot driver and the fixed-tick loop scheduler.
//
// A Board is not safe for concurrent use. All mutation of one board happens on
// the goroutine that drives its Loop; other producers (human input, bot timers)
// push intents onto the loop's IntentQueue instead of calling the board.
package engine

// Kind is the occupant of a grid cell: empty, garbage, or one of the seven pieces.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindGarbage
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// PieceKinds lists the seven spawnable piece kinds in a fixed order.
var PieceKinds = [...]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// IsPiece reports whether k is one of the seven piece kinds.
func (k Kind) IsPiece() bool {
	return k >= KindI && k <= KindZ
}

// String returns the type tag of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "."
	case KindGarbage:
		return "G"
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// ParseKind converts a type tag back into a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := KindEmpty; k <= KindZ; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindEmpty, false
}

// canonicalShapes holds the spawn orientation of every piece.
// All matrices are square so that four clockwise rotations are the identity.
var canonicalShapes = map[Kind]Shape{
	KindI: parseShape(
		"....",
		"####",
		"....",
		"....",
	),
	KindJ: parseShape(
		"#..",
		"###",
		"...",
	),
	KindL: parseShape(
		"..#",
		"###",
		"...",
	),
	KindO: parseShape(
		"##",
		"##",
	),
	KindS: parseShape(
		".##",
		"##.",
		"...",
	),
	KindT: parseShape(
		".#.",
		"###",
		"...",
	),
	KindZ: parseShape(
		"##.",
		".##",
		"...",
	),
}

// Shape returns a fresh copy of the spawn-orientation matrix for k.
// Returns nil for KindEmpty and KindGarbage.
func (k Kind) Shape() Shape {
	s, ok := canonicalShapes[k]
	if !ok {
		return nil
	}
	return s.Clone()
}
