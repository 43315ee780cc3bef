package model

// Mode selects the null test applied to the primary column
type Mode int

const (
	ModeIsNull Mode = iota
	ModeIsNotNull
)

// String returns the form value used for the mode
func (m Mode) String() string {
	switch m {
	case ModeIsNull:
		return "null"
	case ModeIsNotNull:
		return "not-null"
	default:
		return "unknown"
	}
}

// Params holds one filter request.
// ColFrom/ColTo are presence checks only; an empty key disables the check.
type Params struct {
	Primary string // Column whose value is null-tested
	RowFrom int    // First row position (0-based, inclusive)
	RowTo   int    // Last row position (inclusive)
	ColFrom string
	ColTo   string
	Mode    Mode
}

// HighlightRange marks rendered body rows [From, To] (0-based, inclusive)
type HighlightRange struct {
	From int
	To   int
}

// NoHighlight is a range that matches no row
var NoHighlight = HighlightRange{From: 0, To: -1}

// Contains reports whether the rendered row index falls inside the range
func (h HighlightRange) Contains(i int) bool {
	return i >= h.From && i <= h.To
}
