// Package filter selects rows of a dataset with a null test on one column.
//
// Row positions refer to the original dataset order and are never checked
// against its length: a range past the end simply matches nothing.
// The column range is a presence check on the two named keys, not a
// comparison of values lying between them.
package filter

import (
	"sheet-filter/internal/model"
)

// Apply returns the rows of ds that satisfy p, in their original order.
// It never fails; an empty result is a valid view.
func Apply(ds model.Dataset, p model.Params) model.View {
	view := make(model.View, 0)
	for i, row := range ds {
		if Match(i, row, p) {
			view = append(view, row)
		}
	}
	return view
}

// Match reports whether the row at position i satisfies p
func Match(i int, row model.Record, p model.Params) bool {
	inRowRange := i >= p.RowFrom && i <= p.RowTo

	inColRange := (p.ColFrom == "" || row.Has(p.ColFrom)) &&
		(p.ColTo == "" || row.Has(p.ColTo))

	// A missing primary key counts as null
	primary, _ := row.Get(p.Primary)
	var nullMatch bool
	if p.Mode == model.ModeIsNull {
		nullMatch = primary.IsNull()
	} else {
		nullMatch = !primary.IsNull()
	}

	return inRowRange && inColRange && nullMatch
}

// Highlight derives the rendered-row highlight from the row range.
// The range is applied to positions in the filtered view, not the dataset.
func Highlight(p model.Params) model.HighlightRange {
	return model.HighlightRange{From: p.RowFrom, To: p.RowTo}
}
