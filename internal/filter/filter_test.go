package filter

import (
	"errors"
	"testing"

	"sheet-filter/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(pairs ...interface{}) model.Record {
	r := model.NewRecord(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		switch v := pairs[i+1].(type) {
		case nil:
			r.Set(pairs[i].(string), model.Null)
		case int:
			r.Set(pairs[i].(string), model.Number(float64(v)))
		case string:
			r.Set(pairs[i].(string), model.String(v))
		}
	}
	return r
}

// sample is D from the documented scenarios
func sample() model.Dataset {
	return model.Dataset{
		row("A", 1, "B", nil),
		row("A", nil, "B", 2),
		row("A", 3, "B", nil),
	}
}

func assertRows(t *testing.T, want []model.Record, got model.View) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "row %d: want %v got %v", i, want[i].Values(), got[i].Values())
	}
}

func TestApplyIsNull(t *testing.T) {
	got := Apply(sample(), model.Params{Primary: "A", RowFrom: 0, RowTo: 2, Mode: model.ModeIsNull})
	assertRows(t, []model.Record{row("A", nil, "B", 2)}, got)
}

func TestApplyIsNotNullSingleRow(t *testing.T) {
	got := Apply(sample(), model.Params{Primary: "A", RowFrom: 0, RowTo: 0, Mode: model.ModeIsNotNull})
	assertRows(t, []model.Record{row("A", 1, "B", nil)}, got)
}

func TestApplyEmptyDataset(t *testing.T) {
	got := Apply(model.Dataset{}, model.Params{Primary: "A", RowTo: 10})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = Apply(nil, model.Params{Primary: "A", RowTo: 10})
	assert.Empty(t, got)
}

func TestApplyReversedRangeIsEmpty(t *testing.T) {
	got := Apply(sample(), model.Params{Primary: "A", RowFrom: 2, RowTo: 1, Mode: model.ModeIsNotNull})
	assert.Empty(t, got)
}

func TestApplyOutOfBoundsRangeIsLenient(t *testing.T) {
	got := Apply(sample(), model.Params{Primary: "A", RowFrom: 1, RowTo: 100, Mode: model.ModeIsNotNull})
	assertRows(t, []model.Record{row("A", 3, "B", nil)}, got)

	got = Apply(sample(), model.Params{Primary: "A", RowFrom: 50, RowTo: 100, Mode: model.ModeIsNotNull})
	assert.Empty(t, got)

	got = Apply(sample(), model.Params{Primary: "A", RowFrom: -5, RowTo: 0, Mode: model.ModeIsNotNull})
	assert.Len(t, got, 1)
}

func TestApplyMissingPrimaryCountsAsNull(t *testing.T) {
	p := model.Params{Primary: "Z", RowFrom: 0, RowTo: 2, Mode: model.ModeIsNull}
	assert.Len(t, Apply(sample(), p), 3)

	p.Mode = model.ModeIsNotNull
	assert.Empty(t, Apply(sample(), p))
}

func TestApplyColumnRangeIsPresenceOnly(t *testing.T) {
	ds := model.Dataset{
		row("A", 1, "B", nil),
		row("A", 2),
		row("A", 3, "B", "x", "C", "y"),
	}
	base := model.Params{Primary: "A", RowFrom: 0, RowTo: 2, Mode: model.ModeIsNotNull}

	p := base
	p.ColFrom = "B"
	// A present key holding null passes
	assertRows(t, []model.Record{ds[0], ds[2]}, Apply(ds, p))

	p.ColTo = "C"
	assertRows(t, []model.Record{ds[2]}, Apply(ds, p))

	p = base
	p.ColTo = "Q"
	assert.Empty(t, Apply(ds, p))
}

func TestApplyPreservesOrderAsSubsequence(t *testing.T) {
	var ds model.Dataset
	for i := 0; i < 50; i++ {
		if i%3 == 0 {
			ds = append(ds, row("K", nil, "I", i))
		} else {
			ds = append(ds, row("K", "v", "I", i))
		}
	}

	for _, mode := range []model.Mode{model.ModeIsNull, model.ModeIsNotNull} {
		view := Apply(ds, model.Params{Primary: "K", RowFrom: 5, RowTo: 40, Mode: mode})
		require.NotEmpty(t, view)

		// Each view row must appear in ds after the previous match
		next := 0
		for _, v := range view {
			found := false
			for next < len(ds) {
				if ds[next].Equal(v) {
					found = true
					next++
					break
				}
				next++
			}
			assert.True(t, found, "row %v is not in order", v.Values())
		}
	}
}

func TestReapplyIsNotIdempotent(t *testing.T) {
	ds := model.Dataset{
		row("A", nil),
		row("A", 1),
		row("A", 2),
		row("A", 3),
	}
	p := model.Params{Primary: "A", RowFrom: 1, RowTo: 3, Mode: model.ModeIsNotNull}

	first := Apply(ds, p)
	require.Len(t, first, 3)

	// Positions are relative to the input, so the first match drops out
	second := Apply(model.Dataset(first), p)
	assert.Len(t, second, 2)
}

func TestHighlight(t *testing.T) {
	h := Highlight(model.Params{RowFrom: 1, RowTo: 3})
	assert.Equal(t, model.HighlightRange{From: 1, To: 3}, h)
	assert.False(t, h.Contains(0))
	assert.True(t, h.Contains(1))
	assert.True(t, h.Contains(3))
	assert.False(t, h.Contains(4))
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams(Input{Primary: " a ", RowFrom: "2", RowTo: "5", ColFrom: "b", ColTo: "c", Mode: "not-null"})
	require.NoError(t, err)
	assert.Equal(t, model.Params{Primary: "A", RowFrom: 2, RowTo: 5, ColFrom: "B", ColTo: "C", Mode: model.ModeIsNotNull}, p)
}

func TestParseParamsDefaults(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantFrom int
		wantTo   int
	}{
		{"both blank", "", "", 0, 0},
		{"to defaults to from", "4", "", 4, 4},
		{"garbage from", "abc", "3", 0, 3},
		{"garbage to", "2", "x", 2, 2},
		{"leading digits", "3rows", "7th", 3, 7},
		{"explicit reversed", "5", "1", 5, 1},
		{"explicit zero to", "3", "0", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseParams(Input{Primary: "A", RowFrom: tt.from, RowTo: tt.to, Mode: "null"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, p.RowFrom)
			assert.Equal(t, tt.wantTo, p.RowTo)
		})
	}
}

func TestParseParamsErrors(t *testing.T) {
	_, err := ParseParams(Input{Primary: "  ", Mode: "null"})
	assert.True(t, errors.Is(err, ErrMissingPrimary))

	_, err = ParseParams(Input{Primary: "A", Mode: "maybe"})
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("NULL")
	require.NoError(t, err)
	assert.Equal(t, model.ModeIsNull, m)

	m, err = ParseMode("not-null")
	require.NoError(t, err)
	assert.Equal(t, model.ModeIsNotNull, m)
	assert.Equal(t, "not-null", m.String())
}
