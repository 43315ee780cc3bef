package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sheet-filter/internal/model"
)

var (
	ErrInvalidMode    = errors.New("invalid null-test mode")
	ErrMissingPrimary = errors.New("primary column is required")
)

// Input is a filter request as typed by a user; every field is raw text
type Input struct {
	Primary string
	RowFrom string
	RowTo   string
	ColFrom string
	ColTo   string
	Mode    string
}

// ParseParams normalizes user input into Params.
// Column keys are trimmed and upper-cased. An unparsable RowFrom becomes 0
// and an unparsable RowTo becomes RowFrom.
func ParseParams(in Input) (model.Params, error) {
	p := model.Params{
		Primary: normalizeKey(in.Primary),
		ColFrom: normalizeKey(in.ColFrom),
		ColTo:   normalizeKey(in.ColTo),
	}
	if p.Primary == "" {
		return model.Params{}, ErrMissingPrimary
	}

	mode, err := ParseMode(in.Mode)
	if err != nil {
		return model.Params{}, err
	}
	p.Mode = mode

	p.RowFrom = parseIntOr(in.RowFrom, 0)
	p.RowTo = parseIntOr(in.RowTo, p.RowFrom)
	return p, nil
}

// ParseMode accepts the form values of a Mode (null / not-null)
func ParseMode(s string) (model.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "null", "is-null", "is_null":
		return model.ModeIsNull, nil
	case "not-null", "notnull", "not_null", "is-not-null", "is_not_null":
		return model.ModeIsNotNull, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseIntOr reads a leading integer like a browser parseInt: "12abc" is 12,
// "abc" falls back to def.
func parseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}
	return n
}
