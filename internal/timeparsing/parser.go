// Package timeparsing resolves the CLI's date arguments. Parsing is
// layered: absolute calendar dates first (the documented interface),
// then compact relative offsets, then natural language.
package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout is the documented positional argument format.
const DateLayout = "2006-01-02"

// compactOffsetRe matches relative offsets like -1d, -2w, -3m.
var compactOffsetRe = regexp.MustCompile(`^([+-]?)(\d+)([dwmy])$`)

// ParseDate resolves a date argument relative to now. Accepted forms, in
// order of precedence:
//
//  1. absolute date: 2018-03-01
//  2. compact offset: -1d, -2w, +3m
//  3. natural language: "yesterday", "last monday"
func ParseDate(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}

	if t, err := parseCompactOffset(s, now); err == nil {
		return t, nil
	}

	if t, err := parseNatural(s, now); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q (want %s, an offset like -1d, or natural language)", s, DateLayout)
}

func parseCompactOffset(s string, now time.Time) (time.Time, error) {
	matches := compactOffsetRe.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("not a compact offset: %q", s)
	}

	amount, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid offset amount: %q", matches[2])
	}
	if matches[1] == "-" {
		amount = -amount
	}

	switch matches[3] {
	case "d":
		return now.AddDate(0, 0, amount), nil
	case "w":
		return now.AddDate(0, 0, amount*7), nil
	case "m":
		return now.AddDate(0, amount, 0), nil
	case "y":
		return now.AddDate(amount, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("unknown offset unit: %q", matches[3])
}

func parseNatural(s string, now time.Time) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	result, err := w.Parse(s, now)
	if err != nil {
		return time.Time{}, err
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("no date found in %q", s)
	}
	return result.Time, nil
}
