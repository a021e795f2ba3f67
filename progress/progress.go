// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package progress

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/danielhkuo/fundpage/models"
)

// Pct returns raised as a whole percentage of goal, capped at 100.
// A zero goal or a NaN ratio yields 0. Negative values pass through,
// bounded only by the range of int.
func Pct(raised, goal float64) int {
	if goal == 0 {
		return 0
	}
	// Half-way values round toward +Inf, matching browser Math.round
	p := math.Floor(raised/goal*100 + 0.5)
	switch {
	case math.IsNaN(p):
		return 0
	case p > 100:
		return 100
	case p <= math.MinInt:
		return math.MinInt
	}
	return int(p)
}

// FormatUSD renders amount as whole dollars with en-US digit grouping.
// The locale is fixed so output never depends on the host environment.
// NaN renders as $0 and out-of-range amounts saturate at the int64 bounds.
func FormatUSD(amount float64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("$%d", wholeDollars(amount))
}

func wholeDollars(amount float64) int64 {
	r := math.Round(amount)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// Completed reports whether a phase record has reached its goal.
// A record with a zero goal is completed as soon as raised is non-negative.
// A decoded record missing raised or goal is never completed.
func Completed(p models.PhaseRecord) bool {
	return !p.Partial && p.Raised >= p.Goal
}

// Supporters formats a donor count caption. Counts are not grouped.
func Supporters(donors int) string {
	return strconv.Itoa(donors) + " supporters"
}
