// Package payref mints and parses payment reference numbers.
//
// A PRN is the literal prefix "SSRA", the issue date as YYMMDD and a
// three-digit sequence, e.g. "SSRA240315001".
package payref

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Prefix starts every PRN.
const Prefix = "SSRA"

const (
	dateLayout = "060102"
	maxSeq     = 999
	length     = len(Prefix) + len(dateLayout) + 3
)

var (
	// ErrDuplicatePRN is returned when no unused PRN could be drawn.
	ErrDuplicatePRN = errors.New("duplicate PRN")
	// ErrSequenceExhausted is returned when a day has used all 999 counter values.
	ErrSequenceExhausted = errors.New("PRN sequence exhausted")
)

var pattern = regexp.MustCompile(`^SSRA\d{9}$`)

// Format returns the PRN for a date and sequence number.
func Format(date time.Time, seq int) string {
	return fmt.Sprintf("%s%02d%02d%02d%03d", Prefix, date.Year()%100, int(date.Month()), date.Day(), seq)
}

// Valid reports whether s has the fixed-width PRN shape.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Parse splits a PRN into its issue date (UTC) and sequence number.
func Parse(s string) (time.Time, int, error) {
	if !Valid(s) {
		return time.Time{}, 0, fmt.Errorf("invalid PRN format: %q", s)
	}

	date, err := time.Parse(dateLayout, s[len(Prefix):len(Prefix)+len(dateLayout)])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid date in PRN %q: %w", s, err)
	}

	seq, err := strconv.Atoi(s[len(Prefix)+len(dateLayout) : length])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in PRN %q: %w", s, err)
	}

	return date, seq, nil
}

func dayKey(date time.Time) string {
	return date.Format(dateLayout)
}
