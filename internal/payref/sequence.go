package payref

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// SequenceSource supplies the three-digit sequence component for a day.
type SequenceSource interface {
	Next(day time.Time) (int, error)
}

// Policy names a sequence strategy in configuration.
type Policy string

const (
	PolicyRandom  Policy = "random"  // uniform draw in [0, 999], no collision check
	PolicyCounter Policy = "counter" // per-day counter starting at 1
	PolicyChecked Policy = "checked" // random draw, redrawn on collision
)

// ParsePolicy resolves a configured policy name.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PolicyRandom, PolicyCounter, PolicyChecked:
		return p, nil
	case "":
		return PolicyCounter, nil
	}
	return "", fmt.Errorf("unknown PRN sequence policy %q", s)
}

// RandomSequence draws uniformly from [0, 999].
type RandomSequence struct {
	rnd *rand.Rand
}

// NewRandomSequence returns a RandomSequence. A nil rnd uses the global source.
func NewRandomSequence(rnd *rand.Rand) *RandomSequence {
	return &RandomSequence{rnd: rnd}
}

// Next returns a random sequence number.
func (s *RandomSequence) Next(time.Time) (int, error) {
	if s.rnd == nil {
		return rand.IntN(maxSeq + 1), nil
	}
	return s.rnd.IntN(maxSeq + 1), nil
}

// DailyCounter hands out 1, 2, 3... per calendar day.
type DailyCounter struct {
	last map[string]int
}

// NewDailyCounter returns an empty counter.
func NewDailyCounter() *DailyCounter {
	return &DailyCounter{last: make(map[string]int)}
}

// Observe records an existing PRN so the counter continues after it.
// Malformed PRNs are ignored.
func (c *DailyCounter) Observe(s string) {
	day, seq, err := Parse(s)
	if err != nil {
		return
	}
	key := dayKey(day)
	if seq > c.last[key] {
		c.last[key] = seq
	}
}

// Next returns the next unused sequence number for day.
func (c *DailyCounter) Next(day time.Time) (int, error) {
	key := dayKey(day)
	seq := c.last[key] + 1
	if seq > maxSeq {
		return 0, fmt.Errorf("%s: %w", key, ErrSequenceExhausted)
	}
	c.last[key] = seq
	return seq, nil
}
