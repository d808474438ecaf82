package payref

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultMaxAttempts bounds redraws when a Taken check is configured.
const DefaultMaxAttempts = 10

// Generator mints PRNs from a SequenceSource.
type Generator struct {
	Source SequenceSource
	// Taken reports whether a PRN is already in use. Nil disables the check.
	Taken func(prn string) bool
	// MaxAttempts bounds draws per Generate call; zero means DefaultMaxAttempts.
	MaxAttempts int
}

// NewGenerator builds a Generator for a policy. taken may be nil for the
// random policy; counter and checked use it to skip PRNs already issued.
func NewGenerator(policy Policy, taken func(string) bool, rnd *rand.Rand) *Generator {
	switch policy {
	case PolicyRandom:
		return &Generator{Source: NewRandomSequence(rnd)}
	case PolicyChecked:
		return &Generator{Source: NewRandomSequence(rnd), Taken: taken}
	default:
		return &Generator{Source: NewDailyCounter(), Taken: taken}
	}
}

// Observe forwards an existing PRN to a counter source, if there is one.
func (g *Generator) Observe(prn string) {
	if c, ok := g.Source.(*DailyCounter); ok {
		c.Observe(prn)
	}
}

// Generate returns a PRN dated on date.
func (g *Generator) Generate(date time.Time) (string, error) {
	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for range attempts {
		seq, err := g.Source.Next(date)
		if err != nil {
			return "", fmt.Errorf("drawing PRN sequence: %w", err)
		}
		p := Format(date, seq)
		if g.Taken == nil || !g.Taken(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("no free PRN for %s after %d attempts: %w", date.Format("2006-01-02"), attempts, ErrDuplicatePRN)
}
