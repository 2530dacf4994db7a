package engine

import (
	"errors"
	"fmt"
)

// ErrConfig marks a caller-supplied misconfiguration. It is the only
// class of error the matching core raises: every data-shaped problem
// (empty sequences, invalid bases, missing metadata) degrades gracefully
// instead.
var ErrConfig = errors.New("invalid engine configuration")

// Options configures the matching engine.
type Options struct {
	// K is the k-mer length used for both the reference index and
	// queries. Must be positive.
	K int

	// MinScore is the inclusive score floor, in [0, 100]. Candidates
	// scoring below it are not returned.
	MinScore float64

	// TopN is the maximum number of candidates returned per query.
	// Must be positive.
	TopN int
}

// DefaultOptions returns the standard matcher configuration: 5-mers,
// a 50% score floor, and the 5 best candidates per query.
func DefaultOptions() Options {
	return Options{
		K:        5,
		MinScore: 50.0,
		TopN:     5,
	}
}

// Validate fails fast on misconfigurations that would otherwise produce
// nonsensical output.
func (o Options) Validate() error {
	if o.K <= 0 {
		return fmt.Errorf("%w: k must be positive, got %d", ErrConfig, o.K)
	}
	if o.TopN <= 0 {
		return fmt.Errorf("%w: top_n must be positive, got %d", ErrConfig, o.TopN)
	}
	if o.MinScore < 0 || o.MinScore > 100 {
		return fmt.Errorf("%w: min_score must be in [0, 100], got %g", ErrConfig, o.MinScore)
	}
	return nil
}
