package subtype

import (
	"context"
	"time"
)

// options configures a single containment decision.
type options struct {
	deadline time.Duration
}

// Option customizes IsSubschemaWithReason (spec §7).
type Option func(*options)

// DeadlineOption bounds how long a single decision may run before it
// gives up with ErrDecisionTimeout — chiefly a backstop against
// pathological regex automata, since canonicalization and the lattice
// deciders otherwise always terminate.
func DeadlineOption(d time.Duration) Option {
	return func(o *options) { o.deadline = d }
}

// IsSubschema reports whether every instance the lhs schema accepts is
// also accepted by the rhs schema. lhs and rhs are raw JSON bytes.
func IsSubschema(lhs, rhs []byte) (bool, error) {
	result, err := IsSubschemaWithReason(lhs, rhs)
	if err != nil {
		return false, err
	}
	return result.IsSubtype, nil
}

// IsSubschemaWithReason is IsSubschema's richer form: it also collects a
// human-readable trail of every containment check that failed, rooted
// at the JSON Pointer path where it failed.
func IsSubschemaWithReason(lhs, rhs []byte, opts ...Option) (Result, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if o.deadline > 0 {
		ctx, cancel = context.WithTimeout(ctx, o.deadline)
		defer cancel()
	}

	lhsSchema, err := LoadSchema(lhs)
	if err != nil {
		return Result{}, err
	}
	rhsSchema, err := LoadSchema(rhs)
	if err != nil {
		return Result{}, err
	}

	if err := MetaValidate(lhsSchema); err != nil {
		return Result{}, err
	}
	if err := MetaValidate(rhsSchema); err != nil {
		return Result{}, err
	}

	if err := resolveRefs(lhsSchema, "LHS"); err != nil {
		return Result{}, err
	}
	if err := resolveRefs(rhsSchema, "RHS"); err != nil {
		return Result{}, err
	}

	lhsC, err := Canonicalize(lhsSchema, "LHS")
	if err != nil {
		return Result{}, err
	}
	rhsC, err := Canonicalize(rhsSchema, "RHS")
	if err != nil {
		return Result{}, err
	}

	ctx = withReasonCollector(ctx)
	warnExtraKeywords(ctx, lhsSchema, "LHS")
	warnExtraKeywords(ctx, rhsSchema, "RHS")
	numWarnings := len(collectorFrom(ctx).reasons)
	ok := isSubtype(ctx, lhsC, rhsC)

	select {
	case <-ctx.Done():
		return Result{}, ErrDecisionTimeout
	default:
	}

	collector := collectorFrom(ctx)
	var reasons []string
	if collector != nil {
		reasons = collector.reasons
		if ok {
			// Codes from branches that failed before another succeeded do
			// not explain a true result; only the keyword warnings remain.
			reasons = reasons[:numWarnings]
		}
	}
	return Result{IsSubtype: ok, Reasons: reasons}, nil
}
