package subtype

import "context"

// reasonCollector accumulates diagnostic failure codes during a single
// top-level decision. It is the Go rendering of the original
// implementation's thread-local ExplainContext: here the "thread" is a
// goroutine, and the scoping is achieved by carrying the collector on a
// context.Context rather than in package-level thread-local storage, since
// Go has no native thread-local storage and context.Context is already
// goroutine-scoped and immutable-by-convention.
type reasonCollector struct {
	path    []string
	reasons []string
}

type reasonCollectorKey struct{}

// withReasonCollector returns a context carrying a fresh collector, used
// once at the top of IsSubschemaWithReason.
func withReasonCollector(ctx context.Context) context.Context {
	return context.WithValue(ctx, reasonCollectorKey{}, &reasonCollector{})
}

// collectorFrom retrieves the collector set by withReasonCollector, or nil
// if none is active (e.g. when called from IsSubschema, which never
// collects reasons).
func collectorFrom(ctx context.Context) *reasonCollector {
	c, _ := ctx.Value(reasonCollectorKey{}).(*reasonCollector)
	return c
}

// pushPath extends the current path for the duration of the returned pop
// function. Path segments describe the location inside the subject (LHS)
// schema under inspection, per the ordering guarantee in spec §5.
func pushPath(ctx context.Context, segment string) func() {
	c := collectorFrom(ctx)
	if c == nil {
		return func() {}
	}
	c.path = append(c.path, segment)
	return func() {
		if len(c.path) > 0 {
			c.path = c.path[:len(c.path)-1]
		}
	}
}

func pathString(c *reasonCollector) string {
	if c == nil || len(c.path) == 0 {
		return "/"
	}
	s := ""
	for _, seg := range c.path {
		s += "/" + seg
	}
	return s
}

// addReason appends a coded failure entry in the "[code] message (at path)"
// wire format. A nil collector (reasons not requested) makes this a no-op.
func addReason(ctx context.Context, code, message string) {
	c := collectorFrom(ctx)
	if c == nil {
		return
	}
	c.reasons = append(c.reasons, "["+code+"] "+message+" (at "+pathString(c)+")")
}

// warnExtraKeywords walks a schema tree and pushes a non-fatal reason for
// every keyword collected into Extra, so unrecognized keywords are surfaced
// to a caller asking for reasons rather than silently dropped. side labels
// which half of the comparison the warning came from.
func warnExtraKeywords(ctx context.Context, s *Schema, side string) {
	if s == nil || s.Boolean != nil {
		return
	}
	for name := range s.Extra {
		addReason(ctx, "warn__extra", side+": unknown keyword ignored: "+name)
	}
	for _, child := range s.Definitions {
		warnExtraKeywords(ctx, child, side)
	}
	for _, child := range s.AllOf {
		warnExtraKeywords(ctx, child, side)
	}
	for _, child := range s.AnyOf {
		warnExtraKeywords(ctx, child, side)
	}
	for _, child := range s.OneOf {
		warnExtraKeywords(ctx, child, side)
	}
	warnExtraKeywords(ctx, s.Not, side)
	warnExtraKeywords(ctx, s.Items, side)
	for _, child := range s.PrefixItems {
		warnExtraKeywords(ctx, child, side)
	}
	warnExtraKeywords(ctx, s.AdditionalItems, side)
	warnExtraKeywords(ctx, s.AdditionalProperties, side)
	if s.Properties != nil {
		for _, child := range *s.Properties {
			warnExtraKeywords(ctx, child, side)
		}
	}
	if s.PatternProperties != nil {
		for _, child := range *s.PatternProperties {
			warnExtraKeywords(ctx, child, side)
		}
	}
}
