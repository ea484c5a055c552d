package subtype

// Result is the outcome of a containment decision together with the
// diagnostic reasons collected along the way. Reasons are informational:
// they explain why a branch returned false but never alter the boolean
// outcome. When IsSubtype is true they hold only the warnings about
// ignored keywords, and are empty if there were none.
type Result struct {
	IsSubtype bool
	Reasons   []string
}

// Bool lets a Result be used directly in a boolean context, mirroring the
// original implementation's SubschemaResult.__bool__.
func (r Result) Bool() bool {
	return r.IsSubtype
}
