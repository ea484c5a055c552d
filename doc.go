// Package subtype decides, for two JSON Schema (Draft-4 subset) documents,
// whether every instance of the first is an instance of the second — a
// static containment check over the instance languages the schemas define.
//
// The engine canonicalizes both schemas into a tagged union over the seven
// JSON kinds, then dispatches containment to a per-kind decider. It does not
// validate instances against schemas; it compares two schemas with each
// other.
package subtype
