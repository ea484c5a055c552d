package subtype

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// resolveRefs walks a schema tree and resolves every $ref it contains
// against the document's own `definitions` (this engine supports only
// local, in-document resolution — spec §4.1: "the core assumes local
// resolution is sufficient"). It rejects cycles with UnsupportedRecursiveRef
// tagged with which side of the top-level comparison is being resolved.
//
// visiting tracks the set of Schema nodes currently being chased through a
// $ref chain (the spec's "currently-resolving" set); re-entering one of
// them means the reference is recursive.
func resolveRefs(root *Schema, side string) error {
	return resolveNode(root, root, side, map[*Schema]bool{})
}

func resolveNode(node, root *Schema, side string, visiting map[*Schema]bool) error {
	if node == nil || node.Boolean != nil {
		return nil
	}

	if node.Ref != "" && node.ResolvedRef == nil {
		resolved, err := resolveOne(node, root, side, visiting)
		if err != nil {
			return err
		}
		node.ResolvedRef = resolved
	}

	for _, child := range node.Definitions {
		if err := resolveNode(child, root, side, visiting); err != nil {
			return err
		}
	}
	for _, child := range node.AllOf {
		if err := resolveNode(child, root, side, visiting); err != nil {
			return err
		}
	}
	for _, child := range node.AnyOf {
		if err := resolveNode(child, root, side, visiting); err != nil {
			return err
		}
	}
	for _, child := range node.OneOf {
		if err := resolveNode(child, root, side, visiting); err != nil {
			return err
		}
	}
	if err := resolveNode(node.Not, root, side, visiting); err != nil {
		return err
	}
	if err := resolveNode(node.Items, root, side, visiting); err != nil {
		return err
	}
	for _, child := range node.PrefixItems {
		if err := resolveNode(child, root, side, visiting); err != nil {
			return err
		}
	}
	if err := resolveNode(node.AdditionalItems, root, side, visiting); err != nil {
		return err
	}
	if err := resolveNode(node.AdditionalProperties, root, side, visiting); err != nil {
		return err
	}
	if node.Properties != nil {
		for _, child := range *node.Properties {
			if err := resolveNode(child, root, side, visiting); err != nil {
				return err
			}
		}
	}
	if node.PatternProperties != nil {
		for _, child := range *node.PatternProperties {
			if err := resolveNode(child, root, side, visiting); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveOne follows a single node's $ref chain to a concrete, non-$ref
// target, detecting cycles along the way.
func resolveOne(node, root *Schema, side string, visiting map[*Schema]bool) (*Schema, error) {
	if visiting[node] {
		return nil, &RecursiveRefError{WhichSide: side, Ref: node.Ref}
	}
	visiting[node] = true
	defer delete(visiting, node)

	target, err := resolvePointer(root, node.Ref)
	if err != nil {
		return nil, err
	}

	// Chase further $refs on the target before returning it, so callers
	// always see a concrete (non-$ref) schema.
	if target.Ref != "" {
		if target.ResolvedRef != nil {
			return target.ResolvedRef, nil
		}
		return resolveOne(target, root, side, visiting)
	}

	return target, nil
}

// resolvePointer resolves a local ref ("#" or a JSON Pointer fragment such
// as "#/definitions/foo") against the document rooted at root. Any other
// fragment is read as a pointer too, so a bare anchor name does not
// resolve.
func resolvePointer(root *Schema, ref string) (*Schema, error) {
	baseURI, fragment := splitRef(ref)
	if baseURI != "" {
		// Remote document references are not supported locally; this
		// engine has no loader for absolute URIs (spec §4.1).
		return nil, ErrUnresolvedRef
	}

	if fragment == "" || fragment == "/" {
		return root, nil
	}
	if !isJSONPointer("/" + strings.TrimPrefix(fragment, "/")) {
		return nil, ErrUnresolvedRef
	}

	segments := jsonpointer.Parse(fragment)
	current := root
	previous := ""
	for _, seg := range segments {
		next, ok := findSchemaInSegment(current, seg, previous)
		if !ok {
			return nil, ErrUnresolvedRef
		}
		current = next
		previous = seg
	}
	return current, nil
}

// findSchemaInSegment descends one JSON-Pointer token into the schema tree.
// previous names the container keyword the segment is being looked up
// within (e.g. "definitions", "properties"), following the same two-token
// lookup shape as the teacher's findSchemaInSegment in ref.go.
func findSchemaInSegment(s *Schema, segment, previous string) (*Schema, bool) {
	if s == nil {
		return nil, false
	}
	switch previous {
	case "definitions":
		if def, ok := s.Definitions[segment]; ok {
			return def, true
		}
	case "properties":
		if s.Properties != nil {
			if p, ok := (*s.Properties)[segment]; ok {
				return p, true
			}
		}
	case "patternProperties":
		if s.PatternProperties != nil {
			if p, ok := (*s.PatternProperties)[segment]; ok {
				return p, true
			}
		}
	case "prefixItems":
		if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 && idx < len(s.PrefixItems) {
			return s.PrefixItems[idx], true
		}
	case "allOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 && idx < len(s.AllOf) {
			return s.AllOf[idx], true
		}
	case "anyOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 && idx < len(s.AnyOf) {
			return s.AnyOf[idx], true
		}
	case "oneOf":
		if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 && idx < len(s.OneOf) {
			return s.OneOf[idx], true
		}
	default:
		// A segment that does not follow a container keyword (including
		// the first one): it must directly name one of the container/child
		// keywords itself.
		switch segment {
		case "definitions", "properties", "patternProperties", "prefixItems",
			"allOf", "anyOf", "oneOf":
			// The keyword itself is not a Schema; return s unchanged so the
			// next loop iteration's "previous" is this keyword and can
			// dispatch into the right container above.
			return s, true
		case "items":
			if s.Items != nil {
				return s.Items, true
			}
		case "additionalItems":
			if s.AdditionalItems != nil {
				return s.AdditionalItems, true
			}
		case "additionalProperties":
			if s.AdditionalProperties != nil {
				return s.AdditionalProperties, true
			}
		case "not":
			if s.Not != nil {
				return s.Not, true
			}
		}
	}
	return nil, false
}
