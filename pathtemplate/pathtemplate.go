// Package pathtemplate implements a minimal parser for the route-pattern
// grammar used in RouteSpec.Match.Path: literal segments, "{name}"
// parameter segments, "{name?}" optional parameters and a trailing
// "{**name}" catch-all segment. It stands in for the external matcher's own
// parser: the core only needs to know whether a path is syntactically
// valid, not how to match it.
package pathtemplate

import (
	"fmt"
	"strings"
)

// CatchAll is the default path pattern the endpoint compiler substitutes
// when a RouteSpec.Match.Path is empty.
const CatchAll = "/{**catchall}"

// Validate reports whether path conforms to the route-pattern grammar. It
// does not build a matchable structure; that is the external matcher's job.
func Validate(path string) error {
	if path == "" {
		return fmt.Errorf("path must not be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with '/'", path)
	}
	if path == "/" {
		return nil
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if seg == "" {
			return fmt.Errorf("path %q has an empty segment", path)
		}
		if !strings.Contains(seg, "{") && !strings.Contains(seg, "}") {
			continue
		}
		if err := validateParamSegment(seg); err != nil {
			return fmt.Errorf("path %q: %w", path, err)
		}
		if strings.HasPrefix(seg, "{**") && i != len(segments)-1 {
			return fmt.Errorf("path %q: catch-all segment %q must be last", path, seg)
		}
	}
	return nil
}

func validateParamSegment(seg string) error {
	if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
		return fmt.Errorf("malformed parameter segment %q", seg)
	}
	name := seg[1 : len(seg)-1]
	name = strings.TrimPrefix(name, "**")
	name = strings.TrimSuffix(name, "?")
	if name == "" {
		return fmt.Errorf("parameter segment %q has no name", seg)
	}
	for _, r := range name {
		if r == '{' || r == '}' || r == '/' {
			return fmt.Errorf("parameter segment %q has an invalid character", seg)
		}
	}
	return nil
}
