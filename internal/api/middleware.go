// Package api implements the bodygraph REST API using chi.
package api

import "strings"

// DefaultMaxBodyBytes is the body limit when none is configured.
const DefaultMaxBodyBytes = 64 << 10

// etagMatches reports whether an If-None-Match header names the entity tag.
// The header may list several tags, weak or strong, or be "*".
func etagMatches(header, tag string) bool {
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		candidate = strings.TrimPrefix(candidate, "W/")
		if strings.Trim(candidate, `"`) == tag {
			return true
		}
	}
	return false
}
