package mapper

import "regexp"

// DomainPattern recognizes the exact shape of an acceptable seed domain:
// http or https scheme, optional www prefix, a 1-63 character host label and
// at least one 2-6 letter dot-suffix, with an optional trailing slash. Bare
// hostnames ("http://google") and schemeless strings are rejected.
var DomainPattern = regexp.MustCompile(`^https?://(?:www\.)?[-a-zA-Z0-9]{1,63}(?:\.[a-zA-Z]{2,6})+/?$`)

// LinkPattern recognizes followable raw links: path-relative references
// only. Links that arrive already absolute are never followed.
var LinkPattern = regexp.MustCompile(`^/`)
