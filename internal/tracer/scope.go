package tracer

import "strings"

// Scope resolves a raw href against the root origin. This is
// deliberately naive: it performs no parsing beyond a couple of prefix
// checks, and no percent-encoding, query, or fragment canonicalization.
//
//  1. If rawHref begins with "http" (case-sensitive), it is returned
//     unchanged.
//  2. Otherwise, if it begins with "/", it is appended to root.
//  3. Otherwise, it is appended to root with a "/" separator.
func Scope(rawHref, root string) string {
	if strings.HasPrefix(rawHref, "http") {
		return rawHref
	}
	if strings.HasPrefix(rawHref, "/") {
		return root + rawHref
	}
	return root + "/" + rawHref
}

// InScope reports whether url lies under root, using a plain byte-prefix
// test. This is not a correct origin check: "http://example.com.evil/"
// passes when root is "http://example.com". That is intended behavior,
// not a bug — see spec design notes on the naive scope prefix check.
func InScope(url, root string) bool {
	return strings.HasPrefix(url, root)
}
