package tracer

import (
	"context"
	"io"
)

// Fetcher is the C1 external contract: given an absolute URL, return the
// response body text, or a classified ErrorKind. Implementations must be
// safe for concurrent use — the engine shares one Fetcher across every
// worker goroutine.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, ErrorKind)
}

// Extractor is the C2 contract: given a page body, return the raw href
// attribute values of every <a> element, in document order. No
// resolution, filtering, or deduplication is performed here — that is
// the worker's job (see §4.3).
type Extractor interface {
	ExtractLinks(r io.Reader) ([]string, error)
}
