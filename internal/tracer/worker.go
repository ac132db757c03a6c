package tracer

import (
	"context"
	"sort"
	"strings"
)

// attempt performs one worker step (§4.3) for a single ProcessItem: an
// optional pre-sleep for the remaining retry delay, then a fetch and
// extract. On success the raw hrefs are sorted, adjacent-duplicate
// compacted, resolved to absolute URLs via Scope, and filtered to the
// in-scope set. Returns the resulting LinkMapValue and the attempt
// count (previous retries + 1) so the caller can apply the retry
// policy.
func attempt(ctx context.Context, item *ProcessItem, root string, fetcher Fetcher, extractor Extractor, now int64) (LinkMapValue, int) {
	if delay := item.EligibleAt - now; delay > 0 {
		sleep(ctx, delay)
	}

	attemptCount := int(item.Retry) + 1

	body, errKind := fetcher.Fetch(ctx, item.URL)
	if errKind != nil {
		return Failure(errKind), attemptCount
	}

	rawHrefs, err := extractor.ExtractLinks(strings.NewReader(body))
	if err != nil {
		return Failure(&ContentError{Message: err.Error()}), attemptCount
	}

	sorted := append([]string(nil), rawHrefs...)
	sort.Strings(sorted)
	deduped := compactAdjacent(sorted)

	inScope := make([]string, 0, len(deduped))
	for _, href := range deduped {
		resolved := Scope(href, root)
		if InScope(resolved, root) {
			inScope = append(inScope, resolved)
		}
	}

	return Links(inScope), attemptCount
}

// compactAdjacent removes adjacent duplicates from a sorted slice. Since
// the input is sorted, this is equivalent to full deduplication.
func compactAdjacent(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
