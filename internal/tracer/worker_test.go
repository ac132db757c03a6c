package tracer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	bodies map[string]string
	errs   map[string]ErrorKind
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (string, ErrorKind) {
	if err, ok := m.errs[url]; ok {
		return "", err
	}
	return m.bodies[url], nil
}

type mockExtractor struct {
	links []string
	err   error
}

func (m *mockExtractor) ExtractLinks(io.Reader) ([]string, error) {
	return m.links, m.err
}

func TestAttempt_SortsDedupsAndScopes(t *testing.T) {
	fetcher := &mockFetcher{bodies: map[string]string{"https://example.com": "<html></html>"}}
	extractor := &mockExtractor{links: []string{"/b", "/a", "/b", "https://other.com/x"}}

	item := &ProcessItem{URL: "https://example.com", EligibleAt: 0}
	value, attemptCount := attempt(context.Background(), item, "https://example.com", fetcher, extractor, 0)

	require.Equal(t, KindLinks, value.Kind)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, value.Links)
	assert.Equal(t, 1, attemptCount)
}

func TestAttempt_FetchErrorIsRecordedAsFailure(t *testing.T) {
	fetcher := &mockFetcher{errs: map[string]ErrorKind{"https://example.com": &RequestError{Code: 500}}}
	extractor := &mockExtractor{}

	item := &ProcessItem{URL: "https://example.com", Retry: 2, EligibleAt: 0}
	value, attemptCount := attempt(context.Background(), item, "https://example.com", fetcher, extractor, 0)

	require.Equal(t, KindError, value.Kind)
	assert.Equal(t, &RequestError{Code: 500}, value.Err)
	assert.Equal(t, 3, attemptCount)
}

func TestAttempt_ExtractorErrorBecomesContentError(t *testing.T) {
	fetcher := &mockFetcher{bodies: map[string]string{"https://example.com": "garbage"}}
	extractor := &mockExtractor{err: errors.New("malformed document")}

	item := &ProcessItem{URL: "https://example.com", EligibleAt: 0}
	value, _ := attempt(context.Background(), item, "https://example.com", fetcher, extractor, 0)

	require.Equal(t, KindError, value.Kind)
	contentErr, ok := value.Err.(*ContentError)
	require.True(t, ok)
	assert.Equal(t, "malformed document", contentErr.Message)
}

func TestAttempt_FiltersOutOfScopeLinks(t *testing.T) {
	fetcher := &mockFetcher{bodies: map[string]string{"https://example.com": "<html></html>"}}
	extractor := &mockExtractor{links: []string{"https://other.com/page", "/in-scope"}}

	item := &ProcessItem{URL: "https://example.com", EligibleAt: 0}
	value, _ := attempt(context.Background(), item, "https://example.com", fetcher, extractor, 0)

	require.Equal(t, KindLinks, value.Kind)
	assert.Equal(t, []string{"https://example.com/in-scope"}, value.Links)
}

func TestCompactAdjacent(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, compactAdjacent([]string{"a", "a", "b", "c", "c"}))
	assert.Empty(t, compactAdjacent(nil))
}
