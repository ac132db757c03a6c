package htmlparser

import (
	"io"

	"golang.org/x/net/html"
)

// Extractor adapts ExtractLinks to the tracer.Extractor interface, so the
// crawler's engine can treat this package as an interchangeable C2
// implementation rather than calling the package function directly.
type Extractor struct{}

// ExtractLinks implements tracer.Extractor.
func (Extractor) ExtractLinks(r io.Reader) ([]string, error) {
	return ExtractLinks(r)
}

// ExtractLinks parses HTML from the reader and returns the raw href
// attribute of every <a> element, in document order, exactly as it appears
// in the markup. No resolution, filtering, or deduplication is performed —
// that is the URL Scoper's job, one layer up.
//
// The tree is walked with an explicit stack rather than recursion: a
// malicious or deeply-nested document (lots of <div><div><div>...)
// shouldn't be able to grow the Go call stack, and every other DFS in this
// module (the tree renderer) already favors an explicit stack for the same
// reason.
func ExtractLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var hrefs []string
	stack := []*html.Node{doc}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := hrefAttr(n); ok {
				hrefs = append(hrefs, href)
			}
		}

		// Push children in reverse so the leftmost child pops first,
		// preserving document order despite the LIFO stack.
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}

	return hrefs, nil
}

func hrefAttr(n *html.Node) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			return attr.Val, true
		}
	}
	return "", false
}
