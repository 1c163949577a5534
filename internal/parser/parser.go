// Package parser extracts headwords and their translations from the
// dictionary's autocompletion markup.
//
// The markup is parsed strictly as XML after two rewrites: the decorative
// middot separator is removed, and every '&' is escaped to "&amp;" because the
// site does not escape it. Escaping to the predefined entity cannot collide
// with page content, and the XML decoder turns it back into a literal '&'.
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pricofy/dictionary-lookup/internal/domain"
)

const (
	separatorSpan    = "<span class='sep'>&middot;</span>"
	placeholderClass = "placeholder"
)

// ErrMalformed is returned when the body is not a well-formed tree or does
// not have the expected entry/row/item shape.
var ErrMalformed = errors.New("malformed markup")

// node is a minimal element tree. Character data is split the same way an
// element tree does it: text is what precedes the first child, tail is what
// follows the element's end tag up to the next sibling.
type node struct {
	class    string
	text     string
	tail     string
	children []*node
}

// Parse turns one response body into search results, preserving entry order
// and translation order within each entry. It fails as a whole; no partial
// result is returned.
func Parse(body string) ([]domain.SearchResult, error) {
	root, err := buildTree(preprocess(body))
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(root.children))
	for i, entry := range root.children {
		res, err := parseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("parser: entry %d: %w", i, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// preprocess must drop the separator before escaping, since the separator
// itself contains an '&'.
func preprocess(body string) string {
	body = strings.ReplaceAll(body, separatorSpan, "")
	return strings.ReplaceAll(body, "&", "&amp;")
}

func buildTree(markup string) (*node, error) {
	dec := xml.NewDecoder(strings.NewReader(markup))
	// The body is already UTF-8; ignore whatever the declaration claims.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) {
		return r, nil
	}

	var (
		root   *node
		stack  []*node
		closed *node // last element closed at the current depth, owns following text
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parser: %w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, fmt.Errorf("parser: %w: element after document root", ErrMalformed)
			}
			n := &node{class: classOf(t.Attr)}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
			closed = nil

		case xml.EndElement:
			closed = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("parser: %w: text outside document root", ErrMalformed)
				}
				continue
			}
			if closed != nil {
				closed.tail += string(t)
			} else {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parser: %w: no document root", ErrMalformed)
	}

	return root, nil
}

func classOf(attrs []xml.Attr) string {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == "class" {
			return a.Value
		}
	}
	return ""
}

// parseEntry reads the headword from the first grandchild and translations
// from every following row's first child.
func parseEntry(entry *node) (domain.SearchResult, error) {
	if len(entry.children) == 0 || len(entry.children[0].children) == 0 {
		return domain.SearchResult{}, fmt.Errorf("%w: missing headword", ErrMalformed)
	}

	word := strings.TrimSpace(entry.children[0].children[0].text)
	if word == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: empty headword", ErrMalformed)
	}

	translations := []string{}
	for i, row := range entry.children[1:] {
		if len(row.children) == 0 {
			return domain.SearchResult{}, fmt.Errorf("%w: translation row %d has no items", ErrMalformed, i)
		}
		for _, item := range row.children[0].children {
			if text := textOf(clean(item)); text != "" {
				translations = append(translations, text)
			}
		}
	}

	return domain.SearchResult{Word: word, Translations: translations}, nil
}

// clean returns a copy of n keeping only placeholder descendants. A dropped
// child takes its tail text with it.
func clean(n *node) *node {
	out := &node{class: n.class, text: n.text, tail: n.tail}
	for _, child := range n.children {
		if child.class != placeholderClass {
			continue
		}
		out.children = append(out.children, clean(child))
	}
	return out
}

// textOf joins the trimmed, non-empty text fragments of n in document order.
// The tail of n itself is not part of its text.
func textOf(n *node) string {
	var parts []string
	for _, f := range fragments(n, nil) {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

func fragments(n *node, dst []string) []string {
	dst = append(dst, n.text)
	for _, child := range n.children {
		dst = fragments(child, dst)
		dst = append(dst, child.tail)
	}
	return dst
}
