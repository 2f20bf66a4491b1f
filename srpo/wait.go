package srpo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/srpo-tools/srpo/models"
)

// MatchFunc compares an element's observed value against a query's expected
// value. The observed value is always the first parameter.
type MatchFunc func(value, want string) bool

// Exact is the default matcher.
func Exact(value, want string) bool { return value == want }

// HasPrefix matches values beginning with the expected string.
func HasPrefix(value, want string) bool { return strings.HasPrefix(value, want) }

// HasSuffix matches values ending with the expected string.
func HasSuffix(value, want string) bool { return strings.HasSuffix(value, want) }

// OneOf returns a matcher that ignores the query's expected value and
// reports membership in the given set.
func OneOf(choices ...string) MatchFunc {
	return func(value, _ string) bool {
		for _, c := range choices {
			if value == c {
				return true
			}
		}
		return false
	}
}

// Query describes the element the wait primitive scans for: a tag name plus
// an optional accessible name and/or text value to match. A nil Name or Text
// skips that criterion; all supplied criteria must hold for an element to
// match.
type Query struct {
	Tag   string
	Name  *string
	Text  *string
	Match MatchFunc // nil means exact equality
}

// ByName queries elements of a tag by normalized accessible name.
func ByName(tag, name string) Query {
	return Query{Tag: tag, Name: &name}
}

// ByText queries elements of a tag by text value.
func ByText(tag, text string) Query {
	return Query{Tag: tag, Text: &text}
}

// TextOneOf queries elements of a tag whose text is any of the choices.
func TextOneOf(tag string, choices ...string) Query {
	empty := ""
	return Query{Tag: tag, Text: &empty, Match: OneOf(choices...)}
}

// Matching replaces the query's matcher.
func (q Query) Matching(m MatchFunc) Query {
	q.Match = m
	return q
}

func (q Query) match(value, want string) bool {
	if q.Match == nil {
		return Exact(value, want)
	}
	return q.Match(value, want)
}

func (q Query) describe() string {
	parts := []string{"<" + q.Tag + ">"}
	if q.Name != nil {
		parts = append(parts, fmt.Sprintf("name=%q", *q.Name))
	}
	if q.Text != nil {
		parts = append(parts, fmt.Sprintf("text=%q", *q.Text))
	}
	return strings.Join(parts, " ")
}

// normalizeName strips non-ASCII runes and surrounding whitespace from an
// accessible name. The SRPO decorates labels with icon glyphs that would
// otherwise break exact comparison.
func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// findElement scans the currently rendered elements of the query's tag once
// and returns the first one satisfying every supplied criterion.
func (c *Client) findElement(q Query) (*rod.Element, bool) {
	els, err := c.page.Elements(q.Tag)
	if err != nil {
		return nil, false
	}
	for _, el := range els {
		if q.Name != nil {
			name, err := c.accessibleName(el)
			if err != nil || !q.match(normalizeName(name), *q.Name) {
				continue
			}
		}
		if q.Text != nil {
			text, err := el.Text()
			if err != nil || !q.match(text, *q.Text) {
				continue
			}
		}
		return el, true
	}
	return nil, false
}

// waitFor polls the rendered DOM for an element matching the query until the
// configured wait timeout elapses. This is the pipeline's sole
// synchronization mechanism: the SRPO renders asynchronously with no
// reliable loaded signal, so readiness is inferred purely from DOM content.
func (c *Client) waitFor(ctx context.Context, q Query) (*rod.Element, error) {
	deadline := time.Now().Add(c.nav.WaitTimeout)
	for {
		if el, ok := c.findElement(q); ok {
			return el, nil
		}
		if time.Now().After(deadline) {
			return nil, models.NewPipelineError(
				models.ErrCodeWaitTimeout,
				"no element matched "+q.describe()+" before the deadline",
				nil,
			)
		}
		select {
		case <-ctx.Done():
			return nil, models.NewPipelineError(
				models.ErrCodeWaitTimeout,
				"wait for "+q.describe()+" canceled",
				ctx.Err(),
			)
		case <-time.After(c.nav.PollInterval):
		}
	}
}

// accessibleName resolves an element's accessible name through the CDP
// accessibility domain.
func (c *Client) accessibleName(el *rod.Element) (string, error) {
	res, err := proto.AccessibilityGetPartialAXTree{
		ObjectID:       el.Object.ObjectID,
		FetchRelatives: false,
	}.Call(c.page)
	if err != nil {
		return "", err
	}
	if len(res.Nodes) == 0 || res.Nodes[0].Name == nil {
		return "", nil
	}
	return res.Nodes[0].Name.Value.Str(), nil
}

// settle sleeps for a fixed delay, honoring context cancellation. Settle
// delays stand in where the SRPO exposes no completion signal to wait on.
func (c *Client) settle(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
