package argsnap

import (
	"strconv"
	"strings"
)

// Element is one stored value: either a scalar token or, for grouped classes,
// a fixed-size group of scalar tokens. Groups never nest further.
type Element struct {
	text     string
	number   float64
	isNumber bool
	group    []Element
}

func scalar(s string) Element { return Element{text: s} }

func groupOf(tokens []string) Element {
	g := make([]Element, len(tokens))
	for i, t := range tokens {
		g[i] = scalar(t)
	}
	return Element{group: g}
}

func scalars(tokens []string) []Element {
	out := make([]Element, len(tokens))
	for i, t := range tokens {
		out[i] = scalar(t)
	}
	return out
}

// IsGroup reports whether the element holds a group of tokens.
func (e Element) IsGroup() bool { return e.group != nil }

// Len returns the group size, or 1 for a scalar.
func (e Element) Len() int {
	if e.group != nil {
		return len(e.group)
	}
	return 1
}

// At returns the i-th member of a group. On a scalar, At(0) returns the
// element itself.
func (e Element) At(i int) Element {
	if e.group == nil {
		if i != 0 {
			panic("argsnap: index out of range on scalar element")
		}
		return e
	}
	return e.group[i]
}

// String returns the token, or "(a, b)" for a group.
func (e Element) String() string {
	if e.group == nil {
		return e.text
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, m := range e.group {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.text)
	}
	b.WriteByte(')')
	return b.String()
}

// Strings returns the tokens held by the element.
func (e Element) Strings() []string {
	if e.group == nil {
		return []string{e.text}
	}
	out := make([]string, len(e.group))
	for i, m := range e.group {
		out[i] = m.text
	}
	return out
}

// IsNumber reports whether a scalar token parsed as a number.
func (e Element) IsNumber() bool { return e.group == nil && e.isNumber }

// Number returns the numeric value of a scalar token.
func (e Element) Number() (float64, bool) {
	if !e.IsNumber() {
		return 0, false
	}
	return e.number, true
}

func (e *Element) coerce() {
	if e.group != nil {
		for i := range e.group {
			e.group[i].coerce()
		}
		return
	}
	n, err := strconv.ParseFloat(e.text, 64)
	e.number, e.isNumber = n, err == nil
}

// flatten appends every leaf token of elems to dst in order.
func flatten(dst []string, elems []Element) []string {
	for _, e := range elems {
		if e.group == nil {
			dst = append(dst, e.text)
			continue
		}
		for _, m := range e.group {
			dst = append(dst, m.text)
		}
	}
	return dst
}

// unflatten writes tokens back into elems in flatten order. Extra tokens on
// either side are ignored.
func unflatten(elems []Element, tokens []string) {
	i := 0
	for j := range elems {
		if i >= len(tokens) {
			return
		}
		if elems[j].group == nil {
			elems[j].text = tokens[i]
			i++
			continue
		}
		for k := range elems[j].group {
			if i >= len(tokens) {
				return
			}
			elems[j].group[k].text = tokens[i]
			i++
		}
	}
}

func cloneElements(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = e
		if e.group != nil {
			out[i].group = append([]Element(nil), e.group...)
		}
	}
	return out
}
