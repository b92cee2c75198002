package locator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParam is returned when a template parameter would produce a broken selector.
var ErrInvalidParam = errors.New("invalid locator parameter")

// Kind identifies the selector engine a Locator is resolved with.
type Kind string

const (
	KindCSS   Kind = "css"
	KindXPath Kind = "xpath"
	KindRole  Kind = "role"
)

// noIndex marks a locator that addresses every matching element.
const noIndex = -1

// Locator describes how to find one or more UI elements.
// The zero value is not usable; build one with CSS, XPath, Role or Template.Resolve.
type Locator struct {
	kind     Kind
	selector string
	name     string
	index    int
}

// CSS returns a locator for a fixed CSS selector.
func CSS(selector string) (Locator, error) {
	return newLocator(KindCSS, selector, "")
}

// XPath returns a locator for a fixed XPath expression.
func XPath(expr string) (Locator, error) {
	return newLocator(KindXPath, expr, "")
}

// Role returns a locator matching elements by ARIA role and accessible name.
func Role(role, name string) (Locator, error) {
	if err := checkParam(name); err != nil {
		return Locator{}, err
	}
	return newLocator(KindRole, role, name)
}

// MustCSS is like CSS but panics on error. Use it for package-level selectors only.
func MustCSS(selector string) Locator {
	l, err := CSS(selector)
	if err != nil {
		panic(err)
	}
	return l
}

// MustRole is like Role but panics on error.
func MustRole(role, name string) Locator {
	l, err := Role(role, name)
	if err != nil {
		panic(err)
	}
	return l
}

func newLocator(kind Kind, selector, name string) (Locator, error) {
	if strings.TrimSpace(selector) == "" {
		return Locator{}, fmt.Errorf("empty %s selector", kind)
	}
	return Locator{kind: kind, selector: selector, name: name, index: noIndex}, nil
}

// Kind returns the selector engine.
func (l Locator) Kind() Kind { return l.kind }

// Selector returns the raw selector, or the role for role locators.
func (l Locator) Selector() string { return l.selector }

// Name returns the accessible name of a role locator.
func (l Locator) Name() string { return l.name }

// Index returns the element index and whether one was set.
func (l Locator) Index() (int, bool) {
	return l.index, l.index != noIndex
}

// Nth narrows the locator to the i-th match in document order.
func (l Locator) Nth(i int) Locator {
	if i < 0 {
		i = 0
	}
	l.index = i
	return l
}

// First narrows the locator to the first match.
func (l Locator) First() Locator {
	return l.Nth(0)
}

// Base drops any element index.
func (l Locator) Base() Locator {
	l.index = noIndex
	return l
}

// IsZero reports whether l was never constructed.
func (l Locator) IsZero() bool {
	return l.kind == ""
}

// String renders the locator for logs and error messages.
func (l Locator) String() string {
	var s string
	switch l.kind {
	case KindRole:
		s = fmt.Sprintf("role=%s[name=%q]", l.selector, l.name)
	case KindXPath:
		s = "xpath=" + l.selector
	default:
		s = l.selector
	}
	if l.index != noIndex {
		s = fmt.Sprintf("%s >> nth=%d", s, l.index)
	}
	return s
}

// Template is a selector with %s placeholders filled at runtime, such as a date or category name.
type Template struct {
	kind   Kind
	format string
}

// CSSTemplate returns a CSS selector template.
func CSSTemplate(format string) Template {
	return Template{kind: KindCSS, format: format}
}

// XPathTemplate returns an XPath selector template.
func XPathTemplate(format string) Template {
	return Template{kind: KindXPath, format: format}
}

// Placeholders returns how many parameters the template expects.
func (t Template) Placeholders() int {
	return strings.Count(t.format, "%s")
}

// Resolve fills the template. Each parameter must be non-empty and free of
// double quotes and newlines, and the number of parameters must match.
func (t Template) Resolve(params ...string) (Locator, error) {
	if want := t.Placeholders(); len(params) != want {
		return Locator{}, fmt.Errorf("%w: template %q wants %d parameters, got %d", ErrInvalidParam, t.format, want, len(params))
	}
	args := make([]any, len(params))
	for i, p := range params {
		if err := checkParam(p); err != nil {
			return Locator{}, err
		}
		args[i] = p
	}
	return newLocator(t.kind, fmt.Sprintf(t.format, args...), "")
}

func checkParam(p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%w: empty value", ErrInvalidParam)
	}
	if strings.ContainsAny(p, "\"\n") {
		return fmt.Errorf("%w: %q contains a quote or newline", ErrInvalidParam, p)
	}
	return nil
}
