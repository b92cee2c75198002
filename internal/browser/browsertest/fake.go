// Package browsertest provides an in-memory browser.Driver for testing page objects.
package browsertest

import (
	"errors"
	"fmt"
	"time"

	"github.com/darionTest/simplenight/internal/browser"
	"github.com/darionTest/simplenight/internal/locator"
)

var (
	ErrNotFound        = errors.New("element not found")
	ErrNotInteractable = errors.New("element is not visible")
	ErrStrictMode      = errors.New("strict mode violation: locator resolved to multiple elements")
)

var _ browser.Driver = (*Fake)(nil)

// Element is a fake DOM node.
type Element struct {
	Text   string
	Attrs  map[string]string
	Hidden bool
}

// Call is one recorded driver invocation.
type Call struct {
	Verb    string
	Locator string
	Value   string
}

// Fake records every call and answers queries from a scripted element table keyed by
// the locator without its index.
type Fake struct {
	Calls []Call

	// OnClick runs after a successful click so tests can mutate the page.
	OnClick func(f *Fake, loc locator.Locator)
	// ConditionErr is returned from WaitForCondition.
	ConditionErr error

	elements map[string][]*Element
	failures map[string]error
	title    string
	history  []string
	cursor   int
}

// New returns an empty page.
func New() *Fake {
	return &Fake{
		elements: make(map[string][]*Element),
		failures: make(map[string]error),
		cursor:   -1,
	}
}

// Set replaces the elements matched by loc.
func (f *Fake) Set(loc locator.Locator, elems ...Element) {
	nodes := make([]*Element, len(elems))
	for i := range elems {
		e := elems[i]
		if e.Attrs == nil {
			e.Attrs = make(map[string]string)
		}
		nodes[i] = &e
	}
	f.elements[loc.Base().String()] = nodes
}

// Get returns the i-th element matched by loc, or nil.
func (f *Fake) Get(loc locator.Locator, i int) *Element {
	nodes := f.elements[loc.Base().String()]
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

// Fail makes every verb call on loc return err.
func (f *Fake) Fail(verb string, loc locator.Locator, err error) {
	f.failures[verb+" "+loc.String()] = err
}

// SetTitle sets the document title.
func (f *Fake) SetTitle(title string) {
	f.title = title
}

// CallsTo returns the recorded calls for verb, in order.
func (f *Fake) CallsTo(verb string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Verb == verb {
			out = append(out, c)
		}
	}
	return out
}

// Clicks counts clicks on loc, matching its index exactly.
func (f *Fake) Clicks(loc locator.Locator) int {
	n := 0
	for _, c := range f.CallsTo("click") {
		if c.Locator == loc.String() {
			n++
		}
	}
	return n
}

func (f *Fake) record(verb string, loc locator.Locator, value string) error {
	l := ""
	if !loc.IsZero() {
		l = loc.String()
	}
	f.Calls = append(f.Calls, Call{Verb: verb, Locator: l, Value: value})
	if err, ok := f.failures[verb+" "+l]; ok {
		return fmt.Errorf("%s %s: %w", verb, l, err)
	}
	return nil
}

func (f *Fake) resolve(loc locator.Locator) (*Element, error) {
	nodes := f.elements[loc.Base().String()]
	i, indexed := loc.Index()
	switch {
	case indexed && i < len(nodes):
		return nodes[i], nil
	case indexed, len(nodes) == 0:
		return nil, fmt.Errorf("%s: %w", loc, ErrNotFound)
	case len(nodes) > 1:
		return nil, fmt.Errorf("%s: %w", loc, ErrStrictMode)
	}
	return nodes[0], nil
}

func (f *Fake) interactable(loc locator.Locator) (*Element, error) {
	e, err := f.resolve(loc)
	if err != nil {
		return nil, err
	}
	if e.Hidden {
		return nil, fmt.Errorf("%s: %w", loc, ErrNotInteractable)
	}
	return e, nil
}

func (f *Fake) Navigate(url string) error {
	if err := f.record("navigate", locator.Locator{}, url); err != nil {
		return err
	}
	f.history = append(f.history[:f.cursor+1], url)
	f.cursor = len(f.history) - 1
	return nil
}

func (f *Fake) Click(loc locator.Locator) error {
	if err := f.record("click", loc, ""); err != nil {
		return err
	}
	if _, err := f.interactable(loc); err != nil {
		return err
	}
	if f.OnClick != nil {
		f.OnClick(f, loc)
	}
	return nil
}

func (f *Fake) Fill(loc locator.Locator, text string) error {
	if err := f.record("fill", loc, text); err != nil {
		return err
	}
	e, err := f.interactable(loc)
	if err != nil {
		return err
	}
	e.Attrs["value"] = text
	return nil
}

func (f *Fake) Press(key string) error {
	return f.record("press", locator.Locator{}, key)
}

func (f *Fake) Wait(d time.Duration) error {
	return f.record("wait", locator.Locator{}, d.String())
}

func (f *Fake) Text(loc locator.Locator) (string, error) {
	if err := f.record("text", loc, ""); err != nil {
		return "", err
	}
	e, err := f.resolve(loc)
	if err != nil {
		return "", err
	}
	return e.Text, nil
}

func (f *Fake) Title() (string, error) {
	return f.title, f.record("title", locator.Locator{}, "")
}

func (f *Fake) Attribute(loc locator.Locator, name string) (string, error) {
	if err := f.record("attribute", loc, name); err != nil {
		return "", err
	}
	e, err := f.resolve(loc)
	if err != nil {
		return "", err
	}
	return e.Attrs[name], nil
}

func (f *Fake) WaitForCondition(expression string, opts browser.WaitOptions) error {
	if err := f.record("waitForCondition", locator.Locator{}, expression); err != nil {
		return err
	}
	return f.ConditionErr
}

func (f *Fake) WaitVisible(loc locator.Locator, timeout time.Duration) error {
	if err := f.record("waitVisible", loc, timeout.String()); err != nil {
		return err
	}
	_, err := f.interactable(loc)
	return err
}

func (f *Fake) Count(loc locator.Locator) (int, error) {
	if err := f.record("count", loc, ""); err != nil {
		return 0, err
	}
	return len(f.elements[loc.Base().String()]), nil
}

func (f *Fake) Check(loc locator.Locator) error {
	return f.setChecked("check", loc, "true")
}

func (f *Fake) Uncheck(loc locator.Locator) error {
	return f.setChecked("uncheck", loc, "")
}

func (f *Fake) setChecked(verb string, loc locator.Locator, value string) error {
	if err := f.record(verb, loc, ""); err != nil {
		return err
	}
	e, err := f.interactable(loc)
	if err != nil {
		return err
	}
	if value == "" {
		delete(e.Attrs, "checked")
	} else {
		e.Attrs["checked"] = value
	}
	return nil
}

func (f *Fake) Hover(loc locator.Locator) error {
	if err := f.record("hover", loc, ""); err != nil {
		return err
	}
	_, err := f.interactable(loc)
	return err
}

func (f *Fake) Select(loc locator.Locator, value string) error {
	return f.selectOption("select", loc, value)
}

func (f *Fake) SelectByText(loc locator.Locator, text string) error {
	return f.selectOption("selectByText", loc, text)
}

func (f *Fake) selectOption(verb string, loc locator.Locator, value string) error {
	if err := f.record(verb, loc, value); err != nil {
		return err
	}
	e, err := f.interactable(loc)
	if err != nil {
		return err
	}
	e.Attrs["value"] = value
	return nil
}

func (f *Fake) URL() string {
	if f.cursor < 0 {
		return "about:blank"
	}
	return f.history[f.cursor]
}

func (f *Fake) Reload() error {
	return f.record("reload", locator.Locator{}, f.URL())
}

func (f *Fake) GoBack() error {
	if err := f.record("goBack", locator.Locator{}, ""); err != nil {
		return err
	}
	if f.cursor > 0 {
		f.cursor--
	}
	return nil
}

func (f *Fake) GoForward() error {
	if err := f.record("goForward", locator.Locator{}, ""); err != nil {
		return err
	}
	if f.cursor < len(f.history)-1 {
		f.cursor++
	}
	return nil
}
