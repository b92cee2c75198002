package browsertest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darionTest/simplenight/internal/locator"
)

func TestHistory(t *testing.T) {
	f := New()
	assert.Equal(t, "about:blank", f.URL())

	require.NoError(t, f.Navigate("http://a"))
	require.NoError(t, f.Navigate("http://b"))
	require.NoError(t, f.GoBack())
	assert.Equal(t, "http://a", f.URL())

	require.NoError(t, f.GoForward())
	assert.Equal(t, "http://b", f.URL())

	require.NoError(t, f.GoBack())
	require.NoError(t, f.Navigate("http://c"))
	require.NoError(t, f.GoForward())
	assert.Equal(t, "http://c", f.URL(), "navigating drops forward history")
}

func TestSelectAndHover(t *testing.T) {
	f := New()
	sel := locator.MustCSS("select#sort")
	f.Set(sel, Element{})

	require.NoError(t, f.Select(sel, "price-asc"))
	assert.Equal(t, "price-asc", f.Get(sel, 0).Attrs["value"])

	require.NoError(t, f.SelectByText(sel, "Price (low to high)"))
	assert.Equal(t, "Price (low to high)", f.Get(sel, 0).Attrs["value"])

	require.NoError(t, f.Hover(sel))
	assert.Len(t, f.Calls, 3)
}

func TestHiddenElementIsNotInteractable(t *testing.T) {
	f := New()
	btn := locator.MustCSS("button.apply")
	f.Set(btn, Element{Hidden: true})

	assert.ErrorIs(t, f.Click(btn), ErrNotInteractable)

	// text can still be read from hidden nodes
	_, err := f.Text(btn)
	assert.NoError(t, err)
}

func TestTitle(t *testing.T) {
	f := New()
	f.SetTitle("Simplenight")

	title, err := f.Title()
	require.NoError(t, err)
	assert.Equal(t, "Simplenight", title)
}
