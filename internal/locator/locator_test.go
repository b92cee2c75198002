package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateResolve(t *testing.T) {
	tmpl := CSSTemplate(`button[data-testid*="category(static:%s)"]`)

	l, err := tmpl.Resolve("hotels")
	require.NoError(t, err)
	assert.Equal(t, KindCSS, l.Kind())
	assert.Equal(t, `button[data-testid*="category(static:hotels)"]`, l.Selector())
	_, indexed := l.Index()
	assert.False(t, indexed)
}

func TestTemplateResolve_InvalidParams(t *testing.T) {
	tmpl := CSSTemplate(`span[data-testid*="form_dates_calendar_day(%s)"]`)

	tests := []struct {
		name   string
		params []string
	}{
		{"missing parameter", nil},
		{"too many parameters", []string{"2025-12-10", "2025-12-15"}},
		{"empty parameter", []string{"  "}},
		{"quote breaks attribute selector", []string{`2025"-12`}},
		{"newline", []string{"2025\n12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tmpl.Resolve(tt.params...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParam)
		})
	}
}

func TestXPathTemplate(t *testing.T) {
	l, err := XPathTemplate(`//div[@data-combobox-option="true"][@value="%s"]`).Resolve("price-asc")
	require.NoError(t, err)
	assert.Equal(t, KindXPath, l.Kind())
	assert.Equal(t, `xpath=//div[@data-combobox-option="true"][@value="price-asc"]`, l.String())
}

func TestNthAndFirst(t *testing.T) {
	base := MustCSS(`gmp-advanced-marker[role="button"]`)

	first := base.First()
	i, ok := first.Index()
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	second := base.Nth(1)
	i, ok = second.Index()
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, `gmp-advanced-marker[role="button"] >> nth=1`, second.String())

	// narrowing returns a copy
	_, ok = base.Index()
	assert.False(t, ok)
}

func TestRole(t *testing.T) {
	l, err := Role("button", "Grid")
	require.NoError(t, err)
	assert.Equal(t, "button", l.Selector())
	assert.Equal(t, "Grid", l.Name())
	assert.Equal(t, `role=button[name="Grid"]`, l.String())

	_, err = Role("button", "")
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestEmptySelector(t *testing.T) {
	_, err := CSS("")
	assert.Error(t, err)

	assert.Panics(t, func() { MustCSS(" ") })
	assert.True(t, Locator{}.IsZero())
}
