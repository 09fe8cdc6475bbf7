package web

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_catalog/internal/models"
)

func TestFuncMap(t *testing.T) {
	funcs := FuncMap()

	assert.Equal(t, models.PlaceholderImage, funcs["placeholder"].(func() string)())
	assert.Equal(t, "$109.95", funcs["price"].(func(float64) string)(109.95))
	assert.Equal(t, "4.8", funcs["rating"].(func(float64) string)(4.8))
	assert.Equal(t, "Electronics", funcs["title"].(func(string) string)("electronics"))

	selected := funcs["selected"].(func(a, b string) template.HTMLAttr)
	assert.Equal(t, template.HTMLAttr("selected"), selected("jewelery", "jewelery"))
	assert.Empty(t, selected("jewelery", "electronics"))
}

func TestTemplates(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"login.html", "dashboard.html", "products.html", "product_detail.html", "product_form.html", "not_found.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
