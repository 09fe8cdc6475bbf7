package service

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_catalog/internal/models"
)

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApplyFilters_CategoryAndRating(t *testing.T) {
	spec := DefaultFilterSpec()
	spec.Category = "electronics"
	spec.MinRating = 4

	got := ApplyFilters(fixtureProducts(), spec)
	assert.Equal(t, []int{11, 12}, ids(got))
	for _, p := range got {
		assert.Equal(t, "electronics", p.Category)
		assert.GreaterOrEqual(t, p.Rating.Rate, 4.0)
	}
}

func TestApplyFilters_SearchIsCaseInsensitive(t *testing.T) {
	spec := DefaultFilterSpec()
	spec.Search = "JACKET"

	got := ApplyFilters(fixtureProducts(), spec)
	assert.Equal(t, []int{3, 15, 16, 17}, ids(got))
}

func TestApplyFilters_PriceBoundsInclusive(t *testing.T) {
	spec := DefaultFilterSpec()
	spec.MinPrice = 109
	spec.MaxPrice = 109.95

	got := ApplyFilters(fixtureProducts(), spec)
	assert.Equal(t, []int{1, 10, 11}, ids(got))
}

func TestApplyFilters_DefaultSpecDropsOnlyOutOfRange(t *testing.T) {
	got := ApplyFilters(fixtureProducts(), DefaultFilterSpec())
	assert.Len(t, got, 20)
}

func TestApplyFilters_EmptyInput(t *testing.T) {
	got := ApplyFilters(nil, DefaultFilterSpec())
	assert.NotNil(t, got)
	assert.Empty(t, got)

	page, total := Paginate(got, 1, ProductsPageSize)
	assert.Empty(t, page)
	assert.Equal(t, 1, total)
}

func TestApplyFilters_SubsequenceAndIdempotent(t *testing.T) {
	specs := []FilterSpec{
		DefaultFilterSpec(),
		{Search: "gold", MaxPrice: 1000},
		{Category: "women's clothing", MinPrice: 10, MaxPrice: 60, MinRating: 3},
		{Search: "s", MinPrice: 0, MaxPrice: 100, MinRating: 2.5},
		{Category: "nope", MaxPrice: 1000},
		{MinPrice: 500, MaxPrice: 100},
	}
	input := fixtureProducts()

	for _, spec := range specs {
		got := ApplyFilters(input, spec)

		// order-preserving subsequence
		j := 0
		for _, p := range got {
			for j < len(input) && input[j].ID != p.ID {
				j++
			}
			require.Less(t, j, len(input), "result is not a subsequence for %+v", spec)
			j++
			assert.True(t, spec.Matches(&p))
		}

		assert.Equal(t, got, ApplyFilters(got, spec))
	}
}

func TestPaginate_ReconstructsList(t *testing.T) {
	items := fixtureProducts()
	for size := 1; size <= len(items)+2; size++ {
		_, totalPages := Paginate(items, 1, size)
		assert.Equal(t, (len(items)+size-1)/size, totalPages)

		var joined []models.Product
		for page := 1; page <= totalPages; page++ {
			chunk, _ := Paginate(items, page, size)
			joined = append(joined, chunk...)
		}
		assert.Equal(t, items, joined, "page size %d", size)

		past, _ := Paginate(items, totalPages+1, size)
		assert.Empty(t, past)
	}
}

func TestPaginate_Guards(t *testing.T) {
	items := fixtureProducts()

	page, total := Paginate(items, 0, 8)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(page))
	assert.Equal(t, 3, total)

	page, total = Paginate(items, 3, 8)
	assert.Equal(t, []int{17, 18, 19, 20}, ids(page))
	assert.Equal(t, 3, total)

	_, total = Paginate(items, 1, 0)
	assert.Equal(t, 20, total)
}

func TestPaginate_HugeValuesDoNotOverflow(t *testing.T) {
	items := fixtureProducts()

	page, total := Paginate(items, math.MaxInt64/8+2, 8)
	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 3, total)

	page, total = Paginate(items, 3, 1<<62)
	assert.Empty(t, page)
	assert.Equal(t, 1, total)

	page, total = Paginate(items, 1, math.MaxInt)
	assert.Len(t, page, len(items))
	assert.Equal(t, 1, total)
}

func TestParseFilterSpec_KeepsSearchVerbatim(t *testing.T) {
	spec := ParseFilterSpec(url.Values{"search": {" "}})
	assert.Equal(t, " ", spec.Search)
	assert.False(t, spec.IsDefault())

	items := []models.Product{
		product(1, "Backpack", "men's clothing", 109.95, 3.9),
		product(2, "Gold Ring", "jewelery", 168, 3.9),
	}
	assert.Equal(t, []int{2}, ids(ApplyFilters(items, spec)))
}

func TestParseFilterSpec(t *testing.T) {
	spec := ParseFilterSpec(url.Values{
		"search":    {"  bag "},
		"category":  {"jewelery"},
		"minPrice":  {"700"},
		"maxPrice":  {"200"},
		"minRating": {"9"},
	})
	assert.Equal(t, "  bag ", spec.Search)
	assert.Equal(t, "jewelery", spec.Category)
	assert.Equal(t, 200.0, spec.MinPrice)
	assert.Equal(t, 200.0, spec.MaxPrice)
	assert.Equal(t, 5.0, spec.MinRating)
}

func TestParseFilterSpec_BadNumbersFallBack(t *testing.T) {
	spec := ParseFilterSpec(url.Values{
		"minPrice":  {"abc"},
		"maxPrice":  {"5000"},
		"minRating": {"NaN"},
	})
	assert.Equal(t, DefaultFilterSpec(), spec)
	assert.True(t, spec.IsDefault())
}

func TestFilterSpec_QueryRoundTrip(t *testing.T) {
	spec := FilterSpec{Search: "ssd", Category: "electronics", MinPrice: 50, MaxPrice: 150.5, MinRating: 4}
	q := spec.Query()
	assert.Empty(t, q.Get("page"))
	assert.Equal(t, spec, ParseFilterSpec(q))

	assert.Empty(t, DefaultFilterSpec().Query().Encode())
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 1, ParsePage("x"))
	assert.Equal(t, 4, ParsePage("4"))
}
