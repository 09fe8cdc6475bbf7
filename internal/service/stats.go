package service

import (
	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_catalog/internal/models"
)

// HighestRated names the best-rated product of a list.
type HighestRated struct {
	ID     int     `json:"id,omitempty"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
}

// DashboardStats are the summary tiles of the dashboard.
type DashboardStats struct {
	TotalProducts   int          `json:"totalProducts"`
	TotalCategories int          `json:"totalCategories"`
	AvgPrice        float64      `json:"avgPrice"`
	HighestRated    HighestRated `json:"highestRated"`
}

// ComputeStats derives the dashboard tiles from the product and category
// lists. With no products every field stays zero.
func ComputeStats(products []models.Product, categories []string) DashboardStats {
	var stats DashboardStats
	if len(products) == 0 {
		return stats
	}

	sum := decimal.Zero
	best := 0
	for i := range products {
		sum = sum.Add(decimal.NewFromFloat(products[i].Price))
		// strict > keeps the first of equal rates
		if products[i].Rating.Rate > products[best].Rating.Rate {
			best = i
		}
	}

	stats.TotalProducts = len(products)
	stats.TotalCategories = len(categories)
	stats.AvgPrice = sum.Div(decimal.NewFromInt(int64(len(products)))).Round(2).InexactFloat64()
	stats.HighestRated = HighestRated{
		ID:     products[best].ID,
		Title:  products[best].Title,
		Rating: products[best].Rating.Rate,
	}
	return stats
}
