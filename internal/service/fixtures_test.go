package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/GTDGit/gtd_catalog/internal/models"
	"github.com/GTDGit/gtd_catalog/pkg/fakestore"
)

func product(id int, title, category string, price, rate float64) models.Product {
	return models.Product{
		ID:       id,
		Title:    title,
		Price:    price,
		Category: category,
		Image:    fmt.Sprintf("https://img.example.com/%d.png", id),
		Rating:   models.Rating{Rate: rate, Count: id * 10},
	}
}

// fixtureProducts is a 20-item catalog shaped like the demo API.
func fixtureProducts() []models.Product {
	return []models.Product{
		product(1, "Fjallraven Backpack", "men's clothing", 109.95, 3.9),
		product(2, "Slim Fit T-Shirts", "men's clothing", 22.3, 4.1),
		product(3, "Cotton Jacket", "men's clothing", 55.99, 4.7),
		product(4, "Casual Slim Fit", "men's clothing", 15.99, 2.1),
		product(5, "Dragon Station Chain Bracelet", "jewelery", 695, 4.6),
		product(6, "Solid Gold Petite Micropave", "jewelery", 168, 3.9),
		product(7, "White Gold Plated Princess", "jewelery", 9.99, 3),
		product(8, "Rose Gold Plated Earrings", "jewelery", 10.99, 1.9),
		product(9, "WD 2TB Elements Portable Hard Drive", "electronics", 64, 3.3),
		product(10, "SanDisk SSD PLUS 1TB", "electronics", 109, 2.9),
		product(11, "Silicon Power 256GB SSD", "electronics", 109, 4.8),
		product(12, "WD 4TB Gaming Drive", "electronics", 114, 4.8),
		product(13, "Acer 21.5 inch Monitor", "electronics", 599, 2.9),
		product(14, "Samsung 49-Inch Gaming Monitor", "electronics", 999.99, 2.2),
		product(15, "Snowboard Jacket Winter Coats", "women's clothing", 56.99, 2.6),
		product(16, "Leather Moto Biker Jacket", "women's clothing", 29.95, 2.9),
		product(17, "Rain Jacket Windbreaker", "women's clothing", 39.99, 3.8),
		product(18, "Solid Short Sleeve Boat Neck", "women's clothing", 9.85, 4.7),
		product(19, "Short Sleeve Moisture", "women's clothing", 7.95, 4.5),
		product(20, "DANVOUY Womens T Shirt", "women's clothing", 12.99, 3.6),
	}
}

func fixtureCategories() []string {
	return []string{"electronics", "jewelery", "men's clothing", "women's clothing"}
}

// fakeCatalog is an in-memory CatalogClient that counts upstream calls.
type fakeCatalog struct {
	mu         sync.Mutex
	products   []models.Product
	categories []string
	err        error
	calls      map[string]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products:   fixtureProducts(),
		categories: fixtureCategories(),
		calls:      map[string]int{},
	}
}

func (f *fakeCatalog) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.err
}

func (f *fakeCatalog) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func toUpstream(p models.Product) fakestore.Product {
	return fakestore.Product{
		ID: p.ID, Title: p.Title, Price: p.Price, Description: p.Description,
		Category: p.Category, Image: p.Image,
		Rating: fakestore.Rating{Rate: p.Rating.Rate, Count: p.Rating.Count},
	}
}

func (f *fakeCatalog) GetProducts(context.Context) ([]fakestore.Product, error) {
	if err := f.hit("products"); err != nil {
		return nil, err
	}
	out := make([]fakestore.Product, len(f.products))
	for i, p := range f.products {
		out[i] = toUpstream(p)
	}
	return out, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int) (*fakestore.Product, error) {
	if err := f.hit("product"); err != nil {
		return nil, err
	}
	for _, p := range f.products {
		if p.ID == id {
			up := toUpstream(p)
			return &up, nil
		}
	}
	return nil, &fakestore.FetchError{Op: "get product", StatusCode: 404}
}

func (f *fakeCatalog) GetCategories(context.Context) ([]string, error) {
	if err := f.hit("categories"); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeCatalog) GetProductsByCategory(_ context.Context, category string) ([]fakestore.Product, error) {
	if err := f.hit("category"); err != nil {
		return nil, err
	}
	var out []fakestore.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, toUpstream(p))
		}
	}
	return out, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, req *fakestore.ProductRequest) (*fakestore.Product, error) {
	if err := f.hit("create"); err != nil {
		return nil, err
	}
	return &fakestore.Product{ID: 21, Title: req.Title}, nil
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, id int, req *fakestore.ProductRequest) (*fakestore.Product, error) {
	if err := f.hit("update"); err != nil {
		return nil, err
	}
	return &fakestore.Product{ID: id, Title: req.Title}, nil
}

func (f *fakeCatalog) DeleteProduct(context.Context, int) error {
	return f.hit("delete")
}
