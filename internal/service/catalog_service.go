package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/GTDGit/gtd_catalog/internal/cache"
	"github.com/GTDGit/gtd_catalog/internal/models"
	"github.com/GTDGit/gtd_catalog/internal/sse"
	"github.com/GTDGit/gtd_catalog/pkg/fakestore"
)

// RecentProductsLimit is the number of products listed on the dashboard.
const RecentProductsLimit = 5

// ErrProductNotFound is returned for unknown or malformed product ids.
var ErrProductNotFound = errors.New("product not found")

// CatalogClient is the upstream catalog API.
type CatalogClient interface {
	GetProducts(ctx context.Context) ([]fakestore.Product, error)
	GetProduct(ctx context.Context, id int) (*fakestore.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetProductsByCategory(ctx context.Context, category string) ([]fakestore.Product, error)
	CreateProduct(ctx context.Context, req *fakestore.ProductRequest) (*fakestore.Product, error)
	UpdateProduct(ctx context.Context, id int, req *fakestore.ProductRequest) (*fakestore.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

// CatalogService serves catalog reads through the request cache and
// simulates writes.
type CatalogService struct {
	client     CatalogClient
	cache      *cache.CatalogCache
	notifier   sse.ProductNotifier
	writeDelay time.Duration
}

// NewCatalogService constructs a CatalogService. A nil notifier disables
// write events.
func NewCatalogService(client CatalogClient, catalogCache *cache.CatalogCache, notifier sse.ProductNotifier, writeDelay time.Duration) *CatalogService {
	if notifier == nil {
		notifier = &sse.NopNotifier{}
	}
	return &CatalogService{
		client:     client,
		cache:      catalogCache,
		notifier:   notifier,
		writeDelay: writeDelay,
	}
}

// ProductList is one page of the filtered product list.
type ProductList struct {
	Products   []models.Product `json:"products"`
	Filter     FilterSpec       `json:"filter"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

// Dashboard is everything the dashboard screen renders.
type Dashboard struct {
	Stats          DashboardStats   `json:"stats"`
	RecentProducts []models.Product `json:"recentProducts"`
}

// ListProducts returns every product.
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.readThrough(ctx, cache.KeyProducts(), &products, func() (any, error) {
		raw, err := s.client.GetProducts(ctx)
		if err != nil {
			return nil, err
		}
		products = toModels(raw)
		return products, nil
	})
	return products, err
}

// ListCategories returns the category names.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.readThrough(ctx, cache.KeyCategories(), &categories, func() (any, error) {
		raw, err := s.client.GetCategories(ctx)
		if err != nil {
			return nil, err
		}
		categories = raw
		return categories, nil
	})
	return categories, err
}

// ListProductsByCategory returns the products of one category.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := s.readThrough(ctx, cache.KeyCategory(category), &products, func() (any, error) {
		raw, err := s.client.GetProductsByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		products = toModels(raw)
		return products, nil
	})
	return products, err
}

// GetProduct returns one product or ErrProductNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, ErrProductNotFound
	}
	var product models.Product
	err := s.readThrough(ctx, cache.KeyProduct(id), &product, func() (any, error) {
		raw, err := s.client.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		product = toModel(raw)
		return product, nil
	})
	if fakestore.IsNotFound(err) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts filters the full list and returns the requested page.
func (s *CatalogService) SearchProducts(ctx context.Context, spec FilterSpec, page, pageSize int) (*ProductList, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if pageSize < 1 {
		pageSize = ProductsPageSize
	}
	if page < 1 {
		page = 1
	}
	matched := ApplyFilters(products, spec)
	items, totalPages := Paginate(matched, page, pageSize)
	return &ProductList{
		Products:   items,
		Filter:     spec,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(matched),
		TotalPages: totalPages,
	}, nil
}

// LoadDashboard fetches products and categories concurrently and derives
// the dashboard stats once both are in.
func (s *CatalogService) LoadDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		products   []models.Product
		categories []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recent := products
	if len(recent) > RecentProductsLimit {
		recent = recent[:RecentProductsLimit]
	}
	return &Dashboard{
		Stats:          ComputeStats(products, categories),
		RecentProducts: recent,
	}, nil
}

// WarmCache refetches the product and category lists from the upstream and
// overwrites their cache entries. Per-product and per-category entries are
// left to expire on their own.
func (s *CatalogService) WarmCache(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := s.client.GetProducts(gctx)
		if err != nil {
			return fmt.Errorf("warm products: %w", err)
		}
		return s.cache.Set(gctx, cache.KeyProducts(), toModels(raw))
	})
	g.Go(func() error {
		raw, err := s.client.GetCategories(gctx)
		if err != nil {
			return fmt.Errorf("warm categories: %w", err)
		}
		return s.cache.Set(gctx, cache.KeyCategories(), raw)
	})
	return g.Wait()
}

// CreateProduct simulates a create. The upstream call is made but its
// result is discarded; nothing is cached or persisted.
func (s *CatalogService) CreateProduct(ctx context.Context, payload *models.ProductPayload) (*models.Product, error) {
	if _, err := s.client.CreateProduct(ctx, toRequest(payload)); err != nil {
		log.Warn().Err(err).Str("title", payload.Title).Msg("Mock create failed upstream")
	}
	if err := sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}

	product := fromPayload(0, payload)
	log.Info().Str("title", product.Title).Msg("Product create simulated")
	s.notifier.NotifyProductCreated(&product)
	return &product, nil
}

// UpdateProduct simulates an update of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, payload *models.ProductPayload) (*models.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.client.UpdateProduct(ctx, id, toRequest(payload)); err != nil {
		log.Warn().Err(err).Int("product_id", id).Msg("Mock update failed upstream")
	}
	if err := sleep(ctx, s.writeDelay); err != nil {
		return nil, err
	}

	product := fromPayload(id, payload)
	log.Info().Int("product_id", id).Msg("Product update simulated")
	s.notifier.NotifyProductUpdated(&product)
	return &product, nil
}

// DeleteProduct records a delete intent. No store is modified.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		log.Warn().Err(err).Int("product_id", id).Msg("Mock delete failed upstream")
	}
	log.Info().Int("product_id", id).Msg("Deleting product")
	s.notifier.NotifyProductDeleted(product)
	return nil
}

// readThrough serves key from the cache, or calls fetch and caches its
// result. Failed fetches are not cached.
func (s *CatalogService) readThrough(ctx context.Context, key string, dst any, fetch func() (any, error)) error {
	err := s.cache.Get(ctx, key, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}

	value, err := fetch()
	if err != nil {
		return fmt.Errorf("fetch %s: %w", key, err)
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return nil
}

func toModel(p *fakestore.Product) models.Product {
	return models.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating: models.Rating{
			Rate:  p.Rating.Rate,
			Count: p.Rating.Count,
		},
	}
}

func toModels(raw []fakestore.Product) []models.Product {
	out := make([]models.Product, len(raw))
	for i := range raw {
		out[i] = toModel(&raw[i])
	}
	return out
}

func toRequest(p *models.ProductPayload) *fakestore.ProductRequest {
	return &fakestore.ProductRequest{
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
	}
}

func fromPayload(id int, p *models.ProductPayload) models.Product {
	return models.Product{
		ID:          id,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      p.Rating,
	}
}
