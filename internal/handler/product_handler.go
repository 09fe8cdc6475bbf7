package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_catalog/internal/models"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

// ProductHandler handles product-related HTTP endpoints.
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GetProducts returns the filtered product list, one page at a time.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	spec := service.ParseFilterSpec(c.Request.URL.Query())
	page := service.ParsePage(c.Query("page"))

	limit := service.ProductsPageSize
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := h.catalogService.SearchProducts(c.Request.Context(), spec, page, limit)
	if err != nil {
		apiError(c, err)
		return
	}

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": list.Products,
		"filter":   list.Filter,
	}, utils.Pagination{
		Page:       list.Page,
		Limit:      list.PageSize,
		TotalItems: list.TotalItems,
		TotalPages: list.TotalPages,
	})
}

// GetCategories returns the category names.
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		apiError(c, err)
		return
	}
	utils.Success(c, 200, "Categories retrieved successfully", gin.H{
		"categories": categories,
	})
}

// GetProductsByCategory returns every product of one category.
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")
	products, err := h.catalogService.ListProductsByCategory(c.Request.Context(), category)
	if err != nil {
		apiError(c, err)
		return
	}
	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"category": category,
		"products": products,
	})
}

// GetProduct returns one product.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		utils.Error(c, 404, utils.CodeProductNotFound, "Product not found")
		return
	}
	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		apiError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", product)
}

// CreateProduct simulates a product create.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	product, err := h.catalogService.CreateProduct(c.Request.Context(), payload)
	if err != nil {
		apiError(c, err)
		return
	}
	utils.Success(c, 201, "Product created (simulated)", product)
}

// UpdateProduct simulates a product update.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		utils.Error(c, 404, utils.CodeProductNotFound, "Product not found")
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, payload)
	if err != nil {
		apiError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated (simulated)", product)
}

// DeleteProduct simulates a product delete.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		utils.Error(c, 404, utils.CodeProductNotFound, "Product not found")
		return
	}
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		apiError(c, err)
		return
	}
	utils.Success(c, 200, "Product deleted (simulated)", gin.H{"id": id})
}

func bindPayload(c *gin.Context) (*models.ProductPayload, bool) {
	var payload models.ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.Error(c, 400, utils.CodeInvalidRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if errs := service.ValidatePayload(&payload); errs != nil {
		utils.ErrorWithFields(c, 400, utils.CodeInvalidRequest, "Validation failed", errs)
		return nil, false
	}
	return &payload, true
}
