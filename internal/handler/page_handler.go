package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_catalog/internal/middleware"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/utils"
)

// Notices shown on the product list after a simulated write.
var notices = map[string]string{
	"created": "Product created. The demo catalog does not persist writes.",
	"updated": "Product updated. The demo catalog does not persist writes.",
	"deleted": "Product deleted. The demo catalog does not persist writes.",
}

// PageHandler renders the server-side dashboard screens.
type PageHandler struct {
	authService    *service.AuthService
	catalogService *service.CatalogService
	cookieSecure   bool
}

// NewPageHandler constructs a PageHandler.
func NewPageHandler(authService *service.AuthService, catalogService *service.CatalogService, cookieSecure bool) *PageHandler {
	return &PageHandler{
		authService:    authService,
		catalogService: catalogService,
		cookieSecure:   cookieSecure,
	}
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// Root sends the browser to the dashboard or the login screen.
func (h *PageHandler) Root(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginForm renders the login screen.
func (h *PageHandler) LoginForm(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Email": "", "Error": ""})
}

// Login handles the login form submit. A rejected login re-renders the form
// with the entered email kept.
func (h *PageHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	_, _, err := startSession(c, h.authService, h.cookieSecure, email, c.PostForm("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Login",
			"Email": email,
			"Error": "Invalid email or password",
		})
		return
	}
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session and returns to the login screen.
func (h *PageHandler) Logout(c *gin.Context) {
	endSession(c, h.authService, h.cookieSecure)
	c.Redirect(http.StatusSeeOther, "/login")
}

// Dashboard renders the stat tiles and recent products.
func (h *PageHandler) Dashboard(c *gin.Context) {
	dash, err := h.catalogService.LoadDashboard(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":     "Dashboard",
		"Nav":       "dashboard",
		"Dashboard": dash,
	})
}

// Products renders the filter panel and one page of the product table.
func (h *PageHandler) Products(c *gin.Context) {
	ctx := c.Request.Context()
	spec := service.ParseFilterSpec(c.Request.URL.Query())
	page := service.ParsePage(c.Query("page"))

	list, err := h.catalogService.SearchProducts(ctx, spec, page, service.ProductsPageSize)
	if err != nil {
		h.renderError(c, err)
		return
	}
	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}

	pages := make([]pageLink, 0, list.TotalPages)
	for n := 1; n <= list.TotalPages; n++ {
		pages = append(pages, pageLink{Number: n, URL: pageURL(spec, n), Current: n == list.Page})
	}
	var prevURL, nextURL string
	if list.Page > 1 {
		prevURL = pageURL(spec, list.Page-1)
	}
	if list.Page < list.TotalPages {
		nextURL = pageURL(spec, list.Page+1)
	}

	h.render(c, http.StatusOK, "products.html", gin.H{
		"Title":      "Products",
		"Nav":        "products",
		"Filter":     spec,
		"List":       list,
		"Categories": categories,
		"Pages":      pages,
		"PrevURL":    prevURL,
		"NextURL":    nextURL,
		"Notice":     notices[c.Query("notice")],
	})
}

// ProductDetail renders one product, or the not-found view.
func (h *PageHandler) ProductDetail(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "product_detail.html", gin.H{
		"Title":   product.Title,
		"Nav":     "products",
		"Product": product,
		"Notice":  notices[c.Query("notice")],
	})
}

// AddForm renders the empty create form.
func (h *PageHandler) AddForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, 0, service.ProductForm{}, service.FormErrors{})
}

// Add validates the create form and simulates the create.
func (h *PageHandler) Add(c *gin.Context) {
	var form service.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn().Err(err).Msg("Failed to bind product form")
	}
	payload, errs := form.Parse()
	if errs != nil {
		h.renderForm(c, http.StatusBadRequest, 0, form, errs)
		return
	}
	if _, err := h.catalogService.CreateProduct(c.Request.Context(), payload); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/products?notice=created")
}

// EditForm renders the form prefilled from the stored product.
func (h *PageHandler) EditForm(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderForm(c, http.StatusOK, id, service.NewProductForm(product), service.FormErrors{})
}

// Edit validates the edit form and simulates the update.
func (h *PageHandler) Edit(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	var form service.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		log.Warn().Err(err).Msg("Failed to bind product form")
	}
	payload, errs := form.Parse()
	if errs != nil {
		h.renderForm(c, http.StatusBadRequest, id, form, errs)
		return
	}
	if _, err := h.catalogService.UpdateProduct(c.Request.Context(), id, payload); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/products/"+strconv.Itoa(id)+"?notice=updated")
}

// Delete records the delete intent and returns to the list.
func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		h.renderNotFound(c)
		return
	}
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/products?notice=deleted")
}

// NotFound renders the not-found view for unknown routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	h.renderNotFound(c)
}

func (h *PageHandler) renderForm(c *gin.Context, status, id int, form service.ProductForm, errs service.FormErrors) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	title, action, back := "Add Product", "/dashboard/products/add", "/dashboard/products"
	nav := "add"
	if id > 0 {
		title = "Edit Product"
		action = "/dashboard/products/edit/" + strconv.Itoa(id)
		back = "/dashboard/products/" + strconv.Itoa(id)
		nav = "products"
	}

	h.render(c, status, "product_form.html", gin.H{
		"Title":      title,
		"Nav":        nav,
		"ProductID":  id,
		"Action":     action,
		"BackURL":    back,
		"Form":       form,
		"Errors":     errs,
		"Preview":    form.PreviewImage(),
		"Categories": categories,
	})
}

func (h *PageHandler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found.html", gin.H{
		"Title": "Not found",
		"Nav":   "products",
	})
}

// renderError shows the not-found view for unknown products and the generic
// error view for everything else. Nothing is retried.
func (h *PageHandler) renderError(c *gin.Context, err error) {
	status, code := statusFor(err)
	switch code {
	case utils.CodeProductNotFound:
		h.renderNotFound(c)
		return
	case utils.CodeUnauthorized:
		c.Redirect(http.StatusFound, "/login")
		return
	}

	log.Error().Err(err).Str("request_id", utils.GetRequestID(c)).Str("path", c.Request.URL.Path).Msg("Page failed")
	msg := "An unexpected error occurred."
	if code == utils.CodeUpstreamError {
		msg = "The product catalog could not be reached. Please try again later."
	}
	h.render(c, status, "error.html", gin.H{
		"Title":   "Error",
		"Message": msg,
	})
}

func (h *PageHandler) render(c *gin.Context, status int, name string, data gin.H) {
	data["User"] = middleware.CurrentUser(c)
	if _, ok := data["Nav"]; !ok {
		data["Nav"] = ""
	}
	c.HTML(status, name, data)
}

func pageURL(spec service.FilterSpec, page int) string {
	q := spec.Query()
	q.Set("page", strconv.Itoa(page))
	return "/dashboard/products?" + q.Encode()
}
