package service

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_catalog/internal/models"
)

// FormErrors maps a form field name to its validation message.
type FormErrors map[string]string

// ProductForm is the create/edit form state. Numeric fields are held as the
// text the user typed and only parsed on submit.
type ProductForm struct {
	Title       string `form:"title"`
	Price       string `form:"price"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Image       string `form:"image"`
	Rate        string `form:"rate"`
	Count       string `form:"count"`
}

// NewProductForm prefills the form from an existing product.
func NewProductForm(p *models.Product) ProductForm {
	if p == nil {
		return ProductForm{}
	}
	return ProductForm{
		Title:       p.Title,
		Price:       formatFloat(p.Price),
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rate:        formatFloat(p.Rating.Rate),
		Count:       strconv.Itoa(p.Rating.Count),
	}
}

// Parse validates the form and converts it to a typed payload.
func (f ProductForm) Parse() (*models.ProductPayload, FormErrors) {
	errs := FormErrors{}
	payload := &models.ProductPayload{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.Category),
		Image:       strings.TrimSpace(f.Image),
	}

	if payload.Title == "" {
		errs["title"] = "Title is required"
	}
	if payload.Description == "" {
		errs["description"] = "Description is required"
	}
	if payload.Category == "" {
		errs["category"] = "Category is required"
	}
	if payload.Image == "" {
		errs["image"] = "Image URL is required"
	} else if !isHTTPURL(payload.Image) {
		errs["image"] = "Image URL must be an http(s) URL"
	}

	if price, msg := parsePrice(f.Price); msg != "" {
		errs["price"] = msg
	} else {
		payload.Price = price
	}

	if rate := strings.TrimSpace(f.Rate); rate != "" {
		v, err := strconv.ParseFloat(rate, 64)
		if err != nil || v < 0 || v > MaxRating {
			errs["rate"] = "Rating must be a number between 0 and 5"
		} else {
			payload.Rating.Rate = v
		}
	}
	if count := strings.TrimSpace(f.Count); count != "" {
		v, err := strconv.Atoi(count)
		if err != nil || v < 0 {
			errs["count"] = "Review count must be a whole number of at least 0"
		} else {
			payload.Rating.Count = v
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return payload, nil
}

// PreviewImage returns the image to preview, or the placeholder when the
// URL is empty or unusable.
func (f ProductForm) PreviewImage() string {
	img := strings.TrimSpace(f.Image)
	if img == "" || !isHTTPURL(img) {
		return models.PlaceholderImage
	}
	return img
}

// ValidatePayload applies the form's numeric rules to a payload that
// arrived as JSON.
func ValidatePayload(p *models.ProductPayload) FormErrors {
	errs := FormErrors{}
	if strings.TrimSpace(p.Title) == "" {
		errs["title"] = "Title is required"
	}
	if p.Price < 0 {
		errs["price"] = "Price must be at least 0"
	}
	if p.Rating.Rate < 0 || p.Rating.Rate > MaxRating {
		errs["rate"] = "Rating must be a number between 0 and 5"
	}
	if p.Rating.Count < 0 {
		errs["count"] = "Review count must be a whole number of at least 0"
	}
	if p.Image != "" && !isHTTPURL(p.Image) {
		errs["image"] = "Image URL must be an http(s) URL"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func parsePrice(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Price is required"
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, "Price must be a number"
	}
	if d.IsNegative() {
		return 0, "Price must be at least 0"
	}
	return d.Round(2).InexactFloat64(), ""
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
