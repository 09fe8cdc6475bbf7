package models

// PlaceholderImage is shown when a product image is missing or unusable.
const PlaceholderImage = "https://via.placeholder.com/150?text=Image+Error"

// Product represents a catalog item. Products are owned by the upstream
// catalog and are never mutated locally.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Rating is the composite review score of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// ProductPayload is the typed body of a create/edit submission.
type ProductPayload struct {
	Title       string  `json:"title" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Image       string  `json:"image" binding:"required"`
	Rating      Rating  `json:"rating"`
}
