// Package entity contains the core business objects of the storefront,
// each representing a unique, identifiable concept within the domain.
package entity

// Product is a read-only catalog entry. The catalog owns it; cart and order
// records keep their own frozen copies of the fields they need.
type Product struct {
	ID        string   `json:"id"`                  // Catalog-wide unique identifier.
	Name      string   `json:"name"`                // Display name.
	Price     float64  `json:"price"`               // List price, never negative.
	SalePrice *float64 `json:"salePrice,omitempty"` // Discounted price; when set it is <= Price.
	Discount  int      `json:"discount,omitempty"`  // Advertised discount percentage.
	Category  string   `json:"category"`
	Brand     string   `json:"brand"`
	Image     string   `json:"image"` // Image reference (URL or storage key).
	Alt       string   `json:"alt"`   // Accessible description of the image.
	Rating    float64  `json:"rating"`
	Reviews   int      `json:"reviews"` // Review count.
	IsNew     bool     `json:"isNew,omitempty"`
	InStock   bool     `json:"inStock"`
	Sizes     []string `json:"sizes"`
	Colors    []string `json:"colors"`
	DateAdded string   `json:"dateAdded"` // ISO date the product entered the catalog.
}

// EffectivePrice returns the price a buyer actually pays: the sale price when
// one is set, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}

	return p.Price
}
