package catalog

// Product is the canonical record every upstream response shape is reconciled
// into. Every field has a defined default so normalization is total over
// arbitrary loosely-typed input.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	NameAr        string  `json:"nameAr,omitempty"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	IsNew         bool    `json:"isNew,omitempty"`
	Discount      string  `json:"discount,omitempty"`
	Featured      bool    `json:"featured,omitempty"`
	DateAdded     string  `json:"dateAdded,omitempty"`
	Description   string  `json:"description,omitempty"`
	Stock         int     `json:"stock,omitempty"`
}

// Page is one page of the upstream's paginated "all" listing plus whatever
// pagination metadata it exposed.
type Page struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Total      int       `json:"total"`
}

const (
	defaultName  = "Unknown Product"
	defaultImage = "/placeholder.svg"
	defaultOther = "unknown"
)
