package catalog

// MaxNameLength bounds the product name, matching the store's column width.
const MaxNameLength = 255

// Product is the canonical catalog record. The identifier is generated at
// creation and immutable afterwards; identifiers are never reused.
type Product struct {
	ID          string  `json:"id" msgpack:"id"`
	Name        string  `json:"name" msgpack:"name"`
	Description string  `json:"description" msgpack:"description"`
	Price       float64 `json:"price" msgpack:"price"`
	Stock       int     `json:"stock_quantity" msgpack:"stock_quantity"`
}

// ProductInput carries the caller-supplied fields for a new product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

func (in ProductInput) Validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(in.Name) > MaxNameLength {
		return &ValidationError{Field: "name", Reason: "too long"}
	}
	if in.Description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if in.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	if in.Stock < 0 {
		return &ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	return nil
}

// ProductPatch is an explicit optional-field set for partial updates.
// Nil fields are left unchanged by the store.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
}

// Empty reports whether no field is set.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Stock == nil
}

// Validate checks only the fields that are set.
func (p ProductPatch) Validate() error {
	if p.Name != nil {
		if *p.Name == "" {
			return &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if len(*p.Name) > MaxNameLength {
			return &ValidationError{Field: "name", Reason: "too long"}
		}
	}
	if p.Description != nil && *p.Description == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if p.Price != nil && *p.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	if p.Stock != nil && *p.Stock < 0 {
		return &ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}
	return nil
}
