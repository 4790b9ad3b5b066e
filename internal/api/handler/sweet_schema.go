package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type addSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
}

// updateSweetRequest is a partial update; absent fields are left untouched.
// Pointer fields distinguish "not provided" from zero values.
type updateSweetRequest struct {
	Name     *string  `json:"name"     validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Price    *float64 `json:"price"    validate:"omitempty,gt=0"`
	Quantity *int64   `json:"quantity" validate:"omitempty,gte=0"`
}

type quantityRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}
