package catalog

type CreateBungalowRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Description   string  `json:"description"`
	Capacity      int     `json:"capacity" validate:"required,min=1,max=20"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	Status        string  `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

type UpdateBungalowRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=120"`
	Description   *string  `json:"description"`
	Capacity      *int     `json:"capacity" validate:"omitempty,min=1,max=20"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitempty,gt=0"`
	Status        *string  `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"omitempty,gte=0"`
	Pricing     string  `json:"pricing" validate:"required,oneof=per_person per_night fixed free"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=120"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Pricing     *string  `json:"pricing" validate:"omitempty,oneof=per_person per_night fixed free"`
	Active      *bool    `json:"active"`
}
