package reservation

type CreateReservationRequest struct {
	CustomerID    int64   `json:"customer_id" validate:"required"`
	BungalowID    int64   `json:"bungalow_id" validate:"required"`
	CheckIn       string  `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOut      string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	GuestCount    int     `json:"guest_count" validate:"required,min=1,max=20"`
	TotalPrice    float64 `json:"total_price" validate:"omitempty,gte=0"`
	PaymentAmount float64 `json:"payment_amount" validate:"omitempty,gte=0"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending confirmed checked_in completed"`
	Notes         string  `json:"notes"`
}

type UpdateReservationRequest struct {
	CheckIn       *string  `json:"check_in_date" validate:"omitempty,datetime=2006-01-02"`
	CheckOut      *string  `json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	GuestCount    *int     `json:"guest_count" validate:"omitempty,min=1,max=20"`
	TotalPrice    *float64 `json:"total_price" validate:"omitempty,gte=0"`
	PaymentAmount *float64 `json:"payment_amount" validate:"omitempty,gte=0"`
	Status        *string  `json:"status" validate:"omitempty,oneof=pending confirmed checked_in completed cancelled"`
	Notes         *string  `json:"notes"`
}

type AddPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=cash card transfer other"`
	PaidAt string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Notes  string  `json:"notes"`
}

type AddServiceRequest struct {
	ServiceID int64 `json:"service_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"omitempty,min=1"`
}

// RemoveServiceRequest addresses a line by its stable entry id; the
// positional index is kept for the existing admin UI and stays
// position-sensitive under concurrent edits.
type RemoveServiceRequest struct {
	EntryID string `json:"entry_id"`
	Index   *int   `json:"index"`
}

type DelayRequest struct {
	CheckIn  string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Reason   string `json:"reason"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type ConfirmRequest struct {
	TermsAccepted bool `json:"terms_accepted"`
}
