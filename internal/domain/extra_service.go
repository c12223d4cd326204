package domain

import "time"

// ServicePricing determines how an extra-service charge is computed when the
// service is attached to a reservation.
type ServicePricing string

const (
	PricingPerPerson ServicePricing = "per_person"
	PricingPerNight  ServicePricing = "per_night"
	PricingFixed     ServicePricing = "fixed"
	PricingFree      ServicePricing = "free"
)

type ExtraService struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name" gorm:"size:120;not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	Price       float64        `json:"price"`
	Pricing     ServicePricing `json:"pricing" gorm:"size:16;default:fixed"`
	Active      bool           `json:"active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ChargeFor computes the service's contribution for a given head count and
// stay length.
func (s *ExtraService) ChargeFor(quantity, nights int) float64 {
	switch s.Pricing {
	case PricingPerPerson:
		return RoundMoney(s.Price * float64(quantity))
	case PricingPerNight:
		return RoundMoney(s.Price * float64(nights))
	case PricingFree:
		return 0
	default:
		return RoundMoney(s.Price)
	}
}
