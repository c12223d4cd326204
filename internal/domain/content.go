package domain

import "time"

// EmailTemplate is stored text only; placeholder substitution happens in the
// external mailer, not here.
type EmailTemplate struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug" gorm:"size:64;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Subject   string    `json:"subject" gorm:"size:200"`
	Body      string    `json:"body" gorm:"type:text"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TermsDocument is the rental-terms text shown on the public confirmation
// page. Singleton; Version increments on every save.
type TermsDocument struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title" gorm:"size:200"`
	Body      string    `json:"body" gorm:"type:text"`
	Version   int       `json:"version"`
	UpdatedBy string    `json:"updated_by,omitempty" gorm:"size:160"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
