package content

type CreateTemplateRequest struct {
	Slug    string `json:"slug" validate:"required,min=2,max=64"`
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Subject string `json:"subject" validate:"max=200"`
	Body    string `json:"body" validate:"required"`
	Active  *bool  `json:"active"`
}

type UpdateTemplateRequest struct {
	Slug    *string `json:"slug" validate:"omitempty,min=2,max=64"`
	Name    *string `json:"name" validate:"omitempty,min=2,max=120"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Body    *string `json:"body"`
	Active  *bool   `json:"active"`
}

type SaveTermsRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}
