package models

// Project is a school project card shown on the public site.
type Project struct {
	Title string `json:"title" validate:"required"`
	Photo string `json:"photo" validate:"required"`
	Link  string `json:"link,omitempty"`
	Color string `json:"color,omitempty"`
	Order *int   `json:"order,omitempty"`
}

func (p *Project) DisplayName() string { return p.Title }

func (p *Project) OrderValue() (int, bool) {
	if p.Order == nil {
		return 0, false
	}
	return *p.Order, true
}

func (p *Project) SetOrder(n int) { p.Order = &n }
