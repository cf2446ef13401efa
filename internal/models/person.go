package models

// Person is a staff roster entry, used by the leadership and the
// administration board collections. Photo holds a public URL to a
// separately stored image (legacy records may carry a data URI).
type Person struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Photo    string `json:"photo,omitempty"`
	Order    *int   `json:"order,omitempty"`
}

func (p *Person) DisplayName() string { return p.Name }

func (p *Person) OrderValue() (int, bool) {
	if p.Order == nil {
		return 0, false
	}
	return *p.Order, true
}

func (p *Person) SetOrder(n int) { p.Order = &n }
