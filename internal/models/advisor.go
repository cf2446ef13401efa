package models

// ClassAdvisor is a homeroom teacher entry: name plus the class they
// lead and the room where the class meets.
type ClassAdvisor struct {
	Name  string `json:"nume" validate:"required"`
	Class string `json:"clasa" validate:"required"`
	Room  string `json:"sala" validate:"required"`
	Order *int   `json:"order,omitempty"`
}

func (a *ClassAdvisor) DisplayName() string { return a.Name }

func (a *ClassAdvisor) OrderValue() (int, bool) {
	if a.Order == nil {
		return 0, false
	}
	return *a.Order, true
}

func (a *ClassAdvisor) SetOrder(n int) { a.Order = &n }
