package models

// CouncilMember is a faculty council entry.
type CouncilMember struct {
	Name    string `json:"nume" validate:"required"`
	Subject string `json:"materie" validate:"required"`
	Order   *int   `json:"order,omitempty"`
}

func (m *CouncilMember) DisplayName() string { return m.Name }

func (m *CouncilMember) OrderValue() (int, bool) {
	if m.Order == nil {
		return 0, false
	}
	return *m.Order, true
}

func (m *CouncilMember) SetOrder(n int) { m.Order = &n }
