package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces become underscores", "Popescu Ion", "Popescu_Ion"},
		{"case is preserved", "McUpperCase", "McUpperCase"},
		{"digits and dashes survive", "clasa-9A", "clasa-9A"},
		{"diacritics are replaced", "Ștefan Pârvu", "_tefan_P_rvu"},
		{"punctuation is replaced", "a.b/c?d", "a_b_c_d"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeKey(tt.in))
		})
	}
}
