package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGuardian(t *testing.T) {
	g, err := NewGuardian("Sara", "Lim", "sara@example.com", "+60123456789", "12 Orchard Lane", "Uncle Ben +6019000000")
	require.NoError(t, err)
	assert.Equal(t, "Sara Lim", g.FullName())
	assert.Equal(t, "sara@example.com", g.Email)
}

func TestNewGuardian_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		phone     string
	}{
		{"missing first name", "", "Lim", "sara@example.com", "+60123456789"},
		{"missing last name", "Sara", "", "sara@example.com", "+60123456789"},
		{"missing email", "Sara", "Lim", "", "+60123456789"},
		{"email without at", "Sara", "Lim", "sara.example.com", "+60123456789"},
		{"email without domain dot", "Sara", "Lim", "sara@example", "+60123456789"},
		{"email with spaces", "Sara", "Lim", "sara @example.com", "+60123456789"},
		{"missing phone", "Sara", "Lim", "sara@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGuardian(tt.firstName, tt.lastName, tt.email, tt.phone, "", "")
			assert.Error(t, err)
		})
	}
}
