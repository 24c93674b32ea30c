package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	valid := func() *Account {
		return &Account{Email: "kim@example.com", Name: "kim", Role: RoleUser}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Account)
		field  string
	}{
		{"missing email", func(a *Account) { a.Email = "" }, "email"},
		{"email without at", func(a *Account) { a.Email = "kim" }, "email"},
		{"blank name", func(a *Account) { a.Name = "  " }, "name"},
		{"unknown role", func(a *Account) { a.Role = "root" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(a)
			err := a.Validate()
			assert.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, tt.field, ve.Field)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "kim@example.com", NormalizeEmail("  Kim@Example.COM "))
}
