package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "full", user: User{Email: "a@x.com", FirstName: "Ann", LastName: "Lee"}, want: "Ann Lee"},
		{name: "first only", user: User{Email: "a@x.com", FirstName: "Ann"}, want: "Ann"},
		{name: "email fallback", user: User{Email: "a@x.com"}, want: "a@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
