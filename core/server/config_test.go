package server_test

import (
	"testing"

	"movies-app/core/server"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{"Admin", server.RoleAdmin, true},
		{"User", server.RoleUser, true},
		{"Invalid", "guest", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, server.IsValidRole(tt.role))
		})
	}
}

func TestConfig_AuthEnabled(t *testing.T) {
	assert.False(t, server.Config{}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "k"}.AuthEnabled())
	assert.True(t, server.Config{JWTSecret: "s"}.AuthEnabled())
}
