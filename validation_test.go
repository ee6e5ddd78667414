package auth_test

import (
	"strings"
	"testing"

	auth "github.com/qfqa/go-auth"
	"github.com/stretchr/testify/assert"
)

func TestRegisterInputValidate(t *testing.T) {
	valid := auth.RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "Passw0rd!",
		Neurotype: auth.NeurotypeADHD,
	}

	t.Run("valid input", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*auth.RegisterInput)
	}{
		{"missing username", func(r *auth.RegisterInput) { r.Username = "" }},
		{"short username", func(r *auth.RegisterInput) { r.Username = "al" }},
		{"missing email", func(r *auth.RegisterInput) { r.Email = "" }},
		{"bad email", func(r *auth.RegisterInput) { r.Email = "nope" }},
		{"missing password", func(r *auth.RegisterInput) { r.Password = "" }},
		{"short password", func(r *auth.RegisterInput) { r.Password = "1234567" }},
		{"password over bcrypt limit", func(r *auth.RegisterInput) { r.Password = strings.Repeat("a", 73) }},
		{"missing neurotype", func(r *auth.RegisterInput) { r.Neurotype = "" }},
		{"unknown neurotype", func(r *auth.RegisterInput) { r.Neurotype = "Neither" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			err := input.Validate()
			assert.Error(t, err)
			assert.True(t, auth.IsValidationError(err))
		})
	}
}

func TestLoginInputValidate(t *testing.T) {
	assert.NoError(t, auth.LoginInput{Username: "alice", Password: "pw"}.Validate())
	assert.Error(t, auth.LoginInput{Username: "", Password: "pw"}.Validate())
	assert.Error(t, auth.LoginInput{Username: "alice", Password: ""}.Validate())
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		wantScore int
	}{
		{"empty", "", 0},
		{"lowercase only", "password", 2},
		{"mixed case and digits", "Passw0rd", 4},
		{"all classes", "Passw0rd!", 5},
		{"short but varied", "aB1!", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strength := auth.CheckPasswordStrength(tt.password)
			assert.Equal(t, tt.wantScore, strength.Score)
			assert.Len(t, strength.Feedback, 5-tt.wantScore)
		})
	}
}

func TestValidNeurotype(t *testing.T) {
	assert.True(t, auth.ValidNeurotype(auth.NeurotypeADHD))
	assert.True(t, auth.ValidNeurotype(auth.NeurotypeAutistic))
	assert.True(t, auth.ValidNeurotype(auth.NeurotypeBoth))
	assert.False(t, auth.ValidNeurotype("Other"))
	assert.False(t, auth.ValidNeurotype(""))
}
