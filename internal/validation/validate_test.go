// AngelaMos | 2026
// validate_test.go

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_LoginInput(t *testing.T) {
	tests := []struct {
		name    string
		input   LoginInput
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "valid",
			input:  LoginInput{Email: "admin@campaign.com", Password: "x"},
			wantOK: true,
		},
		{
			name:    "missing email",
			input:   LoginInput{Password: "x"},
			wantMsg: "Email is required",
		},
		{
			name:    "malformed email",
			input:   LoginInput{Email: "not-an-email", Password: "x"},
			wantMsg: "Invalid email address",
		},
		{
			name:    "missing password",
			input:   LoginInput{Email: "admin@campaign.com"},
			wantMsg: "Password is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)
			assert.Equal(t, tt.wantOK, result.OK)
			if tt.wantMsg != "" {
				assert.Contains(t, result.Errors, tt.wantMsg)
			}
		})
	}
}

func TestValidate_CreateUserInput(t *testing.T) {
	valid := CreateUserInput{
		Email:     "new@campaign.com",
		FirstName: "Ann-Marie",
		LastName:  "O'Neill",
		Role:      "volunteer",
	}

	result := Validate(valid)
	require.True(t, result.OK)

	invalidName := valid
	invalidName.FirstName = "R2D2!"
	result = Validate(invalidName)
	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, "First name contains invalid characters")

	invalidRole := valid
	invalidRole.Role = "superuser"
	result = Validate(invalidRole)
	assert.False(t, result.OK)
	assert.Contains(t, result.Errors, "Invalid role")
}

func TestValidate_RegistrationInput_PasswordStrength(t *testing.T) {
	base := RegistrationInput{Token: "tok"}

	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"strong", "Password123!", true},
		{"no uppercase", "password123!", false},
		{"no lowercase", "PASSWORD123!", false},
		{"no digit", "Password!!!!", false},
		{"no special", "Password1234", false},
		{"too short", "Pa1!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			input.Password = tt.password
			result := Validate(input)
			assert.Equal(t, tt.wantOK, result.OK)
		})
	}
}

func TestValidate_RegistrationInput_OptionalNames(t *testing.T) {
	input := RegistrationInput{Token: "tok", Password: "Password123!"}
	result := Validate(input)
	assert.True(t, result.OK)

	input.FirstName = "Bad<Name>"
	result = Validate(input)
	assert.False(t, result.OK)
}

func TestResult_Err(t *testing.T) {
	ok := Validate(LoginInput{Email: "a@b.com", Password: "x"})
	assert.NoError(t, ok.Err())

	bad := Validate(LoginInput{})
	require.Error(t, bad.Err())
	assert.Contains(t, bad.Err().Error(), "Email is required")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"angle brackets stripped", "<script>alert(1)</script>", "scriptalert(1)/script"},
		{"javascript scheme stripped", "javascript:alert(1)", "alert(1)"},
		{"event handler stripped", `img onerror=alert(1)`, "img alert(1)"},
		{"whitespace trimmed", "  admin@campaign.com  ", "admin@campaign.com"},
		{"clean input untouched", "admin@campaign.com", "admin@campaign.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
