// AngelaMos | 2026
// schemas.go

package validation

// LoginInput is the login payload shape.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,max=255,email"`
	Password string `json:"password" validate:"required,max=128"`
}

// CreateUserInput is the invite payload shape.
type CreateUserInput struct {
	Email     string `json:"email"     validate:"required,max=255,email"`
	FirstName string `json:"firstName" validate:"required,max=50,person_name"`
	LastName  string `json:"lastName"  validate:"required,max=50,person_name"`
	Role      string `json:"role"      validate:"required,oneof=admin supervisor volunteer"`
}

// RegistrationInput is the registration-completion payload shape. Names are
// optional; empty values leave the invited record untouched.
type RegistrationInput struct {
	Token     string `json:"token"     validate:"required,max=128"`
	Password  string `json:"password"  validate:"required,min=8,max=128,password_strength"`
	FirstName string `json:"firstName" validate:"omitempty,max=50,person_name"`
	LastName  string `json:"lastName"  validate:"omitempty,max=50,person_name"`
}
