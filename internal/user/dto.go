// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

// UserResponse is the secret-free projection returned to callers. Password
// material, tokens and lockout bookkeeping never leave the store layer.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	PasswordSet bool       `json:"passwordSet"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

func ToUserResponse(u *SecureUser) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Status:      u.Status,
		PasswordSet: u.PasswordSet,
		CreatedBy:   u.CreatedBy,
		CreatedAt:   u.CreatedAt,
		LastLogin:   cloneTime(u.LastLogin),
	}
}

func ToUserResponseList(users []*SecureUser) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}
	return responses
}
