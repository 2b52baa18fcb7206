// AngelaMos | 2026
// seed.go

package user

import (
	"fmt"
	"time"

	"github.com/campaignhq/campaign-backend/internal/core"
)

// DefaultSeedPassword is the password every seed account starts with.
// Intended for development and first-run bootstrap only.
const DefaultSeedPassword = "Password123!"

type seedSpec struct {
	id        string
	email     string
	firstName string
	lastName  string
	role      Role
	createdAt time.Time
}

var seedSpecs = []seedSpec{
	{
		id:        "1",
		email:     "admin@campaign.com",
		firstName: "John",
		lastName:  "Admin",
		role:      RoleAdmin,
		createdAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		id:        "2",
		email:     "supervisor@campaign.com",
		firstName: "Sarah",
		lastName:  "Supervisor",
		role:      RoleSupervisor,
		createdAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		id:        "3",
		email:     "volunteer@campaign.com",
		firstName: "Mike",
		lastName:  "Volunteer",
		role:      RoleVolunteer,
		createdAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	},
}

// SeedUsers builds the deterministic bootstrap set installed when the
// persisted collection is absent or cannot be decoded.
func SeedUsers() ([]*SecureUser, error) {
	users := make([]*SecureUser, 0, len(seedSpecs))

	for _, spec := range seedSpecs {
		hash, salt, err := core.HashPassword(DefaultSeedPassword, nil)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}

		users = append(users, &SecureUser{
			ID:           spec.id,
			Email:        spec.email,
			FirstName:    spec.firstName,
			LastName:     spec.lastName,
			Role:         spec.role,
			Status:       StatusActive,
			PasswordHash: hash,
			PasswordSalt: salt,
			PasswordSet:  true,
			CreatedAt:    spec.createdAt,
		})
	}

	return users, nil
}
