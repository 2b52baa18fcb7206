// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleVolunteer  Role = "volunteer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleVolunteer:
		return true
	}
	return false
}

// CanCreate reports whether a caller with this role may invite a user with
// the target role. Admins may create any role, supervisors only volunteers,
// volunteers none.
func (r Role) CanCreate(target Role) bool {
	switch r {
	case RoleAdmin:
		return target.Valid()
	case RoleSupervisor:
		return target == RoleVolunteer
	default:
		return false
	}
}

type Status string

const (
	StatusActive          Status = "active"
	StatusPendingApproval Status = "pending_approval"
	StatusInactive        Status = "inactive"
)

// SecureUser is the stored credential record. The JSON shape is the
// persistence format and must round-trip every field, including unset
// optionals.
type SecureUser struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Role              Role       `json:"role"`
	Status            Status     `json:"status"`
	PasswordHash      string     `json:"passwordHash,omitempty"`
	PasswordSalt      string     `json:"passwordSalt,omitempty"`
	PasswordSet       bool       `json:"passwordSet"`
	LoginAttempts     int        `json:"loginAttempts"`
	LockedUntil       *time.Time `json:"lockedUntil,omitempty"`
	RegistrationToken string     `json:"registrationToken,omitempty"`
	TokenExpiry       *time.Time `json:"tokenExpiry,omitempty"`
	SessionToken      string     `json:"sessionToken,omitempty"`
	SessionExpiry     *time.Time `json:"sessionExpiry,omitempty"`
	CreatedBy         string     `json:"createdBy,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
}

// IsLocked reports whether the lockout window is still open at the given
// instant.
func (u *SecureUser) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// TokenExpired reports whether the outstanding registration token, if any,
// has passed its expiry.
func (u *SecureUser) TokenExpired(now time.Time) bool {
	return u.TokenExpiry != nil && now.After(*u.TokenExpiry)
}

// Clone returns a deep copy so store reads never alias live records.
func (u *SecureUser) Clone() *SecureUser {
	c := *u
	c.LockedUntil = cloneTime(u.LockedUntil)
	c.TokenExpiry = cloneTime(u.TokenExpiry)
	c.SessionExpiry = cloneTime(u.SessionExpiry)
	c.LastLogin = cloneTime(u.LastLogin)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
