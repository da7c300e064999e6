// Package dto provides data transfer objects for the session HTTP API.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	sessionDomain "github.com/allisson/journal/internal/session/domain"
	customValidation "github.com/allisson/journal/internal/validation"
)

// UnlockRequest carries the credentials the master key is derived from.
// SECURITY: Password must never be logged.
type UnlockRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the unlock request is valid.
func (r *UnlockRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password, validation.Required),
	)
}

// AutoLockRequest enables or disables idle auto-lock.
type AutoLockRequest struct {
	Enabled        bool `json:"enabled"`
	TimeoutMinutes int  `json:"timeout_minutes"`
}

// Validate requires a positive timeout when auto-lock is enabled.
func (r *AutoLockRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TimeoutMinutes,
			validation.When(r.Enabled, validation.Required, validation.Min(1), validation.Max(24*60)),
		),
	)
}

// SessionResponse is the public view of the session state. It never carries key material.
type SessionResponse struct {
	State                  string     `json:"state"`
	AutoLockEnabled        bool       `json:"auto_lock_enabled"`
	AutoLockTimeoutMinutes int        `json:"auto_lock_timeout_minutes"`
	LastActivityAt         *time.Time `json:"last_activity_at,omitempty"`
	UnlockedAt             *time.Time `json:"unlocked_at,omitempty"`
}

// MapStatusToResponse converts a session snapshot.
func MapStatusToResponse(status sessionDomain.Status) SessionResponse {
	return SessionResponse{
		State:                  status.State.String(),
		AutoLockEnabled:        status.AutoLockEnabled,
		AutoLockTimeoutMinutes: int(status.AutoLockTimeout / time.Minute),
		LastActivityAt:         status.LastActivityAt,
		UnlockedAt:             status.UnlockedAt,
	}
}
