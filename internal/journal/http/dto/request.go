// Package dto provides data transfer objects for the journal HTTP API.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/journal/internal/validation"
)

const (
	maxContentLength     = 65536
	maxPromptLength      = 4096
	maxNameLength        = 255
	maxDescriptionLength = 4096
)

// CreateEntryRequest creates a thread root, or a follow-up when ParentID is set.
type CreateEntryRequest struct {
	Content  string `json:"content"`
	Prompt   string `json:"prompt"`
	ParentID string `json:"parent_id"`
}

// Validate checks if the create entry request is valid.
func (r *CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, maxContentLength),
		),
		validation.Field(&r.Prompt, validation.RuneLength(0, maxPromptLength)),
		validation.Field(&r.ParentID, customValidation.UUID),
	)
}

// Parent returns the parsed parent id, or nil for a thread root.
// Call after Validate.
func (r *CreateEntryRequest) Parent() *uuid.UUID {
	if r.ParentID == "" {
		return nil
	}
	id := uuid.MustParse(r.ParentID)
	return &id
}

// CreateFolderRequest contains the plaintext fields of a new folder.
type CreateFolderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create folder request is valid.
func (r *CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, maxNameLength),
		),
		validation.Field(&r.Description, validation.RuneLength(0, maxDescriptionLength)),
	)
}

// CreateGoalRequest contains the plaintext fields of a new goal.
type CreateGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks if the create goal request is valid.
func (r *CreateGoalRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.RuneLength(1, maxNameLength),
		),
		validation.Field(&r.Description, validation.RuneLength(0, maxDescriptionLength)),
	)
}
