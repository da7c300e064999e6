package dto

import (
	"time"

	"github.com/google/uuid"

	journalDomain "github.com/allisson/journal/internal/journal/domain"
)

// DecryptionFailedMessage is shown in place of an entry that could not be decrypted.
const DecryptionFailedMessage = "could not decrypt this entry"

// EntryResponse is returned after creating an entry. It carries metadata only.
type EntryResponse struct {
	ID        string    `json:"id"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MapEntryToResponse converts a stored entry to its creation response.
func MapEntryToResponse(entry *journalDomain.Entry) EntryResponse {
	return EntryResponse{
		ID:        entry.ID.String(),
		ParentID:  parentString(entry.ParentID),
		CreatedAt: entry.CreatedAt,
	}
}

// ThreadNodeResponse is a decrypted entry with its follow-ups.
// SECURITY: carries plaintext; only ever served over HTTPS in production.
type ThreadNodeResponse struct {
	ID               string               `json:"id"`
	ParentID         *string              `json:"parent_id"`
	Content          string               `json:"content,omitempty"`
	Prompt           string               `json:"prompt,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	DecryptionFailed bool                 `json:"decryption_failed,omitempty"`
	Error            string               `json:"error,omitempty"`
	Children         []ThreadNodeResponse `json:"children"`
}

// MapThreadToResponse converts a decrypted thread tree. A nil node maps to an
// empty response.
func MapThreadToResponse(node *journalDomain.ThreadNode) ThreadNodeResponse {
	if node == nil {
		return ThreadNodeResponse{Children: []ThreadNodeResponse{}}
	}

	response := ThreadNodeResponse{
		ID:        node.ID.String(),
		ParentID:  parentString(node.ParentID),
		Content:   node.Content,
		Prompt:    node.Prompt,
		CreatedAt: node.CreatedAt,
		Children:  make([]ThreadNodeResponse, 0, len(node.Children)),
	}
	if node.DecryptionFailed {
		response.DecryptionFailed = true
		response.Error = DecryptionFailedMessage
	}
	for _, child := range node.Children {
		if child != nil {
			response.Children = append(response.Children, MapThreadToResponse(child))
		}
	}
	return response
}

// ListHistoryResponse is a page of decrypted threads, newest first.
type ListHistoryResponse struct {
	Data []ThreadNodeResponse `json:"data"`
}

// MapThreadsToListResponse converts a page of threads.
func MapThreadsToListResponse(threads []*journalDomain.ThreadNode) ListHistoryResponse {
	data := make([]ThreadNodeResponse, 0, len(threads))
	for _, thread := range threads {
		if thread != nil {
			data = append(data, MapThreadToResponse(thread))
		}
	}
	return ListHistoryResponse{Data: data}
}

// FolderResponse is a decrypted folder.
type FolderResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapFolderToResponse converts a decrypted folder.
func MapFolderToResponse(folder *journalDomain.DecryptedFolder) FolderResponse {
	return FolderResponse{
		ID:          folder.ID.String(),
		Name:        folder.Name,
		Description: folder.Description,
		CreatedAt:   folder.CreatedAt,
	}
}

// ListFoldersResponse wraps a list of folders.
type ListFoldersResponse struct {
	Data []FolderResponse `json:"data"`
}

// MapFoldersToListResponse converts a list of decrypted folders.
func MapFoldersToListResponse(folders []*journalDomain.DecryptedFolder) ListFoldersResponse {
	data := make([]FolderResponse, 0, len(folders))
	for _, folder := range folders {
		data = append(data, MapFolderToResponse(folder))
	}
	return ListFoldersResponse{Data: data}
}

// GoalResponse is a decrypted goal.
type GoalResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapGoalToResponse converts a decrypted goal.
func MapGoalToResponse(goal *journalDomain.DecryptedGoal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID.String(),
		Title:       goal.Title,
		Description: goal.Description,
		CreatedAt:   goal.CreatedAt,
	}
}

// ListGoalsResponse wraps a list of goals.
type ListGoalsResponse struct {
	Data []GoalResponse `json:"data"`
}

// MapGoalsToListResponse converts a list of decrypted goals.
func MapGoalsToListResponse(goals []*journalDomain.DecryptedGoal) ListGoalsResponse {
	data := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		data = append(data, MapGoalToResponse(goal))
	}
	return ListGoalsResponse{Data: data}
}

func parentString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
