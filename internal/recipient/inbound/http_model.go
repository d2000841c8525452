package inbound

import (
	"net/http"
	"time"

	"github.com/draftwise/draftwise/internal/recipient/entity"
)

type CreateRecipientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateRecipientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RecipientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toRecipientResponse(rec entity.Recipient) RecipientResponse {
	return RecipientResponse{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

type recipientCreatedResponse struct {
	RecipientResponse
}

func (recipientCreatedResponse) Message() string { return "Recipient created successfully" }
func (recipientCreatedResponse) StatusCode() int { return http.StatusCreated }

type recipientRetrievedResponse struct {
	RecipientResponse
}

func (recipientRetrievedResponse) Message() string { return "Recipient retrieved successfully" }

type recipientUpdatedResponse struct {
	RecipientResponse
}

func (recipientUpdatedResponse) Message() string { return "Recipient updated successfully" }

type recipientListResponse struct {
	items []RecipientResponse
}

func (recipientListResponse) Message() string { return "Recipients retrieved successfully" }
func (r recipientListResponse) Data() any     { return r.items }

type recipientDeletedResponse struct{}

func (recipientDeletedResponse) Message() string { return "Recipient deleted successfully" }
func (recipientDeletedResponse) Data() any       { return nil }
