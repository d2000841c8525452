package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/draftwise/draftwise/internal/draft/entity"
	"github.com/draftwise/draftwise/internal/draft/usecase"
	recipentity "github.com/draftwise/draftwise/internal/recipient/entity"
)

type CreateDraftRequest struct {
	Subject        string   `json:"subject"`
	Body           string   `json:"body"`
	PromptUsed     string   `json:"promptUsed"`
	RecipientName  string   `json:"recipientName"`
	RecipientEmail string   `json:"recipientEmail"`
	RecipientIDs   []string `json:"recipient_ids"`
}

// UpdateDraftRequest is a partial update; absent fields are left untouched.
type UpdateDraftRequest struct {
	Subject        *string  `json:"subject"`
	Body           *string  `json:"body"`
	PromptUsed     *string  `json:"promptUsed"`
	RecipientName  *string  `json:"recipientName"`
	RecipientEmail *string  `json:"recipientEmail"`
	RecipientIDs   []string `json:"recipient_ids"`
}

type SendDraftRequest struct {
	RecipientEmail string   `json:"recipientEmail"`
	RecipientName  string   `json:"recipientName"`
	RecipientIDs   []string `json:"recipient_ids"`
}

type GenerateRequest struct {
	Prompt            string `json:"prompt"`
	RecipientName     string `json:"recipientName"`
	AdditionalContext string `json:"additionalContext"`
}

type RecipientRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DraftResponse struct {
	ID             string         `json:"id"`
	Subject        string         `json:"subject"`
	Body           string         `json:"body"`
	PromptUsed     string         `json:"promptUsed"`
	Status         string         `json:"status"`
	RecipientName  string         `json:"recipientName,omitempty"`
	RecipientEmail string         `json:"recipientEmail,omitempty"`
	Recipients     []RecipientRef `json:"recipients"`
	SentAt         *time.Time     `json:"sentAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func toDraftResponse(out usecase.DraftOutput) DraftResponse {
	return DraftResponse{
		ID:             out.Draft.ID,
		Subject:        out.Draft.Subject,
		Body:           out.Draft.Body,
		PromptUsed:     out.Draft.PromptUsed,
		Status:         out.Draft.Status.String(),
		RecipientName:  out.Draft.RecipientName,
		RecipientEmail: out.Draft.RecipientEmail,
		Recipients: lo.Map(out.Recipients, func(rec recipentity.Recipient, _ int) RecipientRef {
			return RecipientRef{ID: rec.ID, Name: rec.Name, Email: rec.Email}
		}),
		SentAt:    out.Draft.SentAt,
		CreatedAt: out.Draft.CreatedAt,
		UpdatedAt: out.Draft.UpdatedAt,
	}
}

type GeneratedResponse struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	PromptUsed string `json:"promptUsed"`
}

func toGeneratedResponse(out entity.GeneratedContent) GeneratedResponse {
	return GeneratedResponse{Subject: out.Subject, Body: out.Body, PromptUsed: out.PromptUsed}
}

type draftCreatedResponse struct {
	DraftResponse
}

func (draftCreatedResponse) Message() string { return "Email created successfully" }
func (draftCreatedResponse) StatusCode() int { return http.StatusCreated }

type draftRetrievedResponse struct {
	DraftResponse
}

func (draftRetrievedResponse) Message() string { return "Email retrieved successfully" }

type draftUpdatedResponse struct {
	DraftResponse
}

func (draftUpdatedResponse) Message() string { return "Email updated successfully" }

type draftListResponse struct {
	items []DraftResponse
}

func (draftListResponse) Message() string { return "Emails retrieved successfully" }
func (r draftListResponse) Data() any     { return r.items }

type draftDeletedResponse struct{}

func (draftDeletedResponse) Message() string { return "Email deleted successfully" }
func (draftDeletedResponse) Data() any       { return nil }

type draftSentResponse struct {
	DraftResponse
	MessageID string `json:"messageId"`
}

func (draftSentResponse) Message() string { return "Email sent successfully" }

type generatedResponse struct {
	GeneratedResponse
}

func (generatedResponse) Message() string { return "Email content generated successfully" }
