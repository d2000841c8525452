package inbound

import (
	"github.com/samber/lo"

	"github.com/draftwise/draftwise/internal/pkg/router"
	"github.com/draftwise/draftwise/internal/recipient/entity"
	"github.com/draftwise/draftwise/internal/recipient/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

// Create registers a new recipient.
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateRecipientRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	rec, err := h.uc.RecipientCreate(r.Context(), usecase.RecipientCreateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	return recipientCreatedResponse{toRecipientResponse(*rec)}, nil
}

// Get returns a single recipient by id.
func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	rec, err := h.uc.RecipientGet(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return recipientRetrievedResponse{toRecipientResponse(*rec)}, nil
}

// List returns all recipients ordered by name.
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	recs, err := h.uc.RecipientList(r.Context())
	if err != nil {
		return nil, err
	}

	return recipientListResponse{items: lo.Map(recs, func(rec entity.Recipient, _ int) RecipientResponse {
		return toRecipientResponse(rec)
	})}, nil
}

// Update changes a recipient's name and/or email.
func (h *HTTPEndpoint) Update(r *router.Request) (any, error) {
	var req UpdateRecipientRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	rec, err := h.uc.RecipientUpdate(r.Context(), usecase.RecipientUpdateInput{
		ID:    r.GetParam("id"),
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	return recipientUpdatedResponse{toRecipientResponse(*rec)}, nil
}

// Delete removes a recipient permanently.
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	if err := h.uc.RecipientDelete(r.Context(), r.GetParam("id")); err != nil {
		return nil, err
	}

	return recipientDeletedResponse{}, nil
}
