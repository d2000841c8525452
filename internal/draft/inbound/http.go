package inbound

import (
	"github.com/samber/lo"

	"github.com/draftwise/draftwise/internal/draft/usecase"
	"github.com/draftwise/draftwise/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// Create stores a new email draft.
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateDraftRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.DraftCreate(r.Context(), usecase.DraftCreateInput{
		Subject:        req.Subject,
		Body:           req.Body,
		PromptUsed:     req.PromptUsed,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		RecipientIDs:   req.RecipientIDs,
	})
	if err != nil {
		return nil, err
	}

	return draftCreatedResponse{toDraftResponse(*out)}, nil
}

// Get returns a single draft with its recipients resolved.
func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	out, err := h.uc.DraftGet(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return draftRetrievedResponse{toDraftResponse(*out)}, nil
}

// List returns all drafts, newest first.
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	outs, err := h.uc.DraftList(r.Context())
	if err != nil {
		return nil, err
	}

	return draftListResponse{items: lo.Map(outs, func(out usecase.DraftOutput, _ int) DraftResponse {
		return toDraftResponse(out)
	})}, nil
}

// Update applies a partial update to a draft.
func (h *HTTPEndpoint) Update(r *router.Request) (any, error) {
	var req UpdateDraftRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.DraftUpdate(r.Context(), usecase.DraftUpdateInput{
		ID:             r.GetParam("id"),
		Subject:        req.Subject,
		Body:           req.Body,
		PromptUsed:     req.PromptUsed,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		RecipientIDs:   req.RecipientIDs,
	})
	if err != nil {
		return nil, err
	}

	return draftUpdatedResponse{toDraftResponse(*out)}, nil
}

// Delete removes a draft permanently.
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	if err := h.uc.DraftDelete(r.Context(), r.GetParam("id")); err != nil {
		return nil, err
	}

	return draftDeletedResponse{}, nil
}

// Send dispatches a draft to its recipients. The body is optional; without
// one the draft's stored recipient email is used.
func (h *HTTPEndpoint) Send(r *router.Request) (any, error) {
	var req SendDraftRequest
	if r.ContentLength != 0 {
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}
	}

	out, err := h.uc.DraftSend(r.Context(), usecase.DraftSendInput{
		ID:             r.GetParam("id"),
		RecipientEmail: req.RecipientEmail,
		RecipientName:  req.RecipientName,
		RecipientIDs:   req.RecipientIDs,
	})
	if err != nil {
		return nil, err
	}

	return draftSentResponse{
		DraftResponse: toDraftResponse(usecase.DraftOutput{Draft: out.Draft, Recipients: out.Recipients}),
		MessageID:     out.MessageID,
	}, nil
}

// Generate produces email content from a prompt without storing anything.
func (h *HTTPEndpoint) Generate(r *router.Request) (any, error) {
	var req GenerateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Generate(r.Context(), usecase.GenerateInput{
		Prompt:            req.Prompt,
		RecipientName:     req.RecipientName,
		AdditionalContext: req.AdditionalContext,
	})
	if err != nil {
		return nil, err
	}

	return generatedResponse{toGeneratedResponse(*out)}, nil
}
