package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createCommentRequest struct {
	AvalancheID string `json:"avalancheId"`
	Body        string `json:"body"`
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_comment", err)
		return
	}
	if strings.TrimSpace(req.AvalancheID) == "" || strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "avalancheId and body are required")
		return
	}

	avalancheID, err := uuid.Parse(req.AvalancheID)
	if err != nil {
		writeValidationError(r.Context(), w, "create_comment", err)
		return
	}

	created, err := h.service.AddComment(r.Context(), identityFromContext(r.Context()), avalancheID, req.Body)
	if err != nil {
		writeMappedError(r.Context(), w, "create_comment", err)
		return
	}
	writeSuccess(w, http.StatusCreated, toCommentResponse(created))
}

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	avalancheID, err := uuid.Parse(chi.URLParam(r, "report_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "list_comments", err)
		return
	}

	comments, err := h.service.ListComments(r.Context(), avalancheID)
	if err != nil {
		writeMappedError(r.Context(), w, "list_comments", err)
		return
	}
	writeSuccess(w, http.StatusOK, toCommentResponses(comments))
}
