package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

type apiError struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"status":  "success",
		"message": message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

type reportResponse struct {
	ID                 string    `json:"id"`
	CreatedAt          time.Time `json:"createdAt"`
	ReportedAt         time.Time `json:"reportedAt"`
	LocationName       *string   `json:"locationName"`
	Region             string    `json:"region"`
	ElevationM         *int      `json:"elevationM"`
	SlopeAspect        string    `json:"slopeAspect"`
	AvalancheSize      int       `json:"avalancheSize"`
	AvalancheSizeLabel *string   `json:"avalancheSizeLabel"`
	TriggerType        string    `json:"triggerType"`
	MapURL             *string   `json:"mapUrl"`
	PhotoURL           *string   `json:"photoUrl"`
	AdditionalComments *string   `json:"additionalComments"`
	ReporterID         string    `json:"reporterId"`
	ReporterName       string    `json:"reporterName"`
	IsPublic           bool      `json:"isPublic"`
}

func toReportResponse(report domain.Report) reportResponse {
	return reportResponse{
		ID:                 report.ID.String(),
		CreatedAt:          report.CreatedAt,
		ReportedAt:         report.ReportedAt,
		LocationName:       report.LocationName,
		Region:             report.Region,
		ElevationM:         report.ElevationM,
		SlopeAspect:        string(report.SlopeAspect),
		AvalancheSize:      report.AvalancheSize,
		AvalancheSizeLabel: report.AvalancheSizeLabel,
		TriggerType:        string(report.TriggerType),
		MapURL:             report.MapURL,
		PhotoURL:           report.PhotoURL,
		AdditionalComments: report.AdditionalComments,
		ReporterID:         report.ReporterID.String(),
		ReporterName:       report.ReporterName,
		IsPublic:           report.IsPublic,
	}
}

func toReportResponses(reports []domain.Report) []reportResponse {
	out := make([]reportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, toReportResponse(report))
	}
	return out
}

type commentResponse struct {
	ID          string    `json:"id"`
	AvalancheID string    `json:"avalancheId"`
	UserID      string    `json:"userId"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"createdAt"`
	IsPublic    bool      `json:"isPublic"`
	UserName    string    `json:"userName"`
}

func toCommentResponse(comment domain.Comment) commentResponse {
	return commentResponse{
		ID:          comment.ID.String(),
		AvalancheID: comment.AvalancheID.String(),
		UserID:      comment.AuthorID.String(),
		Body:        comment.Body,
		CreatedAt:   comment.CreatedAt,
		IsPublic:    comment.IsPublic,
		UserName:    comment.AuthorName,
	}
}

func toCommentResponses(comments []domain.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	return out
}
