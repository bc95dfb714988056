package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/application"
	"github.com/powderline/avalanche-report-service/internal/ports"
)

// maxUploadBytes bounds multipart memory buffering per submission.
const maxUploadBytes = 32 << 20

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
			return
		}

		identity, err := h.service.ResolveCredential(r.Context(), raw)
		if err != nil {
			writeMappedError(r.Context(), w, "resolve_credential", err)
			return
		}

		next.ServeHTTP(w, r.WithContext(contextWithIdentity(r.Context(), identity)))
	})
}

func (h *Handler) submitReport(w http.ResponseWriter, r *http.Request) {
	input, closeFn, err := reportInputFromMultipart(r)
	if err != nil {
		writeValidationError(r.Context(), w, "submit_report", err)
		return
	}
	defer closeFn()

	created, err := h.service.Submit(r.Context(), identityFromContext(r.Context()), input)
	if err != nil {
		writeMappedError(r.Context(), w, "submit_report", err)
		return
	}
	writeSuccess(w, http.StatusCreated, toReportResponse(created))
}

func (h *Handler) updateReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "report_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "update_report", err)
		return
	}

	input, closeFn, err := reportInputFromMultipart(r)
	if err != nil {
		writeValidationError(r.Context(), w, "update_report", err)
		return
	}
	defer closeFn()

	updated, err := h.service.Update(r.Context(), identityFromContext(r.Context()), id, input)
	if err != nil {
		writeMappedError(r.Context(), w, "update_report", err)
		return
	}
	writeSuccess(w, http.StatusOK, toReportResponse(updated))
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListRecent(r.Context())
	if err != nil {
		writeMappedError(r.Context(), w, "list_reports", err)
		return
	}
	writeSuccess(w, http.StatusOK, toReportResponses(reports))
}

func (h *Handler) getReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "report_id"))
	if err != nil {
		writeValidationError(r.Context(), w, "get_report", err)
		return
	}

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		writeMappedError(r.Context(), w, "get_report", err)
		return
	}
	writeSuccess(w, http.StatusOK, toReportResponse(report))
}

// reportInputFromMultipart reads submission fields and photo attachments from
// a multipart form. Attachment parts are named photo_<n>; part order follows
// the sorted part names so "first attachment" is deterministic. The returned
// closer releases the opened file parts.
func reportInputFromMultipart(r *http.Request) (application.ReportInput, func(), error) {
	noop := func() {}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return application.ReportInput{}, noop, err
	}

	input := application.ReportInput{
		Region:             r.FormValue("region"),
		SlopeAspect:        r.FormValue("slopeAspect"),
		ReportedAt:         r.FormValue("reportedAt"),
		AvalancheSize:      r.FormValue("avalancheSize"),
		TriggerType:        r.FormValue("triggerType"),
		LocationName:       r.FormValue("locationName"),
		ElevationM:         r.FormValue("elevationM"),
		MapURL:             r.FormValue("mapUrl"),
		AdditionalComments: r.FormValue("additionalComments"),
	}

	if r.MultipartForm == nil {
		return input, noop, nil
	}

	var partNames []string
	for name := range r.MultipartForm.File {
		if strings.HasPrefix(name, "photo_") {
			partNames = append(partNames, name)
		}
	}
	sort.Strings(partNames)

	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}
	for _, name := range partNames {
		for _, header := range r.MultipartForm.File[name] {
			file, err := header.Open()
			if err != nil {
				closeAll()
				return application.ReportInput{}, noop, err
			}
			closers = append(closers, file.Close)
			input.Attachments = append(input.Attachments, ports.Attachment{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
			})
		}
	}
	return input, closeAll, nil
}
