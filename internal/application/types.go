package application

import "github.com/powderline/avalanche-report-service/internal/ports"

// ReportInput carries the raw submitted field set for Submit and Update.
// Values stay untyped strings so the workflow owns the missing-vs-malformed
// distinction instead of the transport adapter.
type ReportInput struct {
	Region             string
	SlopeAspect        string
	ReportedAt         string
	AvalancheSize      string
	TriggerType        string
	LocationName       string
	ElevationM         string
	MapURL             string
	AdditionalComments string

	// Attachments in submission order. Only the first one is ever stored;
	// the rest are silently ignored (documented policy).
	Attachments []ports.Attachment
}
