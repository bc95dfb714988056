package domain

import (
	"time"

	"github.com/google/uuid"
)

// SlopeAspect is the compass orientation of the slope where the avalanche released.
type SlopeAspect string

const (
	AspectN  SlopeAspect = "N"
	AspectNE SlopeAspect = "NE"
	AspectE  SlopeAspect = "E"
	AspectSE SlopeAspect = "SE"
	AspectS  SlopeAspect = "S"
	AspectSW SlopeAspect = "SW"
	AspectW  SlopeAspect = "W"
	AspectNW SlopeAspect = "NW"
)

// ParseSlopeAspect validates a raw aspect value against the eight compass points.
func ParseSlopeAspect(raw string) (SlopeAspect, bool) {
	switch SlopeAspect(raw) {
	case AspectN, AspectNE, AspectE, AspectSE, AspectS, AspectSW, AspectW, AspectNW:
		return SlopeAspect(raw), true
	}
	return "", false
}

// TriggerType classifies what released the avalanche.
type TriggerType string

const (
	TriggerNatural    TriggerType = "natural"
	TriggerAccidental TriggerType = "accidental"
	TriggerRemote     TriggerType = "remote"
	TriggerUnknown    TriggerType = "unknown"
)

func ParseTriggerType(raw string) (TriggerType, bool) {
	switch TriggerType(raw) {
	case TriggerNatural, TriggerAccidental, TriggerRemote, TriggerUnknown:
		return TriggerType(raw), true
	}
	return "", false
}

// Destructive-size bounds on the European five-step avalanche size scale.
const (
	MinAvalancheSize = 1
	MaxAvalancheSize = 5
)

// sizeLabels maps each valid size to its human-readable label.
// The wording is fixed; listing and detail views render it verbatim.
var sizeLabels = map[int]string{
	1: "1/5 – Very Small (could bury/injure someone)",
	2: "2/5 – Small (could bury/injure someone)",
	3: "3/5 – Medium (could bury a car, destroy a small building)",
	4: "4/5 – Large (could destroy a railway car, large truck, several buildings)",
	5: "5/5 – Very Large (could destroy a village or forest)",
}

// SizeLabel returns the label for a size value, or nil when the value has no
// table entry. Derivation never fails; range enforcement happens in validation.
func SizeLabel(size int) *string {
	label, ok := sizeLabels[size]
	if !ok {
		return nil
	}
	return &label
}

// Report is a single submitted avalanche observation.
// ReporterID and CreatedAt are immutable after creation; ReporterName is a
// snapshot of the display name at submission time, not a live join.
type Report struct {
	ID                 uuid.UUID
	CreatedAt          time.Time
	ReportedAt         time.Time
	LocationName       *string
	Region             string
	ElevationM         *int
	SlopeAspect        SlopeAspect
	AvalancheSize      int
	AvalancheSizeLabel *string
	TriggerType        TriggerType
	MapURL             *string
	PhotoURL           *string
	AdditionalComments *string
	ReporterID         uuid.UUID
	ReporterName       string
	IsPublic           bool
}

// Comment is a remark attached to exactly one report. Read-only after creation.
type Comment struct {
	ID          uuid.UUID
	AvalancheID uuid.UUID
	AuthorID    uuid.UUID
	Body        string
	CreatedAt   time.Time
	IsPublic    bool

	// AuthorName is decorated on listing, best-effort. Not stored.
	AuthorName string
}
