package application

import (
	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

// canMutate decides whether an identity may change a record owned by ownerID.
// Pure and stateless; shared by the report and comment workflows.
func canMutate(identity domain.Identity, ownerID uuid.UUID) bool {
	return identity.ID == ownerID || identity.Administrator
}
