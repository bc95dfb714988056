package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Attachment is one uploaded binary blob from a submission.
type Attachment struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// MediaStore persists report photos in durable object storage.
// Store namespaces the object key by the uploading identity, never overwrites
// an existing object, and returns a publicly resolvable URL.
type MediaStore interface {
	Store(ctx context.Context, identityID uuid.UUID, attachment Attachment) (string, error)
}
