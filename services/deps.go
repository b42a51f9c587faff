package services

import (
	"context"
	"io"
)

// FileStore is the object storage capability the lifecycles drive.
// *config.ObjectStore satisfies it in production.
type FileStore interface {
	Upload(ctx context.Context, bucket, key string, content io.Reader, size int64, contentType string) error
	PublicURL(bucket, key string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
	Exists(ctx context.Context, bucket, key string) bool
}

// Notifier sends lifecycle emails. Callers treat every send as best-effort:
// a Notifier error is logged, never propagated.
type Notifier interface {
	SendSubmissionConfirmation(to, name, trackingID, title string) error
	SendStatusUpdate(to, name, trackingID, title, statusLabel, remarks string) error
}

// FileUpload carries an uploaded file across the HTTP boundary without
// binding the services to the router's multipart types.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
