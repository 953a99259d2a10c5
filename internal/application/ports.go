package application

import "context"

// ImageStore is the object store holding uploaded event images.
type ImageStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// TokenStore holds signup verification tokens, one per email.
type TokenStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Validate(ctx context.Context, email, token string) (bool, error)
	Consume(ctx context.Context, email string) error
}

// EmailQueue hands an email job off to the delivery pipeline. The
// transport is opaque; only the handoff result surfaces.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}
