package generation

import "context"

// The pipeline consumes every external capability through these contracts,
// so tests can stand in fakes without a live network. The real clients live
// in tools.

// TextCompletion is a single request/response completion call. The adapter
// fixes the sampling temperature; callers choose only the token budget.
type TextCompletion interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ImageSynthesis renders a prompt to raw image bytes (PNG in practice).
// The bytes are opaque and go to the image store unmodified.
type ImageSynthesis interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// ImageStore persists image bytes and serves transformations by reference.
type ImageStore interface {
	Upload(ctx context.Context, image []byte) (string, error)
	RemoveBackground(ctx context.Context, image []byte) (string, error)
	RemoveObject(ctx context.Context, image []byte, object string) (string, error)
}

// DocumentTextExtractor turns an uploaded document into plain text,
// multi-page aware.
type DocumentTextExtractor interface {
	ExtractText(data []byte) (string, error)
}
