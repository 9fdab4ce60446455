package generation

// ErrKind classifies every way a pipeline run can fail. Handlers collapse
// it into the wire envelope; tests and logs keep the full taxonomy.
type ErrKind string

const (
	ErrKindQuotaExceeded      ErrKind = "quota_exceeded"
	ErrKindTierRequired       ErrKind = "tier_required"
	ErrKindInvalidInput       ErrKind = "invalid_input"
	ErrKindPayloadTooLarge    ErrKind = "payload_too_large"
	ErrKindProviderFailure    ErrKind = "provider_failure"
	ErrKindUnreadableDocument ErrKind = "unreadable_document"
	ErrKindPersistenceFailure ErrKind = "persistence_failure"
	ErrKindNotFound           ErrKind = "not_found"
)

// Error is a terminal negative outcome with a user-facing message. It is a
// normal result value; nothing in the pipeline panics or leaks transport
// errors.
type Error struct {
	Kind    ErrKind
	Message string
}

// Result is the outcome of one orchestrator run: either Content or Err is
// set, never both.
type Result struct {
	Content string
	Err     *Error
}

func Ok(content string) Result {
	return Result{Content: content}
}

func Fail(kind ErrKind, message string) Result {
	return Result{Err: &Error{Kind: kind, Message: message}}
}

func (r Result) OK() bool {
	return r.Err == nil
}
