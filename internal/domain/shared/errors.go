package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is matches wrapped domain errors against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the transaction services and stores
const (
	CodeNotFound          = "NOT_FOUND"
	CodeUnknownIdentifier = "UNKNOWN_IDENTIFIER"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeAmbiguousLookup   = "AMBIGUOUS_LOOKUP"
	CodeConflict          = "CONFLICT"
	CodeRetriesExhausted  = "RETRIES_EXHAUSTED"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Record not found")
	ErrUnknownIdentifier = NewDomainError(CodeUnknownIdentifier, "Identifier not present in store")
	ErrInvalidArgument   = NewDomainError(CodeInvalidArgument, "Invalid input provided")
	ErrAmbiguousLookup   = NewDomainError(CodeAmbiguousLookup, "Lookup matched more than one record")
	ErrConflict          = NewDomainError(CodeConflict, "Record was modified by another transaction")
	ErrRetriesExhausted  = NewDomainError(CodeRetriesExhausted, "Transaction retry budget exhausted")
)
