package usecase

import "fmt"

// Error codes surfaced to the HTTP layer.
const (
	CodeLeadNotFound   = "LEAD_NOT_FOUND"
	CodeRuleNotFound   = "RULE_NOT_FOUND"
	CodeLeadReserved   = "LEAD_RESERVED"
	CodeNotHolder      = "NOT_RESERVATION_HOLDER"
	CodeForbidden      = "FORBIDDEN"
	CodeInvalidInput   = "INVALID_INPUT"
	CodePersistence    = "PERSISTENCE"
	CodeQueuePublish   = "QUEUE_PUBLISH"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, format string, args ...any) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Cause
}

// NewPersistenceError wraps a failed store read/write. The caller surfaces
// it as a retryable failure; no automatic retry happens here.
func NewPersistenceError(op string, cause error) *TechnicalError {
	return &TechnicalError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("%s: %v", op, cause),
		Cause:   cause,
	}
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
