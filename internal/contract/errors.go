package contract

type PlanErrorCode string

const (
	ErrInvalidRequest   PlanErrorCode = "INVALID_REQUEST"
	ErrNoDirections     PlanErrorCode = "NO_DIRECTIONS"
	ErrNoAdapter        PlanErrorCode = "NO_ADAPTER"
	ErrDeadlineExceeded PlanErrorCode = "DEADLINE_EXCEEDED"
	ErrDataIntegrity    PlanErrorCode = "DATA_INTEGRITY"
	ErrInternal         PlanErrorCode = "INTERNAL_ERROR"
)

// PlanError is the typed error surfaced to callers for irrecoverable
// conditions. Recoverable conditions become trace entries instead.
type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}
