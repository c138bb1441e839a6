package usecase

// Status is the overall outcome of an orchestrated operation.
type Status int

const (
	StatusFailure Status = iota
	StatusSuccess
	// StatusPartialSuccess means registration created the Identity but not its role profile.
	StatusPartialSuccess
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusPartialSuccess:
		return "partial_success"
	default:
		return "failure"
	}
}

// Reason explains a failed Result. It is empty unless the status is StatusFailure.
type Reason string

const (
	ReasonAlreadyExists     Reason = "ALREADY_EXISTS"
	ReasonNotFound          Reason = "NOT_FOUND"
	ReasonInvalidCredential Reason = "INVALID_CREDENTIAL"
	ReasonRoleMissing       Reason = "ROLE_MISSING"
)

// Result is the business outcome of an operation. Expected failures are
// reported here; the accompanying error is reserved for infrastructure faults.
type Result[T any] struct {
	Status Status
	Reason Reason
	Value  T
}

// Success wraps value in a successful Result.
func Success[T any](value T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: value}
}

// PartialSuccess wraps value in a partially successful Result.
func PartialSuccess[T any](value T) Result[T] {
	return Result[T]{Status: StatusPartialSuccess, Value: value}
}

// Failure reports reason with no value.
func Failure[T any](reason Reason) Result[T] {
	return Result[T]{Status: StatusFailure, Reason: reason}
}

// FailureWith reports reason together with a value, for failures that still persisted something.
func FailureWith[T any](reason Reason, value T) Result[T] {
	return Result[T]{Status: StatusFailure, Reason: reason, Value: value}
}

func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

func (r Result[T]) IsPartial() bool { return r.Status == StatusPartialSuccess }

func (r Result[T]) IsFailure() bool { return r.Status == StatusFailure }
