package types

// SubmissionStatus represents the lifecycle of a form submission
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"
	StatusLoading SubmissionStatus = "loading"
	StatusSuccess SubmissionStatus = "success"
	StatusError   SubmissionStatus = "error"
)

// String returns the string representation of the status
func (s SubmissionStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusIdle, StatusLoading, StatusSuccess, StatusError:
		return true
	default:
		return false
	}
}

// InFlight reports whether a submission is currently pending
func (s SubmissionStatus) InFlight() bool {
	return s == StatusLoading
}

// Resolved reports whether the status carries a submission outcome
func (s SubmissionStatus) Resolved() bool {
	return s == StatusSuccess || s == StatusError
}
