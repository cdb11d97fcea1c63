package model

// Messages surfaced to the user by the form state machine and the
// shipped submit operations. The wording is part of the contract.
const (
	MessageSetupCompleted = "Setup completed successfully!"
	MessageSomethingWrong = "Something went wrong"
	MessageSetupFailed    = "Failed to complete setup"
	MessageEmailRequired  = "Email is required"
	MessageInvalidWebhook = "Invalid Slack webhook URL"
)

// SubmitResult is the outcome reported by a submit operation.
// A failed operation may carry a human-readable reason in Error.
type SubmitResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SubmitOK returns a successful result
func SubmitOK() SubmitResult {
	return SubmitResult{Success: true}
}

// SubmitRejected returns a failed result with the given reason
func SubmitRejected(reason string) SubmitResult {
	return SubmitResult{Success: false, Error: reason}
}
