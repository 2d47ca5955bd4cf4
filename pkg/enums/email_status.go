package enums

// EmailStatus records the outcome of a credentials email attempt.
type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
	EmailStatusSkipped EmailStatus = "skipped"
)

// IsValid checks whether the given status matches the canonical enum.
func (e EmailStatus) IsValid() bool {
	return e == EmailStatusSent || e == EmailStatusFailed || e == EmailStatusSkipped
}
