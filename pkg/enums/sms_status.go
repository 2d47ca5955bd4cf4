package enums

// SMSStatus records the outcome of an attempted SMS send.
type SMSStatus string

const (
	SMSStatusSent   SMSStatus = "sent"
	SMSStatusFailed SMSStatus = "failed"
)

// IsValid checks whether the given status matches the canonical enum.
func (s SMSStatus) IsValid() bool {
	return s == SMSStatusSent || s == SMSStatusFailed
}
