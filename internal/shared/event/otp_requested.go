package event

const OTPRequestedDestination string = "otp_requested"
const OTPRequestedConsumerNotification string = "otp_requested_notification"

// OTPRequestedMessage carries the plaintext code to the mailer. Only the HMAC
// of the code is persisted; this message is the single place the code travels.
type OTPRequestedMessage struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	ExpiresIn int64  `json:"expires_in_seconds"`
}
