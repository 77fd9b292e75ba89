package event

const FormSubmittedDestination string = "form_submitted"
const FormSubmittedConsumerNotification string = "form_submitted_notification"

type FormSubmittedMessage struct {
	FormID        int64  `json:"form_id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	PAN           string `json:"pan"`
	DocumentCount int    `json:"document_count"`
}
