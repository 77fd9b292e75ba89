package event

const FormStatusChangedDestination string = "form_status_changed"
const FormStatusChangedConsumerNotification string = "form_status_changed_notification"

type FormStatusChangedMessage struct {
	FormID   int64  `json:"form_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}
