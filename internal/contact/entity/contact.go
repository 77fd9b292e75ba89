package entity

import "time"

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
