package inbound

import "time"

type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type SubmitResponse struct{}

func (SubmitResponse) Message() string {
	return "Thank you for reaching out, we will get back to you soon."
}

type ContactResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`

	page  int32
	size  int32
	total int64
}

func (c ContactListResponse) Meta() map[string]any {
	pages := c.total / int64(c.size)
	if c.total%int64(c.size) != 0 {
		pages++
	}

	return map[string]any{
		"total": c.total,
		"page":  c.page,
		"limit": c.size,
		"pages": pages,
	}
}
