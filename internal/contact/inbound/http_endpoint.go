package inbound

import (
	"github.com/comfinserv/taxdesk/internal/contact/entity"
	"github.com/comfinserv/taxdesk/internal/contact/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for the public contact form and its
// admin listing.
type HTTPEndpoint struct {
	uc uc
}

// Submit stores a message from the public contact form.
func (h *HTTPEndpoint) Submit(r *router.Request) (any, error) {
	var req SubmitRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.Submit(r.Context(), usecase.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return nil, err
	}

	return SubmitResponse{}, nil
}

// List returns contact messages for the admin dashboard.
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	size, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.List(r.Context(), usecase.ListInput{Size: size, Page: page})
	if err != nil {
		return nil, err
	}

	return ContactListResponse{
		Contacts: lo.Map(resp.Contacts, func(msg entity.ContactMessage, _ int) ContactResponse {
			return ContactResponse{
				ID:        msg.ID,
				Name:      msg.Name,
				Email:     msg.Email,
				Message:   msg.Message,
				CreatedAt: msg.CreatedAt,
			}
		}),
		page:  resp.Page,
		size:  resp.Size,
		total: resp.Total,
	}, nil
}
