package inbound

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/contact/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) error
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Public intake
	r.POST("/api/forms/contact", end.Submit)

	// Admin review (need authenticated & authorization)
	r.GET("/api/admin/contacts", end.List)
}
