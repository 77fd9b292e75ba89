package inbound

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/filing/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
)

type uc interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (*usecase.SubmitOutput, error)
	MySubmissions(ctx context.Context) ([]entity.TaxForm, error)

	FormList(ctx context.Context, in usecase.FormListInput) (*usecase.FormListOutput, error)
	FormDetail(ctx context.Context, id int64) (*entity.TaxForm, error)
	UpdateFormStatus(ctx context.Context, in usecase.UpdateFormStatusInput) (*entity.TaxForm, error)
	DocumentDownload(ctx context.Context, in usecase.DocumentDownloadInput) (*usecase.DocumentDownloadOutput, error)
	Stats(ctx context.Context) (*usecase.StatsOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Public intake
	r.POST("/api/forms/tax", end.Submit)

	// Filer portal (need authenticated)
	r.GET("/api/forms/mine", end.MySubmissions)

	// Admin review (need authenticated & authorization)
	r.GET("/api/admin/forms", end.FormList)
	r.GET("/api/admin/forms/:id", end.FormDetail)
	r.PUT("/api/admin/forms/:id/status", end.UpdateFormStatus)
	r.GET("/api/admin/forms/:id/documents/:docID", end.DocumentDownload)
	r.GET("/api/admin/stats", end.Stats)
}
