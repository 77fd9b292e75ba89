package inbound

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/identity/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)

	RequestOTP(ctx context.Context, in usecase.RequestOTPInput) error
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	ToggleOTP(ctx context.Context, in usecase.ToggleOTPInput) (*entity.User, error)

	ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error
	ChangePassword(ctx context.Context, in usecase.ChangePasswordInput) error

	Profile(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, in usecase.UpdateProfileInput) (*entity.User, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/api/auth/login", end.Login)
	r.POST("/api/auth/register", end.Register)
	r.POST("/api/auth/request-otp", end.RequestOTP)
	r.POST("/api/auth/verify-otp", end.VerifyOTP)

	// Credential Management (need authenticated)
	r.POST("/api/auth/toggle-otp", end.ToggleOTP)
	r.POST("/api/auth/reset-password", end.ResetPassword) // temp token only
	r.PUT("/api/auth/password", end.ChangePassword)

	// Profile (need authenticated)
	r.GET("/api/auth/me", end.Profile)
	r.PUT("/api/auth/profile", end.UpdateProfile)
}
