package inbound

import (
	"github.com/comfinserv/taxdesk/internal/identity/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for authentication and profile workflows.
type HTTPEndpoint struct {
	uc uc
}

// Login authenticates a user with a password or an OTP and returns a session token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{Token: resp.Token, User: newUserResponse(resp.User)}, nil
}

// Register creates an account and returns a session token for it.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName: req.Name,
		Email:    req.Email,
		Password: req.Password,
		UseOTP:   req.UseOTP,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{Token: resp.Token, User: newUserResponse(resp.User)}, nil
}

// RequestOTP sends a fresh login code. The response never reveals whether the
// email is registered.
func (h *HTTPEndpoint) RequestOTP(r *router.Request) (any, error) {
	var req RequestOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RequestOTP(r.Context(), usecase.RequestOTPInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return RequestOTPResponse{}, nil
}

// VerifyOTP consumes a login code and returns a short-lived temporary token.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{TempToken: resp.Token, User: newUserResponse(resp.User)}, nil
}

// ToggleOTP flips the account between password and OTP login modes.
func (h *HTTPEndpoint) ToggleOTP(r *router.Request) (any, error) {
	var req ToggleOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := h.uc.ToggleOTP(r.Context(), usecase.ToggleOTPInput{Password: req.Password})
	if err != nil {
		return nil, err
	}

	return newUserResponse(*user), nil
}

// ResetPassword sets a new password using a temporary token from VerifyOTP.
func (h *HTTPEndpoint) ResetPassword(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResetPassword(r.Context(), usecase.ResetPasswordInput{Password: req.Password}); err != nil {
		return nil, err
	}

	return ResetPasswordResponse{}, nil
}

// ChangePassword rotates the password of the authenticated account.
func (h *HTTPEndpoint) ChangePassword(r *router.Request) (any, error) {
	var req ChangePasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	err := h.uc.ChangePassword(r.Context(), usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	return ChangePasswordResponse{}, nil
}

// Profile returns the authenticated user's account.
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	user, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return newUserResponse(*user), nil
}

// UpdateProfile mutates the authenticated user's display and tax fields.
func (h *HTTPEndpoint) UpdateProfile(r *router.Request) (any, error) {
	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	user, err := h.uc.UpdateProfile(r.Context(), usecase.UpdateProfileInput{
		FullName: req.Name,
		Email:    req.Email,
		PAN:      req.PAN,
		Mobile:   req.Mobile,
	})
	if err != nil {
		return nil, err
	}

	return newUserResponse(*user), nil
}
