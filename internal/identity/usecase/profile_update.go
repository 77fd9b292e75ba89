package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type UpdateProfileInput struct {
	FullName string `validate:"required,min=3,max=100,alphaspace"`
	Email    string `validate:"required,email"`
	PAN      string `validate:"omitempty,pan"`
	Mobile   string `validate:"omitempty,inphone"`
}

// UpdateProfile mutates the authenticated user's display and tax fields.
func (s *Usecase) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "profile", "write")
	if err != nil {
		return nil, err
	}

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.PAN = strings.ToUpper(strings.TrimSpace(in.PAN))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	update := entity.UpdateProfile{
		ID:       clm.UserID,
		Email:    in.Email,
		FullName: in.FullName,
		PAN:      in.PAN,
		Mobile:   in.Mobile,
	}

	if err := s.repoDB.UpdateUserProfile(ctx, update); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusinessReason("Email already registered", goerror.CodeConflict, ReasonEmailInUse)
		}
		slog.ErrorContext(ctx, "failed to repo update user profile", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
