package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type RegisterInput struct {
	FullName string `validate:"required,min=3,max=100,alphaspace"`
	Email    string `validate:"required,email"`
	Password string
	UseOTP   bool
}

type RegisterOutput struct {
	Token string
	User  entity.User
}

// Register creates an account and signs the user in immediately. Password
// accounts must supply a password; OTP accounts get their first code mailed
// right away so the next login can complete.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var passwordHash *string
	if !in.UseOTP {
		if in.Password == "" {
			return nil, goerror.NewInvalidInput(nil, "password", "password is required unless OTP login is enabled")
		}
		if len(in.Password) < 8 {
			return nil, goerror.NewInvalidInput(nil, "password", "password must be at least 8 characters")
		}

		hashed, err := s.bcrypt.Hash(in.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash password", "error", err)
			return nil, goerror.NewServer(err)
		}
		h := string(hashed)
		passwordHash = &h
	}

	newUser := entity.NewUser{
		ID:       s.uid.Generate(),
		Email:    in.Email,
		FullName: in.FullName,
		Role:     entity.RoleUser,
		UseOTP:   in.UseOTP,
		Password: passwordHash,
	}

	if err := s.repoDB.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusinessReason("Email already registered", goerror.CodeConflict, ReasonEmailInUse)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID: newUser.ID,
		Email:  newUser.Email,
		Name:   newUser.FullName,
		UseOTP: newUser.UseOTP,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	if in.UseOTP {
		if err := s.issueOTP(ctx, &entity.UserAuth{
			ID:       newUser.ID,
			Email:    newUser.Email,
			FullName: newUser.FullName,
			Role:     newUser.Role,
			UseOTP:   true,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to issue first otp", "user_id", newUser.ID, "error", err)
		}
	}

	token, err := s.jwt.Generate(newUser.ID, newUser.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate jwt token", "user_id", newUser.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, newUser.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", newUser.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterOutput{Token: token, User: *user}, nil
}
