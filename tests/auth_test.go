package tests

import (
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {
	t.Run("PasswordAccount", func(t *testing.T) {
		// Arrange
		email := uniqueEmail("register")
		payload := map[string]any{
			"name":     "Register User",
			"email":    email,
			"password": "Secret123!",
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/auth/register", payload, "")

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
		}
		var data authData
		decodeSuccess(t, body, &data)
		if data.Token == "" {
			t.Fatal("expected a session token")
		}
		if data.User.Email != email || data.User.Role != "user" {
			t.Fatalf("unexpected user: %+v", data.User)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		// Arrange
		user := registerUser(t)
		payload := map[string]any{
			"name":     "Duplicate User",
			"email":    user.Email,
			"password": "Secret123!",
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/auth/register", payload, "")

		// Assert
		if status != http.StatusConflict {
			t.Fatalf("expected 409, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Code != "EMAIL_IN_USE" {
			t.Fatalf("expected EMAIL_IN_USE, got %q", errEnv.Code)
		}
	})

	t.Run("MissingPassword", func(t *testing.T) {
		// Arrange
		payload := map[string]any{
			"name":  "No Password",
			"email": uniqueEmail("nopass"),
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/auth/register", payload, "")

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
		errEnv := decodeError(t, body)
		if _, ok := errEnv.Error["password"]; !ok {
			t.Fatalf("expected a password field error, got %v", errEnv.Error)
		}
	})
}

func TestLoginFlow(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		// Arrange
		user := registerUser(t)

		// Act
		resp := login(t, user.Email, user.Password)

		// Assert
		if resp.Token == "" {
			t.Fatal("expected a session token")
		}
		if resp.User.Email != user.Email {
			t.Fatalf("unexpected user: %+v", resp.User)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		user := registerUser(t)
		payload := map[string]string{
			"email":    user.Email,
			"password": "not-the-password",
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/auth/login", payload, "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Code != "INVALID_PASSWORD" {
			t.Fatalf("expected INVALID_PASSWORD, got %q", errEnv.Code)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		payload := map[string]string{
			"email":    uniqueEmail("ghost"),
			"password": "Secret123!",
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/auth/login", payload, "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Code != "INVALID_LOGIN" {
			t.Fatalf("expected INVALID_LOGIN, got %q", errEnv.Code)
		}
	})

	t.Run("AdminRoleFilter", func(t *testing.T) {
		// Arrange
		user := registerUser(t)
		payload := map[string]string{
			"email":    user.Email,
			"password": user.Password,
			"role":     "admin",
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/auth/login", payload, "")

		// Assert
		if status != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Code != "INVALID_LOGIN" {
			t.Fatalf("expected INVALID_LOGIN, got %q", errEnv.Code)
		}
	})
}

func TestRequestOTP(t *testing.T) {
	t.Run("UnknownEmailGetsGenericAnswer", func(t *testing.T) {
		// Arrange
		payload := map[string]string{"email": uniqueEmail("ghost")}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/auth/request-otp", payload, "")

		// Assert
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		env := decodeSuccess(t, body, nil)
		if env.Message == "" {
			t.Fatal("expected the generic acknowledgement message")
		}
	})
}

func TestProfile(t *testing.T) {
	t.Run("ReadOwnProfile", func(t *testing.T) {
		// Arrange
		user := registerUser(t)

		// Act
		status, body := doJSON(t, http.MethodGet, "/api/auth/me", nil, user.Token)

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("profile failed: status=%d message=%q", status, errEnv.Message)
		}
		var data userData
		decodeSuccess(t, body, &data)
		if data.Email != user.Email {
			t.Fatalf("unexpected profile: %+v", data)
		}
	})

	t.Run("RequiresToken", func(t *testing.T) {
		// Act
		status, _ := doJSON(t, http.MethodGet, "/api/auth/me", nil, "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		// Arrange
		user := registerUser(t)
		payload := map[string]string{
			"name":   "Updated Name",
			"email":  user.Email,
			"pan":    "ABCDE1234F",
			"mobile": "9876543210",
		}

		// Act
		status, body := doJSON(t, http.MethodPut, "/api/auth/profile", payload, user.Token)

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("update profile failed: status=%d message=%q", status, errEnv.Message)
		}
		var data userData
		decodeSuccess(t, body, &data)
		if data.Name != "Updated Name" || data.PAN != "ABCDE1234F" {
			t.Fatalf("unexpected profile: %+v", data)
		}
	})

	t.Run("RejectsBadPAN", func(t *testing.T) {
		// Arrange
		user := registerUser(t)
		payload := map[string]string{
			"name":  "Updated Name",
			"email": user.Email,
			"pan":   "NOT-A-PAN",
		}

		// Act
		status, _ := doJSON(t, http.MethodPut, "/api/auth/profile", payload, user.Token)

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("RotatesAndLogsBackIn", func(t *testing.T) {
		// Arrange
		user := registerUser(t)
		payload := map[string]string{
			"old_password": user.Password,
			"new_password": "Changed123!",
		}

		// Act
		status, body := doJSON(t, http.MethodPut, "/api/auth/password", payload, user.Token)

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("change password failed: status=%d message=%q", status, errEnv.Message)
		}
		resp := login(t, user.Email, "Changed123!")
		if resp.Token == "" {
			t.Fatal("expected login with the new password to succeed")
		}
	})

	t.Run("WrongOldPassword", func(t *testing.T) {
		// Arrange
		user := registerUser(t)
		payload := map[string]string{
			"old_password": "not-the-password",
			"new_password": "Changed123!",
		}

		// Act
		status, body := doJSON(t, http.MethodPut, "/api/auth/password", payload, user.Token)

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
		errEnv := decodeError(t, body)
		if errEnv.Code != "INVALID_PASSWORD" {
			t.Fatalf("expected INVALID_PASSWORD, got %q", errEnv.Code)
		}
	})
}
