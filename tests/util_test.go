package tests

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func adminEmail() string {
	if v := strings.TrimSpace(os.Getenv("TAXDESK_ADMIN_EMAIL")); v != "" {
		return v
	}
	return "admin@taxdesk.local"
}

func adminPassword() string {
	if v := strings.TrimSpace(os.Getenv("TAXDESK_ADMIN_PASSWORD")); v != "" {
		return v
	}
	return "Secret123!"
}

type userData struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	UseOTP bool   `json:"useOTP"`
	PAN    string `json:"pan"`
	Mobile string `json:"mobile"`
}

type authData struct {
	Token string   `json:"token"`
	User  userData `json:"user"`
}

func login(t *testing.T, email, password string) authData {
	t.Helper()

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/auth/login", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
	}

	var data authData
	decodeSuccess(t, body, &data)

	return data
}

func adminToken(t *testing.T) string {
	t.Helper()

	resp := login(t, adminEmail(), adminPassword())
	if resp.Token == "" {
		t.Fatal("missing admin token")
	}

	return resp.Token
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

type testUser struct {
	Email    string
	Password string
	Name     string
	Token    string
}

func registerUser(t *testing.T) testUser {
	t.Helper()

	user := testUser{
		Email:    uniqueEmail("real-user"),
		Password: "Secret123!",
		Name:     "Test User",
	}

	payload := map[string]any{
		"name":     user.Name,
		"email":    user.Email,
		"password": user.Password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/auth/register", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	var data authData
	decodeSuccess(t, body, &data)
	if data.Token == "" {
		t.Fatal("register response missing token")
	}
	user.Token = data.Token

	return user
}

func taxFormFields(email string) map[string]string {
	return map[string]string{
		"fullName": "Test Filer",
		"email":    email,
		"phone":    "9876543210",
		"pan":      "ABCDE1234F",
	}
}

type formData struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	PAN      string `json:"pan"`
	Status   string `json:"status"`

	Documents []struct {
		ID           string `json:"id"`
		DocumentType string `json:"documentType"`
		OriginalName string `json:"originalName"`
	} `json:"documents"`
}

// submitTaxForm files a minimal submission with one document and returns the
// new form id.
func submitTaxForm(t *testing.T, email, token string) string {
	t.Helper()

	files := map[string]fileUpload{
		"form16": {Name: "form16.pdf", Content: []byte("%PDF-1.4 test document")},
	}

	status, body := doMultipart(t, http.MethodPost, "/api/forms/tax", taxFormFields(email), files, token)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("submit tax form failed: status=%d message=%q error=%v", status, errEnv.Message, errEnv.Error)
	}

	var data struct {
		FormID string `json:"formId"`
	}
	decodeSuccess(t, body, &data)
	if data.FormID == "" {
		t.Fatal("submit response missing formId")
	}

	return data.FormID
}
