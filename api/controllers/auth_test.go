package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/internal/auth"
	"github.com/carlosmendieta/resumeforge-backend/internal/users"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
)

type stubAuthService struct {
	resp *auth.AuthResponse
	err  error
}

func (s stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return s.resp, s.err
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return s.resp, s.err
}

func TestAuthRegisterSuccess(t *testing.T) {
	resp := &auth.AuthResponse{
		Token: "access-token",
		User: &users.UserDTO{
			ID:    uuid.New(),
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
			Role:  enums.UserRoleUser,
		},
	}
	handler := AuthRegister(stubAuthService{resp: resp}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte(`{"name":"Ada Lovelace","email":"ada@example.com","password":"supersecret"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Token string         `json:"token"`
			User  *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "access-token" {
		t.Fatalf("expected token in payload got %q", envelope.Data.Token)
	}
	if envelope.Data.User == nil || envelope.Data.User.Email != "ada@example.com" {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthRegisterInvalidPayload(t *testing.T) {
	handler := AuthRegister(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte(`{"password":"supersecret"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthRegisterShortPassword(t *testing.T) {
	handler := AuthRegister(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte(`{"name":"Ada","email":"ada@example.com","password":"short"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password got %d", rec.Code)
	}
}

func TestAuthLoginSuccess(t *testing.T) {
	resp := &auth.AuthResponse{Token: "access-token"}
	handler := AuthLogin(stubAuthService{resp: resp}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{"email":"ada@example.com","password":"supersecret"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
