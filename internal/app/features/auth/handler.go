// internal/app/features/auth/handler.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/htmlsanitize"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/password"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for registration and login.
type Handler struct {
	Accounts *accounts.Service
	Tokens   *auth.TokenManager
	Log      *zap.Logger
}

// NewHandler constructs an auth Handler.
func NewHandler(accountSvc *accounts.Service, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Accounts: accountSvc, Tokens: tokens, Log: logger}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// HandleRegister handles POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		httpjson.BadRequest(w, "Username, email, and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	account, err := h.Accounts.Register(ctx, accounts.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: htmlsanitize.PlainText(req.DisplayName),
	})
	switch {
	case errors.Is(err, accounts.ErrDuplicateUsername),
		errors.Is(err, accounts.ErrDuplicateEmail),
		errors.Is(err, accounts.ErrInvalidEmail),
		errors.Is(err, password.ErrTooShort):
		httpjson.BadRequest(w, err.Error())
		return
	case err != nil:
		h.Log.Error("auth: register failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Write(w, http.StatusCreated, models.ProfileOf(account))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	User        models.Profile `json:"user"`
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.Accounts.Login(ctx, req.Username, req.Password)
	if errors.Is(err, accounts.ErrInvalidCredentials) {
		httpjson.Unauthorized(w)
		return
	}
	if err != nil {
		h.Log.Error("auth: login failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	token, _, err := h.Tokens.Issue(account.Username)
	if err != nil {
		h.Log.Error("auth: token issue failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Write(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        models.ProfileOf(account),
	})
}

// ServeMe handles GET /auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	httpjson.Write(w, http.StatusOK, models.ProfileOf(account))
}
