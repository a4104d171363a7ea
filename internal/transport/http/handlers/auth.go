package http_handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/infrastructure/security"
	"github.com/baechuer/peoplehub/internal/transport/http/dto"
	"github.com/baechuer/peoplehub/internal/transport/http/middleware"
	"github.com/baechuer/peoplehub/internal/transport/http/response"
)

const msgTokenRefreshed = "Token refreshed"

type AuthHandler struct {
	svc           *auth.Service
	accessTTL     time.Duration
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, accessTTL, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.svc.Signup(r.Context(), auth.SignupInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, dto.UserResponse{Message: res.Message, User: res.User})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.svc.VerifyAccount(r.Context(), req.Email, req.VerificationCode)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.UserResponse{Message: auth.MsgVerified, User: u})
}

func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.svc.ResendVerificationCode(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, response.Message{Message: msg})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(errorLabel(err)).Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()

	h.writeSession(w, res, res.Message)
}

// Refresh rotates the session. The cookie wins; bearer clients send {"refreshToken": ...}.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	rt := security.ReadRefreshToken(r)
	if rt == "" && r.ContentLength != 0 {
		var req dto.RefreshRequest
		if !decode(w, r, &req) {
			return
		}
		rt = strings.TrimSpace(req.RefreshToken)
	}
	if rt == "" {
		response.WriteError(w, r, domain.ErrRefreshTokenInvalid())
		return
	}

	res, err := h.svc.Refresh(r.Context(), rt)
	if err != nil {
		middleware.TokenRefreshTotal.WithLabelValues("failed").Inc()
		if domain.KindOf(err) == domain.KindAuth {
			security.ClearAuthCookies(w, h.secureCookies)
		}
		response.WriteError(w, r, err)
		return
	}
	middleware.TokenRefreshTotal.WithLabelValues("explicit").Inc()

	h.writeSession(w, res, msgTokenRefreshed)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.svc.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, response.Message{Message: msg})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.svc.ResetPassword(r.Context(), auth.ResetPasswordInput{
		Email:           req.Email,
		ResetCode:       req.ResetCode,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, response.Message{Message: msg})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}

	msg, err := h.svc.ChangePassword(r.Context(), a.ID, auth.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, response.Message{Message: msg})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	msg, err := h.svc.Logout(r.Context(), a, security.ReadRefreshToken(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	security.ClearAuthCookies(w, h.secureCookies)
	response.OK(w, response.Message{Message: msg})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	u, err := h.svc.Me(r.Context(), a.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, struct {
		User domain.AccountSummary `json:"user"`
	}{User: u})
}

func (h *AuthHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	targetID, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.SetRoleRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.svc.SetRole(r.Context(), a, targetID, req.Role)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.UserResponse{Message: "Role updated successfully", User: u})
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, res auth.LoginResult, msg string) {
	security.SetAuthCookies(w, res.AccessToken, h.accessTTL, res.RefreshToken, h.refreshTTL, h.secureCookies)
	response.OK(w, dto.LoginResponse{
		Message:     msg,
		User:        res.User,
		AccessToken: res.AccessToken,
		ExpiresAt:   res.AccessExpiresAt.Unix(),

		RefreshToken:     res.RefreshToken,
		RefreshExpiresAt: res.RefreshExpiresAt.Unix(),
	})
}

// errorLabel keeps metric cardinality bounded to known domain codes.
func errorLabel(err error) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Code != "" {
		return de.Code
	}
	return "error"
}
