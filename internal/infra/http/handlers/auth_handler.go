package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/cgsoftworks/leadbook/internal/infra/http/middleware"
	"github.com/cgsoftworks/leadbook/internal/usecase"
)

type AuthHandler struct {
	Register       *usecase.RegisterAccountUseCase
	VerifyOTP      *usecase.VerifyOTPUseCase
	ResendOTP      *usecase.ResendVerificationOTPUseCase
	Login          *usecase.LoginUseCase
	ForgotPassword *usecase.ForgotPasswordUseCase
	ResetPassword  *usecase.ResetPasswordUseCase
	Settings       *usecase.AccountSettingsUseCase

	rateLimiter *RateLimiter
}

func NewAuthHandler(
	register *usecase.RegisterAccountUseCase,
	verifyOTP *usecase.VerifyOTPUseCase,
	resendOTP *usecase.ResendVerificationOTPUseCase,
	login *usecase.LoginUseCase,
	forgotPassword *usecase.ForgotPasswordUseCase,
	resetPassword *usecase.ResetPasswordUseCase,
	settings *usecase.AccountSettingsUseCase,
) *AuthHandler {
	return &AuthHandler{
		Register:       register,
		VerifyOTP:      verifyOTP,
		ResendOTP:      resendOTP,
		Login:          login,
		ForgotPassword: forgotPassword,
		ResetPassword:  resetPassword,
		Settings:       settings,
		rateLimiter:    NewRateLimiter(10, time.Minute),
	}
}

func (h *AuthHandler) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.rateLimiter.Allow(getClientIP(r)) {
		return true
	}
	writeJSON(w, http.StatusTooManyRequests, envelope{
		Success: false,
		Error:   &errorBody{Code: "RATE_LIMITED", Message: "Too many requests. Please try again later."},
	})
	return false
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	var input usecase.RegisterAccountInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.RemoteIP = getClientIP(r)

	out, err := h.Register.Execute(r.Context(), input)
	if err != nil {
		h.recordUpstream(err)
		respondError(w, err)
		return
	}

	middleware.RecordOTPIssued("verification")
	respondMessage(w, http.StatusCreated, out.Message)
}

func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var input usecase.VerifyOTPInput
	if !decodeBody(w, r, &input) {
		return
	}

	out, err := h.VerifyOTP.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, out.Message)
}

func (h *AuthHandler) HandleResendOTP(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	var input usecase.ResendVerificationOTPInput
	if !decodeBody(w, r, &input) {
		return
	}

	out, err := h.ResendOTP.Execute(r.Context(), input)
	if err != nil {
		h.recordUpstream(err)
		respondError(w, err)
		return
	}

	middleware.RecordOTPIssued("verification")
	respondMessage(w, http.StatusOK, out.Message)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if !decodeBody(w, r, &input) {
		return
	}

	out, err := h.Login.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, out)
}

func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	var input usecase.ForgotPasswordInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.RemoteIP = getClientIP(r)

	out, err := h.ForgotPassword.Execute(r.Context(), input)
	if err != nil {
		h.recordUpstream(err)
		respondError(w, err)
		return
	}

	middleware.RecordOTPIssued("password_reset")
	respondMessage(w, http.StatusOK, out.Message)
}

func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var input usecase.ResetPasswordInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.RemoteIP = getClientIP(r)

	out, err := h.ResetPassword.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, out.Message)
}

func (h *AuthHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	out, err := h.Settings.GetProfile(r.Context(), middleware.AccountID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, out)
}

func (h *AuthHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdatePasswordInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.AccountID = middleware.AccountID(r.Context())

	if err := h.Settings.UpdatePassword(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Password updated successfully")
}

func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateProfileInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.AccountID = middleware.AccountID(r.Context())

	out, err := h.Settings.UpdateProfile(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, out)
}

func (h *AuthHandler) recordUpstream(err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == usecase.CodeUpstreamFailed {
		middleware.RecordIntegrationError("smtp")
	}
}
