package handlers

import (
	"net/http"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/account"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/auth"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/response"
)

type UserHandler struct {
	accounts *account.Service
}

func NewUserHandler(accounts *account.Service) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (req signupRequest) validate() string {
	if !validEmail(req.Email) {
		return "A valid email is required"
	}
	if req.Username == "" {
		return "Username is required"
	}
	if !validPassword(req.Password) {
		return "Password must be at least 8 characters with uppercase, lowercase, digit and special character"
	}
	return ""
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		invalid(w, msg)
		return
	}

	session, err := h.accounts.Signup(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Signup successful, OTP sent to email", session)
}

type verifyRequest struct {
	OTP string `json:"otp"`
}

// Verify confirms the OTP for the email carried in the bearer token.
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.OTP) != 6 {
		invalid(w, "A 6-digit OTP is required")
		return
	}

	if err := h.accounts.VerifyOTP(r.Context(), claims.Email, req.OTP); err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Email verified successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validEmail(req.Email) || req.Password == "" {
		invalid(w, "Email and password are required")
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Login successful", session)
}

// RegenerateOTP resends a fresh code for the email in the bearer token.
func (h *UserHandler) RegenerateOTP(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	if err := h.accounts.RegenerateOTP(r.Context(), claims.Email); err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "OTP resent to email", nil)
}
