// Package handlers contains the HTTP handlers. Every response uses the
// uniform {message, data, statusCode} envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/account"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/rag"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/response"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}
	return true
}

// serviceError maps domain sentinels onto envelope responses. Anything
// unrecognized is a 500 with the details kept out of the response.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrEmailTaken):
		response.Error(w, http.StatusConflict, "Email already in use", nil)
	case errors.Is(err, account.ErrNotFound):
		response.Error(w, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, account.ErrInvalidOTP):
		response.Error(w, http.StatusBadRequest, "Invalid OTP", nil)
	case errors.Is(err, account.ErrTooManyAttempts):
		response.Error(w, http.StatusTooManyRequests, "Too many attempts", nil)
	case errors.Is(err, account.ErrRateLimited):
		response.Error(w, http.StatusTooManyRequests, "OTP sent recently, please wait before retrying", nil)
	case errors.Is(err, bot.ErrConfigNotFound):
		response.Error(w, http.StatusNotFound, "Bot config not found", nil)
	case errors.Is(err, rag.ErrNoResults):
		response.Error(w, http.StatusNotFound, "No Relevant result found", nil)
	default:
		slog.Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error", nil)
	}
}

func invalid(w http.ResponseWriter, message string) {
	response.Error(w, http.StatusUnprocessableEntity, message, nil)
}

// validPassword enforces minimum length 8 with at least one uppercase,
// lowercase, digit and special character.
func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
