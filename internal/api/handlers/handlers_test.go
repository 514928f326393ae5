package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/account"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/rag"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/response"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "email taken", err: account.ErrEmailTaken, status: http.StatusConflict, message: "Email already in use"},
		{name: "not found", err: account.ErrNotFound, status: http.StatusNotFound, message: "User not found"},
		{name: "invalid otp", err: account.ErrInvalidOTP, status: http.StatusBadRequest, message: "Invalid OTP"},
		{name: "too many attempts", err: account.ErrTooManyAttempts, status: http.StatusTooManyRequests, message: "Too many attempts"},
		{name: "rate limited", err: account.ErrRateLimited, status: http.StatusTooManyRequests, message: "OTP sent recently, please wait before retrying"},
		{name: "no config", err: bot.ErrConfigNotFound, status: http.StatusNotFound, message: "Bot config not found"},
		{name: "no results", err: rag.ErrNoResults, status: http.StatusNotFound, message: "No Relevant result found"},
		{name: "unknown", err: errors.New("pg: connection refused"), status: http.StatusInternalServerError, message: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			serviceError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.message, env.Message)
			assert.Equal(t, tt.status, env.StatusCode)
		})
	}
}

func TestServiceErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	serviceError(w, errors.New("dial tcp 10.0.0.5:5432: timeout"))

	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"Aa1!aaaa", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial11", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, validPassword(tt.password), "password %q", tt.password)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("a@b.com"))
	assert.False(t, validEmail(""))
	assert.False(t, validEmail("nobody"))
	assert.False(t, validEmail("@host"))
	assert.False(t, validEmail("user@"))
}
