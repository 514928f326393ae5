package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateBotRequiresName(t *testing.T) {
	h := NewBotHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/bot/createBot", nil)
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "Bot name is required", env.Message)
}

func TestQueryRejectsBadBotID(t *testing.T) {
	h := NewBotHandler(nil, nil, nil)

	body := `{"botId":"not-a-uuid","query":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bot/query", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Query(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "A valid botId is required", env.Message)
}

func TestAddContentRequiresSources(t *testing.T) {
	h := NewBotHandler(nil, nil, nil)

	body := `{"botId":"5a988a6c-6bb8-4da6-9c08-ee3a5a6dd786","botName":"bot"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bot/addContent", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.AddContent(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
