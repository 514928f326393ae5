package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/auth"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/ingest"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/models"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/rag"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/response"
)

type BotHandler struct {
	bots   *bot.Service
	ingest *ingest.Service
	rag    *rag.Service
}

func NewBotHandler(bots *bot.Service, ing *ingest.Service, ragSvc *rag.Service) *BotHandler {
	return &BotHandler{bots: bots, ingest: ing, rag: ragSvc}
}

func parseBotID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		invalid(w, "A valid botId is required")
		return uuid.Nil, false
	}
	return id, true
}

// Create makes a bot with a default config owned by the caller.
func (h *BotHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	name := r.URL.Query().Get("name")
	if name == "" {
		invalid(w, "Bot name is required")
		return
	}

	b, err := h.bots.Create(r.Context(), name, claims.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Bot created successfully", b)
}

type updateBotRequest struct {
	BotID string `json:"botId"`
	Name  string `json:"name"`
}

func (h *BotHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req updateBotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}
	if req.Name == "" {
		invalid(w, "Bot name is required")
		return
	}

	if err := h.bots.Rename(r.Context(), botID, claims.ID, req.Name); err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Bot updated successfully", nil)
}

type botIDRequest struct {
	BotID string `json:"botId"`
}

func (h *BotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req botIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}

	if err := h.bots.Delete(r.Context(), botID, claims.ID); err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Bot deleted successfully", nil)
}

func (h *BotHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	bots, err := h.bots.List(r.Context(), claims.ID)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Bots fetched successfully", map[string]interface{}{"bots": bots})
}

type getBotRequest struct {
	BotID string `json:"botId"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// Get returns the bot's documents, paginated.
func (h *BotHandler) Get(w http.ResponseWriter, r *http.Request) {
	var req getBotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	docs, err := h.bots.Documents(r.Context(), botID, req.Page, req.Limit)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Bot fetched successfully", map[string]interface{}{
		"documents": docs,
		"page":      req.Page,
		"limit":     req.Limit,
	})
}

type updateConfigRequest struct {
	BotID         string  `json:"botId"`
	ModelName     string  `json:"modelName"`
	ModelProvider string  `json:"modelProvider"`
	APIKey        string  `json:"apiKey"`
	Temperature   float64 `json:"temperature"`
}

func (h *BotHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}
	if req.ModelName == "" || req.ModelProvider == "" || req.APIKey == "" {
		invalid(w, "modelName, modelProvider and apiKey are required")
		return
	}

	cfg := models.BotConfig{
		BotID:         botID,
		ModelName:     req.ModelName,
		ModelProvider: req.ModelProvider,
		APIKey:        req.APIKey,
		Temperature:   req.Temperature,
	}
	if err := h.bots.ReplaceConfig(r.Context(), cfg); err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Bot config updated successfully", nil)
}

func (h *BotHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	var req botIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}

	cfg, err := h.bots.Config(r.Context(), botID)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Bot config fetched successfully", cfg)
}

type addContentRequest struct {
	BotID   string           `json:"botId"`
	BotName string           `json:"botName"`
	RawText []string         `json:"rawText"`
	URLs    []string         `json:"urls"`
	Files   []ingest.FileRef `json:"files"`
}

func (h *BotHandler) AddContent(w http.ResponseWriter, r *http.Request) {
	var req addContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}

	src := ingest.Sources{RawText: req.RawText, URLs: req.URLs, Files: req.Files}
	if src.Empty() {
		invalid(w, "At least one of rawText, urls or files is required")
		return
	}

	if err := h.ingest.AddContent(r.Context(), botID, req.BotName, src); err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Content added successfully", nil)
}

type queryRequest struct {
	BotID string `json:"botId"`
	Query string `json:"query"`
}

func (h *BotHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}
	if req.Query == "" {
		invalid(w, "Query is required")
		return
	}

	answer, err := h.rag.Query(r.Context(), botID, req.Query)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Query answered successfully", answer)
}
