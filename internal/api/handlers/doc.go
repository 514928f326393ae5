package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/akshat231/Chatbot-GPT-Backend/internal/bot"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/response"
	"github.com/akshat231/Chatbot-GPT-Backend/internal/storage"
)

const maxUploadBytes = 25 << 20

type DocHandler struct {
	bots    *bot.Service
	storage *storage.Client
}

func NewDocHandler(bots *bot.Service, sc *storage.Client) *DocHandler {
	return &DocHandler{bots: bots, storage: sc}
}

type deleteDocRequest struct {
	BotID string `json:"botId"`
	DocID string `json:"docId"`
}

// Delete removes the document record. When the document came from an
// uploaded file, the stored object is deleted too; object deletion
// failures do not block removing the record.
func (h *DocHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteDocRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	botID, ok := parseBotID(w, req.BotID)
	if !ok {
		return
	}
	docID, err := uuid.Parse(req.DocID)
	if err != nil {
		invalid(w, "A valid docId is required")
		return
	}

	doc, err := h.bots.Document(r.Context(), botID, docID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if doc == nil {
		response.Error(w, http.StatusNotFound, "Document not found", nil)
		return
	}

	if path, ok := h.storage.PathFromURL(doc.Source); ok {
		if err := h.storage.Delete(r.Context(), path); err != nil {
			slog.Warn("delete stored object", "path", path, "error", err)
		}
	}

	if err := h.bots.DeleteDocument(r.Context(), botID, docID); err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "Document deleted successfully", nil)
}

// Upload stores a file and returns its public URL for use in addContent.
func (h *DocHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		invalid(w, "A file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read file", nil)
		return
	}

	path := uuid.New().String() + filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storage.Upload(r.Context(), path, data, contentType)
	if err != nil {
		serviceError(w, err)
		return
	}

	response.Success(w, "File uploaded successfully", map[string]string{
		"name": header.Filename,
		"url":  url,
	})
}
