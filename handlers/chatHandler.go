package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"studybuddy/models"
	"studybuddy/services/agent"
)

type ChatHandler struct {
	service *agent.Service
}

func NewChatHandler(service *agent.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/agent/chat", h.Chat).Methods("POST")
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received agent chat request")

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode chat request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "A username is required")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "A query is required")
		return
	}

	result, err := h.service.RunTurn(r.Context(), req.Username, req.Query)
	if err != nil {
		log.Printf("[ERROR] Agent turn failed: %v", err)
		h.writeErrorResponse(w, turnErrorStatus(err), "The study session hit a snag. Please try asking again.")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

func turnErrorStatus(err error) int {
	if errors.Is(err, agent.ErrTurnBudgetExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func (h *ChatHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *ChatHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
