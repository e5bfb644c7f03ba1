package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"studybuddy/services"
)

// StudyHandler exposes the read side of a student's data so a UI can
// render plans, quizzes and progress without going through the agent.
type StudyHandler struct {
	planService     *services.PlanService
	quizService     *services.QuizService
	progressService *services.ProgressService
}

func NewStudyHandler(planService *services.PlanService, quizService *services.QuizService, progressService *services.ProgressService) *StudyHandler {
	return &StudyHandler{
		planService:     planService,
		quizService:     quizService,
		progressService: progressService,
	}
}

func (h *StudyHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users/{username}/plan", h.GetCurrentPlan).Methods("GET")
	router.HandleFunc("/users/{username}/quizzes", h.GetQuizzes).Methods("GET")
	router.HandleFunc("/users/{username}/progress", h.GetProgress).Methods("GET")
}

func (h *StudyHandler) GetCurrentPlan(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	plan, err := h.planService.GetCurrentPlan(username)
	if err != nil {
		log.Printf("[ERROR] Failed to get current plan for %q: %v", username, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve study plan")
		return
	}
	if plan == nil {
		h.writeErrorResponse(w, http.StatusNotFound, "No study plan found")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, plan)
}

func (h *StudyHandler) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	topic := r.URL.Query().Get("topic")

	quizzes, err := h.quizService.GetQuizzes(username, topic)
	if err != nil {
		log.Printf("[ERROR] Failed to get quizzes for %q: %v", username, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve quizzes")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, quizzes)
}

func (h *StudyHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	topic := r.URL.Query().Get("topic")

	view, err := h.progressService.GetProgress(username, topic)
	if err != nil {
		log.Printf("[ERROR] Failed to get progress for %q: %v", username, err)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to retrieve progress")
		return
	}
	if view == nil {
		h.writeErrorResponse(w, http.StatusNotFound, "No progress data available")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, view)
}

func (h *StudyHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *StudyHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
