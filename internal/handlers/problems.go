package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/placement-tracker-backend/internal/middleware"
	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

// CreateProblemRequest is the problem create body. topicId selects one of the
// caller's topics; topic is a topic name, created for the caller if missing.
type CreateProblemRequest struct {
	Title      string  `json:"title"`
	Difficulty string  `json:"difficulty"`
	Topic      *string `json:"topic"`
	TopicID    *string `json:"topicId"`
	Platform   string  `json:"platform"`
	ProblemURL string  `json:"problem_url"`
	Status     string  `json:"status"`
	Attempts   int     `json:"attempts"`
	Notes      string  `json:"notes"`
	Solved     bool    `json:"solved"`
}

// UpdateProblemRequest is a partial update. An empty topic or topicId clears
// the topic.
type UpdateProblemRequest struct {
	models.ProblemUpdate
	Topic   *string `json:"topic"`
	TopicID *string `json:"topicId"`
}

// topicRef builds the topic reference from the two body fields. topicId
// takes precedence; nil means neither was sent.
func topicRef(topicID, topic *string) *services.TopicRef {
	var ref services.TopicRef
	switch {
	case topicID != nil:
		ref = services.TopicByID(*topicID)
	case topic != nil:
		ref = services.TopicByName(*topic)
	default:
		return nil
	}
	return &ref
}

type ProblemHandler struct {
	problems *services.ProblemService
}

func NewProblemHandler(problems *services.ProblemService) *ProblemHandler {
	return &ProblemHandler{problems: problems}
}

// List handles GET /api/problems; ?favorite=true returns favorites only.
func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	filter := models.ProblemFilter{FavoritesOnly: r.URL.Query().Get("favorite") == "true"}
	problems, err := h.problems.List(r.Context(), user.ID, filter)
	if err != nil {
		writeError(w, r, err, "Problem")
		return
	}
	utils.WriteJSON(w, http.StatusOK, problems)
}

func (h *ProblemHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req CreateProblemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := services.ProblemInput{
		Title:      req.Title,
		Difficulty: req.Difficulty,
		Platform:   req.Platform,
		ProblemURL: req.ProblemURL,
		Status:     req.Status,
		Attempts:   req.Attempts,
		Notes:      req.Notes,
		Solved:     req.Solved,
	}
	if ref := topicRef(req.TopicID, req.Topic); ref != nil {
		in.Topic = *ref
	}

	problem, err := h.problems.Create(r.Context(), user.ID, in)
	if err != nil {
		writeError(w, r, err, "Problem")
		return
	}
	utils.WriteJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req UpdateProblemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	problem, err := h.problems.Update(r.Context(), user.ID, chi.URLParam(r, "id"), services.ProblemChanges{
		ProblemUpdate: req.ProblemUpdate,
		Topic:         topicRef(req.TopicID, req.Topic),
	})
	if err != nil {
		writeError(w, r, err, "Problem")
		return
	}
	utils.WriteJSON(w, http.StatusOK, problem)
}

// ToggleFavorite handles PUT /api/problems/{id}/toggle-favorite
func (h *ProblemHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	problem, err := h.problems.ToggleFavorite(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "Problem")
		return
	}
	utils.WriteJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.problems.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "Problem")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Problem deleted")
}
