package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/placement-tracker-backend/internal/middleware"
	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/services"
	"github.com/AnshRaj112/placement-tracker-backend/pkg/utils"
)

type TopicHandler struct {
	topics *services.TopicService
}

func NewTopicHandler(topics *services.TopicService) *TopicHandler {
	return &TopicHandler{topics: topics}
}

func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	topics, err := h.topics.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err, "Topic")
		return
	}
	utils.WriteJSON(w, http.StatusOK, topics)
}

func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req models.Topic
	if !decodeJSON(w, r, &req) {
		return
	}

	topic, err := h.topics.Create(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, r, err, "Topic")
		return
	}
	utils.WriteJSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var upd models.TopicUpdate
	if !decodeJSON(w, r, &upd) {
		return
	}

	topic, err := h.topics.Update(r.Context(), user.ID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeError(w, r, err, "Topic")
		return
	}
	utils.WriteJSON(w, http.StatusOK, topic)
}

func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if err := h.topics.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "Topic")
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Topic deleted")
}
