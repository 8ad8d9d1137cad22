package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/Harshitk-cp/wolfmind/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SessionHandler struct {
	svc *service.SessionService
}

func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type createSessionRequest struct {
	Role domain.Role `json:"role"`
}

type initializeRequest struct {
	GameInfo    *gameInfoRequest    `json:"game_info"`
	GameSetting *gameSettingRequest `json:"game_setting"`
}

type updateRequest struct {
	GameInfo *gameInfoRequest `json:"game_info"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role == "" {
		writeError(w, http.StatusBadRequest, "role is required")
		return
	}

	info, err := h.svc.Create(req.Role)
	if err != nil {
		writeServiceError(w, err, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	info, err := h.svc.Get(id)
	if err != nil {
		writeServiceError(w, err, "failed to get session")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(id); err != nil {
		writeServiceError(w, err, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GameInfo == nil {
		writeError(w, http.StatusBadRequest, "game_info is required")
		return
	}
	var setting domain.GameSetting
	if req.GameSetting != nil {
		setting = req.GameSetting.toDomain()
	}

	if err := h.svc.Initialize(id, req.GameInfo.toDomain(), setting); err != nil {
		writeServiceError(w, err, "failed to initialize session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "initialized"})
}

func (h *SessionHandler) DayStart(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DayStart(id); err != nil {
		writeServiceError(w, err, "failed to start day")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GameInfo == nil {
		writeError(w, http.StatusBadRequest, "game_info is required")
		return
	}

	if err := h.svc.Update(id, req.GameInfo.toDomain()); err != nil {
		writeServiceError(w, err, "failed to update session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SessionHandler) Talk(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	u, err := h.svc.Talk(id)
	if err != nil {
		writeServiceError(w, err, "failed to talk")
		return
	}
	writeJSON(w, http.StatusOK, utteranceResponse{Topic: u.Topic, Target: u.Target, Text: u.String()})
}

func (h *SessionHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	target, err := h.svc.Vote(id)
	if err != nil {
		writeServiceError(w, err, "failed to vote")
		return
	}
	writeJSON(w, http.StatusOK, newTargetResponse(target))
}

func (h *SessionHandler) Guard(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	target, err := h.svc.Guard(id)
	if err != nil {
		writeServiceError(w, err, "failed to guard")
		return
	}
	writeJSON(w, http.StatusOK, newTargetResponse(target))
}

func (h *SessionHandler) Beliefs(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	view, err := h.svc.Beliefs(id)
	if err != nil {
		writeServiceError(w, err, "failed to get beliefs")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Finish(id); err != nil {
		writeServiceError(w, err, "failed to finish session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "finished"})
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownRole):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotStarted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrActionNotSupported):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
