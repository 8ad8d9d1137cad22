package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/Harshitk-cp/wolfmind/internal/service"
)

type DiagnosticsHandler struct {
	recorder *service.Recorder
}

func NewDiagnosticsHandler(recorder *service.Recorder) *DiagnosticsHandler {
	return &DiagnosticsHandler{recorder: recorder}
}

// Snapshots lists the confirmed-innocent sets persisted for a session.
func (h *DiagnosticsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	snaps, err := h.recorder.Snapshots(r.Context(), id)
	if errors.Is(err, service.ErrDiagnosticsDisabled) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	if snaps == nil {
		snaps = []domain.BeliefSnapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}
