package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshitk-cp/wolfmind/internal/domain"
	"github.com/Harshitk-cp/wolfmind/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

func newTestRouter() http.Handler {
	svc := service.NewSessionService(func() service.Rand { return firstRand{} }, zap.NewNop())
	h := NewSessionHandler(svc)

	r := chi.NewRouter()
	r.Post("/sessions", h.Create)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.GetByID)
		r.Delete("/", h.Delete)
		r.Get("/beliefs", h.Beliefs)
		r.Post("/initialize", h.Initialize)
		r.Post("/day-start", h.DayStart)
		r.Post("/update", h.Update)
		r.Post("/talk", h.Talk)
		r.Post("/vote", h.Vote)
		r.Post("/guard", h.Guard)
		r.Post("/finish", h.Finish)
	})
	return r
}

func call(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func createSession(t *testing.T, h http.Handler, role string) string {
	t.Helper()
	rec := call(t, h, http.MethodPost, "/sessions", map[string]string{"role": role})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	info := decode[service.SessionInfo](t, rec)
	return "/sessions/" + info.ID.String()
}

func gameInfo(talks ...map[string]any) map[string]any {
	return map[string]any{
		"day":   1,
		"agent": 1,
		"status_map": map[string]string{
			"1": "ALIVE", "2": "ALIVE", "3": "ALIVE", "4": "ALIVE", "5": "ALIVE",
		},
		"talk_list": talks,
	}
}

func TestSessionHandler_FullDay(t *testing.T) {
	h := newTestRouter()
	base := createSession(t, h, "VILLAGER")

	rec := call(t, h, http.MethodPost, base+"/initialize", map[string]any{
		"game_info":    gameInfo(),
		"game_setting": map[string]any{"player_num": 5, "max_talk": 10},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodPost, base+"/day-start", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodPost, base+"/update", map[string]any{
		"game_info": gameInfo(
			map[string]any{"idx": 0, "agent": 4, "topic": "COMINGOUT", "role": "SEER"},
			map[string]any{"idx": 1, "agent": 4, "topic": "DIVINED", "target": 1, "result": "WEREWOLF"},
			map[string]any{"idx": 2, "agent": 2, "topic": "ESTIMATE", "target": 3},
		),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodPost, base+"/talk", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	talk := decode[utteranceResponse](t, rec)
	assert.Equal(t, domain.TopicVote, talk.Topic)
	assert.Equal(t, domain.Player(4), talk.Target)
	assert.Equal(t, "VOTE Agent[04]", talk.Text)

	rec = call(t, h, http.MethodPost, base+"/talk", nil)
	assert.Equal(t, "Skip", decode[utteranceResponse](t, rec).Text)

	rec = call(t, h, http.MethodPost, base+"/vote", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vote := decode[targetResponse](t, rec)
	assert.Equal(t, domain.Player(4), vote.Target)
	assert.Equal(t, "Agent[04]", vote.Agent)

	rec = call(t, h, http.MethodGet, base+"/beliefs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[service.BeliefView](t, rec)
	assert.Equal(t, domain.RoleSeer, view.Claims[4])
	assert.Equal(t, []domain.Player{4}, view.Confirmed)
	assert.Equal(t, 3, view.TalkHead)

	rec = call(t, h, http.MethodPost, base+"/finish", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodDelete, base+"/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = call(t, h, http.MethodGet, base+"/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandler_Guard(t *testing.T) {
	h := newTestRouter()

	villager := createSession(t, h, "SEER")
	call(t, h, http.MethodPost, villager+"/initialize", map[string]any{"game_info": gameInfo()})
	rec := call(t, h, http.MethodPost, villager+"/guard", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	guard := createSession(t, h, "BODYGUARD")
	call(t, h, http.MethodPost, guard+"/initialize", map[string]any{"game_info": gameInfo()})
	rec = call(t, h, http.MethodPost, guard+"/guard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Player(2), decode[targetResponse](t, rec).Target)
}

func TestSessionHandler_Errors(t *testing.T) {
	h := newTestRouter()
	base := createSession(t, h, "VILLAGER")
	missing := "/sessions/" + uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing role", http.MethodPost, "/sessions", map[string]string{}, http.StatusBadRequest},
		{"unknown role", http.MethodPost, "/sessions", map[string]string{"role": "FREEMASON"}, http.StatusBadRequest},
		{"bad session id", http.MethodGet, "/sessions/not-a-uuid/", nil, http.StatusBadRequest},
		{"unknown session", http.MethodPost, missing + "/vote", nil, http.StatusNotFound},
		{"talk before initialize", http.MethodPost, base + "/talk", nil, http.StatusConflict},
		{"initialize without game info", http.MethodPost, base + "/initialize", map[string]any{}, http.StatusBadRequest},
		{"update without game info", http.MethodPost, base + "/update", map[string]any{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
		})
	}
}

func TestGameInfoRequest_ToDomain(t *testing.T) {
	req := gameInfoRequest{
		Day:   2,
		Agent: 3,
		StatusMap: map[domain.Player]domain.Status{
			4: domain.StatusDead, 1: domain.StatusAlive, 3: domain.StatusAlive,
		},
		TalkList: []talkRequest{
			{Idx: 0, Agent: 1, Topic: domain.TopicComingOut, Role: domain.RoleMedium},
			{Idx: 1, Agent: 4, Topic: domain.TopicDivined, Target: 3, Result: "MAYBE"},
		},
	}

	info := req.toDomain()
	assert.Equal(t, []domain.Player{1, 3, 4}, info.AgentList)
	assert.False(t, info.IsAlive(4))
	assert.Equal(t, domain.ComingOut{Role: domain.RoleMedium}, info.TalkList[0].Content)
	assert.Equal(t, domain.Other{Raw: domain.TopicDivined}, info.TalkList[1].Content, "invalid result degrades to Other")
}
