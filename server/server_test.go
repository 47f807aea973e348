package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"shapetac/config"
	"shapetac/engine"
)

func testServer() *Server {
	base := config.DefaultGame()
	base.Bonus.RandomCount = 0
	return New(base)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func createGame(t *testing.T, srv *Server, body any) (string, *engine.Snapshot) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/games", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res createGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.ID)
	return res.ID, res.Snapshot
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, testServer(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestCreateGame(t *testing.T) {
	t.Run("creates a game from the defaults", func(t *testing.T) {
		srv := testServer()

		_, snap := createGame(t, srv, nil)

		require.Equal(t, 4, snap.Radius)
		require.Equal(t, "red", snap.CurrentPlayer)
		require.Len(t, snap.Board, 61)
		require.False(t, snap.GameOver)
	})

	t.Run("request overrides are honored", func(t *testing.T) {
		srv := testServer()
		radius, target := 2, 15

		_, snap := createGame(t, srv, map[string]any{
			"radius":      radius,
			"targetScore": target,
			"firstPlayer": "blue",
		})

		require.Equal(t, 2, snap.Radius)
		require.Equal(t, 15, snap.TargetScore)
		require.Equal(t, "blue", snap.CurrentPlayer)
		require.Len(t, snap.Board, 19)
	})

	t.Run("invalid overrides are rejected", func(t *testing.T) {
		srv := testServer()

		rec := doJSON(t, srv, http.MethodPost, "/api/games", map[string]any{"radius": 99})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetState(t *testing.T) {
	srv := testServer()
	id, _ := createGame(t, srv, nil)

	t.Run("returns the live snapshot", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/games/"+id, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var snap engine.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		require.Equal(t, "red", snap.CurrentPlayer)
	})

	t.Run("unknown game is a 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodGet, "/api/games/does-not-exist", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMoves(t *testing.T) {
	srv := testServer()
	id, _ := createGame(t, srv, nil)

	t.Run("a legal move returns the updated snapshot", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/games/"+id+"/moves", moveReq{Q: 0, R: 0})

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var snap engine.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		require.Equal(t, "red", snap.Board["0,0,0"])
		require.Equal(t, "blue", snap.CurrentPlayer)
		require.Equal(t, 1, snap.TurnIndex)
	})

	t.Run("an illegal move is a 400 with a reason", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/games/"+id+"/moves", moveReq{Q: 0, R: 0})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Contains(t, body["error"], "occupied")
	})

	t.Run("a malformed body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/games/"+id+"/moves",
			bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("moves against an unknown game are a 404", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/games/nope/moves", moveReq{Q: 0, R: 0})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAIMove(t *testing.T) {
	srv := testServer()
	id, _ := createGame(t, srv, map[string]any{
		"seats": map[string]string{"blue": "greedy"},
	})

	t.Run("AI seats move on request", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/games/"+id+"/moves", moveReq{Q: 0, R: 0})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, srv, http.MethodPost, "/api/games/"+id+"/ai-move", nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var snap engine.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		require.Equal(t, "red", snap.CurrentPlayer)
		require.Equal(t, 2, snap.TurnIndex)
	})

	t.Run("a human seat cannot be moved by the AI endpoint", func(t *testing.T) {
		rec := doJSON(t, srv, http.MethodPost, "/api/games/"+id+"/ai-move", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteGame(t *testing.T) {
	srv := testServer()
	id, _ := createGame(t, srv, nil)

	rec := doJSON(t, srv, http.MethodDelete, "/api/games/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/games/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/games/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStore(t *testing.T) {
	t.Run("unknown IDs miss", func(t *testing.T) {
		st := NewStore()
		_, err := st.Get("missing")
		require.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("create then get round trips", func(t *testing.T) {
		st := NewStore()
		cfg := config.DefaultGame()
		cfg.Bonus.RandomCount = 0
		eng, err := engine.New(cfg)
		require.NoError(t, err)

		id := st.Create(eng)
		session, err := st.Get(id)

		require.NoError(t, err)
		require.NoError(t, session.Do(func(e *engine.Engine) error {
			require.Same(t, eng, e)
			return nil
		}))
	})
}
