package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/dayplan/internal/cache"
	"github.com/Nixie-Tech-LLC/dayplan/internal/db"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api"
	"github.com/Nixie-Tech-LLC/dayplan/internal/schedule"
)

type envelope struct {
	Status  string                     `json:"status"`
	Results *int                       `json:"results"`
	Data    map[string]json.RawMessage `json:"data"`
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  db.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewTestStore(t)
	resolver := schedule.NewResolver(store, schedule.WithCache(cache.NewMemory(time.Hour)))

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"},
		ScheduleModule(resolver),
		TaskModule(store),
		PomodoroModule(store),
	)
	return &testServer{t: t, router: r, store: store}
}

func (s *testServer) do(method, path string, body any) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(s.t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

// field decodes data[key] into T.
func field[T any](t *testing.T, env envelope, key string) T {
	t.Helper()
	raw, ok := env.Data[key]
	require.True(t, ok, "missing data.%s", key)
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
