package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            "0",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Repository: config.RepositoryConfig{Type: config.RepositoryInMemory},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// newServer поднимает приложение на in-memory хранилище и заливает Task1..Task5
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	a := app.New(testConfig())
	require.NoError(t, a.Init(context.Background()))
	t.Cleanup(a.Shutdown)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	for i := 1; i <= 5; i++ {
		body := fmt.Sprintf(`{"name":"Task%d","description":"This is a task #%d","status":"IN_PROGRESS","priority":"MEDIUM"}`, i, i)
		resp := send(t, srv, http.MethodPost, "/tasks", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	return srv
}

func send(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestApp_CreateTask(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodPost, "/tasks", `{"name":"task","description":"description","status":"IN_PROGRESS","priority":"HIGH"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.Task](t, resp)

	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, "task", created.Name)
	assert.NotNil(t, created.CreatedAt)
	assert.Nil(t, created.UpdatedAt)

	resp = send(t, srv, http.MethodGet, "/tasks/6", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "description", *decode[dto.Task](t, resp).Description)
}

func TestApp_CreateTask_Defaults(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodPost, "/tasks", `{"name":"bare"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.Task](t, resp)

	assert.Equal(t, "PENDING", string(created.Status))
	assert.Equal(t, "MEDIUM", string(created.Priority))
}

func TestApp_GetTask(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodGet, "/tasks/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.Task](t, resp)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Task1", got.Name)
	assert.Equal(t, "This is a task #1", *got.Description)

	resp = send(t, srv, http.MethodGet, "/tasks/42", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestApp_GetTaskByName(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodGet, "/tasks/name?name=Task1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), decode[dto.Task](t, resp).ID)

	resp = send(t, srv, http.MethodGet, "/tasks/name?name=nothing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestApp_UpdateTask(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodPut, "/tasks/2", `{"id":2,"name":"qwerty","description":"updated"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, srv, http.MethodGet, "/tasks/name?name=qwerty", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.Task](t, resp)

	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, "updated", *got.Description)
	assert.Equal(t, "IN_PROGRESS", string(got.Status))
	assert.NotNil(t, got.UpdatedAt)

	resp = send(t, srv, http.MethodPut, "/tasks/99", `{"name":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestApp_DeleteTask(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodDelete, "/tasks/5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, srv, http.MethodGet, "/tasks/5", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = send(t, srv, http.MethodDelete, "/tasks/5", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestApp_GetAllTasks(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodGet, "/tasks/page/0/limit/3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[[]dto.Task](t, resp)
	require.Len(t, first, 3)
	assert.Equal(t, "Task1", first[0].Name)
	assert.Equal(t, "Task3", first[2].Name)

	resp = send(t, srv, http.MethodGet, "/tasks/page/1/limit/3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.Task](t, resp), 2)

	resp = send(t, srv, http.MethodGet, "/tasks/page/10/limit/3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.Task](t, resp))

	resp = send(t, srv, http.MethodGet, "/tasks/page/0/limit/0", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestApp_GetAllTasks_HugePage(t *testing.T) {
	srv := newServer(t)

	paths := []string{
		"/tasks/page/4611686018427387904/limit/4",
		"/tasks/page/2305843009213693953/limit/4",
		"/tasks/page/4611686018427387905/limit/2",
		"/tasks/page/1/limit/9223372036854775807",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := send(t, srv, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Empty(t, decode[[]dto.Task](t, resp))
		})
	}
}

func TestApp_HealthAndRequestID(t *testing.T) {
	srv := newServer(t)

	resp := send(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestApp_Run_StopsOnCancel(t *testing.T) {
	a := app.New(testConfig())
	require.NoError(t, a.Init(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run не завершился после отмены контекста")
	}
}

func TestApp_Init_UnknownRepository(t *testing.T) {
	cfg := testConfig()
	cfg.Repository.Type = "mongo"

	err := app.New(cfg).Init(context.Background())
	assert.Error(t, err)
}
