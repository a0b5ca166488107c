package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"todo/internal/dto"
	"todo/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

// RegisterRoutes вешает эндпоинты задач и health check на роутер
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", h.CreateTask)                            // POST /tasks
		r.Get("/name", h.GetTaskByName)                      // GET /tasks/name?name=
		r.Get("/page/{offset}/limit/{limit}", h.GetAllTasks) // GET /tasks/page/{offset}/limit/{limit}

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTask)       // GET /tasks/{id}
			r.Put("/", h.UpdateTask)    // PUT /tasks/{id}
			r.Delete("/", h.DeleteTask) // DELETE /tasks/{id}
		})
	})

	r.Get("/health", h.HealthCheck)
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check не пройден", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("service", "todo"),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("service", "todo"),
	)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	request, ok := decodeTask(w, r)
	if !ok {
		return
	}

	created, err := h.TaskService.CreateTask(r.Context(), request)
	if err != nil {
		handleServiceError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	writeJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	found, err := h.TaskService.GetTask(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "get_task")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.Int64("task_id", found.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	writeJSON(w, http.StatusOK, found)
}

func (h *TaskHandler) GetTaskByName(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	name := r.URL.Query().Get("name")
	if name == "" {
		logger.Warn("HTTP: Ошибка получения параметра",
			zap.String("query", "name"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "параметр name обязателен")
		return
	}

	found, err := h.TaskService.GetTaskByName(r.Context(), name)
	if err != nil {
		handleServiceError(w, r, err, "get_task_by_name")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.Int64("task_id", found.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	writeJSON(w, http.StatusOK, found)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	request, ok := decodeTask(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.UpdateTask(r.Context(), id, request); err != nil {
		handleServiceError(w, r, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	w.WriteHeader(http.StatusOK)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	w.WriteHeader(http.StatusOK)
}

// GetAllTasks: offset - номер страницы с нуля, limit - размер страницы
func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	offset, err := strconv.Atoi(chi.URLParam(r, "offset"))
	if err != nil {
		logger.Warn("HTTP: Ошибка получения параметра",
			zap.String("param", "offset"),
			zap.Error(err))

		responseWithError(w, http.StatusBadRequest, "не удалось получить значение offset")
		return
	}

	limit, err := strconv.Atoi(chi.URLParam(r, "limit"))
	if err != nil {
		logger.Warn("HTTP: Ошибка получения параметра",
			zap.String("param", "limit"),
			zap.Error(err))

		responseWithError(w, http.StatusBadRequest, "не удалось получить значение limit")
		return
	}

	tasks, err := h.TaskService.GetAllTasks(r.Context(), offset, limit)
	if err != nil {
		handleServiceError(w, r, err, "get_all_tasks")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	writeJSON(w, http.StatusOK, tasks)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "не удалось получить id")
		return 0, false
	}
	return id, true
}

// decodeTask читает и валидирует тело запроса; при ошибке ответ уже записан
func decodeTask(w http.ResponseWriter, r *http.Request) (dto.Task, bool) {
	var request dto.Task

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return request, false
	}

	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return request, false
	}

	if err := validateStruct(request); err != nil {
		handleServiceError(w, r, err, "validate_task")
		return request, false
	}

	return request, true
}
