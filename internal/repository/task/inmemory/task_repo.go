package inmemory

import (
	"context"
	"sync"
	"time"
	"todo/internal/logger"
	"todo/internal/models/task"
	repo "todo/internal/repository"
)

// TaskStorage хранит копии записей, наружу тоже отдаются копии.
// ids держит порядок по возрастанию id.
type TaskStorage struct {
	storage map[int64]*task.Task
	mtx     *sync.RWMutex
	ids     []int64
	nextID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []int64{},
		nextID:  1,
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.ID = s.nextID
	taskToCreate.CreatedAt = time.Now().UTC()
	taskToCreate.UpdatedAt = nil
	s.nextID++

	s.storage[taskToCreate.ID] = clone(taskToCreate)
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	now := time.Now().UTC()
	taskToUpdate.UpdatedAt = &now
	taskToUpdate.CreatedAt = existing.CreatedAt
	s.storage[taskToUpdate.ID] = clone(taskToUpdate)

	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(taskToGet), nil
}

// GetByName при дубликатах возвращает задачу с наименьшим id
func (s *TaskStorage) GetByName(ctx context.Context, name string) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, id := range s.ids {
		if t := s.storage[id]; t.Name == name {
			return clone(t), nil
		}
	}
	return nil, repo.ErrNotFound
}

// удаление отсутствующей задачи не ошибка
func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return nil
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// GetPage отдаёт страницу page (с нуля) размером size в порядке id
func (s *TaskStorage) GetPage(ctx context.Context, page, size int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	offset := page * size

	for i := offset; i < len(s.ids) && len(res) < size; i++ {
		res = append(res, clone(s.storage[s.ids[i]]))
	}

	return res, nil
}

func clone(t *task.Task) *task.Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	if t.UpdatedAt != nil {
		u := *t.UpdatedAt
		c.UpdatedAt = &u
	}
	return &c
}
