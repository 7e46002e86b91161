package services

import (
	"context"
	"time"

	"todoapi/internal/server/config"
	"todoapi/internal/server/models"
	"todoapi/internal/server/repositories/todos"
	"todoapi/internal/server/shared/db"
)

// TodoService runs each store operation on its own connection: acquire,
// query, release. Connections are never reused across operations.
type TodoService struct {
	provider     *db.Provider
	queryTimeout time.Duration
}

// NewTodoService constructs a TodoService over the given connection provider.
func NewTodoService(provider *db.Provider, cfg *config.Config) *TodoService {
	return &TodoService{
		provider:     provider,
		queryTimeout: cfg.QueryTimeout,
	}
}

// queryContext detaches from the caller's cancellation, so an in-flight
// query finishes and its connection is released even if the client goes
// away, and bounds the round-trip with the configured timeout.
func (s *TodoService) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.queryTimeout)
}

// withConn runs fn with a repository bound to a freshly acquired
// connection and releases the connection when fn returns.
func (s *TodoService) withConn(ctx context.Context, fn func(ctx context.Context, repo todos.Repository) error) error {
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	conn, err := s.provider.Acquire(ctx)
	if err != nil {
		return err
	}
	defer s.provider.Release(ctx, conn)

	return fn(ctx, todos.NewPostgresRepository(conn))
}

// ListOpen returns every item not yet marked complete.
func (s *TodoService) ListOpen(ctx context.Context) ([]models.Todo, error) {
	var items []models.Todo
	err := s.withConn(ctx, func(ctx context.Context, repo todos.Repository) error {
		var listErr error
		items, listErr = repo.ListOpen(ctx)
		return listErr
	})
	return items, err
}

// ListComplete returns every completed item.
func (s *TodoService) ListComplete(ctx context.Context) ([]models.Todo, error) {
	var items []models.Todo
	err := s.withConn(ctx, func(ctx context.Context, repo todos.Repository) error {
		var listErr error
		items, listErr = repo.ListComplete(ctx)
		return listErr
	})
	return items, err
}

// GetByID returns the item with the given id or common.ErrNotFound.
func (s *TodoService) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	var item *models.Todo
	err := s.withConn(ctx, func(ctx context.Context, repo todos.Repository) error {
		var getErr error
		item, getErr = repo.GetByID(ctx, id)
		return getErr
	})
	return item, err
}

// Create inserts a new item and returns it with the store-assigned id.
func (s *TodoService) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	var created *models.Todo
	err := s.withConn(ctx, func(ctx context.Context, repo todos.Repository) error {
		var createErr error
		created, createErr = repo.Create(ctx, todo)
		return createErr
	})
	return created, err
}

// Update overwrites the item with the given id and reports affected rows.
func (s *TodoService) Update(ctx context.Context, todo *models.Todo) (int64, error) {
	var affected int64
	err := s.withConn(ctx, func(ctx context.Context, repo todos.Repository) error {
		var updErr error
		affected, updErr = repo.Update(ctx, todo)
		return updErr
	})
	return affected, err
}

// Delete removes the item with the given id and reports affected rows.
func (s *TodoService) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := s.withConn(ctx, func(ctx context.Context, repo todos.Repository) error {
		var delErr error
		affected, delErr = repo.Delete(ctx, id)
		return delErr
	})
	return affected, err
}
