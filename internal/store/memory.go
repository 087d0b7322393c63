package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-ports/todo/internal/models"
)

// Memory is a map-backed Store. It is not safe for concurrent use; the
// service serializes access.
type Memory struct {
	users map[string]*models.User
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{users: make(map[string]*models.User)}
}

// EnsureUser implements Store.
func (m *Memory) EnsureUser(name string) (*models.User, bool, error) {
	if u, ok := m.users[name]; ok {
		return u.Clone(), false, nil
	}
	u := &models.User{Name: name, Todos: make([]models.Todo, 0), NextID: 1}
	m.users[name] = u
	return u.Clone(), true, nil
}

// User implements Store.
func (m *Memory) User(name string) (*models.User, bool, error) {
	u, ok := m.users[name]
	if !ok {
		return nil, false, nil
	}
	return u.Clone(), true, nil
}

// InsertTodo implements Store.
func (m *Memory) InsertTodo(name, text string, createdAt time.Time) (*models.Todo, error) {
	u, ok := m.users[name]
	if !ok {
		return nil, fmt.Errorf("store.InsertTodo: user %q not found", name)
	}
	t := models.Todo{ID: u.NextID, Text: text, CreatedAt: createdAt.UTC()}
	u.NextID++
	u.Todos = append(u.Todos, t)
	return &t, nil
}

// MarkCompleted implements Store.
func (m *Memory) MarkCompleted(name string, id int) (*models.Todo, bool, error) {
	u, ok := m.users[name]
	if !ok {
		return nil, false, nil
	}
	i := m.index(u, id)
	if i < 0 {
		return nil, false, nil
	}
	u.Todos[i].Completed = true
	t := u.Todos[i]
	return &t, true, nil
}

// DeleteTodo implements Store.
func (m *Memory) DeleteTodo(name string, id int) (*models.Todo, bool, error) {
	u, ok := m.users[name]
	if !ok {
		return nil, false, nil
	}
	i := m.index(u, id)
	if i < 0 {
		return nil, false, nil
	}
	t := u.Todos[i]
	u.Todos = slices.Delete(u.Todos, i, i+1)
	return &t, true, nil
}

// Close implements Store.
func (*Memory) Close() error { return nil }

func (*Memory) index(u *models.User, id int) int {
	return slices.IndexFunc(u.Todos, func(t models.Todo) bool { return t.ID == id })
}
