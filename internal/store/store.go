// Package store keeps users and their todos for the session directory.
//
// Every value returned from a Store is a snapshot: mutating it never changes
// stored state.
package store

import (
	"fmt"
	"time"

	"github.com/go-ports/todo/internal/models"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Store holds user records. Stores do not enforce business rules; the
// service validates before calling a mutating method.
type Store interface {
	// EnsureUser returns the named user, creating it with an empty list and
	// NextID 1 when missing. created reports whether it was just created.
	EnsureUser(name string) (user *models.User, created bool, err error)
	// User returns the named user.
	User(name string) (*models.User, bool, error)
	// InsertTodo appends a pending todo with id NextID and advances NextID.
	// CreatedAt is kept in UTC.
	InsertTodo(name, text string, createdAt time.Time) (*models.Todo, error)
	// MarkCompleted sets Completed on the todo and returns the updated record.
	MarkCompleted(name string, id int) (*models.Todo, bool, error)
	// DeleteTodo removes the todo and returns the removed record.
	DeleteTodo(name string, id int) (*models.Todo, bool, error)
	// Close releases resources held by the store.
	Close() error
}

// Open returns a Store for the named driver.
func Open(driver string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite()
	}
	return nil, fmt.Errorf("store.Open: unknown driver %q", driver)
}
