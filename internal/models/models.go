// Package models defines the core data types for the todo kernel.
package models

import (
	"slices"
	"strings"
	"time"

	"github.com/go-ports/todo/internal/apperr"
)

// DefaultMaxActive is the number of pending todos a user may hold at once.
const DefaultMaxActive = 10

// Filter selects todos by completion state when listing.
type Filter string

// Accepted filter values.
const (
	FilterAll     Filter = "all"
	FilterPending Filter = "pending"
	FilterDone    Filter = "done"
)

var validFilters = []Filter{FilterAll, FilterPending, FilterDone}

// FilterNames returns the accepted filter values in display order.
func FilterNames() []string {
	out := make([]string, len(validFilters))
	for i, f := range validFilters {
		out[i] = string(f)
	}
	return out
}

// ParseFilter converts s into a Filter. The empty string selects FilterAll;
// anything else outside FilterNames fails with an invalid_filter error.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !slices.Contains(validFilters, f) {
		return "", apperr.Newf(apperr.KindInvalidFilter, "Unknown filter %q (use all, pending or done)", s)
	}
	return f, nil
}

// Match reports whether t is selected by f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterDone:
		return t.Completed
	}
	return true
}

// Todo is a single item in a user's list.
type Todo struct {
	ID        int
	Text      string
	Completed bool
	CreatedAt time.Time
}

// User is a named todo owner. Todos are kept in insertion order.
type User struct {
	Name   string
	Todos  []Todo
	NextID int
}

// Clone returns a deep copy of u so callers never share the stored slice.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Todos = slices.Clone(u.Todos)
	if out.Todos == nil {
		out.Todos = make([]Todo, 0)
	}
	return &out
}

// Find returns the todo with the given id.
func (u *User) Find(id int) (Todo, bool) {
	for _, t := range u.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// ActiveCount returns the number of todos that are not completed.
func (u *User) ActiveCount() int {
	n := 0
	for _, t := range u.Todos {
		if !t.Completed {
			n++
		}
	}
	return n
}
