// Package session owns the username → todo list directory and the single
// active-user pointer.
package session

import (
	"strings"

	"github.com/go-ports/todo/internal/apperr"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/store"
)

// Directory maps user names to their records and tracks who is logged in.
// The zero value is not usable; call New.
type Directory struct {
	store  store.Store
	active string
}

// New creates a Directory on top of st with nobody logged in.
func New(st store.Store) *Directory {
	return &Directory{store: st}
}

// Store returns the backing store.
func (d *Directory) Store() store.Store { return d.store }

// Login makes name the active user, creating the user on first login.
// Existing todos are kept. created reports whether the user is new.
func (d *Directory) Login(name string) (user *models.User, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperr.New(apperr.KindInvalidArgument, "Please provide a username")
	}
	u, created, err := d.store.EnsureUser(name)
	if err != nil {
		return nil, false, apperr.Internal("login", err)
	}
	d.active = name
	return u, created, nil
}

// Logout clears the active user and returns its name. ok is false when
// nobody was logged in.
func (d *Directory) Logout() (name string, ok bool) {
	if d.active == "" {
		return "", false
	}
	name, d.active = d.active, ""
	return name, true
}

// Current returns a snapshot of the active user, or nil when nobody is
// logged in.
func (d *Directory) Current() (*models.User, error) {
	if d.active == "" {
		return nil, nil
	}
	u, found, err := d.store.User(d.active)
	if err != nil {
		return nil, apperr.Internal("current user", err)
	}
	if !found {
		return nil, nil
	}
	return u, nil
}
