package session_test

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/todo/internal/apperr"
	"github.com/go-ports/todo/internal/session"
	"github.com/go-ports/todo/internal/store"
)

func newDirectory(c *qt.C) *session.Directory {
	c.TB.Helper()
	return session.New(store.NewMemory())
}

// activeName returns the logged-in user name, or "" when nobody is.
func activeName(c *qt.C, d *session.Directory) string {
	c.TB.Helper()
	u, err := d.Current()
	c.Assert(err, qt.IsNil)
	if u == nil {
		return ""
	}
	return u.Name
}

func TestLogin_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("first login creates the user", func(c *qt.C) {
		d := newDirectory(c)
		u, created, err := d.Login("alice")
		c.Assert(err, qt.IsNil)
		c.Assert(created, qt.IsTrue)
		c.Assert(u.Name, qt.Equals, "alice")
		c.Assert(u.NextID, qt.Equals, 1)
		c.Assert(u.Todos, qt.HasLen, 0)
		c.Assert(activeName(c, d), qt.Equals, "alice")
	})

	c.Run("name is trimmed", func(c *qt.C) {
		d := newDirectory(c)
		u, _, err := d.Login("  bob ")
		c.Assert(err, qt.IsNil)
		c.Assert(u.Name, qt.Equals, "bob")
	})

	c.Run("re-login keeps todos", func(c *qt.C) {
		d := newDirectory(c)
		_, _, err := d.Login("alice")
		c.Assert(err, qt.IsNil)
		_, err = d.Store().InsertTodo("alice", "buy milk", time.Now())
		c.Assert(err, qt.IsNil)

		u, created, err := d.Login("alice")
		c.Assert(err, qt.IsNil)
		c.Assert(created, qt.IsFalse)
		c.Assert(u.Todos, qt.HasLen, 1)
	})

	c.Run("login switches the active user", func(c *qt.C) {
		d := newDirectory(c)
		_, _, err := d.Login("alice")
		c.Assert(err, qt.IsNil)
		_, _, err = d.Login("bob")
		c.Assert(err, qt.IsNil)
		c.Assert(activeName(c, d), qt.Equals, "bob")
	})
}

func TestLogin_FailurePath(t *testing.T) {
	c := qt.New(t)

	for _, name := range []string{"", "   ", "\t"} {
		c.Run("blank "+name, func(c *qt.C) {
			d := newDirectory(c)
			_, _, err := d.Login(name)
			c.Assert(errors.Is(err, apperr.ErrInvalidArgument), qt.IsTrue)
			c.Assert(activeName(c, d), qt.Equals, "")
		})
	}
}

func TestLogout(t *testing.T) {
	c := qt.New(t)

	d := newDirectory(c)
	name, ok := d.Logout()
	c.Assert(ok, qt.IsFalse)
	c.Assert(name, qt.Equals, "")

	_, _, err := d.Login("alice")
	c.Assert(err, qt.IsNil)
	name, ok = d.Logout()
	c.Assert(ok, qt.IsTrue)
	c.Assert(name, qt.Equals, "alice")
	c.Assert(activeName(c, d), qt.Equals, "")

	_, ok = d.Logout()
	c.Assert(ok, qt.IsFalse)
}

func TestCurrent(t *testing.T) {
	c := qt.New(t)

	d := newDirectory(c)
	u, err := d.Current()
	c.Assert(err, qt.IsNil)
	c.Assert(u, qt.IsNil)

	_, _, err = d.Login("alice")
	c.Assert(err, qt.IsNil)
	u, err = d.Current()
	c.Assert(err, qt.IsNil)
	c.Assert(u.Name, qt.Equals, "alice")

	d.Logout()
	u, err = d.Current()
	c.Assert(err, qt.IsNil)
	c.Assert(u, qt.IsNil)
}
