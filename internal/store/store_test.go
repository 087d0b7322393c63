package store_test

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/todo/internal/store"
)

var drivers = []string{store.DriverMemory, store.DriverSQLite}

// openStore opens a fresh store for driver and registers cleanup on c.
func openStore(c *qt.C, driver string) store.Store {
	c.TB.Helper()
	s, err := store.Open(driver)
	c.Assert(err, qt.IsNil)
	c.TB.Cleanup(func() { _ = s.Close() })
	return s
}

var t0 = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func TestOpen_UnknownDriver(t *testing.T) {
	c := qt.New(t)
	_, err := store.Open("postgres")
	c.Assert(err, qt.ErrorMatches, `store.Open: unknown driver "postgres"`)
}

func TestEnsureUser_HappyPath(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)

			u, created, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)
			c.Assert(created, qt.IsTrue)
			c.Assert(u.Name, qt.Equals, "alice")
			c.Assert(u.NextID, qt.Equals, 1)
			c.Assert(u.Todos, qt.HasLen, 0)

			_, err = s.InsertTodo("alice", "buy milk", t0)
			c.Assert(err, qt.IsNil)

			again, created, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)
			c.Assert(created, qt.IsFalse)
			c.Assert(again.Todos, qt.HasLen, 1)
			c.Assert(again.NextID, qt.Equals, 2)
		})
	}
}

func TestUser_Missing(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			u, found, err := s.User("nobody")
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsFalse)
			c.Assert(u, qt.IsNil)
		})
	}
}

func TestInsertTodo_AssignsSequentialIDs(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			_, _, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)

			for want := 1; want <= 3; want++ {
				td, err := s.InsertTodo("alice", "item", t0)
				c.Assert(err, qt.IsNil)
				c.Assert(td.ID, qt.Equals, want)
				c.Assert(td.Completed, qt.IsFalse)
				c.Assert(td.CreatedAt.Equal(t0), qt.IsTrue)
			}

			_, found, err := s.DeleteTodo("alice", 3)
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsTrue)

			td, err := s.InsertTodo("alice", "after delete", t0)
			c.Assert(err, qt.IsNil)
			c.Assert(td.ID, qt.Equals, 4)
		})
	}
}

func TestInsertTodo_UnknownUser(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			_, err := s.InsertTodo("ghost", "boo", t0)
			c.Assert(err, qt.IsNotNil)
		})
	}
}

func TestUser_PreservesInsertionOrder(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			_, _, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)
			for _, text := range []string{"a", "b", "c"} {
				_, err := s.InsertTodo("alice", text, t0)
				c.Assert(err, qt.IsNil)
			}

			u, found, err := s.User("alice")
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsTrue)
			texts := make([]string, 0, len(u.Todos))
			for _, td := range u.Todos {
				texts = append(texts, td.Text)
			}
			c.Assert(texts, qt.DeepEquals, []string{"a", "b", "c"})
		})
	}
}

func TestMarkCompleted(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			_, _, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)
			_, err = s.InsertTodo("alice", "buy milk", t0)
			c.Assert(err, qt.IsNil)

			td, found, err := s.MarkCompleted("alice", 1)
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsTrue)
			c.Assert(td.Completed, qt.IsTrue)
			c.Assert(td.Text, qt.Equals, "buy milk")

			_, found, err = s.MarkCompleted("alice", 99)
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsFalse)

			_, found, err = s.MarkCompleted("bob", 1)
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsFalse)
		})
	}
}

func TestDeleteTodo(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			_, _, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)
			_, err = s.InsertTodo("alice", "a", t0)
			c.Assert(err, qt.IsNil)
			_, err = s.InsertTodo("alice", "b", t0)
			c.Assert(err, qt.IsNil)

			td, found, err := s.DeleteTodo("alice", 1)
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsTrue)
			c.Assert(td.Text, qt.Equals, "a")

			_, found, err = s.DeleteTodo("alice", 1)
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsFalse)

			u, _, err := s.User("alice")
			c.Assert(err, qt.IsNil)
			c.Assert(u.Todos, qt.HasLen, 1)
			c.Assert(u.Todos[0].ID, qt.Equals, 2)
		})
	}
}

func TestSnapshots_DoNotAlias(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			_, _, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)
			_, err = s.InsertTodo("alice", "a", t0)
			c.Assert(err, qt.IsNil)

			u, _, err := s.User("alice")
			c.Assert(err, qt.IsNil)
			u.Todos[0].Completed = true
			u.Todos = u.Todos[:0]

			fresh, _, err := s.User("alice")
			c.Assert(err, qt.IsNil)
			c.Assert(fresh.Todos, qt.HasLen, 1)
			c.Assert(fresh.Todos[0].Completed, qt.IsFalse)
		})
	}
}

func TestUsers_AreIsolated(t *testing.T) {
	c := qt.New(t)

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			for _, name := range []string{"alice", "bob"} {
				_, _, err := s.EnsureUser(name)
				c.Assert(err, qt.IsNil)
			}
			_, err := s.InsertTodo("alice", "a", t0)
			c.Assert(err, qt.IsNil)
			td, err := s.InsertTodo("bob", "b", t0)
			c.Assert(err, qt.IsNil)
			c.Assert(td.ID, qt.Equals, 1)

			_, found, err := s.DeleteTodo("bob", 1)
			c.Assert(err, qt.IsNil)
			c.Assert(found, qt.IsTrue)

			alice, _, err := s.User("alice")
			c.Assert(err, qt.IsNil)
			c.Assert(alice.Todos, qt.HasLen, 1)
		})
	}
}

func TestInsertTodo_CreatedAtInUTC(t *testing.T) {
	c := qt.New(t)
	local := time.Date(2024, 1, 15, 18, 30, 0, 0, time.FixedZone("JST", 9*60*60))

	for _, driver := range drivers {
		c.Run(driver, func(c *qt.C) {
			s := openStore(c, driver)
			_, _, err := s.EnsureUser("alice")
			c.Assert(err, qt.IsNil)

			added, err := s.InsertTodo("alice", "buy milk", local)
			c.Assert(err, qt.IsNil)
			c.Assert(added.CreatedAt.Location(), qt.Equals, time.UTC)
			c.Assert(added.CreatedAt.Equal(local), qt.IsTrue)

			u, _, err := s.User("alice")
			c.Assert(err, qt.IsNil)
			c.Assert(u.Todos[0].CreatedAt.Location(), qt.Equals, time.UTC)
			c.Assert(u.Todos[0].CreatedAt.Equal(added.CreatedAt), qt.IsTrue)
		})
	}
}
