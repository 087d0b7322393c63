package store

// White-box testing required: scanTodo decodes the stored row shape. Corrupt
// created_at values cannot be produced through the Store API, so the scanner
// is fed directly.

import (
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

// fakeRow hands fixed column values to scanTodo.
type fakeRow struct {
	id        int
	text      string
	completed int
	createdAt string
	err       error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int) = r.id
	*dest[1].(*string) = r.text
	*dest[2].(*int) = r.completed
	*dest[3].(*string) = r.createdAt
	return nil
}

func TestScanTodo_HappyPath(t *testing.T) {
	c := qt.New(t)

	got, err := scanTodo(fakeRow{id: 4, text: "pay bills", completed: 1, createdAt: "2024-01-15T09:30:00.5Z"})
	c.Assert(err, qt.IsNil)
	c.Assert(got.ID, qt.Equals, 4)
	c.Assert(got.Text, qt.Equals, "pay bills")
	c.Assert(got.Completed, qt.IsTrue)
	c.Assert(got.CreatedAt.Equal(time.Date(2024, 1, 15, 9, 30, 0, 5e8, time.UTC)), qt.IsTrue)
	c.Assert(got.CreatedAt.Location(), qt.Equals, time.UTC)
}

func TestScanTodo_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("scan error", func(c *qt.C) {
		boom := errors.New("boom")
		_, err := scanTodo(fakeRow{err: boom})
		c.Assert(err, qt.ErrorIs, boom)
	})

	c.Run("bad timestamp", func(c *qt.C) {
		_, err := scanTodo(fakeRow{id: 1, text: "x", createdAt: "yesterday"})
		c.Assert(err, qt.ErrorMatches, `parse created_at "yesterday": .*`)
	})
}
