package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/todo/internal/apperr"
)

func TestIs_MatchesByKind(t *testing.T) {
	c := qt.New(t)

	cases := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same kind different message", apperr.New(apperr.KindNotFound, "Todo #7 not found"), apperr.ErrNotFound, true},
		{"different kind", apperr.New(apperr.KindNotFound, "x"), apperr.ErrAlreadyDone, false},
		{"wrapped with fmt.Errorf", fmt.Errorf("Remove: %w", apperr.ErrNotFound), apperr.ErrNotFound, true},
		{"plain error never matches", errors.New("boom"), apperr.ErrInternal, false},
	}

	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			c.Assert(errors.Is(tc.err, tc.target), qt.Equals, tc.want)
		})
	}
}

func TestKindOf(t *testing.T) {
	c := qt.New(t)

	c.Assert(apperr.KindOf(nil), qt.Equals, apperr.Kind(""))
	c.Assert(apperr.KindOf(apperr.ErrEmptyText), qt.Equals, apperr.KindEmptyText)
	c.Assert(apperr.KindOf(fmt.Errorf("wrap: %w", apperr.ErrCapacityExceeded)), qt.Equals, apperr.KindCapacityExceeded)
	c.Assert(apperr.KindOf(errors.New("boom")), qt.Equals, apperr.KindInternal)
}

func TestInternal_WrapsCause(t *testing.T) {
	c := qt.New(t)

	cause := errors.New("disk on fire")
	err := apperr.Internal("store.InsertTodo", cause)
	c.Assert(err.Error(), qt.Equals, "store.InsertTodo: disk on fire")
	c.Assert(errors.Is(err, cause), qt.IsTrue)
	c.Assert(errors.Is(err, apperr.ErrInternal), qt.IsTrue)
}
