package utils

import (
	"errors"
	"testing"

	"git.handmade.network/hmn/ltree/src/oops"
	"github.com/stretchr/testify/assert"
)

type MyError struct{}

func (err *MyError) Error() string {
	return "I want to get off MR BONES WILD RIDE"
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "hmn", OrDefault("", "hmn"))
	assert.Equal(t, "trees", OrDefault("trees", "hmn"))
	assert.Equal(t, 5432, OrDefault(0, 5432))
	assert.Equal(t, uint32(16385), OrDefault(uint32(16385), 24754))
}

func TestMust(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		f := func() error { return nil }
		Must(f())
	})
	t.Run("non-nil error", func(t *testing.T) {
		f := func() error { return &MyError{} }
		assert.Panics(t, func() {
			Must(f())
		})
	})
	t.Run("nil *MyError", func(t *testing.T) {
		f := func() *MyError { return nil }
		Must(f())
	})
	t.Run("non-nil *MyError", func(t *testing.T) {
		f := func() *MyError { return &MyError{} }
		assert.Panics(t, func() {
			Must(f())
		})
	})
}

func TestMust1(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		f := func() (int, error) { return 3, nil }
		a := Must1(f())
		assert.Equal(t, 3, a)
	})
	t.Run("non-nil error", func(t *testing.T) {
		f := func() (int, error) { return 0, &MyError{} }
		assert.Panics(t, func() {
			Must1(f())
		})
	})
	t.Run("nil *MyError", func(t *testing.T) {
		f := func() (int, *MyError) { return 0, nil }
		a := Must1(f())
		assert.Equal(t, 0, a)
	})
}

func TestRecoverPanicAsError(t *testing.T) {
	t.Run("error value", func(t *testing.T) {
		sentinel := errors.New("ltree not installed")
		f := func() (err error) {
			defer RecoverPanicAsError(&err)
			panic(sentinel)
		}
		err := f()
		assert.ErrorIs(t, err, sentinel)
		var oopsErr *oops.Error
		assert.ErrorAs(t, err, &oopsErr)
	})
	t.Run("other value", func(t *testing.T) {
		f := func() (err error) {
			defer RecoverPanicAsError(&err)
			panic(42)
		}
		assert.EqualError(t, f(), "panic recovered as error: panic with value: 42")
	})
	t.Run("no panic", func(t *testing.T) {
		f := func() (err error) {
			defer RecoverPanicAsError(&err)
			return nil
		}
		assert.Nil(t, f())
	})
}
