package kotlinpoet

import (
	stderrors "errors"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestUsageErrorsMatchErrUsage(t *testing.T) {
	_, err := NewCodeBlock("%L %L", 1)
	assert.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrUsage))
	assert.True(t, errors.Is(err, ErrUsage))
	assert.ErrorIs(t, err, ErrUsage)
	assert.False(t, stderrors.Is(err, errors.New("kotlinpoet: usage error")))

	_, err = NewCodeBlock("%L %1L", 1, 2)
	assert.True(t, stderrors.Is(err, ErrUsage))
	assert.Contains(t, err.Error(), "cannot mix indexed and positional parameters")
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestCatchIgnoresOtherPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		var err error
		defer catch(&err)
		panic("boom")
	})
	assert.Panics(t, func() {
		var err error
		defer catch(&err)
		panic(errors.New("not a usage error"))
	})
}
