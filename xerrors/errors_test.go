package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedErrorsMatchSentinel(t *testing.T) {
	err := IndexOutOfRange(7, 5)
	require.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.False(t, errors.Is(err, ErrInvalidRange))
	assert.Equal(t, 7, err.Context["index"])
	assert.Equal(t, 5, err.Context["size"])
	assert.Empty(t, ErrIndexOutOfRange.Context, "sentinel must not be mutated")
	assert.NotEmpty(t, err.Stack)
}

func TestWrappedErrorStillMatches(t *testing.T) {
	inner := InvalidRange(3, 1, 4)
	outer := fmt.Errorf("query failed: %w", inner)
	require.True(t, errors.Is(outer, ErrInvalidRange))

	e, ok := FromError(outer)
	require.True(t, ok)
	assert.Equal(t, 400103, e.Code)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus())
}

func TestWrapKeepsCode(t *testing.T) {
	w := Wrap(ErrNoMoreElements, ErrInternal, "iteration")
	assert.Equal(t, ErrNoMoreElements.Code, w.Code)
	assert.Equal(t, ErrInvalidArg, w.Type)
	assert.Nil(t, Wrap(nil, ErrInternal, "x"))

	plain := WrapInternal(errors.New("boom"), "internal")
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus())
	assert.Contains(t, plain.Error(), "boom")
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, ErrRateLimited.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, NotFound("x").HTTPStatus())
	assert.Equal(t, "Unknown", ErrorType(99).String())
}
