package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestWrap_KeepsSentinelAndAddsStack(t *testing.T) {
	sentinel := New("user not found")

	err := Wrap(Wrapf(sentinel, "lookup %s", "alice"), "find-or-create")

	assert.True(t, Is(err, sentinel))
	assert.Equal(t, "find-or-create: lookup alice: user not found", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "TestWrap_KeepsSentinelAndAddsStack")
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
	assert.NoError(t, WithStack(nil))
}

func TestAs_SeesThroughEchoHTTPError(t *testing.T) {
	inner := &codedError{code: "HASH_CORRUPT"}
	err := echo.NewHTTPError(http.StatusInternalServerError).WithInternal(WithStack(inner))

	var target *codedError
	assert.True(t, As(err, &target))
	assert.Equal(t, "HASH_CORRUPT", target.code)
}

func TestErrorf_FormatsMessage(t *testing.T) {
	err := Errorf("unknown storage driver %q", "mongo")

	assert.EqualError(t, err, `unknown storage driver "mongo"`)
}
