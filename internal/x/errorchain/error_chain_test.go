package errorchain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/kvasir/internal/x/errorchain"
)

var (
	errTest1 = errors.New("test error 1")
	errTest2 = errors.New("test error 2")
)

func TestErrorChainNew(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.New(errTest1)

	// THEN
	require.Error(t, err)
	assert.ErrorIs(t, err, errTest1)
	assert.Equal(t, err.Error(), errTest1.Error())
}

func TestErrorChainNewWithMessage(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.NewWithMessage(errTest1, "foobar")

	// THEN
	require.Error(t, err)
	assert.ErrorIs(t, err, errTest1)
	assert.Equal(t, err.Error(), errTest1.Error()+": foobar")
}

func TestErrorChainNewWithFormattedMessage(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.NewWithMessagef(errTest1, "%s%s", "foo", "bar")

	// THEN
	require.Error(t, err)
	assert.ErrorIs(t, err, errTest1)
	assert.Equal(t, err.Error(), errTest1.Error()+": foobar")
}

func TestErrorChainWithCause(t *testing.T) {
	t.Parallel()

	// WHEN
	err := errorchain.NewWithMessage(errTest1, "foo").CausedBy(errTest2)

	// THEN
	require.Error(t, err)
	assert.ErrorIs(t, err, errTest1)
	assert.ErrorIs(t, err, errTest2)
	assert.Equal(t, err.Error(), errTest1.Error()+": foo: "+errTest2.Error())

	errs := err.Errors()
	assert.ElementsMatch(t, errs, []error{errTest1, errTest2})
}

func TestErrorChainAs(t *testing.T) {
	t.Parallel()

	// GIVEN
	wrapped := errorchain.NewWithMessage(errTest1, "bar")
	err := errorchain.New(errTest2).CausedBy(wrapped)

	// WHEN
	var chain *errorchain.ErrorChain
	ok := errors.As(err, &chain)

	// THEN
	require.True(t, ok)
	assert.ErrorIs(t, chain, errTest2)
}

func TestErrorChainJSONMarshal(t *testing.T) {
	t.Parallel()

	// GIVEN
	testErr := errorchain.NewWithMessage(errTest1, "foo").CausedBy(errTest2)

	// WHEN
	res, err := testErr.MarshalJSON()

	// THEN
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"testError1","message":"foo"}`, string(res))
}
