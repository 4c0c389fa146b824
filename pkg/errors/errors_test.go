package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapLTVOutOfRange_Message(t *testing.T) {
	ltv := decimal.RequireFromString("94.736842105263")
	err := WrapLTVOutOfRange(ltv, decimal.NewFromInt(50), decimal.NewFromInt(80))

	assert.Equal(t, "LTV ratio 94.74% is outside the allowed range (50% - 80%)", err.Error())
	assert.Equal(t, KindRangeViolation, KindOf(err))
	assert.Equal(t, ErrCodeLTVOutOfRange, CodeOf(err))
	assert.True(t, errors.Is(err, ErrLTVOutOfRange))
	assert.True(t, err.Min.Equal(decimal.NewFromInt(50)))
	assert.True(t, err.Max.Equal(decimal.NewFromInt(80)))
}

func TestWrapAmountOutOfRange_Message(t *testing.T) {
	err := WrapAmountOutOfRange(decimal.NewFromInt(50), decimal.NewFromInt(100000), decimal.NewFromInt(1000000))

	assert.Equal(t, "Loan amount is outside the allowed range (100000 - 1000000)", err.Error())
	assert.True(t, errors.Is(err, ErrAmountOutOfRange))
}

func TestKindOf_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("create application: %w", WrapProductNotFound("p-1"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, ErrCodeProductNotFound, CodeOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Empty(t, CodeOf(errors.New("boom")))
}

func TestRangeError_AsBusinessError(t *testing.T) {
	var err error = WrapAmountOutOfRange(decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(2))

	var be *BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, ErrCodeAmountOutOfRange, be.Code)

	var re *RangeError
	require.True(t, errors.As(err, &re))
	assert.True(t, re.Value.IsZero())
}

func TestDatabaseError_IncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDatabaseError(cause)

	assert.Equal(t, "DATABASE_ERROR: database operation failed (connection refused)", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "invalid_enum", KindInvalidEnum.String())
	assert.Equal(t, "internal", Kind(99).String())
}

func TestApplicationNumberErrors_AreDistinct(t *testing.T) {
	cause := errors.New("entropy unavailable")
	gen := WrapApplicationNumberGeneration(cause)
	exhausted := WrapApplicationNumberExhausted(10)

	assert.Equal(t, ErrCodeApplicationNumberGeneration, gen.Code)
	assert.Equal(t, KindInternal, gen.Kind)
	assert.True(t, errors.Is(gen, cause))
	assert.True(t, errors.Is(gen, ErrApplicationNumberGeneration))
	assert.False(t, errors.Is(gen, ErrApplicationNumberExhausted))

	assert.Equal(t, ErrCodeApplicationNumberExhausted, exhausted.Code)
	assert.NotEqual(t, gen.Code, exhausted.Code)
}
