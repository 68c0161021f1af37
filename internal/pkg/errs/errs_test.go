package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("address")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("quantity")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100)))
	assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("order", "1")))
	assert.False(t, errs.IsValidation(errors.New("boom")))
}

type fakeStatus string

func (s fakeStatus) String() string { return string(s) }

func TestDomainErrors(t *testing.T) {
	t.Run("invalid transition", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("order", fakeStatus("pending"), fakeStatus("preparation"))

		assert.Equal(t, "pending", err.Current)
		assert.Equal(t, "preparation", err.Target)
		assert.Equal(t, "invalid transition: order cannot move from pending to preparation", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("gateway", func(t *testing.T) {
		cause := errors.New("context deadline exceeded")
		err := errs.NewGatewayError("fetch payment", cause)

		assert.Equal(t, "external gateway failure: fetch payment (cause: context deadline exceeded)", err.Error())
		require.ErrorIs(t, err, errs.ErrGateway)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		err := errs.NewUnknownTransactionError("pref-1")

		assert.Equal(t, `unknown transaction: preference "pref-1"`, err.Error())
		require.ErrorIs(t, err, errs.ErrUnknownTransaction)
	})

	t.Run("conflicts", func(t *testing.T) {
		require.ErrorIs(t, errs.NewDuplicateInvoiceError("o-1"), errs.ErrDuplicateInvoice)
		require.ErrorIs(t, errs.NewAlreadyReconciledError("invoice", "i-1"), errs.ErrAlreadyReconciled)
		assert.Equal(t, "already reconciled: invoice i-1", errs.NewAlreadyReconciledError("invoice", "i-1").Error())
	})

	t.Run("permission", func(t *testing.T) {
		err := errs.NewPermissionError("u-1", "reconcile payments")

		assert.Equal(t, "permission denied: actor u-1 may not reconcile payments", err.Error())
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("wrapped errors keep their class", func(t *testing.T) {
		err := fmt.Errorf("settle: %w", errs.NewGatewayError("create preference", nil))

		require.ErrorIs(t, err, errs.ErrGateway)
		var gwErr *errs.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, "create preference", gwErr.Operation)
	})
}
