package backtest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericalError_UnwrapsUnderlyingError(t *testing.T) {
	inner := errors.New("matrix is singular")
	err := &NumericalError{Period: "2024-01", N: 10, T: 5, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "2024-01")
}

func TestConfigError_MessageNamesField(t *testing.T) {
	err := &ConfigError{Field: "KFinal", Reason: "must be positive"}
	assert.Contains(t, err.Error(), "KFinal")
	assert.Contains(t, err.Error(), "must be positive")
}
