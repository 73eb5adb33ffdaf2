package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCode(t *testing.T) {
	err := NewInsufficientFundsError(2000, 100)
	assert.True(t, IsCode(err, ErrCodeInsufficientFunds))
	assert.False(t, IsCode(err, ErrCodeInsufficientStock))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeInsufficientFunds))
}

func TestIsCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("applying command: %w", NewUnknownOrderError(1007))
	assert.True(t, IsCode(err, ErrCodeUnknownOrder))
}

func TestCommandError_Message(t *testing.T) {
	err := NewUnfulfillableOrderError(1003)
	assert.Contains(t, err.Error(), "UNFULFILLABLE_ORDER")
	assert.Contains(t, err.Error(), "order=1003")

	funds := NewInsufficientFundsError(2000, 100)
	assert.Contains(t, funds.Error(), "$20.00")
	assert.Contains(t, funds.Error(), "$1.00")
}
