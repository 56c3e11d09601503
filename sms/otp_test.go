package sms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubProvider(t *testing.T) {
	p := NewStubProvider()

	// nothing verifies before a send
	assert.False(t, p.VerifyOtp("9876543210", "123456"))

	require.NoError(t, p.SendOtp("9876543210"))
	assert.True(t, p.VerifyOtp("9876543210", "123456"))
	assert.False(t, p.VerifyOtp("9876543210", "000000"))

	// sends are per number
	assert.False(t, p.VerifyOtp("9123456780", "123456"))
}
