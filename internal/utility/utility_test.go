package utility

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUserID(t *testing.T) {
	require.True(t, ValidateUserID("firebase-uid-123"))
	require.False(t, ValidateUserID(""))
	require.False(t, ValidateUserID("   "))
	require.False(t, ValidateUserID("null"))
	require.False(t, ValidateUserID("undefined"))
}

func TestFirstNonEmpty(t *testing.T) {
	require.Equal(t, "a", FirstNonEmpty("", "a", "b"))
	require.Equal(t, "b", FirstNonEmpty("  ", "b"))
	require.Equal(t, "", FirstNonEmpty("", "  "))
}
