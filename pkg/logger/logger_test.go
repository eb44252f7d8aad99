package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_LevelFromString(t *testing.T) {
	require.Equal(t, DEBUG, LevelFromString("debug"))
	require.Equal(t, WARNING, LevelFromString("warn"))
	require.Equal(t, WARNING, LevelFromString("WARNING"))
	require.Equal(t, SILENCE, LevelFromString("silence"))

	// Unknown values fall back to INFO.
	require.Equal(t, INFO, LevelFromString(""))
	require.Equal(t, INFO, LevelFromString("verbose"))
}
