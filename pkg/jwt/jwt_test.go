package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func Test_Engine_GenerateAndVerify(t *testing.T) {
	engine := NewEngine[testInfo]("secret", time.Minute)

	token, err := engine.Generate("user1", testInfo{ID: "user1", Name: "alice"})
	require.NoError(t, err)

	info, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", info.ID)
	require.Equal(t, "alice", info.Name)
}

func Test_Engine_WrongSecret(t *testing.T) {
	engine := NewEngine[testInfo]("secret", time.Minute)
	token, err := engine.Generate("user1", testInfo{ID: "user1"})
	require.NoError(t, err)

	otherEngine := NewEngine[testInfo]("another-secret", time.Minute)
	_, err = otherEngine.Verify(token)
	require.Error(t, err)
}

func Test_Engine_Expired(t *testing.T) {
	engine := NewEngine[testInfo]("secret", -time.Minute)
	token, err := engine.Generate("user1", testInfo{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}
