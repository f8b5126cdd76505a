package ridewitus_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus"
)

func TestParseEnvironment(t *testing.T) {
	env, err := ridewitus.ParseEnvironment(" staging ")
	require.Nil(t, err)
	require.Equal(t, ridewitus.Staging, env)

	_, err = ridewitus.ParseEnvironment("moon")
	require.ErrorIs(t, err, ridewitus.ErrNotValid)
}

func TestCanUseServiceStub(t *testing.T) {
	for _, env := range []ridewitus.Environment{ridewitus.Demo, ridewitus.Development, ridewitus.Testing} {
		require.True(t, env.CanUseServiceStub(), env)
	}

	for _, env := range []ridewitus.Environment{ridewitus.Production, ridewitus.Review, ridewitus.Staging} {
		require.False(t, env.CanUseServiceStub(), env)
	}
}

func TestEnvVarOr(t *testing.T) {
	t.Setenv("RIDEWITUS_TEST_BOOL", "TRUE")
	t.Setenv("RIDEWITUS_TEST_DURATION", "3s")
	t.Setenv("RIDEWITUS_TEST_ENV", "production")
	t.Setenv("RIDEWITUS_TEST_FLOAT", "2.5")
	t.Setenv("RIDEWITUS_TEST_INT", "nope")
	t.Setenv("RIDEWITUS_TEST_URL", "https://example.com/app")

	require.True(t, ridewitus.EnvVarOrBool("RIDEWITUS_TEST_BOOL", false))
	require.Equal(t, 3*time.Second, ridewitus.EnvVarOrDuration("RIDEWITUS_TEST_DURATION", time.Second))
	require.Equal(t, ridewitus.Production, ridewitus.EnvVarOrEnv("RIDEWITUS_TEST_ENV", ridewitus.Development))
	require.Equal(t, 2.5, ridewitus.EnvVarOrFloat("RIDEWITUS_TEST_FLOAT", 1))
	require.Equal(t, 7, ridewitus.EnvVarOrInt("RIDEWITUS_TEST_INT", 7))
	require.Equal(t, "fallback", ridewitus.EnvVarOrString("RIDEWITUS_TEST_MISSING", "fallback"))
	require.Equal(t, "example.com", ridewitus.EnvVarOrURL("RIDEWITUS_TEST_URL", "http://localhost:3000").Host)
}
