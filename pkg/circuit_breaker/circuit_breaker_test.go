package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/library-lending/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	var (
		errBroker = errors.New("broker unavailable")
		ok        = func() error { return nil }
		failing   = func() error { return errBroker }
	)
	const cooldown = 50 * time.Millisecond

	cb := circuit_breaker.New(10, cooldown, 0.3, 2)
	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(ok))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(failing), errBroker)
	}
	require.Equal(t, circuit_breaker.Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, circuit_breaker.ErrOpen)
	require.False(t, called)

	time.Sleep(2 * cooldown)
	require.ErrorIs(t, cb.Call(failing), errBroker)
	require.Equal(t, circuit_breaker.Open, cb.State(), "failed probe reopens")

	time.Sleep(2 * cooldown)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(2, time.Hour, 0.5, 1)
	_ = cb.Call(func() error { return errors.New("boom") })
	require.Equal(t, circuit_breaker.Open, cb.State())

	cb.Reset()
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}
