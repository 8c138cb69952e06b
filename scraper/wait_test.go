package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollUntil_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := pollUntil(context.Background(), time.Millisecond, 50*time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestPollUntil_EventualSuccess(t *testing.T) {
	calls := 0
	err := pollUntil(context.Background(), time.Millisecond, time.Second, func(context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestPollUntil_Deadline(t *testing.T) {
	err := pollUntil(context.Background(), time.Millisecond, 20*time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPollUntil_PredicateError(t *testing.T) {
	boom := errors.New("eval failed")
	err := pollUntil(context.Background(), time.Millisecond, time.Second, func(context.Context) (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestPollUntil_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pollUntil(ctx, time.Millisecond, time.Second, func(context.Context) (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
