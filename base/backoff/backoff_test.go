package backoff

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	want := []time.Duration{1, 2, 4, 4}
	for _, w := range want {
		req.Equal(w*time.Millisecond, b.NextDuration)
		req.NoError(b.Backoff(context.Background()))
	}
	req.Equal(4, b.Count())

	b.Reset()
	req.Equal(time.Millisecond, b.NextDuration)
	req.Equal(0, b.Count())
}

func TestLinear(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 0)
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
}

func TestBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewLinear(time.Hour, 0)
	require.Equal(t, context.Canceled, b.Backoff(ctx))
	require.Equal(t, 0, b.Count())
}

func TestRetry(t *testing.T) {
	req := require.New(t)
	errTemp := errors.New("temporary")

	calls := 0
	err := NewLinear(time.Millisecond, 0).Retry(context.Background(), 5, func() error {
		calls++
		if calls < 3 {
			return errTemp
		}
		return nil
	})
	req.NoError(err)
	req.Equal(3, calls)

	calls = 0
	err = NewLinear(time.Millisecond, 0).Retry(context.Background(), 2, func() error {
		calls++
		return errTemp
	})
	req.Equal(errTemp, err)
	req.Equal(2, calls)

	calls = 0
	err = NewLinear(time.Millisecond, 0).Retry(context.Background(), 5, func() error {
		calls++
		return fmt.Errorf("reverted: %w", ErrPermanent)
	})
	req.ErrorIs(err, ErrPermanent)
	req.Equal(1, calls)
}

func TestPermanent(t *testing.T) {
	req := require.New(t)
	errBad := errors.New("bad input")

	err := Permanent(errBad)
	req.ErrorIs(err, ErrPermanent)
	req.ErrorIs(err, errBad)
	req.Equal("bad input", err.Error())
	req.Nil(Permanent(nil))

	calls := 0
	err = NewLinear(time.Millisecond, 0).Retry(context.Background(), 5, func() error {
		calls++
		return Permanent(errBad)
	})
	req.ErrorIs(err, errBad)
	req.Equal(1, calls)
}
