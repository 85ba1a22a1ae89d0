package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
)

// Operation is a unit of work retried by Do.
type Operation[T any] func(ctx context.Context) (T, error)

// OnError is invoked after every failed attempt with the zero based attempt index.
type OnError func(err error, attempt int)

// Classifier reports whether err must not be retried.
type Classifier func(err error) bool

// Policy describes how many times and how patiently an operation is retried.
type Policy struct {
	// Attempts is the total number of calls, including the first one
	Attempts int

	// Base is the sleep after the first failure; the n-th failure sleeps Base * 2^n
	Base time.Duration

	// Max caps a single sleep, 0 means uncapped
	Max time.Duration

	// IsFatal stops retrying early when it returns true
	IsFatal Classifier
}

// PolicyFromConfig builds a Policy from the retry section of the configuration.
func PolicyFromConfig(cfg *config.RetryConfig, isFatal Classifier) Policy {
	if cfg == nil {
		return Policy{Attempts: 1, IsFatal: isFatal}
	}

	return Policy{
		Attempts: cfg.MaxAttempts,
		Base:     cfg.InitialBackoff.Duration,
		Max:      cfg.MaxBackoff.Duration,
		IsFatal:  isFatal,
	}
}

type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

// Fatal marks err as non retryable.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// IsFatal reports whether err was marked with Fatal.
func IsFatal(err error) bool {
	var fe *fatalError
	return errors.As(err, &fe)
}

// Do runs op until it succeeds, returns a fatal error or the attempts are exhausted.
// After each failure onError is called before sleeping. On exhaustion the last error is returned.
func Do[T any](ctx context.Context, p Policy, op Operation[T], onError OnError) (T, error) {
	attempts := max(p.Attempts, 1)
	attempt := 0

	wrapped := func() (T, error) {
		res, err := op(ctx)
		if err == nil {
			return res, nil
		}

		if onError != nil {
			onError(err, attempt)
		}
		attempt++

		if IsFatal(err) || (p.IsFatal != nil && p.IsFatal(err)) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	res, err := backoff.RetryWithData(wrapped, backoff.WithContext(
		backoff.WithMaxRetries(newExponential(p.Base, p.Max), uint64(attempts-1)), ctx))
	if err != nil {
		var zero T
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return zero, fmt.Errorf("%w (last error: %w)", ctxErr, err)
		}
		return zero, err
	}

	return res, nil
}

// DoErr is Do for operations without a result.
func DoErr(ctx context.Context, p Policy, op func(ctx context.Context) error, onError OnError) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, onError)
	return err
}

// newExponential returns a deterministic doubling schedule starting at base.
func newExponential(base, maxInterval time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxElapsedTime = 0
	b.MaxInterval = maxInterval
	if maxInterval == 0 {
		b.MaxInterval = time.Duration(1<<63 - 1)
	}
	b.Reset()
	return b
}
