// Package worker runs blocking operations off the caller's interactive
// loop. Spawn hands the closure to a goroutine and joins on the result, so
// a slow first database open (large migration) doesn't freeze the prompt
// while still behaving like a synchronous call to the caller.
package worker

import (
	"go.uber.org/zap"

	"github.com/google/uuid"
)

type result[T any] struct {
	value T
	err   error
}

// Spawn runs fn on a worker goroutine, announcing the job on the logger,
// and blocks until it finishes. The job id ties start and finish lines
// together when several jobs interleave.
func Spawn[T any](log *zap.SugaredLogger, description string, fn func() (T, error)) (T, error) {
	job := uuid.NewString()[:8]
	log.Infow(description, "job", job)

	r := run(fn)
	if r.err != nil {
		log.Debugw("Job failed", "job", job, "error", r.err)
	} else {
		log.Debugw("Job finished", "job", job)
	}
	return r.value, r.err
}

// SpawnQuiet is Spawn without notices, for background contexts that must
// not emit interactive progress output.
func SpawnQuiet[T any](fn func() (T, error)) (T, error) {
	r := run(fn)
	return r.value, r.err
}

func run[T any](fn func() (T, error)) result[T] {
	ch := make(chan result[T], 1)
	go func() {
		value, err := fn()
		ch <- result[T]{value: value, err: err}
	}()
	return <-ch
}
