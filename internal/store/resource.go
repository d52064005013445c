package store

import (
	"context"
	"sync"
	"time"
)

// nowFunc is swappable in tests
var nowFunc = time.Now

// ResourceState is the (data, loading, error) triple a store keeps
// per fetched entity, plus the time of the last successful refresh.
type ResourceState[T any] struct {
	Data      *T
	Loading   bool
	Err       string
	LastFetch time.Time
}

// Resource owns one slot and its mutation protocol.
// 상태 전이는 슬롯 단위로 원자적: 독자는 중간 상태를 볼 수 없음
type Resource[T any] struct {
	mu    sync.RWMutex
	state ResourceState[T]
}

// State returns a snapshot of the slot
func (r *Resource[T]) State() ResourceState[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// begin marks the fetch in flight and clears the previous error
func (r *Resource[T]) begin() {
	r.mu.Lock()
	r.state.Loading = true
	r.state.Err = ""
	r.mu.Unlock()
}

// commit stores fresh data and ends loading in one transition
func (r *Resource[T]) commit(data *T, at time.Time) {
	r.mu.Lock()
	r.state.Data = data
	r.state.Loading = false
	r.state.Err = ""
	r.state.LastFetch = at
	r.mu.Unlock()
}

// fail records the error message and ends loading.
// Previous data stays: stale-but-present beats empty.
func (r *Resource[T]) fail(msg string) {
	r.mu.Lock()
	r.state.Loading = false
	r.state.Err = msg
	r.mu.Unlock()
}

// settle ends loading without touching data or error.
// 베스트에포트 실패 경로에서 사용
func (r *Resource[T]) settle() {
	r.mu.Lock()
	r.state.Loading = false
	r.mu.Unlock()
}

// reset returns the slot to its initial empty value
func (r *Resource[T]) reset() {
	r.mu.Lock()
	r.state = ResourceState[T]{}
	r.mu.Unlock()
}

// run drives one full fetch lifecycle for the slot.
// Concurrent runs for the same slot race deliberately: each applies
// the full lifecycle and the last completion wins. Callers needing
// at-most-one-in-flight must serialize themselves.
func (r *Resource[T]) run(ctx context.Context, fallback string, fetch func(ctx context.Context) (*T, error)) error {
	r.begin()

	data, err := fetch(ctx)
	if err != nil {
		r.fail(errorMessage(err, fallback))
		return err
	}

	r.commit(data, nowFunc())
	return nil
}

// errorMessage derives a user-facing message from a failure
func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
