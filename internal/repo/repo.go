// Package repo exposes entity-level operations over the persisted
// collections. It stands in for a remote backend: every operation loads a
// whole collection, mutates it in memory, writes it back, and sleeps a
// fixed per-operation delay to feel like a network round-trip.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tgienger/avo/internal/models"
	"github.com/tgienger/avo/internal/store"
)

// Per-operation simulated latency.
const (
	latencyLogin         = 600 * time.Millisecond
	latencyLogout        = 200 * time.Millisecond
	latencyListProjects  = 400 * time.Millisecond
	latencyCreateProject = 500 * time.Millisecond
	latencyDeleteProject = 300 * time.Millisecond
	latencyListTasks     = 300 * time.Millisecond
	latencyCreateTask    = 300 * time.Millisecond
	latencyUpdateTask    = 100 * time.Millisecond
	latencyDeleteTasks   = 200 * time.Millisecond
	latencyComments      = 200 * time.Millisecond
)

// Repository is the sole writer of the persisted collections.
type Repository struct {
	store     *store.Store
	log       *logrus.Logger
	noLatency bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithoutLatency disables the simulated round-trip delays. Tests use this.
func WithoutLatency() Option {
	return func(r *Repository) { r.noLatency = true }
}

// New creates a Repository over the given store.
func New(s *store.Store, log *logrus.Logger, opts ...Option) *Repository {
	r := &Repository{store: s, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// wait blocks for the operation's simulated latency, aborting early if the
// context is cancelled.
func (r *Repository) wait(ctx context.Context, d time.Duration) error {
	if r.noLatency {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mutation identifies a write operation for authorization.
type mutation int

const (
	mutCreateProject mutation = iota
	mutDeleteProject
	mutCreateTask
	mutUpdateTask
	mutDeleteTasks
	mutAddComment
)

// roleAllows is the single authorization predicate. Admins may do
// anything; clients may only create tasks and comments.
func roleAllows(role models.Role, m mutation) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleClient:
		return m == mutCreateTask || m == mutAddComment
	}
	return false
}

// authorize checks the signed-in user's role against the mutation.
func (r *Repository) authorize(m mutation) error {
	user, ok, err := r.CurrentUser()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthenticated
	}
	if !roleAllows(user.Role, m) {
		return fmt.Errorf("%w: role %s", ErrPermissionDenied, user.Role)
	}
	return nil
}

// readAll loads and decodes a collection. A never-written collection reads
// as empty.
func readAll[T any](s *store.Store, name string) ([]T, error) {
	data, ok, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return records, nil
}

// writeAll encodes and replaces a collection.
func writeAll[T any](s *store.Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.Write(name, data)
}
