// Package query tracks remote workspace records for the client: the last
// fetched value, whether a fetch is in flight and the last error.
package query

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/hermes-client/pkg/models"
	"github.com/hashicorp-forge/hermes-client/pkg/store"
)

// FetchFunc loads a workspace from the backend.
type FetchFunc func(ctx context.Context, workspaceID string) (*models.Workspace, error)

// Snapshot is the observable state of one workspace.
type Snapshot struct {
	// Workspace is nil until a fetch succeeds, and again after a fetch fails.
	Workspace *models.Workspace
	IsLoading bool
	Err       error
	FetchedAt time.Time
}

// WorkspaceQuery caches workspace snapshots by id.
type WorkspaceQuery struct {
	fetch  FetchFunc
	logger hclog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	state *store.Store[Snapshot]

	// generation counts Load calls; only the latest one may publish.
	generation atomic.Uint64
}

// NewWorkspaceQuery creates a query that loads workspaces with fetch.
func NewWorkspaceQuery(fetch FetchFunc, logger hclog.Logger) *WorkspaceQuery {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &WorkspaceQuery{
		fetch:   fetch,
		logger:  logger.Named("query"),
		entries: make(map[string]*entry),
	}
}

func (q *WorkspaceQuery) entry(workspaceID string) *entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.entries[workspaceID]
	if !ok {
		e = &entry{state: store.New(Snapshot{})}
		q.entries[workspaceID] = e
	}
	return e
}

// Snapshot returns the current state of a workspace. Workspaces never loaded
// report neither data nor loading.
func (q *WorkspaceQuery) Snapshot(workspaceID string) Snapshot {
	return q.entry(workspaceID).state.Get()
}

// Subscribe calls fn whenever the snapshot of workspaceID changes.
func (q *WorkspaceQuery) Subscribe(workspaceID string, fn func(Snapshot)) (unsubscribe func()) {
	return q.entry(workspaceID).state.Subscribe(fn)
}

// Load fetches a workspace. Subscribers see the loading state first, then
// the result. Previously fetched data stays visible while the fetch is in
// flight. When loads of the same workspace overlap, only the most recently
// started one updates the snapshot; each caller still gets its own result.
func (q *WorkspaceQuery) Load(ctx context.Context, workspaceID string) (*models.Workspace, error) {
	e := q.entry(workspaceID)
	gen := e.generation.Add(1)

	e.state.Update(func(s Snapshot) Snapshot {
		s.IsLoading = true
		return s
	})

	ws, err := q.fetch(ctx, workspaceID)

	next := Snapshot{Workspace: ws, FetchedAt: time.Now()}
	if err != nil {
		q.logger.Debug("failed to load workspace", "workspace_id", workspaceID, "error", err)
		next = Snapshot{Err: err}
	}

	published := e.state.UpdateIf(func(Snapshot) (Snapshot, bool) {
		return next, e.generation.Load() == gen
	})
	if !published {
		q.logger.Debug("discarded superseded load", "workspace_id", workspaceID)
	}

	if err != nil {
		return nil, err
	}
	return ws, nil
}

// Invalidate forgets the cached snapshot of workspaceID. Loads in flight
// when it is called no longer publish.
func (q *WorkspaceQuery) Invalidate(workspaceID string) {
	e := q.entry(workspaceID)
	e.generation.Add(1)
	e.state.Set(Snapshot{})
}
