// Package reconcile applies editor mutations to the backend and decides
// which snapshot the local store should adopt afterwards.
//
// Every call follows the same protocol: issue the request, adopt the
// server's snapshot on success, and fall back to a full reload when the
// outcome is inconsistent or, for flows that have a fallback, when the
// transport fails. Rejections are reported and leave local state alone.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
	"golang.org/x/sync/errgroup"
)

// ExampleCenter is where the backend centers its example layouts.
var ExampleCenter = geometry.Pt(400, 300)

// ErrSameEndpoints is returned when an edge would join a vertex to itself.
var ErrSameEndpoints = errors.New("choose two different points")

// Backend is the part of the HTTP API the syncer drives. *api.Client
// implements it.
type Backend interface {
	Graph(ctx context.Context) (graph.Snapshot, error)
	CreateVertex(ctx context.Context, id string, at geometry.Point) (graph.Snapshot, error)
	DeleteVertex(ctx context.Context, id string) (graph.Snapshot, error)
	CreateEdge(ctx context.Context, from, to string) (graph.Snapshot, error)
	Optimize(ctx context.Context, p api.Params) (*api.Result, error)
	Clear(ctx context.Context) error
	Example(ctx context.Context, kind string) (graph.Snapshot, error)
}

// Outcome is the result of one synchronized operation.
type Outcome struct {
	// Snapshot is canonical when Applied is set and must replace the store.
	Snapshot graph.Snapshot
	Applied  bool
	// Reloaded is set when Snapshot came from a full reload rather than
	// from the mutation's own response.
	Reloaded bool
	// Err is the failure to report. It may accompany an applied snapshot
	// when a multi-step operation partially failed.
	Err error
}

// Syncer runs mutations against a Backend.
type Syncer struct {
	backend Backend
}

// New creates a Syncer.
func New(backend Backend) *Syncer {
	return &Syncer{backend: backend}
}

// Reload fetches the canonical graph. It is the recovery path for every
// inconsistent or failed mutation.
func (s *Syncer) Reload(ctx context.Context) Outcome {
	snap, err := s.backend.Graph(ctx)
	if err != nil {
		log.Printf("[sync] reload failed: %v", err)
		return Outcome{Err: err}
	}
	return Outcome{Snapshot: snap, Applied: true, Reloaded: true}
}

// mutate is the shared request/adopt/reload protocol. check, if set,
// verifies that the returned snapshot reflects the intended change.
func (s *Syncer) mutate(ctx context.Context, op string, call func(context.Context) (graph.Snapshot, error), check func(graph.Snapshot) bool, reloadOnTransport bool) Outcome {
	snap, err := call(ctx)
	if err != nil {
		if api.IsRejected(err) {
			return Outcome{Err: err}
		}
		log.Printf("[sync] %s: %v", op, err)
		if !reloadOnTransport {
			return Outcome{Err: err}
		}
		out := s.Reload(ctx)
		out.Err = errors.Join(err, out.Err)
		return out
	}
	if check != nil && !check(snap) {
		log.Printf("[sync] %s: server snapshot does not reflect the change, reloading", op)
		return s.Reload(ctx)
	}
	return Outcome{Snapshot: snap, Applied: true}
}

// CreateVertex adds a vertex at the given position.
func (s *Syncer) CreateVertex(ctx context.Context, id string, at geometry.Point) Outcome {
	return s.mutate(ctx, "create vertex "+id, func(ctx context.Context) (graph.Snapshot, error) {
		return s.backend.CreateVertex(ctx, id, at)
	}, nil, false)
}

// CreateEdge connects from and to and verifies the edge came back.
func (s *Syncer) CreateEdge(ctx context.Context, from, to string) Outcome {
	if from == to {
		return Outcome{Err: ErrSameEndpoints}
	}
	return s.mutate(ctx, fmt.Sprintf("create edge %s-%s", from, to), func(ctx context.Context) (graph.Snapshot, error) {
		return s.backend.CreateEdge(ctx, from, to)
	}, func(snap graph.Snapshot) bool {
		return snap.HasEdge(from, to)
	}, true)
}

// DeleteVertex removes a vertex; the backend drops its edges with it.
func (s *Syncer) DeleteVertex(ctx context.Context, id string) Outcome {
	return s.mutate(ctx, "delete vertex "+id, func(ctx context.Context) (graph.Snapshot, error) {
		return s.backend.DeleteVertex(ctx, id)
	}, func(snap graph.Snapshot) bool {
		_, still := snap.Vertices[id]
		return !still
	}, true)
}

// MoveVertex commits a drag. The backend cannot move a vertex, so the move
// is a delete, a re-create at the new position and a concurrent re-create
// of every edge in incident, which must be captured before the delete
// cascades them away. The canonical graph is always reloaded at the end,
// even when a step failed.
func (s *Syncer) MoveVertex(ctx context.Context, id string, to geometry.Point, incident []graph.Edge) Outcome {
	var (
		mu       sync.Mutex
		failures []error
	)
	fail := func(err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	}

	if _, err := s.backend.DeleteVertex(ctx, id); err != nil {
		fail(fmt.Errorf("delete %s: %w", id, err))
	} else if _, err := s.backend.CreateVertex(ctx, id, to); err != nil {
		fail(fmt.Errorf("re-create %s: %w", id, err))
	} else {
		var g errgroup.Group
		for _, e := range incident {
			g.Go(func() error {
				if _, err := s.backend.CreateEdge(ctx, e.From, e.To); err != nil {
					fail(fmt.Errorf("re-create edge %s-%s: %w", e.From, e.To, err))
				}
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, err := range failures {
		log.Printf("[sync] move %s: %v", id, err)
	}
	out := s.Reload(ctx)
	out.Err = errors.Join(append(failures, out.Err)...)
	return out
}

// Optimize requests a traversal. A failure leaves the caller's current path
// untouched.
func (s *Syncer) Optimize(ctx context.Context, p api.Params) (*api.Result, error) {
	res, err := s.backend.Optimize(ctx, p)
	if err != nil {
		if !api.IsRejected(err) {
			log.Printf("[sync] optimize: %v", err)
		}
		return nil, err
	}
	return res, nil
}

// Clear wipes the backend graph. Callers reset local state whatever the
// result.
func (s *Syncer) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx); err != nil {
		log.Printf("[sync] clear: %v", err)
		return err
	}
	return nil
}

// LoadExample fetches an example layout, translates it from the backend's
// example center to center, and replaces the live graph with it.
func (s *Syncer) LoadExample(ctx context.Context, kind string, center geometry.Point) Outcome {
	snap, err := s.backend.Example(ctx, kind)
	if err != nil {
		log.Printf("[sync] example %s: %v", kind, err)
		return Outcome{Err: err}
	}
	return s.Replace(ctx, snap.Translate(center.Sub(ExampleCenter)))
}

// Replace clears the backend and re-creates snap on it one call at a time:
// vertices in id order, then edges in their given order. Individual
// failures are collected; the canonical graph is reloaded at the end.
func (s *Syncer) Replace(ctx context.Context, snap graph.Snapshot) Outcome {
	var failures []error
	if err := s.backend.Clear(ctx); err != nil {
		failures = append(failures, fmt.Errorf("clear: %w", err))
	}

	ids := make([]string, 0, len(snap.Vertices))
	for id := range snap.Vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := s.backend.CreateVertex(ctx, id, snap.Vertices[id]); err != nil {
			failures = append(failures, fmt.Errorf("create %s: %w", id, err))
		}
	}
	for _, e := range snap.Edges {
		if _, err := s.backend.CreateEdge(ctx, e.From, e.To); err != nil {
			failures = append(failures, fmt.Errorf("create edge %s-%s: %w", e.From, e.To, err))
		}
	}

	for _, err := range failures {
		log.Printf("[sync] replace: %v", err)
	}
	out := s.Reload(ctx)
	out.Err = errors.Join(append(failures, out.Err)...)
	return out
}
