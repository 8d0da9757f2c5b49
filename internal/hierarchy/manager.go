package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/goliatone/go-solutions/internal/logging"
	"github.com/goliatone/go-solutions/internal/solutions"
	"github.com/goliatone/go-solutions/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultAttempts bounds the compare-and-swap loop of attach and detach.
const DefaultAttempts = 5

// Saver persists a draft. solutions.Service satisfies it.
type Saver interface {
	Save(ctx context.Context, draft *solutions.Solution) (*solutions.Solution, error)
}

// Manager keeps parent children lists consistent with stored Solutions.
// Children lists are only ever changed through set-union/set-difference
// compare-and-swap writes, so concurrent attaches against one parent never
// drop an id.
type Manager struct {
	repo     solutions.SolutionRepository
	saver    Saver
	attempts int
	backoff  func(attempt int) time.Duration
	logger   interfaces.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithAttempts overrides how many times a conflicting write is retried.
func WithAttempts(attempts int) Option {
	return func(m *Manager) {
		if attempts > 0 {
			m.attempts = attempts
		}
	}
}

// WithBackoff sets the pause between conflicting attempts.
func WithBackoff(backoff func(attempt int) time.Duration) Option {
	return func(m *Manager) {
		m.backoff = backoff
	}
}

// WithLogger overrides the manager logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager constructs a hierarchy manager.
func NewManager(repo solutions.SolutionRepository, saver Saver, opts ...Option) *Manager {
	if repo == nil {
		panic(ErrRepositoryRequired)
	}
	if saver == nil {
		panic(ErrSaverRequired)
	}
	m := &Manager{
		repo:     repo,
		saver:    saver,
		attempts: DefaultAttempts,
		logger:   logging.HierarchyLogger(nil),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AttachChild adds childID to the parent's children. Attaching a child that
// is already linked is a no-op.
func (m *Manager) AttachChild(ctx context.Context, parentID, childID uuid.UUID) error {
	if parentID == childID {
		return solutions.ErrChildSelf
	}
	if _, err := m.repo.GetByID(ctx, childID); err != nil {
		if solutions.IsNotFound(err) {
			return fmt.Errorf("%w: %s", solutions.ErrChildNotFound, childID)
		}
		return err
	}
	if err := m.checkCycle(ctx, parentID, childID); err != nil {
		return err
	}

	logger := logging.WithLink(m.logger, parentID, childID)
	return m.swapChildren(ctx, parentID, func(children []uuid.UUID) ([]uuid.UUID, bool) {
		if slices.Contains(children, childID) {
			logger.Debug("hierarchy.attach.noop")
			return nil, false
		}
		next := make([]uuid.UUID, len(children), len(children)+1)
		copy(next, children)
		return append(next, childID), true
	}, func() {
		logger.Info("hierarchy.child.attached")
	})
}

// DetachChild removes childID from the parent's children without deleting
// the child. Detaching a child that is not linked is a no-op.
func (m *Manager) DetachChild(ctx context.Context, parentID, childID uuid.UUID) error {
	logger := logging.WithLink(m.logger, parentID, childID)
	return m.swapChildren(ctx, parentID, func(children []uuid.UUID) ([]uuid.UUID, bool) {
		if !slices.Contains(children, childID) {
			return nil, false
		}
		return slices.DeleteFunc(slices.Clone(children), func(id uuid.UUID) bool {
			return id == childID
		}), true
	}, func() {
		logger.Info("hierarchy.child.detached")
	})
}

// SaveChild persists draft and links it under parentID. A storage failure
// while saving the child is a *SaveFailedError; a failure while linking the
// already-saved child is a *PartialLinkError and is repaired by calling
// AttachChild again.
func (m *Manager) SaveChild(ctx context.Context, parentID uuid.UUID, draft *solutions.Solution) (*solutions.Solution, error) {
	if _, err := m.repo.GetByID(ctx, parentID); err != nil {
		return nil, err
	}

	saved, err := m.saver.Save(ctx, draft)
	if err != nil {
		return nil, &SaveFailedError{Err: err}
	}

	if err := m.AttachChild(ctx, parentID, saved.ID); err != nil {
		logging.WithLink(m.logger, parentID, saved.ID).Warn("hierarchy.link.partial", "error", err)
		return saved, &PartialLinkError{ParentID: parentID, ChildID: saved.ID, Err: err}
	}
	return saved, nil
}

// DeleteSolution deletes id. Solutions that still have children are
// rejected with ErrHasChildren; otherwise id is first detached from every
// parent that lists it.
func (m *Manager) DeleteSolution(ctx context.Context, id uuid.UUID) error {
	record, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if len(record.Children) > 0 {
		return &HasChildrenError{ID: id, Children: len(record.Children)}
	}

	parents, err := m.repo.ListParents(ctx, id)
	if err != nil {
		return err
	}
	for _, parent := range parents {
		if err := m.DetachChild(ctx, parent.ID, id); err != nil {
			return err
		}
	}

	if err := m.repo.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Info("hierarchy.solution.deleted", "solution_id", id.String(), "detached_from", len(parents))
	return nil
}

// Parents lists the solutions that link childID.
func (m *Manager) Parents(ctx context.Context, childID uuid.UUID) ([]*solutions.Solution, error) {
	return m.repo.ListParents(ctx, childID)
}

// swapChildren runs a read-modify-write loop against the parent's children.
// change returns the new list and whether a write is needed.
func (m *Manager) swapChildren(ctx context.Context, parentID uuid.UUID, change func([]uuid.UUID) ([]uuid.UUID, bool), done func()) error {
	var lastErr error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		parent, err := m.repo.GetByID(ctx, parentID)
		if err != nil {
			return err
		}
		next, write := change(parent.Children)
		if !write {
			return nil
		}

		_, err = m.repo.UpdateChildren(ctx, parentID, parent.Version, next)
		if err == nil {
			done()
			return nil
		}
		if !errors.Is(err, solutions.ErrVersionConflict) {
			return err
		}

		lastErr = err
		m.logger.Debug("hierarchy.swap.conflict", "parent_id", parentID.String(), "attempt", attempt)
		if m.backoff != nil && attempt < m.attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.backoff(attempt)):
			}
		}
	}
	return fmt.Errorf("%w: parent=%s: %w", ErrContention, parentID, lastErr)
}

// checkCycle rejects linking childID under parentID when childID is already
// an ancestor of parentID.
func (m *Manager) checkCycle(ctx context.Context, parentID, childID uuid.UUID) error {
	seen := map[uuid.UUID]struct{}{parentID: {}}
	queue := []uuid.UUID{parentID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		parents, err := m.repo.ListParents(ctx, current)
		if err != nil {
			return err
		}
		for _, parent := range parents {
			if parent.ID == childID {
				return fmt.Errorf("%w: %s is an ancestor of %s", ErrCycle, childID, parentID)
			}
			if _, ok := seen[parent.ID]; ok {
				continue
			}
			seen[parent.ID] = struct{}{}
			queue = append(queue, parent.ID)
		}
	}
	return nil
}
