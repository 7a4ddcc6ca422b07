// Package usecasetest provides in-memory adapters for use case tests.
package usecasetest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arquitetura-app/backend/internal/application/adapter"
	"github.com/arquitetura-app/backend/internal/domain/entity"
	domainerror "github.com/arquitetura-app/backend/internal/domain/error"
)

// Store is an in-memory stand-in for the database shared by the fake repositories.
type Store struct {
	mu           sync.Mutex
	Projects     map[uuid.UUID]*entity.Project
	Transactions map[uuid.UUID]*entity.Transaction
	// SaveFailures makes the next SaveWithTransactions calls fail.
	SaveFailures int
	SaveCalls    int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		Projects:     make(map[uuid.UUID]*entity.Project),
		Transactions: make(map[uuid.UUID]*entity.Transaction),
	}
}

// ProjectRepository implements adapter.ProjectRepository over a Store.
type ProjectRepository struct{ *Store }

func (s ProjectRepository) Create(_ context.Context, project *entity.Project, transactions []*entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Projects[project.ID] = project.Clone()
	for _, tx := range transactions {
		s.Transactions[tx.ID] = tx.Clone()
	}
	return nil
}

func (s ProjectRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.Projects[id]
	if !ok || project.DeletedAt != nil {
		return nil, domainerror.ErrProjectNotFound
	}
	return project.Clone(), nil
}

func (s ProjectRepository) List(context.Context) ([]*entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var projects []*entity.Project
	for _, p := range s.Projects {
		if p.DeletedAt == nil {
			projects = append(projects, p.Clone())
		}
	}
	return projects, nil
}

func (s ProjectRepository) Save(_ context.Context, project *entity.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCalls++
	s.Projects[project.ID] = project.Clone()
	return nil
}

func (s ProjectRepository) SaveWithTransactions(_ context.Context, project *entity.Project, transactions []*entity.Transaction, detached []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveCalls++
	if s.SaveFailures > 0 {
		s.SaveFailures--
		return errors.New("connection reset by peer")
	}
	s.Projects[project.ID] = project.Clone()
	for _, tx := range transactions {
		s.Transactions[tx.ID] = tx.Clone()
	}
	for _, id := range detached {
		delete(s.Transactions, id)
	}
	return nil
}

func (s ProjectRepository) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.Projects[id]
	if !ok {
		return domainerror.ErrProjectNotFound
	}
	now := time.Now().UTC()
	project.DeletedAt = &now
	return nil
}

// TransactionRepository implements adapter.TransactionRepository over a Store.
type TransactionRepository struct{ *Store }

func (s TransactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transactions[tx.ID] = tx.Clone()
	return nil
}

func (s TransactionRepository) Save(ctx context.Context, tx *entity.Transaction) error {
	return s.Create(ctx, tx)
}

func (s TransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.Transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return tx.Clone(), nil
}

// FindByProject returns the project's transactions oldest first.
func (s TransactionRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Transaction, error) {
	out, err := s.FindByFilter(ctx, adapter.TransactionFilter{ProjectID: &projectID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s TransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Transaction
	for _, tx := range s.Transactions {
		if filter.ProjectID != nil && (tx.ProjectID == nil || *tx.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, tx.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Timeline implements adapter.TimelineRepository in memory.
type Timeline struct {
	mu     sync.Mutex
	Events []*entity.TimelineEvent
}

func (m *Timeline) Append(_ context.Context, event *entity.TimelineEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *Timeline) List(context.Context, adapter.TimelineFilter) ([]*entity.TimelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Events, nil
}

// Types returns the type of every stored event, oldest first.
func (m *Timeline) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

// Notifier records operator alerts.
type Notifier struct {
	mu            sync.Mutex
	Orphaned      []adapter.OrphanedInstallmentsAlert
	Desync        []adapter.LedgerDesyncAlert
	AuditFailures []adapter.AuditFailureAlert
}

func (n *Notifier) NotifyOrphanedInstallments(_ context.Context, input adapter.OrphanedInstallmentsAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Orphaned = append(n.Orphaned, input)
	return nil
}

func (n *Notifier) NotifyLedgerDesync(_ context.Context, input adapter.LedgerDesyncAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Desync = append(n.Desync, input)
	return nil
}

func (n *Notifier) NotifyAuditFailure(_ context.Context, input adapter.AuditFailureAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.AuditFailures = append(n.AuditFailures, input)
	return nil
}

// NoopLocker never blocks.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, uuid.UUID) (func(), error) {
	return func() {}, nil
}

// BusyLocker always reports the project as locked by someone else.
type BusyLocker struct{}

func (BusyLocker) Lock(context.Context, uuid.UUID) (func(), error) {
	return nil, domainerror.ErrLockUnavailable
}

// Clock is a settable clock.
type Clock struct{ Current time.Time }

// Now returns the current setting.
func (c *Clock) Now() time.Time { return c.Current }

var (
	_ adapter.ProjectRepository     = ProjectRepository{}
	_ adapter.TransactionRepository = TransactionRepository{}
	_ adapter.TimelineRepository    = (*Timeline)(nil)
	_ adapter.OperatorNotifier      = (*Notifier)(nil)
	_ adapter.ProjectLocker         = NoopLocker{}
	_ adapter.Clock                 = (*Clock)(nil)
)
