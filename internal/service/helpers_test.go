package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	mockrepository "ledger-engine/internal/mock/mock_repository"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repository"
)

// passthroughTx makes the mocked transaction manager run the unit of work
// directly, with a nil *sql.Tx the in-memory stores ignore.
func passthroughTx(m *mockrepository.MockTxManager) {
	m.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()
}

// accountStore backs the wallet account repository mock with real
// read-modify-write semantics, including the conservation check and version
// bumping the Postgres implementation performs.
type accountStore struct {
	accounts map[uuid.UUID]*models.WalletAccount
	writes   int
}

func newAccountStore(accounts ...*models.WalletAccount) *accountStore {
	s := &accountStore{accounts: make(map[uuid.UUID]*models.WalletAccount)}
	for _, a := range accounts {
		cp := *a
		s.accounts[a.ID] = &cp
	}
	return s
}

func (s *accountStore) get(id uuid.UUID) *models.WalletAccount {
	return s.accounts[id]
}

func (s *accountStore) bind(t *testing.T, m *mockrepository.MockWalletAccountRepository) {
	t.Helper()
	m.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, id uuid.UUID) (*models.WalletAccount, error) {
			account, ok := s.accounts[id]
			if !ok {
				return nil, repository.ErrWalletAccountNotFound
			}
			cp := *account
			return &cp, nil
		}).
		AnyTimes()
	m.EXPECT().
		GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.WalletAccount, error) {
			account, ok := s.accounts[id]
			if !ok {
				return nil, repository.ErrWalletAccountNotFound
			}
			cp := *account
			return &cp, nil
		}).
		AnyTimes()
	m.EXPECT().
		UpdateBalances(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, account *models.WalletAccount) (*models.WalletAccount, error) {
			if !account.CheckConservation() {
				return nil, repository.ErrNegativeBalance
			}
			stored, ok := s.accounts[account.ID]
			if !ok {
				return nil, repository.ErrWalletAccountNotFound
			}
			if stored.Version != account.Version {
				return nil, repository.ErrConcurrentModification
			}
			cp := *account
			cp.Version++
			s.accounts[account.ID] = &cp
			s.writes++
			out := cp
			return &out, nil
		}).
		AnyTimes()
}

// operationStore backs the operation repository mock, with a filter-aware
// List so reconciler scans behave like the SQL implementation.
type operationStore struct {
	ops    map[uuid.UUID]*models.Operation
	writes int
}

func newOperationStore(ops ...*models.Operation) *operationStore {
	s := &operationStore{ops: make(map[uuid.UUID]*models.Operation)}
	for _, op := range ops {
		cp := *op
		cp.AnalysisTags = append([]models.AnalysisTag(nil), op.AnalysisTags...)
		s.ops[op.ID] = &cp
	}
	return s
}

func (s *operationStore) get(id uuid.UUID) *models.Operation {
	return s.ops[id]
}

func (s *operationStore) matches(op *models.Operation, filter models.OperationFilter) bool {
	if filter.State != "" && op.State != filter.State {
		return false
	}
	if filter.AnalysisTag != "" && !op.HasTag(filter.AnalysisTag) {
		return false
	}
	if !filter.CreatedBefore.IsZero() && !op.CreatedAt.Before(filter.CreatedBefore) {
		return false
	}
	return true
}

func (s *operationStore) bind(t *testing.T, m *mockrepository.MockOperationRepository) {
	t.Helper()
	lookup := func(id uuid.UUID) (*models.Operation, error) {
		op, ok := s.ops[id]
		if !ok {
			return nil, repository.ErrOperationNotFound
		}
		cp := *op
		cp.AnalysisTags = append([]models.AnalysisTag(nil), op.AnalysisTags...)
		return &cp, nil
	}
	m.EXPECT().
		GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.Operation, error) {
			return lookup(id)
		}).
		AnyTimes()
	m.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, id uuid.UUID) (*models.Operation, error) {
			return lookup(id)
		}).
		AnyTimes()
	m.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, op *models.Operation) (*models.Operation, error) {
			cp := *op
			s.ops[op.ID] = &cp
			out := cp
			return &out, nil
		}).
		AnyTimes()
	m.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, op *models.Operation) (*models.Operation, error) {
			stored, ok := s.ops[op.ID]
			if !ok {
				return nil, repository.ErrOperationNotFound
			}
			if stored.Version != op.Version {
				return nil, repository.ErrConcurrentModification
			}
			cp := *op
			cp.AnalysisTags = append([]models.AnalysisTag(nil), op.AnalysisTags...)
			cp.Version++
			s.ops[op.ID] = &cp
			s.writes++
			out := cp
			return &out, nil
		}).
		AnyTimes()
	m.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter models.OperationFilter, req models.PageRequest) (models.Page[models.Operation], error) {
			req = req.Normalize()
			var data []models.Operation
			for _, op := range s.ops {
				if s.matches(op, filter) {
					data = append(data, *op)
				}
			}
			return models.NewPage(data, req, len(data)), nil
		}).
		AnyTimes()
}

// trackerStore backs the limit tracker repository mock.
type trackerStore struct {
	trackers map[uuid.UUID]*models.UserLimitTracker
	writes   int
}

func newTrackerStore(trackers ...*models.UserLimitTracker) *trackerStore {
	s := &trackerStore{trackers: make(map[uuid.UUID]*models.UserLimitTracker)}
	for _, tr := range trackers {
		cp := *tr
		s.trackers[tr.ID] = &cp
	}
	return s
}

func (s *trackerStore) get(id uuid.UUID) *models.UserLimitTracker {
	return s.trackers[id]
}

func (s *trackerStore) bind(t *testing.T, m *mockrepository.MockLimitTrackerRepository) {
	t.Helper()
	lookup := func(id uuid.UUID) (*models.UserLimitTracker, error) {
		tracker, ok := s.trackers[id]
		if !ok {
			return nil, repository.ErrLimitTrackerNotFound
		}
		cp := *tracker
		return &cp, nil
	}
	m.EXPECT().
		GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*models.UserLimitTracker, error) {
			return lookup(id)
		}).
		AnyTimes()
	m.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, id uuid.UUID) (*models.UserLimitTracker, error) {
			return lookup(id)
		}).
		AnyTimes()
	m.EXPECT().
		UpdateUsed(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, tracker *models.UserLimitTracker) (*models.UserLimitTracker, error) {
			stored, ok := s.trackers[tracker.ID]
			if !ok {
				return nil, repository.ErrLimitTrackerNotFound
			}
			if stored.Version != tracker.Version {
				return nil, repository.ErrConcurrentModification
			}
			cp := *tracker
			cp.Version++
			s.trackers[tracker.ID] = &cp
			s.writes++
			out := cp
			return &out, nil
		}).
		AnyTimes()
}
