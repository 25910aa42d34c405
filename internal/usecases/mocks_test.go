package usecases_test

import (
	"context"
	"time"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainRepos "github.com/galewarning/treetracker-wallet-api/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	return m.Called(ctx, wallet).Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByName(ctx context.Context, name string) (*entities.Wallet, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

// Mock TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Token, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Token), args.Error(1)
}

func (m *MockTokenRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entities.Token, int, error) {
	args := m.Called(ctx, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Token), args.Int(1), args.Error(2)
}

func (m *MockTokenRepository) GetByIDs(ctx context.Context, ids []uuid.UUID, limit, offset int) ([]*entities.Token, error) {
	args := m.Called(ctx, ids, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Token), args.Error(1)
}

func (m *MockTokenRepository) ResolveTokens(ctx context.Context, walletID uuid.UUID, selector entities.TokenSelector) ([]uuid.UUID, error) {
	args := m.Called(ctx, walletID, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockTokenRepository) TransferCustody(ctx context.Context, ids []uuid.UUID, fromWallet, toWallet uuid.UUID) error {
	return m.Called(ctx, ids, fromWallet, toWallet).Error(0)
}

// Mock TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *entities.Transfer) error {
	return m.Called(ctx, transfer).Error(0)
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transfer), args.Error(1)
}

func (m *MockTransferRepository) TransitionState(ctx context.Context, id uuid.UUID, from []entities.TransferState, to entities.TransferState) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransferRepository) SetFulfilled(ctx context.Context, id uuid.UUID, resolved []uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, resolved)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransferRepository) ListByFilter(ctx context.Context, filter domainRepos.TransferFilter, limit, offset int) ([]*entities.Transfer, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transfer), args.Int(1), args.Error(2)
}

func (m *MockTransferRepository) GetStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.Transfer, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transfer), args.Error(1)
}

func (m *MockTransferRepository) CancelTransfers(ctx context.Context, ids []uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

// Mock TrustRepository
type MockTrustRepository struct {
	mock.Mock
}

func (m *MockTrustRepository) Create(ctx context.Context, rel *entities.TrustRelationship) error {
	return m.Called(ctx, rel).Error(0)
}

func (m *MockTrustRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TrustRelationship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TrustRelationship), args.Error(1)
}

func (m *MockTrustRepository) HasActiveTrust(ctx context.Context, sourceWallet, targetWallet uuid.UUID, types []entities.TrustType) (bool, error) {
	args := m.Called(ctx, sourceWallet, targetWallet, types)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrustRepository) ExistsOpen(ctx context.Context, sourceWallet, targetWallet uuid.UUID, trustType entities.TrustType) (bool, error) {
	args := m.Called(ctx, sourceWallet, targetWallet, trustType)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrustRepository) UpdateState(ctx context.Context, id uuid.UUID, state entities.TrustState) error {
	return m.Called(ctx, id, state).Error(0)
}

func (m *MockTrustRepository) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]*entities.TrustRelationship, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TrustRelationship), args.Error(1)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateBatch(ctx context.Context, transactions []*entities.Transaction) error {
	return m.Called(ctx, transactions).Error(0)
}

func (m *MockTransactionRepository) ListByToken(ctx context.Context, tokenID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	args := m.Called(ctx, tokenID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Int(1), args.Error(2)
}
