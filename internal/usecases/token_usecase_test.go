package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/usecases"
)

func newTokenUC() (*usecases.TokenUsecase, *MockTokenRepository, *MockTransactionRepository, *MockWalletRepository) {
	tr := new(MockTokenRepository)
	xr := new(MockTransactionRepository)
	wr := new(MockWalletRepository)
	return usecases.NewTokenUsecase(tr, xr, wr), tr, xr, wr
}

func TestListTokens_OwnWallet(t *testing.T) {
	uc, tr, _, _ := newTokenUC()
	acting := uuid.New()

	tr.On("ListByWallet", mock.Anything, acting, 100, 0).Return([]*entities.Token{
		{ID: uuid.New(), WalletID: acting},
	}, 1, nil).Once()

	tokens, total, err := uc.ListTokens(context.Background(), acting, "", 100, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, tokens, 1)
}

func TestListTokens_FilterNamingOwnWallet(t *testing.T) {
	uc, tr, _, wr := newTokenUC()
	acting := uuid.New()

	wr.On("GetByName", mock.Anything, "mine").Return(&entities.Wallet{ID: acting, Name: "mine"}, nil).Once()
	tr.On("ListByWallet", mock.Anything, acting, 100, 0).Return([]*entities.Token{}, 0, nil).Once()

	_, _, err := uc.ListTokens(context.Background(), acting, "mine", 100, 0)
	assert.NoError(t, err)
}

func TestListTokens_ForeignWalletForbidden(t *testing.T) {
	uc, tr, _, wr := newTokenUC()
	acting := uuid.New()

	wr.On("GetByName", mock.Anything, "other").Return(&entities.Wallet{ID: uuid.New(), Name: "other"}, nil).Once()

	_, _, err := uc.ListTokens(context.Background(), acting, "other", 100, 0)
	assert.ErrorIs(t, err, errors.ErrForbidden)
	tr.AssertNotCalled(t, "ListByWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetToken_NotCustodianForbidden(t *testing.T) {
	uc, tr, _, _ := newTokenUC()
	tokenID := uuid.New()

	tr.On("GetByID", mock.Anything, tokenID).Return(&entities.Token{
		ID:       tokenID,
		WalletID: uuid.New(),
	}, nil).Once()

	_, err := uc.GetToken(context.Background(), uuid.New(), tokenID)
	assert.ErrorIs(t, err, errors.ErrForbidden)
}

func TestGetToken_NotFound(t *testing.T) {
	uc, tr, _, _ := newTokenUC()
	tokenID := uuid.New()

	tr.On("GetByID", mock.Anything, tokenID).Return(nil, assert.AnError).Once()

	_, err := uc.GetToken(context.Background(), uuid.New(), tokenID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestListTokenTransactions_CustodianOnly(t *testing.T) {
	uc, tr, xr, _ := newTokenUC()
	acting := uuid.New()
	tokenID := uuid.New()

	tr.On("GetByID", mock.Anything, tokenID).Return(&entities.Token{
		ID:       tokenID,
		WalletID: acting,
	}, nil).Once()
	xr.On("ListByToken", mock.Anything, tokenID, 100, 0).Return([]*entities.Transaction{
		{ID: uuid.New(), TokenID: tokenID},
	}, 1, nil).Once()

	txs, total, err := uc.ListTokenTransactions(context.Background(), acting, tokenID, 100, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, txs, 1)
}

func TestListTokenTransactions_ForeignTokenForbidden(t *testing.T) {
	uc, tr, xr, _ := newTokenUC()
	tokenID := uuid.New()

	tr.On("GetByID", mock.Anything, tokenID).Return(&entities.Token{
		ID:       tokenID,
		WalletID: uuid.New(),
	}, nil).Once()

	_, _, err := uc.ListTokenTransactions(context.Background(), uuid.New(), tokenID, 100, 0)
	assert.ErrorIs(t, err, errors.ErrForbidden)
	xr.AssertNotCalled(t, "ListByToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
