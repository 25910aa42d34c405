package usecases

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	domainRepos "github.com/galewarning/treetracker-wallet-api/internal/domain/repositories"
	"github.com/google/uuid"
)

// TokenUsecase serves read paths over the token registry. It enforces the
// same wallet scope as the mutation paths: a wallet only sees tokens it
// currently custodies.
type TokenUsecase struct {
	tokenRepo       domainRepos.TokenRepository
	transactionRepo domainRepos.TransactionRepository
	walletRepo      domainRepos.WalletRepository
}

func NewTokenUsecase(
	tokenRepo domainRepos.TokenRepository,
	transactionRepo domainRepos.TransactionRepository,
	walletRepo domainRepos.WalletRepository,
) *TokenUsecase {
	return &TokenUsecase{
		tokenRepo:       tokenRepo,
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
	}
}

// ListTokens lists the acting wallet's tokens. A wallet filter naming a
// different wallet is rejected rather than silently rescoped.
func (uc *TokenUsecase) ListTokens(ctx context.Context, actingWallet uuid.UUID, walletName string, limit, offset int) ([]*entities.Token, int, error) {
	if walletName != "" {
		wallet, err := uc.walletRepo.GetByName(ctx, walletName)
		if err != nil {
			return nil, 0, errors.NotFound("wallet not found")
		}
		if wallet.ID != actingWallet {
			return nil, 0, errors.Forbidden("cannot list another wallet's tokens")
		}
	}

	tokens, total, err := uc.tokenRepo.ListByWallet(ctx, actingWallet, limit, offset)
	if err != nil {
		return nil, 0, errors.InternalError(err)
	}
	return tokens, total, nil
}

// GetToken returns a token custodied by the acting wallet
func (uc *TokenUsecase) GetToken(ctx context.Context, actingWallet, tokenID uuid.UUID) (*entities.Token, error) {
	token, err := uc.tokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		return nil, errors.NotFound("token not found")
	}
	if token.WalletID != actingWallet {
		return nil, errors.Forbidden("token is not custodied by the acting wallet")
	}
	return token, nil
}

// ListTokenTransactions returns the custody history of a token the
// acting wallet currently custodies.
func (uc *TokenUsecase) ListTokenTransactions(ctx context.Context, actingWallet, tokenID uuid.UUID, limit, offset int) ([]*entities.Transaction, int, error) {
	if _, err := uc.GetToken(ctx, actingWallet, tokenID); err != nil {
		return nil, 0, err
	}

	txs, total, err := uc.transactionRepo.ListByToken(ctx, tokenID, limit, offset)
	if err != nil {
		return nil, 0, errors.InternalError(err)
	}
	return txs, total, nil
}
