package usecases

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	domainRepos "github.com/galewarning/treetracker-wallet-api/internal/domain/repositories"
	"github.com/galewarning/treetracker-wallet-api/pkg/crypto"
	"github.com/galewarning/treetracker-wallet-api/pkg/jwt"
)

// AuthUsecase resolves wallet logins to bearer tokens
type AuthUsecase struct {
	walletRepo domainRepos.WalletRepository
	jwtService *jwt.JWTService
}

func NewAuthUsecase(walletRepo domainRepos.WalletRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		walletRepo: walletRepo,
		jwtService: jwtService,
	}
}

// LoginOutput carries the issued tokens and the authenticated wallet
type LoginOutput struct {
	Wallet *entities.Wallet
	Tokens *jwt.TokenPair
}

// Login authenticates a wallet by name and password
func (uc *AuthUsecase) Login(ctx context.Context, walletName, password string) (*LoginOutput, error) {
	wallet, err := uc.walletRepo.GetByName(ctx, walletName)
	if err != nil {
		return nil, errors.Unauthorized("invalid wallet or password")
	}

	if !crypto.CheckPassword(password, wallet.PasswordHash) {
		return nil, errors.Unauthorized("invalid wallet or password")
	}

	tokens, err := uc.jwtService.GenerateTokenPair(wallet.ID, wallet.Name)
	if err != nil {
		return nil, errors.InternalError(err)
	}

	return &LoginOutput{Wallet: wallet, Tokens: tokens}, nil
}
