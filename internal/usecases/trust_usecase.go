package usecases

import (
	"context"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	domainRepos "github.com/galewarning/treetracker-wallet-api/internal/domain/repositories"
	"github.com/galewarning/treetracker-wallet-api/pkg/utils"
	"github.com/google/uuid"
)

// TrustUsecase manages directional trust relationships between wallets
type TrustUsecase struct {
	trustRepo  domainRepos.TrustRepository
	walletRepo domainRepos.WalletRepository
}

func NewTrustUsecase(trustRepo domainRepos.TrustRepository, walletRepo domainRepos.WalletRepository) *TrustUsecase {
	return &TrustUsecase{
		trustRepo:  trustRepo,
		walletRepo: walletRepo,
	}
}

// RequestTrust creates a trust relationship in the requested state.
// Only send and receive may be requested over the API; manage grants are
// provisioned out of band.
func (uc *TrustUsecase) RequestTrust(ctx context.Context, actingWallet uuid.UUID, targetWalletName, requestType string) (*entities.TrustRelationship, error) {
	trustType := entities.TrustType(requestType)
	if trustType != entities.TrustTypeSend && trustType != entities.TrustTypeReceive {
		return nil, errors.InvalidArgument("trust_request_type must be send or receive")
	}

	target, err := uc.walletRepo.GetByName(ctx, targetWalletName)
	if err != nil {
		return nil, errors.NotFound("target wallet not found")
	}
	if target.ID == actingWallet {
		return nil, errors.InvalidArgument("cannot request trust with the acting wallet")
	}

	exists, err := uc.trustRepo.ExistsOpen(ctx, actingWallet, target.ID, trustType)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	if exists {
		return nil, errors.DuplicateRequest("an identical trust request already exists")
	}

	rel := &entities.TrustRelationship{
		ID:             utils.GenerateUUIDv7(),
		SourceWalletID: actingWallet,
		TargetWalletID: target.ID,
		Type:           trustType,
		State:          entities.TrustStateRequested,
	}
	if err := uc.trustRepo.Create(ctx, rel); err != nil {
		// A racing request can pass ExistsOpen and still lose the insert
		// to the store's uniqueness guard.
		if err == errors.ErrDuplicateRequest {
			return nil, errors.DuplicateRequest("an identical trust request already exists")
		}
		return nil, errors.InternalError(err)
	}

	created, err := uc.trustRepo.GetByID(ctx, rel.ID)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return created, nil
}

// AcceptTrust activates a requested relationship. Only the target wallet
// of the relationship may accept.
func (uc *TrustUsecase) AcceptTrust(ctx context.Context, actingWallet, relationshipID uuid.UUID) (*entities.TrustRelationship, error) {
	rel, err := uc.trustRepo.GetByID(ctx, relationshipID)
	if err != nil {
		return nil, errors.NotFound("trust relationship not found")
	}

	if rel.TargetWalletID != actingWallet {
		return nil, errors.Forbidden("only the target wallet may accept")
	}

	if rel.State != entities.TrustStateRequested {
		return nil, errors.InvalidTransition("trust relationship is " + string(rel.State))
	}

	if err := uc.trustRepo.UpdateState(ctx, relationshipID, entities.TrustStateActive); err != nil {
		return nil, errors.InternalError(err)
	}

	updated, err := uc.trustRepo.GetByID(ctx, relationshipID)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return updated, nil
}

// ListTrustRelationships lists relationships the acting wallet is part of
func (uc *TrustUsecase) ListTrustRelationships(ctx context.Context, actingWallet uuid.UUID) ([]*entities.TrustRelationship, error) {
	rels, err := uc.trustRepo.ListByWallet(ctx, actingWallet)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return rels, nil
}
