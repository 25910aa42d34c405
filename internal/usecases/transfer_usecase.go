package usecases

import (
	"context"
	"time"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	"github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	domainRepos "github.com/galewarning/treetracker-wallet-api/internal/domain/repositories"
	"github.com/galewarning/treetracker-wallet-api/pkg/utils"
	"github.com/google/uuid"
)

// TransferUsecase is the transfer workflow engine. It owns every state
// transition of a transfer and is the only writer of token custody.
// The acting wallet is always an explicit argument; the engine never
// reads identity from ambient state.
type TransferUsecase struct {
	transferRepo    domainRepos.TransferRepository
	tokenRepo       domainRepos.TokenRepository
	trustRepo       domainRepos.TrustRepository
	transactionRepo domainRepos.TransactionRepository
	walletRepo      domainRepos.WalletRepository
	uow             domainRepos.UnitOfWork
}

func NewTransferUsecase(
	transferRepo domainRepos.TransferRepository,
	tokenRepo domainRepos.TokenRepository,
	trustRepo domainRepos.TrustRepository,
	transactionRepo domainRepos.TransactionRepository,
	walletRepo domainRepos.WalletRepository,
	uow domainRepos.UnitOfWork,
) *TransferUsecase {
	return &TransferUsecase{
		transferRepo:    transferRepo,
		tokenRepo:       tokenRepo,
		trustRepo:       trustRepo,
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
		uow:             uow,
	}
}

type InitiateTransferInput struct {
	Direction          entities.TransferDirection
	CounterpartyWallet string
	Tokens             []uuid.UUID
	BundleSize         int
}

// InitiateTransfer creates a transfer in the requested state. The acting
// wallet must hold an active trust grant towards the counterparty in the
// direction of the transfer; no record is created when any guard fails.
func (uc *TransferUsecase) InitiateTransfer(ctx context.Context, actingWallet uuid.UUID, input InitiateTransferInput) (*entities.Transfer, error) {
	if !input.Direction.IsValid() {
		return nil, errors.InvalidArgument("direction must be send or receive")
	}

	selector := entities.TokenSelector{Tokens: input.Tokens, BundleSize: input.BundleSize}
	if err := selector.Validate(); err != nil {
		return nil, errors.InvalidArgument(err.Error())
	}

	counterparty, err := uc.walletRepo.GetByName(ctx, input.CounterpartyWallet)
	if err != nil {
		return nil, errors.NotFound("counterparty wallet not found")
	}
	if counterparty.ID == actingWallet {
		return nil, errors.InvalidArgument("cannot transfer to the initiating wallet")
	}

	trusted, err := uc.trustRepo.HasActiveTrust(ctx, actingWallet, counterparty.ID,
		[]entities.TrustType{entities.TrustType(input.Direction), entities.TrustTypeManage})
	if err != nil {
		return nil, errors.InternalError(err)
	}
	if !trusted {
		return nil, errors.Forbidden("no active trust relationship for this transfer")
	}

	transfer := &entities.Transfer{
		ID:             utils.GenerateUUIDv7(),
		InitiatorID:    actingWallet,
		CounterpartyID: counterparty.ID,
		Direction:      input.Direction,
		State:          entities.TransferStateRequested,
		Tokens:         input.Tokens,
		BundleSize:     input.BundleSize,
	}

	// Fail fast when the source wallet cannot cover the selector now;
	// the set is re-resolved under locks at fulfillment anyway.
	if _, err := uc.tokenRepo.ResolveTokens(ctx, transfer.SourceWalletID(), selector); err != nil {
		return nil, mapTokenError(err)
	}

	if err := uc.transferRepo.Create(ctx, transfer); err != nil {
		return nil, errors.InternalError(err)
	}

	created, err := uc.transferRepo.GetByID(ctx, transfer.ID)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return created, nil
}

// AcceptTransfer moves a requested transfer to accepted. Only the
// counterparty may accept.
func (uc *TransferUsecase) AcceptTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error) {
	return uc.transition(ctx, actingWallet, transferID,
		[]entities.TransferState{entities.TransferStateRequested},
		entities.TransferStateAccepted,
		func(t *entities.Transfer) uuid.UUID { return t.CounterpartyID })
}

// DeclineTransfer terminally declines a requested or accepted transfer.
// Only the counterparty may decline.
func (uc *TransferUsecase) DeclineTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error) {
	return uc.transition(ctx, actingWallet, transferID,
		[]entities.TransferState{entities.TransferStateRequested, entities.TransferStateAccepted},
		entities.TransferStateDeclined,
		func(t *entities.Transfer) uuid.UUID { return t.CounterpartyID })
}

// CancelTransfer terminally cancels a requested or accepted transfer.
// Only the initiator may cancel.
func (uc *TransferUsecase) CancelTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error) {
	return uc.transition(ctx, actingWallet, transferID,
		[]entities.TransferState{entities.TransferStateRequested, entities.TransferStateAccepted},
		entities.TransferStateCancelled,
		func(t *entities.Transfer) uuid.UUID { return t.InitiatorID })
}

func (uc *TransferUsecase) transition(
	ctx context.Context,
	actingWallet, transferID uuid.UUID,
	from []entities.TransferState,
	to entities.TransferState,
	allowedActor func(*entities.Transfer) uuid.UUID,
) (*entities.Transfer, error) {
	var result *entities.Transfer

	err := uc.uow.Do(ctx, func(txCtx context.Context) error {
		transfer, err := uc.transferRepo.GetByID(txCtx, transferID)
		if err != nil {
			return errors.NotFound("transfer not found")
		}

		if allowedActor(transfer) != actingWallet {
			return errors.Forbidden("acting wallet may not perform this transition")
		}

		if !stateIn(transfer.State, from) {
			return errors.InvalidTransition("transfer is " + string(transfer.State))
		}

		ok, err := uc.transferRepo.TransitionState(txCtx, transferID, from, to)
		if err != nil {
			return errors.InternalError(err)
		}
		if !ok {
			// Lost a race: a concurrent transition committed first.
			return errors.InvalidTransition("transfer state changed concurrently")
		}

		result, err = uc.transferRepo.GetByID(txCtx, transferID)
		if err != nil {
			return errors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FulfillTransfer performs the custody change. The token set is
// re-resolved against current ownership inside the transaction, so a
// selection captured at request time cannot move tokens the source no
// longer holds. Safe to retry after a custody conflict.
func (uc *TransferUsecase) FulfillTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error) {
	var result *entities.Transfer

	err := uc.uow.Do(ctx, func(txCtx context.Context) error {
		transfer, err := uc.transferRepo.GetByID(txCtx, transferID)
		if err != nil {
			return errors.NotFound("transfer not found")
		}

		// The party supplying the tokens fulfills: the initiator for send
		// transfers, the counterparty for receive transfers.
		if transfer.FulfillerID() != actingWallet {
			return errors.Forbidden("acting wallet may not fulfill this transfer")
		}

		if transfer.State != entities.TransferStateAccepted {
			return errors.InvalidTransition("transfer is " + string(transfer.State))
		}

		source := transfer.SourceWalletID()
		dest := transfer.DestWalletID()

		resolved, err := uc.tokenRepo.ResolveTokens(txCtx, source, transfer.Selector())
		if err != nil {
			return mapTokenError(err)
		}

		if err := uc.tokenRepo.TransferCustody(txCtx, resolved, source, dest); err != nil {
			return mapTokenError(err)
		}

		now := time.Now()
		transactions := make([]*entities.Transaction, 0, len(resolved))
		for _, tokenID := range resolved {
			transactions = append(transactions, &entities.Transaction{
				ID:             utils.GenerateUUIDv7(),
				TokenID:        tokenID,
				TransferID:     transfer.ID,
				SourceWalletID: source,
				DestWalletID:   dest,
				ProcessedAt:    now,
			})
		}
		if err := uc.transactionRepo.CreateBatch(txCtx, transactions); err != nil {
			return errors.InternalError(err)
		}

		ok, err := uc.transferRepo.SetFulfilled(txCtx, transferID, resolved)
		if err != nil {
			return errors.InternalError(err)
		}
		if !ok {
			return errors.InvalidTransition("transfer state changed concurrently")
		}

		result, err = uc.transferRepo.GetByID(txCtx, transferID)
		if err != nil {
			return errors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetTransfer returns a transfer the acting wallet is a party of
func (uc *TransferUsecase) GetTransfer(ctx context.Context, actingWallet, transferID uuid.UUID) (*entities.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, transferID)
	if err != nil {
		return nil, errors.NotFound("transfer not found")
	}
	if transfer.InitiatorID != actingWallet && transfer.CounterpartyID != actingWallet {
		return nil, errors.Forbidden("transfer does not involve the acting wallet")
	}
	return transfer, nil
}

type ListTransfersInput struct {
	State  *entities.TransferState
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// ListTransfers lists transfers the acting wallet participates in. The
// wallet scope is applied server-side regardless of client filters.
func (uc *TransferUsecase) ListTransfers(ctx context.Context, actingWallet uuid.UUID, input ListTransfersInput) ([]*entities.Transfer, int, error) {
	filter := domainRepos.TransferFilter{
		WalletID: &actingWallet,
		State:    input.State,
		Since:    input.Since,
		Until:    input.Until,
	}
	transfers, total, err := uc.transferRepo.ListByFilter(ctx, filter, input.Limit, input.Offset)
	if err != nil {
		return nil, 0, errors.InternalError(err)
	}
	return transfers, total, nil
}

// ListTransferTokens returns the tokens attached to a transfer: the
// resolved set once fulfilled, the explicit request list before that.
// A pending bundle transfer has no concrete tokens yet.
func (uc *TransferUsecase) ListTransferTokens(ctx context.Context, actingWallet, transferID uuid.UUID, limit, offset int) ([]*entities.Token, error) {
	transfer, err := uc.GetTransfer(ctx, actingWallet, transferID)
	if err != nil {
		return nil, err
	}

	ids := transfer.ResolvedTokens
	if len(ids) == 0 {
		ids = transfer.Tokens
	}
	if len(ids) == 0 {
		return nil, nil
	}

	tokens, err := uc.tokenRepo.GetByIDs(ctx, ids, limit, offset)
	if err != nil {
		return nil, errors.InternalError(err)
	}
	return tokens, nil
}

func stateIn(state entities.TransferState, states []entities.TransferState) bool {
	for _, s := range states {
		if s == state {
			return true
		}
	}
	return false
}

func mapTokenError(err error) error {
	switch err {
	case errors.ErrInsufficientTokens:
		return errors.InsufficientTokens("token selection cannot be satisfied")
	case errors.ErrCustodyConflict:
		return errors.CustodyConflict("token custody changed concurrently")
	case errors.ErrInvalidArgument:
		return errors.InvalidArgument("invalid token selector")
	}
	return errors.InternalError(err)
}
