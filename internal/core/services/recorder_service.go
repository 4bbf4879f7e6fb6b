package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portsrepo "github.com/TaniCatat/tani_catat_app/internal/core/ports/repositories"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
	"github.com/TaniCatat/tani_catat_app/internal/utils"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidAmount   = errors.New("total amount must be greater than zero")
)

// recorderService performs the linked dual write: one item ledger entry and
// one cash ledger entry in the opposite-direction cash collection.
type recorderService struct {
	ledgerRepo portsrepo.LedgerRepository
	validate   *validator.Validate
}

// NewRecorderService creates a new RecorderService.
func NewRecorderService(ledgerRepo portsrepo.LedgerRepository) portssvc.RecorderSvcFacade {
	return &recorderService{
		ledgerRepo: ledgerRepo,
		validate:   validator.New(),
	}
}

var _ portssvc.RecorderSvcFacade = (*recorderService)(nil)

// Record validates the intent, writes the ledger pair and returns a
// confirmation. An item inflow (purchase) produces a cash outflow entry and
// an item outflow (sale) produces a cash inflow entry; this inversion is the
// core business rule.
func (s *recorderService) Record(ctx context.Context, intent domain.TransactionIntent) (*domain.Confirmation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validate.Struct(intent); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	// Quantity is checked before the unit price division.
	if !intent.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if !intent.TotalAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	itemDirection := intent.Kind.Direction()
	itemCollection := domain.ItemCollection(itemDirection)
	cashCollection := domain.CashCollection(itemDirection.Opposite())

	itemID, err := s.ledgerRepo.NextKey(ctx, itemCollection)
	if err != nil {
		logger.Error("Failed to reserve item entry key", slog.String("collection", string(itemCollection)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reserve item entry key: %w", err)
	}
	cashID, err := s.ledgerRepo.NextKey(ctx, cashCollection)
	if err != nil {
		logger.Error("Failed to reserve cash entry key", slog.String("collection", string(cashCollection)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reserve cash entry key: %w", err)
	}

	amount := intent.TotalAmount
	item := domain.ItemLedgerEntry{
		EntryID:     itemID,
		Name:        intent.Name,
		Quantity:    intent.Quantity,
		Unit:        intent.Unit,
		TotalAmount: intent.TotalAmount,
		UnitPrice:   intent.UnitPrice(),
		RecordedAt:  now,
	}
	cash := domain.CashLedgerEntry{
		EntryID:           cashID,
		Amount:            &amount,
		Memo:              intent.Memo(),
		RecordedAt:        now,
		LinkedItemEntryID: itemID,
	}

	if err := s.ledgerRepo.SaveLedgerPair(ctx, itemCollection, item, cashCollection, cash); err != nil {
		var partial *apperrors.PartialRecordError
		if errors.As(err, &partial) {
			logger.Error("Ledger pair partially recorded",
				slog.String("orphaned_item_entry_id", partial.ItemEntryID),
				slog.String("item_collection", string(itemCollection)),
				slog.String("memo", cash.Memo),
				slog.String("error", err.Error()))
			return nil, err
		}
		logger.Error("Failed to save ledger pair",
			slog.String("item_collection", string(itemCollection)),
			slog.String("cash_collection", string(cashCollection)),
			slog.String("memo", cash.Memo),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger pair: %w", err)
	}

	action := domain.ActionBought
	verb := "Bought"
	if intent.Kind == domain.OutflowItem {
		action = domain.ActionSold
		verb = "Sold"
	}
	confirmation := &domain.Confirmation{
		Action:      action,
		ItemName:    intent.Name,
		TotalAmount: intent.TotalAmount,
		Reply: fmt.Sprintf("%s %s (%s %s) for %s.",
			verb, intent.Name, intent.Quantity.String(), intent.Unit, utils.FormatIDR(intent.TotalAmount)),
	}

	logger.Info("Transaction recorded",
		slog.String("item_entry_id", itemID),
		slog.String("cash_entry_id", cashID),
		slog.String("item_collection", string(itemCollection)),
		slog.String("cash_collection", string(cashCollection)),
		slog.String("amount", intent.TotalAmount.String()))
	return confirmation, nil
}
