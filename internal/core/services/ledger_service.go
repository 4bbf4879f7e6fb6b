package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portsrepo "github.com/TaniCatat/tani_catat_app/internal/core/ports/repositories"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
)

// itemLedgerService exposes read access to the item ledgers.
type itemLedgerService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewItemLedgerService creates a new ItemLedgerService.
func NewItemLedgerService(ledgerRepo portsrepo.LedgerRepository) portssvc.ItemLedgerSvcFacade {
	return &itemLedgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.ItemLedgerSvcFacade = (*itemLedgerService)(nil)

// ListItemEntries returns all item entries for the direction in recording
// order.
func (s *itemLedgerService) ListItemEntries(ctx context.Context, direction domain.Direction) ([]domain.ItemLedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	collection := domain.ItemCollection(direction)
	entries, err := s.ledgerRepo.ReadAllItemEntries(ctx, collection)
	if err != nil {
		logger.Error("Failed to read item collection", slog.String("collection", string(collection)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read item collection %s: %w", collection, err)
	}
	return entries, nil
}
