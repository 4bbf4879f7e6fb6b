package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/core/services"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) NextKey(ctx context.Context, collection domain.Collection) (string, error) {
	args := m.Called(ctx, collection)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRepository) SaveLedgerPair(ctx context.Context, itemCollection domain.Collection, item domain.ItemLedgerEntry, cashCollection domain.Collection, cash domain.CashLedgerEntry) error {
	args := m.Called(ctx, itemCollection, item, cashCollection, cash)
	return args.Error(0)
}

func (m *MockLedgerRepository) ReadAllCashEntries(ctx context.Context, collection domain.Collection) ([]domain.CashLedgerEntry, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ReadAllItemEntries(ctx context.Context, collection domain.Collection) ([]domain.ItemLedgerEntry, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindCashEntryByID(ctx context.Context, collection domain.Collection, entryID string) (*domain.CashLedgerEntry, error) {
	args := m.Called(ctx, collection, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashLedgerEntry), args.Error(1)
}

// --- Test Suite ---
type RecorderServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.RecorderSvcFacade
}

func (suite *RecorderServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewRecorderService(suite.mockRepo)
}

func (suite *RecorderServiceTestSuite) buyIntent() domain.TransactionIntent {
	return domain.TransactionIntent{
		Kind:        domain.InflowItem,
		Name:        "pakan",
		Quantity:    decimal.NewFromInt(50),
		Unit:        "kg",
		TotalAmount: decimal.NewFromInt(750000),
	}
}

func (suite *RecorderServiceTestSuite) TestRecord_BuyWritesLinkedPair() {
	ctx := context.Background()
	intent := suite.buyIntent()

	suite.mockRepo.On("NextKey", ctx, domain.CollectionItemIn).Return("item-1", nil).Once()
	suite.mockRepo.On("NextKey", ctx, domain.CollectionCashOut).Return("cash-1", nil).Once()

	var savedItem domain.ItemLedgerEntry
	var savedCash domain.CashLedgerEntry
	suite.mockRepo.On("SaveLedgerPair", ctx, domain.CollectionItemIn, mock.AnythingOfType("domain.ItemLedgerEntry"), domain.CollectionCashOut, mock.AnythingOfType("domain.CashLedgerEntry")).
		Run(func(args mock.Arguments) {
			savedItem = args.Get(2).(domain.ItemLedgerEntry)
			savedCash = args.Get(4).(domain.CashLedgerEntry)
		}).Return(nil).Once()

	confirmation, err := suite.service.Record(ctx, intent)

	suite.Require().NoError(err)
	suite.Require().NotNil(confirmation)

	// Item leg
	suite.Equal("item-1", savedItem.EntryID)
	suite.Equal("pakan", savedItem.Name)
	suite.True(savedItem.Quantity.Equal(decimal.NewFromInt(50)))
	suite.Equal("kg", savedItem.Unit)
	suite.True(savedItem.TotalAmount.Equal(decimal.NewFromInt(750000)))
	suite.True(savedItem.UnitPrice.Equal(decimal.NewFromInt(15000)))
	suite.False(savedItem.RecordedAt.IsZero())

	// Cash leg: linked, same amount, same instant, deterministic memo
	suite.Equal("cash-1", savedCash.EntryID)
	suite.Require().NotNil(savedCash.Amount)
	suite.True(savedCash.Amount.Equal(savedItem.TotalAmount))
	suite.Equal("item-1", savedCash.LinkedItemEntryID)
	suite.Equal("Buy pakan (50 kg)", savedCash.Memo)
	suite.True(savedCash.RecordedAt.Equal(savedItem.RecordedAt))

	suite.Equal(domain.ActionBought, confirmation.Action)
	suite.Equal("pakan", confirmation.ItemName)
	suite.Contains(confirmation.Reply, "Rp750.000")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RecorderServiceTestSuite) TestRecord_SellInvertsCashDirection() {
	ctx := context.Background()
	intent := domain.TransactionIntent{
		Kind:        domain.OutflowItem,
		Name:        "telur",
		Quantity:    decimal.NewFromInt(30),
		Unit:        "butir",
		TotalAmount: decimal.NewFromInt(90000),
	}

	suite.mockRepo.On("NextKey", ctx, domain.CollectionItemOut).Return("item-2", nil).Once()
	suite.mockRepo.On("NextKey", ctx, domain.CollectionCashIn).Return("cash-2", nil).Once()
	suite.mockRepo.On("SaveLedgerPair", ctx, domain.CollectionItemOut, mock.AnythingOfType("domain.ItemLedgerEntry"), domain.CollectionCashIn, mock.AnythingOfType("domain.CashLedgerEntry")).
		Return(nil).Once()

	confirmation, err := suite.service.Record(ctx, intent)

	suite.Require().NoError(err)
	suite.Equal(domain.ActionSold, confirmation.Action)
	// A sale must never touch cash_out; the expectations above pin the
	// collections, AssertExpectations fails on any other combination.
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedgerPair", ctx, domain.CollectionItemOut, mock.Anything, domain.CollectionCashOut, mock.Anything)
}

func (suite *RecorderServiceTestSuite) TestRecord_ZeroQuantityRejectedBeforeAnyWrite() {
	ctx := context.Background()
	intent := suite.buyIntent()
	intent.Quantity = decimal.Zero

	_, err := suite.service.Record(ctx, intent)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidQuantity)
	suite.mockRepo.AssertNotCalled(suite.T(), "NextKey", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedgerPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecorderServiceTestSuite) TestRecord_NegativeAmountRejected() {
	ctx := context.Background()
	intent := suite.buyIntent()
	intent.TotalAmount = decimal.NewFromInt(-5)

	_, err := suite.service.Record(ctx, intent)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAmount)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLedgerPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecorderServiceTestSuite) TestRecord_MissingNameFailsValidation() {
	ctx := context.Background()
	intent := suite.buyIntent()
	intent.Name = ""

	_, err := suite.service.Record(ctx, intent)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "NextKey", mock.Anything, mock.Anything)
}

func (suite *RecorderServiceTestSuite) TestRecord_PartialFailureSurfacesOrphanedItemID() {
	ctx := context.Background()
	intent := suite.buyIntent()

	suite.mockRepo.On("NextKey", ctx, domain.CollectionItemIn).Return("item-9", nil).Once()
	suite.mockRepo.On("NextKey", ctx, domain.CollectionCashOut).Return("cash-9", nil).Once()
	partial := &apperrors.PartialRecordError{ItemEntryID: "item-9", Err: fmt.Errorf("connection reset")}
	suite.mockRepo.On("SaveLedgerPair", ctx, domain.CollectionItemIn, mock.AnythingOfType("domain.ItemLedgerEntry"), domain.CollectionCashOut, mock.AnythingOfType("domain.CashLedgerEntry")).
		Return(partial).Once()

	confirmation, err := suite.service.Record(ctx, intent)

	suite.Require().Error(err)
	suite.Nil(confirmation)
	var got *apperrors.PartialRecordError
	suite.Require().ErrorAs(err, &got)
	suite.Equal("item-9", got.ItemEntryID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestRecorderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecorderServiceTestSuite))
}
