package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/core/services"
)

// --- Mock ReportSummarizer ---
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, question string, lines []domain.ReportLine, asOf time.Time) (string, error) {
	args := m.Called(ctx, question, lines, asOf)
	return args.String(0), args.Error(1)
}

var _ portssvc.ReportSummarizer = (*MockSummarizer)(nil)

// --- Test Suite ---
type ReporterServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockLedgerRepository
	mockSummarizer *MockSummarizer
	service        portssvc.ReporterSvcFacade
}

func (suite *ReporterServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.mockSummarizer = new(MockSummarizer)
	suite.service = services.NewReporterService(suite.mockRepo, suite.mockSummarizer)
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func (suite *ReporterServiceTestSuite) TestReport_SumsCashOutEntries() {
	ctx := context.Background()
	entries := []domain.CashLedgerEntry{
		{EntryID: "c1", Amount: amountPtr(750000), Memo: "Buy pakan (50 kg)", RecordedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		{EntryID: "c2", Amount: amountPtr(250000), Memo: "Buy obat (2 botol)", RecordedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}
	suite.mockRepo.On("ReadAllCashEntries", ctx, domain.CollectionCashOut).Return(entries, nil).Once()

	result, err := suite.service.Report(ctx, domain.ReportRequest{Direction: domain.Outflow})

	suite.Require().NoError(err)
	suite.True(result.Total.Equal(decimal.NewFromInt(1000000)), "total = %s", result.Total)
	suite.Len(result.Lines, 2)
	suite.Equal("Buy pakan (50 kg)", result.Lines[0].Memo)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReporterServiceTestSuite) TestReport_EmptyCollectionYieldsZero() {
	ctx := context.Background()
	suite.mockRepo.On("ReadAllCashEntries", ctx, domain.CollectionCashIn).Return([]domain.CashLedgerEntry{}, nil).Once()

	result, err := suite.service.Report(ctx, domain.ReportRequest{Direction: domain.Inflow})

	suite.Require().NoError(err)
	suite.True(result.Total.IsZero())
	suite.Empty(result.Lines)
}

func (suite *ReporterServiceTestSuite) TestReport_SkipsEntriesWithoutAmount() {
	ctx := context.Background()
	entries := []domain.CashLedgerEntry{
		{EntryID: "c1", Amount: amountPtr(100000), Memo: "Buy pupuk (10 kg)"},
		{EntryID: "c2", Amount: nil, Memo: "legacy entry"},
		{EntryID: "c3", Amount: amountPtr(50000), Memo: "Buy bibit (5 bungkus)"},
	}
	suite.mockRepo.On("ReadAllCashEntries", ctx, domain.CollectionCashOut).Return(entries, nil).Once()

	result, err := suite.service.Report(ctx, domain.ReportRequest{Direction: domain.Outflow})

	suite.Require().NoError(err)
	suite.True(result.Total.Equal(decimal.NewFromInt(150000)))
	suite.Len(result.Lines, 2, "the amount-less entry is skipped, not failed on")
}

func (suite *ReporterServiceTestSuite) TestSummarizeReport_HandsCompleteLineSetToSummarizer() {
	ctx := context.Background()
	entries := []domain.CashLedgerEntry{
		{EntryID: "c1", Amount: amountPtr(750000), Memo: "Buy pakan (50 kg)", RecordedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		{EntryID: "c2", Amount: amountPtr(250000), Memo: "Buy obat (2 botol)", RecordedAt: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)},
	}
	suite.mockRepo.On("ReadAllCashEntries", ctx, domain.CollectionCashOut).Return(entries, nil).Once()

	question := "how much did we spend in March?"
	var gotLines []domain.ReportLine
	var gotAsOf time.Time
	suite.mockSummarizer.On("Summarize", ctx, question, mock.AnythingOfType("[]domain.ReportLine"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			gotLines = args.Get(2).([]domain.ReportLine)
			gotAsOf = args.Get(3).(time.Time)
		}).Return("You spent Rp1.000.000 in March.", nil).Once()

	answer, err := suite.service.SummarizeReport(ctx, domain.ReportRequest{Direction: domain.Outflow}, question)

	suite.Require().NoError(err)
	suite.Equal("You spent Rp1.000.000 in March.", answer)
	suite.Require().Len(gotLines, 2, "summarizer must receive the complete filtered line set")
	suite.Equal("Buy pakan (50 kg)", gotLines[0].Memo)
	suite.Equal("Buy obat (2 botol)", gotLines[1].Memo)
	suite.WithinDuration(time.Now().UTC(), gotAsOf, time.Minute, "summarizer receives the current date")
	suite.mockSummarizer.AssertExpectations(suite.T())
}

func (suite *ReporterServiceTestSuite) TestSummarizeReport_SummarizerFailurePropagates() {
	ctx := context.Background()
	suite.mockRepo.On("ReadAllCashEntries", ctx, domain.CollectionCashIn).Return([]domain.CashLedgerEntry{}, nil).Once()
	suite.mockSummarizer.On("Summarize", ctx, "berapa pemasukan?", mock.Anything, mock.Anything).
		Return("", assert.AnError).Once()

	_, err := suite.service.SummarizeReport(ctx, domain.ReportRequest{Direction: domain.Inflow}, "berapa pemasukan?")

	suite.Require().Error(err)
}

func TestReporterServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReporterServiceTestSuite))
}
