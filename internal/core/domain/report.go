package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequest selects which cash collection an aggregate report covers.
type ReportRequest struct {
	Direction Direction `json:"direction"`
}

// ReportLine is one cash movement handed to the caller or to the
// summarization collaborator.
type ReportLine struct {
	Memo   string          `json:"memo"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// ReportResult is the aggregate answer over one cash collection. An empty
// collection yields a zero total and no lines.
type ReportResult struct {
	Total decimal.Decimal `json:"total"`
	Lines []ReportLine    `json:"lineItems"`
}
