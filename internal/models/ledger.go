package models

import "time"

// Ledger entry directions.
const (
	DirectionIncome  = "income"
	DirectionExpense = "expense"
)

// LedgerCategories is the closed category vocabulary for ledger entries.
var LedgerCategories = []string{"礼金", "场地", "餐饮", "婚庆", "服装", "摄影", "其他"}

// LedgerEntry is one income or expense record of the wedding budget.
type LedgerEntry struct {
	ID         int       `json:"id"`
	Amount     float64   `json:"amount"`
	Direction  string    `json:"direction"`
	Category   string    `json:"category"`
	Purpose    string    `json:"purpose"`
	Payer      string    `json:"payer"`
	Payee      string    `json:"payee"`
	Method     string    `json:"method"`
	Note       string    `json:"note"`
	OccurredAt string    `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
