package game

import (
	"errors"
	"time"
)

const (
	// MinStockPrice is the hard floor applied after every price update.
	MinStockPrice = int64(50)

	// DefaultEventFrequencyHours applies when a guild has no settings row.
	DefaultEventFrequencyHours = 6
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrLoanNotFound    = errors.New("loan not found")
	ErrStockNotFound   = errors.New("stock not found")
)

type Company struct {
	ID              int64
	OwnerID         string
	GuildID         string
	Name            string
	Tier            Tier
	BaseIncome      int64
	CurrentIncome   int64
	Reputation      int32
	CreatedAt       time.Time
	LastEventAt     time.Time
	ThreadID        string
	StatusMessageID string
}

type Player struct {
	ID        string
	Username  string
	Balance   int64
	CreatedAt time.Time
}

type Loan struct {
	ID                  int64
	BorrowerID          string
	CollateralCompanyID int64 // 0 when unsecured
	Principal           int64
	InterestRate        float64
	TotalOwed           int64
	Tier                Tier
	DueAt               time.Time
	Paid                bool
}

// Secured reports whether the loan is backed by a collateral company.
func (l Loan) Secured() bool {
	return l.CollateralCompanyID != 0
}

type GuildSettings struct {
	GuildID             string
	EventFrequencyHours int
	TaxRate             int // percent; 0 disables the tax sweep
	TaxChannelID        string
	StockBoardChannelID string
	StockBoardMessageID string
}

type EventCategory string

const (
	EventPositive EventCategory = "positive"
	EventNegative EventCategory = "negative"
	EventNeutral  EventCategory = "neutral"
)

type StockQuote struct {
	Symbol   string
	Price    int64
	Previous int64
}

type LeaderboardRow struct {
	Rank     int64  `json:"rank"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}
