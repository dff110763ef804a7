package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserSettings struct {
	MaxAgents           int  `json:"maxAgents"`
	DefaultRiskLevel    int  `json:"defaultRiskLevel"`
	MaxDeviationPercent int  `json:"maxDeviationPercent"`
	Notifications       bool `json:"notifications"`
}

// User owns the session: a USDC balance that agent creation debits and
// agent deletion refunds into.
type User struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	USDCBalance decimal.Decimal `json:"usdcBalance"`
	CreatedAt   time.Time       `json:"createdAt"`
	Settings    UserSettings    `json:"settings"`
}
