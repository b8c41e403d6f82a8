// Package profile defines the financial profile the planner form edits and
// the summaries derived from it.
package profile

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Profile is the full financial profile. Field names in JSON match the
// stored draft format, so a stored draft decodes back to an identical value.
type Profile struct {
	Incomes            []Income      `json:"incomes"`
	Expenses           []Expense     `json:"expenses"`
	Loans              []Loan        `json:"loans"`
	Goals              []Goal        `json:"goals"`
	Investments        []Investment  `json:"investments"`
	SIPs               []SIP         `json:"sips"`
	HasHealthInsurance TriState      `json:"hasHealthInsurance"`
	HasLifeInsurance   TriState      `json:"hasLifeInsurance"`
	OwnsHouse          TriState      `json:"ownsHouse"`
	MonthlyRent        string        `json:"monthlyRent"`
	HasHealthIssues    TriState      `json:"hasHealthIssues"`
	HealthIssues       []HealthIssue `json:"healthIssues"`
}

// Income is one income source.
type Income struct {
	Source string `json:"source"`
	Amount string `json:"amount"`
}

// Expense is one recurring expense.
type Expense struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

// Loan is an outstanding loan. TotalEMIRemaining is derived from
// TenureMonths and TotalPaidEMI and cannot be edited directly.
type Loan struct {
	Name              string `json:"name"`
	Amount            string `json:"amount"`
	Interest          string `json:"interest"`
	TenureMonths      string `json:"tenureMonths"`
	MonthlyEMI        string `json:"monthlyEMI"`
	TotalPaidEMI      string `json:"totalPaidEMI"`
	TotalEMIRemaining string `json:"totalEMIRemaining"`
}

// Goal is a savings target.
type Goal struct {
	Description  string `json:"description"`
	Timeframe    string `json:"timeframe"`
	TargetAmount string `json:"targetAmount"`
}

// Investment is a lump-sum holding.
type Investment struct {
	Type       string `json:"type"`
	Amount     string `json:"amount"`
	ReturnRate string `json:"returnRate"`
}

// SIP is a systematic investment plan. StartDate is "YYYY-MM" and
// ExpectedReturn an annual percentage.
type SIP struct {
	Name           string `json:"name"`
	Monthly        string `json:"monthly"`
	StartDate      string `json:"startDate"`
	ExpectedReturn string `json:"expectedReturn"`
}

// HealthIssue is a known family health cost. Only meaningful when
// HasHealthIssues is Yes.
type HealthIssue struct {
	Description   string `json:"description"`
	EstimatedCost string `json:"estimatedCost"`
}

// Blank returns the initial form template: one empty row in every list and
// every flag unknown.
func Blank() Profile {
	return Profile{
		Incomes:      []Income{{}},
		Expenses:     []Expense{{}},
		Loans:        []Loan{{}},
		Goals:        []Goal{{}},
		Investments:  []Investment{{}},
		SIPs:         []SIP{{}},
		HealthIssues: []HealthIssue{{}},
	}
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	c := p
	c.Incomes = slices.Clone(p.Incomes)
	c.Expenses = slices.Clone(p.Expenses)
	c.Loans = slices.Clone(p.Loans)
	c.Goals = slices.Clone(p.Goals)
	c.Investments = slices.Clone(p.Investments)
	c.SIPs = slices.Clone(p.SIPs)
	c.HealthIssues = slices.Clone(p.HealthIssues)
	return c
}

// Equal reports whether a and b serialize identically.
func Equal(a, b Profile) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}
