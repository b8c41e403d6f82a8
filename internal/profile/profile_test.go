package profile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlankShape(t *testing.T) {
	p := Blank()
	for _, l := range Lists {
		assert.Equal(t, 1, p.Len(l), "list %s", l)
	}
	for _, f := range Flags {
		assert.Equal(t, Unknown, p.Flag(f), "flag %s", f)
	}
	assert.Empty(t, p.MonthlyRent)
}

func TestBlankJSONMatchesDraftFormat(t *testing.T) {
	data, err := json.Marshal(Blank())
	require.NoError(t, err)

	want := `{"incomes":[{"source":"","amount":""}],` +
		`"expenses":[{"type":"","amount":""}],` +
		`"loans":[{"name":"","amount":"","interest":"","tenureMonths":"","monthlyEMI":"","totalPaidEMI":"","totalEMIRemaining":""}],` +
		`"goals":[{"description":"","timeframe":"","targetAmount":""}],` +
		`"investments":[{"type":"","amount":"","returnRate":""}],` +
		`"sips":[{"name":"","monthly":"","startDate":"","expectedReturn":""}],` +
		`"hasHealthInsurance":null,"hasLifeInsurance":null,"ownsHouse":null,"monthlyRent":"",` +
		`"hasHealthIssues":null,"healthIssues":[{"description":"","estimatedCost":""}]}`
	assert.JSONEq(t, want, string(data))
}

func TestJSONRoundTrip(t *testing.T) {
	p := Blank()
	p.Incomes[0] = Income{Source: "Salary", Amount: "85000"}
	p.SIPs = append(p.SIPs, SIP{Name: "Index", Monthly: "5000", StartDate: "2024-01", ExpectedReturn: "12"})
	p.OwnsHouse = No
	p.HasLifeInsurance = Yes
	p.MonthlyRent = "18000"

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Profile
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)
	assert.True(t, Equal(p, got))
}

func TestTriStateRejectsGarbage(t *testing.T) {
	var ts TriState
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &ts))
	require.NoError(t, json.Unmarshal([]byte(`true`), &ts))
	assert.Equal(t, Yes, ts)
}

func TestCloneIsDeep(t *testing.T) {
	p := Blank()
	c := p.Clone()
	c.Incomes[0].Source = "changed"
	c.SIPs = append(c.SIPs, SIP{Name: "x"})

	assert.Empty(t, p.Incomes[0].Source)
	assert.Len(t, p.SIPs, 1)
	assert.False(t, Equal(p, c))
}

func TestAppendChecksRecordType(t *testing.T) {
	p := Blank()
	assert.False(t, p.Append(SIPs, &Income{Source: "wrong"}))
	assert.Len(t, p.SIPs, 1)

	assert.True(t, p.Append(SIPs, &SIP{Name: "Gold"}))
	require.Len(t, p.SIPs, 2)
	assert.Equal(t, "Gold", p.SIPs[1].Name)

	assert.False(t, p.Append(List("unknown"), &SIP{}))
}

func TestRemoveAtOutOfRange(t *testing.T) {
	p := Blank()
	assert.False(t, p.RemoveAt(Goals, 3))
	assert.False(t, p.RemoveAt(Goals, -1))
	assert.Len(t, p.Goals, 1)

	assert.True(t, p.RemoveAt(Goals, 0))
	assert.Empty(t, p.Goals)
}

func TestRecordSetUnknownField(t *testing.T) {
	r := NewRecord(Incomes)
	assert.False(t, r.Set(FieldMonthly, "1"))
	assert.True(t, r.Set(FieldAmount, "12abc"))
	v, ok := r.Get(FieldAmount)
	assert.True(t, ok)
	assert.Equal(t, "12abc", v)
}

func TestLoanRemainingIsDerived(t *testing.T) {
	var l Loan
	assert.False(t, l.Set(FieldTotalEMIRemaining, "99"))

	l.Set(FieldTenureMonths, "60")
	l.Set(FieldTotalPaidEMI, "24")
	assert.Equal(t, "36", l.TotalEMIRemaining)

	l.Set(FieldTotalPaidEMI, "75")
	assert.Equal(t, "0", l.TotalEMIRemaining)
	assert.Zero(t, l.RemainingMonths())
}

func TestLoanSummary(t *testing.T) {
	l := Loan{Name: "Car", TenureMonths: "60", TotalPaidEMI: "24", MonthlyEMI: "12500"}
	s := l.Summary()
	assert.Equal(t, 36.0, s.RemainingMonths)
	assert.True(t, s.HasBalance)
	assert.InDelta(t, 450000.0, s.RemainingBalance, 1e-9)

	noEMI := Loan{TenureMonths: "10"}.Summary()
	assert.False(t, noEMI.HasBalance)
	assert.Zero(t, noEMI.RemainingBalance)
}

func TestLoanSummaryOverflow(t *testing.T) {
	l := Loan{TenureMonths: "1e308", TotalPaidEMI: "-1e308", MonthlyEMI: "1e308"}
	assert.NotPanics(t, func() {
		s := l.Summary()
		assert.Zero(t, s.RemainingMonths)
		assert.False(t, s.HasBalance)
	})

	big := Loan{TenureMonths: "1e300", MonthlyEMI: "1e300"}
	assert.NotPanics(t, func() {
		assert.Zero(t, big.Summary().RemainingBalance)
	})
}

func TestSIPTotalsOverflow(t *testing.T) {
	now := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)
	sips := []SIP{
		{Name: "Wild", Monthly: "5000", StartDate: "2000-01", ExpectedReturn: "100000"},
		{Name: "Huge", Monthly: "1e308", StartDate: "2000-01", ExpectedReturn: "0"},
		{Name: "Plain", Monthly: "1000", StartDate: "2026-10", ExpectedReturn: "0"},
	}

	var summaries []SipSummary
	require.NotPanics(t, func() { summaries = SummarizeSIPs(sips, now) })
	assert.Zero(t, summaries[0].EstimatedValue)
	assert.Zero(t, summaries[1].TotalInvested)

	var invested, estimated float64
	require.NotPanics(t, func() { invested, estimated = Totals(summaries) })
	assert.InDelta(t, 5000*322.0+1000, invested, 1e-6)
	assert.InDelta(t, 1000.0, estimated, 1e-9)
}

func TestSummarizeSIPs(t *testing.T) {
	now := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)
	sips := []SIP{
		{Name: "Nifty", Monthly: "5000", StartDate: "2025-11", ExpectedReturn: "12"},
		{Monthly: "1000", StartDate: "2025-11", ExpectedReturn: "0"},
		{Name: "Future", Monthly: "1000", StartDate: "2027-01", ExpectedReturn: "10"},
	}

	got := SummarizeSIPs(sips, now)
	require.Len(t, got, 3)

	assert.Equal(t, "Nifty", got[0].Name)
	assert.Equal(t, 12, got[0].Months)
	assert.InDelta(t, 60000.0, got[0].TotalInvested, 1e-9)
	assert.Greater(t, got[0].EstimatedValue, 60000.0)

	assert.Equal(t, "-", got[1].Name)
	assert.InDelta(t, 12000.0, got[1].EstimatedValue, 1e-9)

	assert.Zero(t, got[2].Months)
	assert.Zero(t, got[2].EstimatedValue)

	invested, estimated := Totals(got)
	assert.InDelta(t, 72000.0, invested, 1e-9)
	assert.InDelta(t, got[0].EstimatedValue+got[1].EstimatedValue, estimated, 1e-6)
}
