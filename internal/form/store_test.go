package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/finplan/internal/draft"
	"github.com/theirongolddev/finplan/internal/profile"
	"github.com/theirongolddev/finplan/internal/store"
)

var testNow = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

type fakePersister struct {
	saved   *profile.Profile
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (f *fakePersister) Load(context.Context) (profile.Profile, bool, error) {
	if f.loadErr != nil {
		return profile.Profile{}, false, f.loadErr
	}
	if f.saved == nil {
		return profile.Profile{}, false, nil
	}
	return f.saved.Clone(), true, nil
}

func (f *fakePersister) Save(_ context.Context, p profile.Profile) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	c := p.Clone()
	f.saved = &c
	return nil
}

func (f *fakePersister) Clear(context.Context) error {
	f.clears++
	f.saved = nil
	return nil
}

func newTestStore(t *testing.T, p Persister) (*Store, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	return New(p, WithClock(func() time.Time { return testNow }), WithLogger(logger)), hook
}

func TestNewStartsFromTemplate(t *testing.T) {
	s, _ := newTestStore(t, &fakePersister{})
	assert.True(t, profile.Equal(profile.Blank(), s.Profile()))
	assert.Len(t, s.Summaries(), 1)
}

func TestNewRestoresSavedDraft(t *testing.T) {
	saved := profile.Blank()
	saved.SIPs[0] = profile.SIP{Name: "Index", Monthly: "2000", StartDate: "2026-01", ExpectedReturn: "0"}
	saved.OwnsHouse = profile.No

	s, _ := newTestStore(t, &fakePersister{saved: &saved})
	assert.Equal(t, saved, s.Profile())

	sums := s.Summaries()
	require.Len(t, sums, 1)
	assert.Equal(t, 10, sums[0].Months)
	assert.InDelta(t, 20000.0, sums[0].EstimatedValue, 1e-9)
}

func TestNewSwallowsLoadFailure(t *testing.T) {
	s, hook := newTestStore(t, &fakePersister{loadErr: errors.New("disk on fire")})
	assert.True(t, profile.Equal(profile.Blank(), s.Profile()))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestNewSwallowsCorruptDraft(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Put(ctx, draft.Key, "]]garbage"))

	s, hook := newTestStore(t, draft.New(kv))
	assert.True(t, profile.Equal(profile.Blank(), s.Profile()))
	assert.NotEmpty(t, hook.AllEntries())
}

func TestAddItemKeepsOrderAndOtherLists(t *testing.T) {
	s, _ := newTestStore(t, nil)

	require.True(t, s.AddItem(profile.Incomes, &profile.Income{Source: "Rent", Amount: "9000"}))
	require.True(t, s.AddItem(profile.Incomes, nil))

	p := s.Profile()
	require.Len(t, p.Incomes, 3)
	assert.Equal(t, "Rent", p.Incomes[1].Source)
	assert.Equal(t, profile.Income{}, p.Incomes[2])
	assert.Len(t, p.Expenses, 1)
	assert.Len(t, p.SIPs, 1)

	assert.False(t, s.AddItem(profile.Incomes, &profile.Goal{}))
	assert.False(t, s.AddItem(profile.List("nope"), nil))
}

func TestAddSIPRecomputesSummaries(t *testing.T) {
	s, _ := newTestStore(t, nil)

	s.AddItem(profile.SIPs, &profile.SIP{Name: "A", Monthly: "1000", StartDate: "2026-10", ExpectedReturn: "12"})
	s.AddItem(profile.SIPs, &profile.SIP{Name: "B", Monthly: "500", StartDate: "2026-09", ExpectedReturn: "0"})

	p := s.Profile()
	sums := s.Summaries()
	require.Len(t, sums, len(p.SIPs))
	assert.Equal(t, "-", sums[0].Name)
	assert.Equal(t, "A", sums[1].Name)
	assert.Equal(t, "B", sums[2].Name)
	assert.Equal(t, 1, sums[1].Months)
	assert.Equal(t, 2, sums[2].Months)

	invested, _ := s.Totals()
	assert.InDelta(t, 2000.0, invested, 1e-9)
}

func TestOnlySIPChangesRecompute(t *testing.T) {
	s, _ := newTestStore(t, nil)
	before := s.recomputes

	s.AddItem(profile.Incomes, nil)
	s.UpdateField(profile.Expenses, 0, profile.FieldAmount, "100")
	s.SetFlag(profile.FlagOwnsHouse, profile.Yes)
	s.SetMonthlyRent("5000")
	assert.Equal(t, before, s.recomputes)

	s.UpdateField(profile.SIPs, 0, profile.FieldMonthly, "100")
	assert.Equal(t, before+1, s.recomputes)

	s.RemoveItem(profile.SIPs, 0)
	assert.Equal(t, before+2, s.recomputes)
	assert.Empty(t, s.Summaries())
}

func TestRemoveItemOutOfRange(t *testing.T) {
	p := &fakePersister{}
	s, _ := newTestStore(t, p)

	assert.False(t, s.RemoveItem(profile.Loans, 5))
	assert.False(t, s.RemoveItem(profile.Loans, -1))
	assert.Len(t, s.Profile().Loans, 1)
	assert.Zero(t, p.saves, "no-op removal must not save")

	assert.True(t, s.RemoveItem(profile.Loans, 0))
	assert.Empty(t, s.Profile().Loans)
}

func TestUpdateFieldStoresRawInput(t *testing.T) {
	s, _ := newTestStore(t, nil)

	assert.True(t, s.UpdateField(profile.Incomes, 0, profile.FieldAmount, "12,000 approx"))
	assert.Equal(t, "12,000 approx", s.Profile().Incomes[0].Amount)

	assert.False(t, s.UpdateField(profile.Incomes, 0, profile.FieldMonthly, "x"))
	assert.False(t, s.UpdateField(profile.Incomes, 9, profile.FieldAmount, "x"))
}

func TestEveryChangeIsSaved(t *testing.T) {
	p := &fakePersister{}
	s, _ := newTestStore(t, p)

	s.UpdateField(profile.Goals, 0, profile.FieldDescription, "House")
	s.SetFlag(profile.FlagLifeInsurance, profile.No)
	require.Equal(t, 2, p.saves)
	require.NotNil(t, p.saved)
	assert.Equal(t, s.Profile(), *p.saved)
}

func TestSaverIsAListAnySubscriber(t *testing.T) {
	p := &fakePersister{}
	s, _ := newTestStore(t, p)
	require.Len(t, s.subs[ListAny], 1, "draft saver should be the only ListAny subscriber")

	var seen []string
	s.Subscribe(ListAny, func(profile.Profile) { seen = append(seen, "listener") })
	s.SetMonthlyRent("15000")
	assert.Equal(t, 1, p.saves)
	assert.Equal(t, []string{"listener"}, seen)

	memOnly, _ := newTestStore(t, nil)
	assert.Empty(t, memOnly.subs[ListAny])
}

func TestResetSavesThenClears(t *testing.T) {
	p := &fakePersister{}
	s, _ := newTestStore(t, p)
	s.SetMonthlyRent("15000")

	s.Reset()
	assert.Equal(t, 2, p.saves)
	assert.Equal(t, 1, p.clears)
	assert.Nil(t, p.saved, "reset must leave nothing persisted")
}

func TestSaveFailureIsLogged(t *testing.T) {
	p := &fakePersister{saveErr: errors.New("read-only")}
	s, hook := newTestStore(t, p)

	assert.True(t, s.SetFlag(profile.FlagHealthIssues, profile.Yes))
	assert.Equal(t, profile.Yes, s.Profile().HasHealthIssues)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "saving draft", hook.LastEntry().Message)
}

func TestResetClearsStoredDraft(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	d := draft.New(kv)

	s, _ := newTestStore(t, d)
	s.AddItem(profile.SIPs, &profile.SIP{Name: "X", Monthly: "100", StartDate: "2026-01"})
	s.SetMonthlyRent("9000")

	_, ok, err := d.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	s.Reset()
	assert.True(t, profile.Equal(profile.Blank(), s.Profile()))
	assert.Len(t, s.Summaries(), 1)

	_, ok, err = d.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "reset must leave nothing persisted")
}

func TestDraftSurvivesRestart(t *testing.T) {
	kv := store.NewMemory()

	first, _ := newTestStore(t, draft.New(kv))
	first.UpdateField(profile.Incomes, 0, profile.FieldSource, "Consulting")
	first.AddItem(profile.Investments, &profile.Investment{Type: "FD", Amount: "200000", ReturnRate: "7"})

	second, _ := newTestStore(t, draft.New(kv))
	assert.Equal(t, first.Profile(), second.Profile())
}

func TestSubscribeListAny(t *testing.T) {
	s, _ := newTestStore(t, nil)

	var got []profile.Profile
	s.Subscribe(ListAny, func(p profile.Profile) { got = append(got, p) })

	s.SetFlag(profile.FlagOwnsHouse, profile.No)
	s.AddItem(profile.Goals, nil)
	s.RemoveItem(profile.Goals, 99)
	require.Len(t, got, 2)
	assert.Equal(t, profile.No, got[0].OwnsHouse)
	assert.Len(t, got[1].Goals, 2)
}

func TestLoanSummaries(t *testing.T) {
	s, _ := newTestStore(t, nil)
	s.UpdateField(profile.Loans, 0, profile.FieldTenureMonths, "12")
	s.UpdateField(profile.Loans, 0, profile.FieldTotalPaidEMI, "20")

	ls := s.LoanSummaries()
	require.Len(t, ls, 1)
	assert.Zero(t, ls[0].RemainingMonths)
	assert.Equal(t, "0", s.Profile().Loans[0].TotalEMIRemaining)
}

func TestRefreshSummariesFollowsClock(t *testing.T) {
	now := testNow
	s := New(nil, WithClock(func() time.Time { return now }), WithLogger(logrus.New()))
	s.UpdateField(profile.SIPs, 0, profile.FieldStartDate, "2026-10")
	s.UpdateField(profile.SIPs, 0, profile.FieldMonthly, "100")
	assert.Equal(t, 1, s.Summaries()[0].Months)

	now = now.AddDate(0, 1, 0)
	assert.Equal(t, 1, s.Summaries()[0].Months, "cached summaries move only on refresh")
	assert.Equal(t, 2, s.RefreshSummaries()[0].Months)
}
