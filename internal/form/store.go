// Package form owns the profile being edited and keeps its derived SIP
// summaries and stored draft in step with every change.
package form

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/finplan/internal/profile"
)

// ListAny subscribes to every change, including flags and rent.
const ListAny profile.List = "*"

// Persister is the durable side of the draft.
type Persister interface {
	Load(ctx context.Context) (profile.Profile, bool, error)
	Save(ctx context.Context, p profile.Profile) error
	Clear(ctx context.Context) error
}

// Listener receives a snapshot of the profile after a change.
type Listener func(p profile.Profile)

// Store mediates every mutation of the profile. Its methods never fail:
// persistence problems are logged and the in-memory profile stays usable.
type Store struct {
	mu        sync.Mutex
	p         profile.Profile
	summaries []profile.SipSummary
	subs      map[profile.List][]Listener

	persist Persister
	log     logrus.FieldLogger
	now     func() time.Time

	recomputes int
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for month counting.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for persistence failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a Store seeded with the blank template, then restored from
// persist when it holds a draft that differs from the template. persist may
// be nil for a store that keeps nothing.
func New(persist Persister, opts ...Option) *Store {
	s := &Store{
		p:       profile.Blank(),
		subs:    make(map[profile.List][]Listener),
		persist: persist,
		log:     logrus.StandardLogger(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	s.Subscribe(profile.SIPs, func(p profile.Profile) { s.recompute(p.SIPs) })
	if persist != nil {
		s.Subscribe(ListAny, s.save)
	}
	s.restore()
	s.recompute(s.p.SIPs)
	return s
}

func (s *Store) restore() {
	if s.persist == nil {
		return
	}

	saved, ok, err := s.persist.Load(context.Background())
	if err != nil {
		s.log.WithError(err).Error("loading saved draft, starting from blank form")
		return
	}
	if ok && !profile.Equal(saved, s.p) {
		s.p = saved
		s.log.Debug("restored saved draft")
	}
}

// Subscribe registers fn for changes to list. Listeners run after the
// change is applied, outside the store lock.
func (s *Store) Subscribe(list profile.List, fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[list] = append(s.subs[list], fn)
}

// AddItem appends template to list. A nil template appends an empty row.
// It returns false when template is not the record type list holds.
func (s *Store) AddItem(list profile.List, template profile.Record) bool {
	if template == nil {
		template = profile.NewRecord(list)
		if template == nil {
			return false
		}
	}
	return s.mutate(list, func(p *profile.Profile) bool {
		return p.Append(list, template)
	})
}

// RemoveItem deletes row index of list. An invalid index changes nothing.
func (s *Store) RemoveItem(list profile.List, index int) bool {
	return s.mutate(list, func(p *profile.Profile) bool {
		return p.RemoveAt(list, index)
	})
}

// UpdateField stores value in field of row index of list, untouched.
func (s *Store) UpdateField(list profile.List, index int, field profile.Field, value string) bool {
	return s.mutate(list, func(p *profile.Profile) bool {
		r, ok := p.Record(list, index)
		if !ok {
			return false
		}
		return r.Set(field, value)
	})
}

// SetFlag records an answer to one of the yes/no questions.
func (s *Store) SetFlag(flag profile.Flag, v profile.TriState) bool {
	return s.mutate(ListAny, func(p *profile.Profile) bool {
		return p.SetFlag(flag, v)
	})
}

// SetMonthlyRent stores the rent text as entered.
func (s *Store) SetMonthlyRent(v string) {
	s.mutate(ListAny, func(p *profile.Profile) bool {
		p.MonthlyRent = v
		return true
	})
}

// Reset restores the blank template and removes the stored draft. Listeners,
// the draft saver among them, run before the draft is cleared, so nothing is
// left persisted afterwards.
func (s *Store) Reset() {
	s.mu.Lock()
	s.p = profile.Blank()
	snap := s.p.Clone()
	var listeners []Listener
	for _, l := range profile.Lists {
		listeners = append(listeners, s.subs[l]...)
	}
	listeners = append(listeners, s.subs[ListAny]...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	if s.persist != nil {
		if err := s.persist.Clear(context.Background()); err != nil {
			s.log.WithError(err).Error("clearing saved draft")
		}
	}
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Clone()
}

// Summaries returns the SIP summaries computed at the last SIP change.
func (s *Store) Summaries() []profile.SipSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]profile.SipSummary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

// RefreshSummaries recomputes SIP summaries against the clock, so month
// counts stay current across a month boundary.
func (s *Store) RefreshSummaries() []profile.SipSummary {
	s.mu.Lock()
	sips := append([]profile.SIP(nil), s.p.SIPs...)
	s.mu.Unlock()

	s.recompute(sips)
	return s.Summaries()
}

// Totals sums invested and estimated value over the current summaries.
func (s *Store) Totals() (invested, estimated float64) {
	return profile.Totals(s.Summaries())
}

// LoanSummaries returns the repayment position of every loan, in order.
func (s *Store) LoanSummaries() []profile.LoanSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]profile.LoanSummary, len(s.p.Loans))
	for i, l := range s.p.Loans {
		out[i] = l.Summary()
	}
	return out
}

func (s *Store) mutate(list profile.List, fn func(p *profile.Profile) bool) bool {
	s.mu.Lock()
	if !fn(&s.p) {
		s.mu.Unlock()
		return false
	}
	snap := s.p.Clone()
	listeners := append([]Listener(nil), s.subs[list]...)
	if list != ListAny {
		listeners = append(listeners, s.subs[ListAny]...)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return true
}

// save is the ListAny subscriber that writes every change through to
// persist.
func (s *Store) save(p profile.Profile) {
	if err := s.persist.Save(context.Background(), p); err != nil {
		s.log.WithError(err).Error("saving draft")
	}
}

func (s *Store) recompute(sips []profile.SIP) {
	summaries := profile.SummarizeSIPs(sips, s.now())

	s.mu.Lock()
	s.summaries = summaries
	s.recomputes++
	s.mu.Unlock()
}
