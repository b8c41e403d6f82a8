package profile

// List names one of the profile's record lists.
type List string

const (
	Incomes      List = "incomes"
	Expenses     List = "expenses"
	Loans        List = "loans"
	Goals        List = "goals"
	Investments  List = "investments"
	SIPs         List = "sips"
	HealthIssues List = "healthIssues"
)

// Lists holds every list in form order.
var Lists = []List{Incomes, Expenses, Loans, Goals, Investments, SIPs, HealthIssues}

// NewRecord returns an empty row for l, or nil for an unknown list.
func NewRecord(l List) Record {
	switch l {
	case Incomes:
		return &Income{}
	case Expenses:
		return &Expense{}
	case Loans:
		return &Loan{}
	case Goals:
		return &Goal{}
	case Investments:
		return &Investment{}
	case SIPs:
		return &SIP{}
	case HealthIssues:
		return &HealthIssue{}
	}
	return nil
}

// Len returns the number of rows in l.
func (p Profile) Len(l List) int {
	switch l {
	case Incomes:
		return len(p.Incomes)
	case Expenses:
		return len(p.Expenses)
	case Loans:
		return len(p.Loans)
	case Goals:
		return len(p.Goals)
	case Investments:
		return len(p.Investments)
	case SIPs:
		return len(p.SIPs)
	case HealthIssues:
		return len(p.HealthIssues)
	}
	return 0
}

// Record returns a pointer to row i of l. Edits through it modify p.
func (p *Profile) Record(l List, i int) (Record, bool) {
	if i < 0 || i >= p.Len(l) {
		return nil, false
	}
	switch l {
	case Incomes:
		return &p.Incomes[i], true
	case Expenses:
		return &p.Expenses[i], true
	case Loans:
		return &p.Loans[i], true
	case Goals:
		return &p.Goals[i], true
	case Investments:
		return &p.Investments[i], true
	case SIPs:
		return &p.SIPs[i], true
	case HealthIssues:
		return &p.HealthIssues[i], true
	}
	return nil, false
}

// Append adds a copy of r to the end of l. It returns false when r is not
// the record type l holds.
func (p *Profile) Append(l List, r Record) bool {
	switch l {
	case Incomes:
		return appendAs(&p.Incomes, r)
	case Expenses:
		return appendAs(&p.Expenses, r)
	case Loans:
		return appendAs(&p.Loans, r)
	case Goals:
		return appendAs(&p.Goals, r)
	case Investments:
		return appendAs(&p.Investments, r)
	case SIPs:
		return appendAs(&p.SIPs, r)
	case HealthIssues:
		return appendAs(&p.HealthIssues, r)
	}
	return false
}

// RemoveAt deletes row i of l. An out-of-range index leaves l unchanged and
// returns false.
func (p *Profile) RemoveAt(l List, i int) bool {
	switch l {
	case Incomes:
		return removeAt(&p.Incomes, i)
	case Expenses:
		return removeAt(&p.Expenses, i)
	case Loans:
		return removeAt(&p.Loans, i)
	case Goals:
		return removeAt(&p.Goals, i)
	case Investments:
		return removeAt(&p.Investments, i)
	case SIPs:
		return removeAt(&p.SIPs, i)
	case HealthIssues:
		return removeAt(&p.HealthIssues, i)
	}
	return false
}

func appendAs[T any](s *[]T, r Record) bool {
	v, ok := any(r).(*T)
	if !ok || v == nil {
		return false
	}
	*s = append(*s, *v)
	return true
}

func removeAt[T any](s *[]T, i int) bool {
	if i < 0 || i >= len(*s) {
		return false
	}
	out := make([]T, 0, len(*s)-1)
	out = append(out, (*s)[:i]...)
	out = append(out, (*s)[i+1:]...)
	*s = out
	return true
}
