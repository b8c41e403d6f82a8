package profile

import "strconv"

// Field names an editable field of a record. Values match the JSON keys.
type Field string

const (
	FieldSource            Field = "source"
	FieldAmount            Field = "amount"
	FieldType              Field = "type"
	FieldName              Field = "name"
	FieldInterest          Field = "interest"
	FieldTenureMonths      Field = "tenureMonths"
	FieldMonthlyEMI        Field = "monthlyEMI"
	FieldTotalPaidEMI      Field = "totalPaidEMI"
	FieldTotalEMIRemaining Field = "totalEMIRemaining"
	FieldDescription       Field = "description"
	FieldTimeframe         Field = "timeframe"
	FieldTargetAmount      Field = "targetAmount"
	FieldReturnRate        Field = "returnRate"
	FieldMonthly           Field = "monthly"
	FieldStartDate         Field = "startDate"
	FieldExpectedReturn    Field = "expectedReturn"
	FieldEstimatedCost     Field = "estimatedCost"
)

// Record is one row of a profile list.
type Record interface {
	// Fields lists the user-editable fields in display order.
	Fields() []Field
	Get(f Field) (string, bool)
	// Set stores value untouched. It returns false when f is not an
	// editable field of this record.
	Set(f Field, value string) bool
}

var (
	_ Record = (*Income)(nil)
	_ Record = (*Expense)(nil)
	_ Record = (*Loan)(nil)
	_ Record = (*Goal)(nil)
	_ Record = (*Investment)(nil)
	_ Record = (*SIP)(nil)
	_ Record = (*HealthIssue)(nil)
)

func (*Income) Fields() []Field { return []Field{FieldSource, FieldAmount} }

func (r *Income) Get(f Field) (string, bool) {
	switch f {
	case FieldSource:
		return r.Source, true
	case FieldAmount:
		return r.Amount, true
	}
	return "", false
}

func (r *Income) Set(f Field, v string) bool {
	switch f {
	case FieldSource:
		r.Source = v
	case FieldAmount:
		r.Amount = v
	default:
		return false
	}
	return true
}

func (*Expense) Fields() []Field { return []Field{FieldType, FieldAmount} }

func (r *Expense) Get(f Field) (string, bool) {
	switch f {
	case FieldType:
		return r.Type, true
	case FieldAmount:
		return r.Amount, true
	}
	return "", false
}

func (r *Expense) Set(f Field, v string) bool {
	switch f {
	case FieldType:
		r.Type = v
	case FieldAmount:
		r.Amount = v
	default:
		return false
	}
	return true
}

func (*Loan) Fields() []Field {
	return []Field{FieldName, FieldAmount, FieldInterest, FieldTenureMonths, FieldMonthlyEMI, FieldTotalPaidEMI}
}

func (r *Loan) Get(f Field) (string, bool) {
	switch f {
	case FieldName:
		return r.Name, true
	case FieldAmount:
		return r.Amount, true
	case FieldInterest:
		return r.Interest, true
	case FieldTenureMonths:
		return r.TenureMonths, true
	case FieldMonthlyEMI:
		return r.MonthlyEMI, true
	case FieldTotalPaidEMI:
		return r.TotalPaidEMI, true
	case FieldTotalEMIRemaining:
		return r.TotalEMIRemaining, true
	}
	return "", false
}

// Set refuses FieldTotalEMIRemaining; that field follows tenure and paid.
func (r *Loan) Set(f Field, v string) bool {
	switch f {
	case FieldName:
		r.Name = v
	case FieldAmount:
		r.Amount = v
	case FieldInterest:
		r.Interest = v
	case FieldTenureMonths:
		r.TenureMonths = v
		r.syncRemaining()
	case FieldMonthlyEMI:
		r.MonthlyEMI = v
	case FieldTotalPaidEMI:
		r.TotalPaidEMI = v
		r.syncRemaining()
	default:
		return false
	}
	return true
}

func (r *Loan) syncRemaining() {
	r.TotalEMIRemaining = strconv.FormatFloat(r.RemainingMonths(), 'f', -1, 64)
}

func (*Goal) Fields() []Field { return []Field{FieldDescription, FieldTimeframe, FieldTargetAmount} }

func (r *Goal) Get(f Field) (string, bool) {
	switch f {
	case FieldDescription:
		return r.Description, true
	case FieldTimeframe:
		return r.Timeframe, true
	case FieldTargetAmount:
		return r.TargetAmount, true
	}
	return "", false
}

func (r *Goal) Set(f Field, v string) bool {
	switch f {
	case FieldDescription:
		r.Description = v
	case FieldTimeframe:
		r.Timeframe = v
	case FieldTargetAmount:
		r.TargetAmount = v
	default:
		return false
	}
	return true
}

func (*Investment) Fields() []Field { return []Field{FieldType, FieldAmount, FieldReturnRate} }

func (r *Investment) Get(f Field) (string, bool) {
	switch f {
	case FieldType:
		return r.Type, true
	case FieldAmount:
		return r.Amount, true
	case FieldReturnRate:
		return r.ReturnRate, true
	}
	return "", false
}

func (r *Investment) Set(f Field, v string) bool {
	switch f {
	case FieldType:
		r.Type = v
	case FieldAmount:
		r.Amount = v
	case FieldReturnRate:
		r.ReturnRate = v
	default:
		return false
	}
	return true
}

func (*SIP) Fields() []Field {
	return []Field{FieldName, FieldMonthly, FieldStartDate, FieldExpectedReturn}
}

func (r *SIP) Get(f Field) (string, bool) {
	switch f {
	case FieldName:
		return r.Name, true
	case FieldMonthly:
		return r.Monthly, true
	case FieldStartDate:
		return r.StartDate, true
	case FieldExpectedReturn:
		return r.ExpectedReturn, true
	}
	return "", false
}

func (r *SIP) Set(f Field, v string) bool {
	switch f {
	case FieldName:
		r.Name = v
	case FieldMonthly:
		r.Monthly = v
	case FieldStartDate:
		r.StartDate = v
	case FieldExpectedReturn:
		r.ExpectedReturn = v
	default:
		return false
	}
	return true
}

func (*HealthIssue) Fields() []Field { return []Field{FieldDescription, FieldEstimatedCost} }

func (r *HealthIssue) Get(f Field) (string, bool) {
	switch f {
	case FieldDescription:
		return r.Description, true
	case FieldEstimatedCost:
		return r.EstimatedCost, true
	}
	return "", false
}

func (r *HealthIssue) Set(f Field, v string) bool {
	switch f {
	case FieldDescription:
		r.Description = v
	case FieldEstimatedCost:
		r.EstimatedCost = v
	default:
		return false
	}
	return true
}
