package season

import "time"

// Status describes when a care action is next due.
type Status struct {
	Kind         string     `json:"kind"`
	Season       string     `json:"season"`
	IntervalDays *int       `json:"interval_days"`
	LastDone     *time.Time `json:"last_done"`
	NextDue      *time.Time `json:"next_due"`
	Due          bool       `json:"due"`
	DaysOverdue  int        `json:"days_overdue"`
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Due computes the status of one action. Without an interval nothing is due.
// An action never done is due today. Otherwise the next date is lastDone plus
// the interval, and it is due once that day is reached.
func Due(kind, seasonName string, interval *int, lastDone *time.Time, now time.Time) Status {
	st := Status{Kind: kind, Season: seasonName, IntervalDays: interval, LastDone: lastDone}
	if interval == nil || *interval <= 0 {
		st.IntervalDays = nil
		return st
	}
	today := day(now)
	if lastDone == nil {
		st.NextDue = &today
		st.Due = true
		return st
	}
	next := day(lastDone.In(now.Location())).AddDate(0, 0, *interval)
	st.NextDue = &next
	if !next.After(today) {
		st.Due = true
		st.DaysOverdue = int(today.Sub(next).Hours() / 24)
	}
	return st
}
