package clock

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Clock is the injectable time source. Every temporal rule in the domain
// receives one so date-boundary logic stays deterministic under test.
type Clock interface {
	Now() time.Time
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type systemClock struct {
	loc *time.Location
}

func System() Clock {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed pins the clock to a single instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

func Tomorrow(c Clock) string {
	return c.Now().AddDate(0, 0, 1).Format(DateLayout)
}

// MinuteOfDay converts a "15:04" clock string to minutes since midnight.
// Malformed input yields -1 so callers can reject it.
func MinuteOfDay(hm string) int {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

func ValidTime(hm string) bool {
	_, err := time.Parse(TimeLayout, hm)
	return err == nil
}
