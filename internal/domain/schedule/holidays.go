package schedule

import (
	"fmt"
	"time"

	"github.com/vgpsi/clinic-scheduler/internal/clock"
)

// Feriados nacionais com data fixa (MM-DD).
var fixedHolidays = map[string]string{
	"01-01": "Confraternização Universal",
	"04-21": "Tiradentes",
	"05-01": "Dia do Trabalho",
	"09-07": "Independência do Brasil",
	"10-12": "Nossa Senhora Aparecida",
	"11-02": "Finados",
	"11-15": "Proclamação da República",
	"11-20": "Dia da Consciência Negra",
	"12-25": "Natal",
}

// HolidayName reports whether the given 2006-01-02 date is a blocked
// national holiday, and which one. Dates that fail to parse are not
// holidays.
func HolidayName(date string) (string, bool) {
	d, err := time.Parse(clock.DateLayout, date)
	if err != nil {
		return "", false
	}

	if name, ok := fixedHolidays[d.Format("01-02")]; ok {
		return name, true
	}

	easter := easterSunday(d.Year())
	switch date {
	case easter.AddDate(0, 0, -47).Format(clock.DateLayout):
		return "Carnaval", true
	case easter.AddDate(0, 0, -2).Format(clock.DateLayout):
		return "Sexta-feira Santa", true
	case easter.AddDate(0, 0, 60).Format(clock.DateLayout):
		return "Corpus Christi", true
	}

	return "", false
}

func IsHoliday(date string) bool {
	_, ok := HolidayName(date)
	return ok
}

// easterSunday computes Easter for a Gregorian year (Meeus/Jones/Butcher).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	t, _ := time.Parse(clock.DateLayout, fmt.Sprintf("%04d-%02d-%02d", year, month, day))
	return t
}
