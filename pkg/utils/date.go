package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate converte YYYY-MM-DD. Texto vazio devolve nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(DateLayout)
}

// PreviousMonth devolve o primeiro e o último dia do mês anterior a ref, e o rótulo mm-yyyy
func PreviousMonth(ref time.Time) (time.Time, time.Time, string) {
	firstOfCurrent := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	start := firstOfCurrent.AddDate(0, -1, 0)
	end := firstOfCurrent.AddDate(0, 0, -1)
	return start, end, start.Format("01-2006")
}
