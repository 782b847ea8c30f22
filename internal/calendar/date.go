package calendar

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date 是精确到天的日期，内部统一归一化到 UTC 零点，
// 这样不同时区写入的同一天比较起来才是相等的
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) IsZero() bool {
	return d.Time.IsZero()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTokenLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	token := strings.Trim(string(data), `"`)
	if token == "null" {
		return nil
	}

	parsed, err := ParseDateToken(token)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return err
		}
		*d = DateOf(parsed)
		return nil
	default:
		return fmt.Errorf("无法将 %T 扫描为日期", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}
