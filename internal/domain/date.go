package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout 表单与 JSON 中的日期格式
const DateLayout = "2006-01-02"

// DateOf 截断到所在日历日，统一成 UTC 零点
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 YYYY-MM-DD，失败返回 ErrInvalidDate
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}
	return t, nil
}

// AddDays works on calendar days, so DST never shifts the result.
func AddDays(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n)
}

// DaysBetween 返回 to - from 的整天数（可为负）
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}
