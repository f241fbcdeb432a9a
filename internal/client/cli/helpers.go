package cli

import (
	"fmt"
	"math"
	"time"
)

// FormatViewCount сокращает число просмотров: 1500 -> "1.5K", 2000000 -> "2.0M"
func FormatViewCount(views int64) string {
	switch {
	case views >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(views)/1_000_000)
	case views >= 1_000:
		return fmt.Sprintf("%.1fK", float64(views)/1_000)
	default:
		return fmt.Sprintf("%d", views)
	}
}

// FormatDuration переводит секунды в "m:ss" или "h:mm:ss"
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "0:00"
	}
	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// Truncate обрезает текст до length рун и добавляет "..."
func Truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	if length < 0 {
		length = 0
	}
	return string(runes[:length]) + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

// orDash заменяет пустое значение прочерком
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
