package rejimde

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	firstNext := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return dateOnly(firstNext.AddDate(0, 0, -1))
}

func firstDayOfNextMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return dateOnly(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0))
}

func getIntEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getDateEnv(key string) (*time.Time, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s (want YYYY-MM-DD): %w", key, err)
	}
	tt := dateOnly(t.UTC())
	return &tt, nil
}

func getBoolEnv(key string, defaultVal bool) bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if raw == "" {
		return defaultVal
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return defaultVal
	}
}
