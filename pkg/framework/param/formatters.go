package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -100 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if strings.Contains(str, "∞") || strings.Contains(strings.ToLower(str), "inf") {
		return -100, nil
	}
	str = strings.TrimSuffix(str, "dB")
	str = strings.TrimSuffix(str, "db")
	return parseFloat(str)
}

// TimeFormatter formats millisecond values, switching to seconds at 1000 ms.
func TimeFormatter(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.2f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// TimeParser parses time strings into milliseconds
func TimeParser(str string) (float64, error) {
	str = strings.ToLower(strings.TrimSpace(str))

	if strings.HasSuffix(str, "ms") {
		return parseFloat(strings.TrimSuffix(str, "ms"))
	}
	if strings.HasSuffix(str, "s") {
		val, err := parseFloat(strings.TrimSuffix(str, "s"))
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}
	return parseFloat(str)
}

// RatioFormatter formats ratio values
func RatioFormatter(value float64) string {
	return fmt.Sprintf("%.1f:1", value)
}

// RatioParser parses ratio strings
func RatioParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	str = strings.TrimSuffix(str, ":1")
	return parseFloat(str)
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %q", s)
	}
	return v, nil
}
