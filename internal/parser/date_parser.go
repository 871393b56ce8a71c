package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	daysAgoRegex   = regexp.MustCompile(`^(\d+)\s*(day|days|d)\s+ago$`)
)

// ParseDate resolves a day reference relative to now into YYYY-MM-DD.
// Supported formats:
// - today, yesterday, tomorrow
// - dd/mm/yyyy (e.g., "15/12/2024")
// - yyyy-mm-dd (e.g., "2024-12-15")
// - X days ago (e.g., "3 days ago")
func ParseDate(input string, now time.Time) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "", "today":
		return now.Format(dateLayout), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(dateLayout), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(dateLayout), nil
	}

	if t, err := time.ParseInLocation(dateLayout, input, now.Location()); err == nil {
		return t.Format(dateLayout), nil
	}

	// Try dd/mm/yyyy format
	if date, err := parseDateFormat(input); err == nil {
		return date, nil
	}

	// Try relative formats
	if matches := daysAgoRegex.FindStringSubmatch(input); len(matches) == 3 {
		amount, err := strconv.Atoi(matches[1])
		if err != nil || amount > 3650 {
			return "", fmt.Errorf("days must be between 0 and 3650")
		}
		return now.AddDate(0, 0, -amount).Format(dateLayout), nil
	}

	return "", fmt.Errorf("invalid date format. Use: today, yesterday, tomorrow, dd/mm/yyyy, yyyy-mm-dd, or X days ago")
}

// parseDateFormat parses dd/mm/yyyy format
func parseDateFormat(input string) (string, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return "", fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	// Validate date ranges
	if day < 1 || day > 31 {
		return "", fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)

	// Check if date is valid (handles leap years, etc.)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return "", fmt.Errorf("invalid date")
	}

	return date.Format(dateLayout), nil
}

// FormatDay renders a YYYY-MM-DD date for display relative to today
func FormatDay(date, today string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	t, err := time.Parse(dateLayout, today)
	if err != nil {
		return d.Format("Mon 02/01/2006")
	}

	daysDiff := int(d.Sub(t).Hours() / 24)
	dateStr := d.Format("Mon 02/01")
	switch daysDiff {
	case 0:
		return fmt.Sprintf("Today (%s)", dateStr)
	case -1:
		return fmt.Sprintf("Yesterday (%s)", dateStr)
	case 1:
		return fmt.Sprintf("Tomorrow (%s)", dateStr)
	default:
		return d.Format("Mon 02/01/2006")
	}
}
