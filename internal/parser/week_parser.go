package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var weekRegex = regexp.MustCompile(`^(\d{4})-?W(\d{1,2})$`)

// NormalizeWeek normalizes ISO week labels to the YYYY-Www format
// Accepts formats like:
// - "2026-W07", "2026-w7" -> "2026-W07"
// - "2026W7" -> "2026-W07"
// Returns error if format is invalid
func NormalizeWeek(week string) (string, error) {
	week = strings.ToUpper(strings.TrimSpace(week))

	matches := weekRegex.FindStringSubmatch(week)
	if matches == nil {
		return "", fmt.Errorf("invalid week format. Use: YYYY-Www (e.g. 2026-W07)")
	}
	n, _ := strconv.Atoi(matches[2])
	if n < 1 || n > 53 {
		return "", fmt.Errorf("week must be between 1 and 53")
	}
	return fmt.Sprintf("%s-W%02d", matches[1], n), nil
}

// IsValidWeekFormat checks if a string matches the week label format
func IsValidWeekFormat(week string) bool {
	_, err := NormalizeWeek(week)
	return err == nil
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

var weekdayShort = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseWeekdays parses a habit schedule into sorted weekday numbers
// (0=Sunday). Accepts "all", "weekdays", "weekend", names, numbers and
// ranges, e.g. "mon-fri", "mon,wed,fri", "1,3,5".
func ParseWeekdays(input string) ([]int, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	switch input {
	case "", "all", "daily", "everyday":
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	case "weekdays", "workdays":
		return []int{1, 2, 3, 4, 5}, nil
	case "weekend", "weekends":
		return []int{0, 6}, nil
	}

	seen := map[int]bool{}
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, isRange := strings.Cut(part, "-")
		start, err := parseWeekday(from)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parseWeekday(to); err != nil {
				return nil, err
			}
		}
		// ranges may wrap around the week, e.g. fri-mon
		for d := start; ; d = (d + 1) % 7 {
			seen[d] = true
			if d == end {
				break
			}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}

	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days, nil
}

func parseWeekday(s string) (int, error) {
	s = strings.TrimSpace(s)
	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}
	if d, err := strconv.Atoi(s); err == nil && d >= 0 && d <= 6 {
		return d, nil
	}
	return 0, fmt.Errorf("invalid weekday %q. Use: sun-sat or 0-6", s)
}

// FormatWeekdays renders a schedule for display
func FormatWeekdays(days []int) string {
	switch {
	case len(days) == 7:
		return "daily"
	case len(days) == 5 && days[0] == 1 && days[4] == 5:
		return "weekdays"
	case len(days) == 2 && days[0] == 0 && days[1] == 6:
		return "weekend"
	}
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(weekdayShort) {
			names = append(names, weekdayShort[d])
		}
	}
	return strings.Join(names, ",")
}
