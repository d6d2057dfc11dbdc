package console

import (
	"fmt"
	"strconv"
	"strings"
)

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// parseMarks reads a comma-separated list. A blank line yields no marks.
func parseMarks(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	marks := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		m, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid mark", p)
		}
		marks = append(marks, m)
	}
	return marks, nil
}

func joinMarks(marks []int) string {
	parts := make([]string, len(marks))
	for i, m := range marks {
		parts[i] = strconv.Itoa(m)
	}
	return strings.Join(parts, ",")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
