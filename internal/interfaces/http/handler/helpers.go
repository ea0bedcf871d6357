package handler

import "strconv"

// bindPositiveInt parses a query parameter into a positive int
func bindPositiveInt(value string, target *int) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if parsed > 0 {
		*target = parsed
	}
	return nil
}
