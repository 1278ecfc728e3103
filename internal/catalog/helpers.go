package catalog

import (
	"fmt"
	"time"

	"cineops/internal/shared/apperror"

	"github.com/gosimple/slug"
)

// uniqueSlug slugifies name and appends -1, -2, ... until exists reports false.
func uniqueSlug(name string, exists func(string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "untitled"
	}

	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperror.InvalidInput("%s must be formatted as YYYY-MM-DD", field)
	}
	return t, nil
}

func validateRun(start, end time.Time) error {
	if end.Before(start) {
		return apperror.InvalidInput("end_date must not be before start_date")
	}
	return nil
}
