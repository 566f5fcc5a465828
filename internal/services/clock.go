package services

import (
	"time"

	"github.com/terraincognita07/facets/internal/models"
)

type clock func() time.Time

func (now clock) today() time.Time {
	return models.DateOnly(now())
}

func (now clock) timestamp() time.Time {
	return now().UTC()
}

// dayBounds returns the UTC instants delimiting the local calendar day of value.
func dayBounds(value time.Time) (time.Time, time.Time) {
	year, month, day := value.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, value.Location())
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// monthBounds returns the UTC instants delimiting a calendar month in location.
func monthBounds(year int, month time.Month, location *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, location)
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}
