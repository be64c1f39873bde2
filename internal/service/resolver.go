package service

import (
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/apperrors"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
)

// ResolveNearest returns the price sample whose date is closest to the
// target date, measured as absolute time distance. On an exact tie the
// earlier sample in the series wins.
//
// There is deliberately no maximum-distance cap: a target far outside the
// series' coverage resolves to the boundary sample. Callers must not assume
// the returned sample is near the requested date.
//
// Fails with apperrors.ErrNoDataAvailable only when the series is empty.
func ResolveNearest(series []model.PricePoint, target time.Time) (model.PricePoint, error) {
	if len(series) == 0 {
		return model.PricePoint{}, apperrors.ErrNoDataAvailable
	}

	closest := series[0]
	minDiff := absDuration(series[0].Date.Sub(target))

	for _, point := range series[1:] {
		diff := absDuration(point.Date.Sub(target))
		if diff < minDiff {
			minDiff = diff
			closest = point
		}
	}

	return closest, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
