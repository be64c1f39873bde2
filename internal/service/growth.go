package service

import (
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
)

// GenerateGrowthSeries down-samples the price series into one portfolio
// value per calendar month, for charting.
//
// Only price samples within [startDate, endDate] inclusive are considered.
// For each distinct (year, month) pair the FIRST sample encountered is used,
// not an average or the month's last sample. The effective share count at
// each emitted sample is resolved against the adjustment timeline via
// SharesAsOf, so splits and bonuses show up as value steps in the series.
//
// Returns points ascending by date, or an empty slice when no samples fall
// inside the range. Pure function of its inputs.
func GenerateGrowthSeries(series []model.PricePoint, timeline []model.ShareAdjustment, startDate, endDate time.Time) []model.GrowthPoint {
	growth := []model.GrowthPoint{}
	currentMonth := -1

	for _, point := range series {
		if point.Date.Before(startDate) || point.Date.After(endDate) {
			continue
		}

		month := int(point.Date.Month()) + point.Date.Year()*12
		if month == currentMonth {
			continue
		}
		currentMonth = month

		shares := SharesAsOf(timeline, point.Date)
		growth = append(growth, model.GrowthPoint{
			Date:   point.Date,
			Value:  shares * point.Close,
			Shares: shares,
		})
	}

	return growth
}
