package service

import (
	"sort"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
)

// BuildAdjustments replays corporate actions over an initial share count and
// returns the resulting share-count timeline.
//
// Only actions dated within [startDate, endDate] inclusive are applied.
// Actions are sorted ascending by date before replay, so input order does
// not affect the result. Each applied action multiplies the running share
// count by its factor.
//
// The first timeline entry always represents the initial purchase at
// startDate with event model.InitialInvestmentEvent; one entry follows per
// applied action. The returned slice is append-only during calculation and
// never mutated afterwards.
func BuildAdjustments(startDate time.Time, initialShares float64, endDate time.Time, actions []model.CorporateAction) []model.ShareAdjustment {
	relevant := make([]model.CorporateAction, 0, len(actions))
	for _, action := range actions {
		if action.Date.Before(startDate) || action.Date.After(endDate) {
			continue
		}
		relevant = append(relevant, action)
	}

	sort.SliceStable(relevant, func(a, b int) bool {
		return relevant[a].Date.Before(relevant[b].Date)
	})

	timeline := []model.ShareAdjustment{
		{
			Date:   startDate,
			Shares: initialShares,
			Event:  model.InitialInvestmentEvent,
		},
	}

	shares := initialShares
	for _, action := range relevant {
		prevShares := shares
		shares *= action.Factor

		timeline = append(timeline, model.ShareAdjustment{
			Date:       action.Date,
			Shares:     shares,
			Event:      action.Description,
			Factor:     action.Factor,
			PrevShares: prevShares,
		})
	}

	return timeline
}

// SharesAsOf returns the effective share count at the given date: the
// shares of the latest timeline entry dated on or before date, defaulting
// to the initial entry when no adjustment precedes it.
//
// The timeline must be non-empty and ordered ascending by date, as produced
// by BuildAdjustments.
func SharesAsOf(timeline []model.ShareAdjustment, date time.Time) float64 {
	shares := timeline[0].Shares

	for _, entry := range timeline[1:] {
		if entry.Date.After(date) {
			break
		}
		shares = entry.Shares
	}

	return shares
}
