package service_test

import (
	"testing"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/model"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/testutil"
)

// TestBuildAdjustments tests corporate action replay into a share timeline.
//
// WHY: Splits and bonus issues multiply the share count, so a missed or
// double-applied action directly corrupts the final value. The range filter
// and ordering guarantees are the contract the calculator depends on.
func TestBuildAdjustments(t *testing.T) {
	start := testutil.Date(2020, 1, 1)
	end := testutil.Date(2021, 1, 1)

	t.Run("no actions yields only the initial entry", func(t *testing.T) {
		timeline := service.BuildAdjustments(start, 10, end, nil)

		if len(timeline) != 1 {
			t.Fatalf("Expected 1 timeline entry, got %d", len(timeline))
		}
		if timeline[0].Event != model.InitialInvestmentEvent {
			t.Errorf("Expected initial investment event, got %q", timeline[0].Event)
		}
		if timeline[0].Shares != 10 {
			t.Errorf("Expected 10 shares, got %v", timeline[0].Shares)
		}
	})

	t.Run("applied action multiplies the running share count", func(t *testing.T) {
		actions := []model.CorporateAction{
			{Date: testutil.Date(2020, 6, 1), Factor: 2, Description: "1:1 bonus"},
		}

		timeline := service.BuildAdjustments(start, 10, end, actions)

		if len(timeline) != 2 {
			t.Fatalf("Expected 2 timeline entries, got %d", len(timeline))
		}
		if timeline[1].Shares != 20 {
			t.Errorf("Expected 20 shares after bonus, got %v", timeline[1].Shares)
		}
		if timeline[1].PrevShares != 10 {
			t.Errorf("Expected prev shares 10, got %v", timeline[1].PrevShares)
		}
		if timeline[1].Event != "1:1 bonus" {
			t.Errorf("Expected event from action description, got %q", timeline[1].Event)
		}
	})

	t.Run("actions outside the range are ignored", func(t *testing.T) {
		actions := []model.CorporateAction{
			{Date: testutil.Date(2019, 12, 31), Factor: 2, Description: "before range"},
			{Date: testutil.Date(2021, 1, 2), Factor: 2, Description: "after range"},
		}

		timeline := service.BuildAdjustments(start, 10, end, actions)

		if len(timeline) != 1 {
			t.Fatalf("Expected out-of-range actions to be dropped, got %d entries", len(timeline))
		}
	})

	t.Run("range boundaries are inclusive", func(t *testing.T) {
		actions := []model.CorporateAction{
			{Date: start, Factor: 2, Description: "on start"},
			{Date: end, Factor: 3, Description: "on end"},
		}

		timeline := service.BuildAdjustments(start, 10, end, actions)

		if len(timeline) != 3 {
			t.Fatalf("Expected both boundary actions applied, got %d entries", len(timeline))
		}
		if got := timeline[len(timeline)-1].Shares; got != 60 {
			t.Errorf("Expected 60 shares after both actions, got %v", got)
		}
	})

	t.Run("input order does not affect the result", func(t *testing.T) {
		ordered := []model.CorporateAction{
			{Date: testutil.Date(2020, 3, 1), Factor: 2, Description: "split"},
			{Date: testutil.Date(2020, 9, 1), Factor: 5, Description: "split"},
		}
		reversed := []model.CorporateAction{ordered[1], ordered[0]}

		a := service.BuildAdjustments(start, 10, end, ordered)
		b := service.BuildAdjustments(start, 10, end, reversed)

		if len(a) != len(b) {
			t.Fatalf("Timeline lengths differ: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if !a[i].Date.Equal(b[i].Date) || a[i].Shares != b[i].Shares {
				t.Errorf("Entry %d differs: %+v vs %+v", i, a[i], b[i])
			}
		}
	})
}

// TestSharesAsOf tests effective share count resolution against a timeline.
//
// WHY: The final value uses the share count as of the end date, and the
// growth series queries it per month. The "latest entry at or before"
// rule must hold at the exact adjustment dates.
func TestSharesAsOf(t *testing.T) {
	start := testutil.Date(2020, 1, 1)
	end := testutil.Date(2021, 1, 1)
	actions := []model.CorporateAction{
		{Date: testutil.Date(2020, 6, 1), Factor: 2, Description: "1:1 bonus"},
	}
	timeline := service.BuildAdjustments(start, 10, end, actions)

	t.Run("before any adjustment returns the initial shares", func(t *testing.T) {
		if got := service.SharesAsOf(timeline, testutil.Date(2020, 3, 1)); got != 10 {
			t.Errorf("Expected 10 shares, got %v", got)
		}
	})

	t.Run("on the adjustment date the new count applies", func(t *testing.T) {
		if got := service.SharesAsOf(timeline, testutil.Date(2020, 6, 1)); got != 20 {
			t.Errorf("Expected 20 shares, got %v", got)
		}
	})

	t.Run("after the adjustment the new count persists", func(t *testing.T) {
		if got := service.SharesAsOf(timeline, testutil.Date(2020, 12, 1)); got != 20 {
			t.Errorf("Expected 20 shares, got %v", got)
		}
	})

	t.Run("before the initial entry defaults to initial shares", func(t *testing.T) {
		if got := service.SharesAsOf(timeline, testutil.Date(2019, 1, 1)); got != 10 {
			t.Errorf("Expected 10 shares, got %v", got)
		}
	})
}
