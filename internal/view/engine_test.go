package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/signaldeck/internal/domain"
)

func sig(ticker string, grade domain.Grade, score float64, signalType string, detected time.Time) domain.Signal {
	return domain.Signal{
		Ticker:     ticker,
		Grade:      grade,
		Score:      domain.Score{Total: score},
		SignalType: signalType,
		DetectedAt: detected,
	}
}

func tickers(signals []domain.Signal) []string {
	out := make([]string, 0, len(signals))
	for _, s := range signals {
		out = append(out, s.Ticker)
	}
	return out
}

func TestApplyUnrestrictedFilterIsNoOp(t *testing.T) {
	now := time.Now()
	input := []domain.Signal{
		sig("A", domain.GradeS, 9, domain.SignalTypeBuy, now),
		sig("B", domain.GradeC, 3, domain.SignalTypeModerateBuy, now),
		sig("C", domain.GradeA, 7, domain.SignalTypeStrongBuy, now),
	}

	got := Apply(input, domain.DefaultFilter(), domain.SortSpec{By: domain.SortByScore, Order: domain.OrderDesc})

	// Empty grades + "all" type: every element survives, only order changes
	require.Len(t, got, 3)
	assert.Equal(t, []string{"A", "C", "B"}, tickers(got))
}

func TestApplyScoreBounds(t *testing.T) {
	now := time.Now()
	input := []domain.Signal{
		sig("LOW", domain.GradeC, 2, domain.SignalTypeModerateBuy, now),
		sig("MID", domain.GradeB, 6, domain.SignalTypeBuy, now),
		sig("HIGH", domain.GradeS, 11, domain.SignalTypeStrongBuy, now),
	}

	filter := domain.DefaultFilter()
	filter.MinScore = 3
	filter.MaxScore = 6

	got := Apply(input, filter, domain.DefaultSort())

	require.Len(t, got, 1)
	assert.Equal(t, "MID", got[0].Ticker)
	for _, s := range got {
		assert.GreaterOrEqual(t, s.TotalScore(), filter.MinScore)
		assert.LessOrEqual(t, s.TotalScore(), filter.MaxScore)
	}
}

func TestApplyConjunctivePredicates(t *testing.T) {
	now := time.Now()
	input := []domain.Signal{
		sig("A", domain.GradeS, 9, domain.SignalTypeBuy, now),
		sig("B", domain.GradeS, 9, domain.SignalTypeStrongBuy, now),
		sig("C", domain.GradeB, 9, domain.SignalTypeBuy, now),
	}

	filter := domain.DefaultFilter()
	filter.Grades = []domain.Grade{domain.GradeS}
	filter.SignalType = domain.SignalTypeBuy

	got := Apply(input, filter, domain.DefaultSort())

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Ticker)
}

func TestSortByGradeOrdinal(t *testing.T) {
	now := time.Now()
	input := []domain.Signal{
		sig("B1", domain.GradeB, 0, "", now),
		sig("S1", domain.GradeS, 0, "", now),
		sig("A1", domain.GradeA, 0, "", now),
		sig("C1", domain.GradeC, 0, "", now),
	}

	got := Apply(input, domain.DefaultFilter(), domain.SortSpec{By: domain.SortByGrade, Order: domain.OrderDesc})
	assert.Equal(t, []string{"S1", "A1", "B1", "C1"}, tickers(got))
}

func TestSortByCreatedAt(t *testing.T) {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	input := []domain.Signal{
		sig("OLD", domain.GradeA, 5, "", base.Add(-2*time.Hour)),
		sig("NEW", domain.GradeA, 5, "", base),
		sig("MID", domain.GradeA, 5, "", base.Add(-time.Hour)),
	}

	asc := Apply(input, domain.DefaultFilter(), domain.SortSpec{By: domain.SortByCreatedAt, Order: domain.OrderAsc})
	assert.Equal(t, []string{"OLD", "MID", "NEW"}, tickers(asc))

	desc := Apply(input, domain.DefaultFilter(), domain.SortSpec{By: domain.SortByCreatedAt, Order: domain.OrderDesc})
	assert.Equal(t, []string{"NEW", "MID", "OLD"}, tickers(desc))
}

func TestSortStableTies(t *testing.T) {
	now := time.Now()
	input := []domain.Signal{
		sig("T1", domain.GradeA, 5, "", now),
		sig("T2", domain.GradeA, 5, "", now),
		sig("HI", domain.GradeA, 9, "", now),
		sig("T3", domain.GradeA, 5, "", now),
	}

	desc := Apply(input, domain.DefaultFilter(), domain.SortSpec{By: domain.SortByScore, Order: domain.OrderDesc})
	assert.Equal(t, []string{"HI", "T1", "T2", "T3"}, tickers(desc), "tie group keeps input order under desc")

	asc := Apply(input, domain.DefaultFilter(), domain.SortSpec{By: domain.SortByScore, Order: domain.OrderAsc})
	assert.Equal(t, []string{"T1", "T2", "T3", "HI"}, tickers(asc), "tie group keeps input order under asc")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	input := []domain.Signal{
		sig("A", domain.GradeC, 3, "", now),
		sig("B", domain.GradeS, 9, "", now),
	}

	_ = Apply(input, domain.DefaultFilter(), domain.SortSpec{By: domain.SortByScore, Order: domain.OrderDesc})

	assert.Equal(t, "A", input[0].Ticker, "input slice must stay untouched")
	assert.Equal(t, "B", input[1].Ticker)
}
