package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/internal/domain"
	"github.com/wonny/signaldeck/pkg/logger"
)

func newSignalStore(client DataClient) *SignalStore {
	return NewSignalStore(client, logger.NewNop())
}

func TestSignalStoreFetchSignals(t *testing.T) {
	s := newSignalStore(&fakeClient{})

	require.NoError(t, s.FetchSignals(context.Background()))

	state := s.Signals()
	require.NotNil(t, state.Data)
	require.Len(t, *state.Data, 2)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)

	// Normalization ran: candidate records became canonical
	first := (*state.Data)[0]
	assert.Equal(t, "005930", first.Ticker)
	assert.Equal(t, domain.GradeS, first.Grade)
	assert.Equal(t, domain.SignalTypeModerateBuy, first.SignalType)
}

func TestSignalStoreFetchFailurePreservesData(t *testing.T) {
	client := &fakeClient{}
	s := newSignalStore(client)

	require.NoError(t, s.FetchSignals(context.Background()))
	require.NotNil(t, s.Signals().Data)

	client.signals = func(ctx context.Context) (*dataclient.SignalsPayload, error) {
		return nil, errors.New("backend unreachable")
	}
	require.Error(t, s.FetchSignals(context.Background()))

	state := s.Signals()
	require.NotNil(t, state.Data, "stale data must survive the failure")
	assert.Len(t, *state.Data, 2)
	assert.False(t, state.Loading)
	assert.Contains(t, state.Err, "backend unreachable")
}

func TestSignalStoreViewUsesFilterAndSort(t *testing.T) {
	s := newSignalStore(&fakeClient{})
	require.NoError(t, s.FetchSignals(context.Background()))

	// Default: score desc
	got := s.View()
	require.Len(t, got, 2)
	assert.Equal(t, "005930", got[0].Ticker)

	s.ToggleSortOrder()
	got = s.View()
	assert.Equal(t, "000660", got[0].Ticker)

	// Restrict to grade S
	grades := []domain.Grade{domain.GradeS}
	s.SetFilter(domain.FilterPatch{Grades: &grades})

	got = s.View()
	require.Len(t, got, 1)
	assert.Equal(t, "005930", got[0].Ticker)

	s.ResetFilter()
	assert.Equal(t, domain.DefaultFilter(), s.Filter())
}

func TestSignalStoreViewBeforeFirstFetch(t *testing.T) {
	s := newSignalStore(&fakeClient{})

	got := s.View()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSignalStoreSetSortKey(t *testing.T) {
	s := newSignalStore(&fakeClient{})

	s.SetSortKey(domain.SortByGrade)
	assert.Equal(t, domain.SortByGrade, s.Sort().By)
	assert.Equal(t, domain.OrderDesc, s.Sort().Order, "changing the key keeps the direction")
}

func TestSignalStoreRefreshAll(t *testing.T) {
	client := &fakeClient{
		marketGate: func(ctx context.Context) (*dataclient.MarketGate, error) {
			return nil, errors.New("gate down")
		},
	}
	s := newSignalStore(client)

	s.RefreshAll(context.Background())

	// Failures are reported per resource; successes still commit
	assert.NotNil(t, s.Signals().Data)
	assert.NotNil(t, s.BacktestKPIs().Data)
	assert.Nil(t, s.MarketGate().Data)
	assert.Contains(t, s.MarketGate().Err, "gate down")
	assert.False(t, s.Loading())

	// Price refresh trails the signal commit, scoped to the view
	prices := s.RealtimePrices()
	require.NotNil(t, prices.Data)
	assert.Len(t, *prices.Data, 2)
}

func TestSignalStoreRealtimePrices(t *testing.T) {
	s := newSignalStore(&fakeClient{})
	require.NoError(t, s.FetchSignals(context.Background()))

	require.NoError(t, s.FetchRealtimePrices(context.Background(), s.ViewTickers()))

	state := s.RealtimePrices()
	require.NotNil(t, state.Data)
	assert.Len(t, *state.Data, 2)
}
