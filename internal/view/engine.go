// Package view computes derived, read-only signal views.
// 파생 뷰는 캐시하지 않고 매 호출마다 재계산
package view

import (
	"sort"

	"github.com/wonny/signaldeck/internal/domain"
)

// Apply filters and sorts signals without mutating the input.
// Ties preserve original relative order (stable sort); UI row
// identity depends on this across re-renders.
func Apply(signals []domain.Signal, filter domain.FilterSpec, spec domain.SortSpec) []domain.Signal {
	out := make([]domain.Signal, 0, len(signals))
	for i := range signals {
		if filter.Matches(&signals[i]) {
			out = append(out, signals[i])
		}
	}

	Sort(out, spec)
	return out
}

// Sort orders signals in place by the selected key, stable
func Sort(signals []domain.Signal, spec domain.SortSpec) {
	cmp := comparator(spec.By)

	sort.SliceStable(signals, func(i, j int) bool {
		c := cmp(&signals[i], &signals[j])
		if spec.Order == domain.OrderDesc {
			return c > 0
		}
		return c < 0
	})
}

// comparator returns a three-way compare for the sort key
func comparator(key domain.SortKey) func(a, b *domain.Signal) int {
	switch key {
	case domain.SortByGrade:
		return func(a, b *domain.Signal) int {
			return a.Grade.Rank() - b.Grade.Rank()
		}
	case domain.SortByCreatedAt:
		return func(a, b *domain.Signal) int {
			switch {
			case a.DetectedAt.Before(b.DetectedAt):
				return -1
			case a.DetectedAt.After(b.DetectedAt):
				return 1
			default:
				return 0
			}
		}
	default: // SortByScore
		return func(a, b *domain.Signal) int {
			switch {
			case a.TotalScore() < b.TotalScore():
				return -1
			case a.TotalScore() > b.TotalScore():
				return 1
			default:
				return 0
			}
		}
	}
}
