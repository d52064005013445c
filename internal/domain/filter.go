package domain

// Score bounds of the 12-point checklist scale
const (
	MinScoreBound = 0
	MaxScoreBound = 12
)

// SignalTypeAll is the sentinel meaning "no type restriction"
const SignalTypeAll = "all"

// SortKey selects the field a signal list is ordered by
type SortKey string

const (
	SortByScore     SortKey = "score"
	SortByGrade     SortKey = "grade"
	SortByCreatedAt SortKey = "created_at"
)

// SortOrder is the direction of a sort
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// FilterSpec describes which signals pass into the derived view.
// All active predicates are conjunctive.
type FilterSpec struct {
	// Grades is the set of allowed grades. Empty means no restriction.
	Grades []Grade `json:"grades"`

	// Inclusive score bounds
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`

	// Exact-match signal type, or SignalTypeAll
	SignalType string `json:"signal_type"`
}

// DefaultFilter returns the unrestricted filter
func DefaultFilter() FilterSpec {
	return FilterSpec{
		Grades:     []Grade{},
		MinScore:   MinScoreBound,
		MaxScore:   MaxScoreBound,
		SignalType: SignalTypeAll,
	}
}

// Matches reports whether a signal passes every active predicate
func (f FilterSpec) Matches(sig *Signal) bool {
	if len(f.Grades) > 0 {
		found := false
		for _, g := range f.Grades {
			if sig.Grade == g {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	score := sig.TotalScore()
	if score < f.MinScore || score > f.MaxScore {
		return false
	}

	if f.SignalType != SignalTypeAll && sig.SignalType != f.SignalType {
		return false
	}

	return true
}

// FilterPatch is a partial update to a FilterSpec.
// nil 필드는 기존 값 유지
type FilterPatch struct {
	Grades     *[]Grade `json:"grades,omitempty"`
	MinScore   *float64 `json:"min_score,omitempty"`
	MaxScore   *float64 `json:"max_score,omitempty"`
	SignalType *string  `json:"signal_type,omitempty"`
}

// Merge applies a patch on top of the spec and returns the result
func (f FilterSpec) Merge(p FilterPatch) FilterSpec {
	if p.Grades != nil {
		f.Grades = *p.Grades
	}
	if p.MinScore != nil {
		f.MinScore = *p.MinScore
	}
	if p.MaxScore != nil {
		f.MaxScore = *p.MaxScore
	}
	if p.SignalType != nil {
		f.SignalType = *p.SignalType
	}
	return f
}

// SortSpec describes the ordering of the derived view
type SortSpec struct {
	By    SortKey   `json:"sort_by"`
	Order SortOrder `json:"order"`
}

// DefaultSort returns the default ordering: highest score first
func DefaultSort() SortSpec {
	return SortSpec{By: SortByScore, Order: OrderDesc}
}

// Toggle flips the sort direction
func (s SortSpec) Toggle() SortSpec {
	if s.Order == OrderAsc {
		s.Order = OrderDesc
	} else {
		s.Order = OrderAsc
	}
	return s
}
