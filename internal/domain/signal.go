package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Market represents the exchange a stock trades on
type Market string

const (
	MarketKOSPI  Market = "KOSPI"
	MarketKOSDAQ Market = "KOSDAQ"
)

// NormalizeMarket maps arbitrary input to a canonical market.
// 잘못된 값은 KOSPI로 처리
func NormalizeMarket(raw string) Market {
	switch Market(strings.ToUpper(strings.TrimSpace(raw))) {
	case MarketKOSDAQ:
		return MarketKOSDAQ
	case MarketKOSPI:
		return MarketKOSPI
	default:
		return MarketKOSPI
	}
}

// InferMarketFromTicker guesses the market from the ticker prefix.
// Not wired into default reconciliation; kept as an explicit fallback
// for callers that have no market field at all.
func InferMarketFromTicker(ticker string) Market {
	// KOSDAQ codes cluster in the 2xxxxx / 3xxxxx ranges
	if len(ticker) == 6 {
		switch ticker[0] {
		case '2', '3':
			return MarketKOSDAQ
		}
	}
	return MarketKOSPI
}

// Grade is the ordinal signal grade, S highest
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// NormalizeGrade maps arbitrary input to a canonical grade.
// 잘못된 값은 최하위 등급 C로 처리
func NormalizeGrade(raw string) Grade {
	switch Grade(strings.ToUpper(strings.TrimSpace(raw))) {
	case GradeS:
		return GradeS
	case GradeA:
		return GradeA
	case GradeB:
		return GradeB
	default:
		return GradeC
	}
}

// Rank returns the ordinal rank of a grade (higher = better)
func (g Grade) Rank() int {
	switch g {
	case GradeS:
		return 4
	case GradeA:
		return 3
	case GradeB:
		return 2
	default:
		return 1
	}
}

// Signal type classifiers inferred from score when absent
const (
	SignalTypeStrongBuy   = "STRONG_BUY"
	SignalTypeBuy         = "BUY"
	SignalTypeModerateBuy = "MODERATE_BUY"
)

// Score holds a signal score that may arrive as a plain number
// or as a decomposed breakdown carrying its own total.
type Score struct {
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// UnmarshalJSON accepts either a scalar or a breakdown object
func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = Score{}
		return nil
	}

	if !strings.HasPrefix(trimmed, "{") {
		var total float64
		if err := json.Unmarshal(data, &total); err != nil {
			// Malformed scores degrade to zero instead of failing
			*s = Score{}
			return nil
		}
		*s = Score{Total: total}
		return nil
	}

	type scoreAlias Score
	var alias scoreAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		*s = Score{}
		return nil
	}
	*s = Score(alias)
	return nil
}

// Check is a single boolean-ish evaluation result from the scanner
type Check struct {
	Name   string `json:"name,omitempty"`
	Passed bool   `json:"passed"`
}

// UnmarshalJSON accepts a bare bool, a 0/1 number, a truthy string,
// or a {name, passed} object.
func (c *Check) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))

	if strings.HasPrefix(trimmed, "{") {
		type checkAlias Check
		var alias checkAlias
		if err := json.Unmarshal(data, &alias); err != nil {
			*c = Check{}
			return nil
		}
		*c = Check(alias)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*c = Check{Passed: b}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Check{Passed: n != 0}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		switch strings.ToUpper(strings.TrimSpace(str)) {
		case "TRUE", "Y", "YES", "1", "PASS", "O":
			*c = Check{Passed: true}
		default:
			*c = Check{Passed: false}
		}
		return nil
	}

	*c = Check{}
	return nil
}

// Signal is the canonical, UI-ready representation of a trading signal
// ⭐ SSOT: 시그널 데이터 구조는 여기서만 정의
type Signal struct {
	Ticker       string    `json:"ticker"`
	Name         string    `json:"name,omitempty"`
	Market       Market    `json:"market"`
	Score        Score     `json:"score"`
	Grade        Grade     `json:"grade"`
	SignalType   string    `json:"signal_type"`
	EntryPrice   *float64  `json:"entry_price,omitempty"`
	TargetPrice  *float64  `json:"target_price,omitempty"`
	StopLoss     *float64  `json:"stop_loss,omitempty"`
	CurrentPrice *float64  `json:"current_price,omitempty"`
	DetectedAt   time.Time `json:"detected_at"`
	Checks       []Check   `json:"checks"`
}

// TotalScore returns the single comparable score used for
// filtering and sorting.
func (s *Signal) TotalScore() float64 {
	return s.Score.Total
}

// PassedChecks counts the checks that passed
func (s *Signal) PassedChecks() int {
	count := 0
	for _, c := range s.Checks {
		if c.Passed {
			count++
		}
	}
	return count
}
