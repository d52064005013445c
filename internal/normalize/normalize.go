// Package normalize reconciles raw backend signal payloads into the
// canonical Signal shape. Two shapes exist in the wild: the current
// backend returns fully-shaped signals (recognizable by a checks
// array), older scanners return flat candidate records. Normalization
// is pure and total: malformed fields degrade to documented defaults,
// it never fails.
package normalize

import (
	"encoding/json"
	"time"

	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/internal/domain"
)

// Signal type inference thresholds on the resolved total score
const (
	strongBuyThreshold = 80
	buyThreshold       = 60
)

// Signals maps a raw payload to canonical signals.
// Input order is preserved; no deduplication.
func Signals(payload *dataclient.SignalsPayload, now time.Time) []domain.Signal {
	if payload == nil {
		return []domain.Signal{}
	}

	// Prefer the field already holding canonical signals,
	// fall back to candidate records.
	records := payload.Signals
	if len(records) == 0 {
		records = payload.Candidates
	}
	if len(records) == 0 {
		return []domain.Signal{}
	}

	if isCanonical(records) {
		return passThrough(records, now)
	}

	out := make([]domain.Signal, 0, len(records))
	for _, raw := range records {
		out = append(out, reconcile(raw, now))
	}
	return out
}

// isCanonical detects the canonical shape: at least one element
// carries a checks field that is itself an array.
func isCanonical(records []json.RawMessage) bool {
	for _, raw := range records {
		var probe struct {
			Checks json.RawMessage `json:"checks"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			continue
		}
		if len(probe.Checks) > 0 && probe.Checks[0] == '[' {
			return true
		}
	}
	return false
}

// passThrough decodes already-canonical signals. Canonical values are
// fixed points of the grade/market/timestamp defaults, so running a
// normalized list back through here changes nothing.
func passThrough(records []json.RawMessage, now time.Time) []domain.Signal {
	out := make([]domain.Signal, 0, len(records))
	for _, raw := range records {
		var sig domain.Signal
		// Decode errors leave a zero Signal; defaults below still apply
		_ = json.Unmarshal(raw, &sig)

		sig.Grade = domain.NormalizeGrade(string(sig.Grade))
		sig.Market = domain.NormalizeMarket(string(sig.Market))
		if sig.DetectedAt.IsZero() {
			sig.DetectedAt = now
		}
		if sig.Checks == nil {
			sig.Checks = []domain.Check{}
		}
		out = append(out, sig)
	}
	return out
}

// candidateRecord is the flat shape produced by older scanners
type candidateRecord struct {
	Ticker       string         `json:"ticker"`
	Name         string         `json:"name"`
	Market       string         `json:"market"`
	Grade        string         `json:"grade"`
	TotalScore   *float64       `json:"total_score"`
	Score        *float64       `json:"score"`
	SignalType   string         `json:"signal_type"`
	EntryPrice   *float64       `json:"entry_price"`
	TargetPrice  *float64       `json:"target_price"`
	StopLoss     *float64       `json:"stop_loss"`
	Price        *float64       `json:"price"`
	CurrentPrice *float64       `json:"current_price"`
	DetectedAt   string         `json:"detected_at"`
	ScannedAt    string         `json:"scanned_at"`
	Checks       []domain.Check `json:"checks"`
}

// reconcile maps one candidate record to a canonical signal
func reconcile(raw json.RawMessage, now time.Time) domain.Signal {
	var rec candidateRecord
	// Malformed records degrade to defaults instead of failing
	_ = json.Unmarshal(raw, &rec)

	total := firstFloat(rec.TotalScore, rec.Score)

	signalType := rec.SignalType
	if signalType == "" {
		signalType = inferSignalType(total)
	}

	// 주의: 티커 접두사 기반 시장 추론(domain.InferMarketFromTicker)은
	// 기본 경로에서 사용하지 않음
	market := domain.NormalizeMarket(rec.Market)

	detectedAt := firstTime(now, rec.DetectedAt, rec.ScannedAt)

	checks := rec.Checks
	if checks == nil {
		checks = []domain.Check{}
	}

	return domain.Signal{
		Ticker:       rec.Ticker,
		Name:         rec.Name,
		Market:       market,
		Score:        domain.Score{Total: total},
		Grade:        domain.NormalizeGrade(rec.Grade),
		SignalType:   signalType,
		EntryPrice:   rec.EntryPrice,
		TargetPrice:  rec.TargetPrice,
		StopLoss:     rec.StopLoss,
		CurrentPrice: firstPtr(rec.Price, rec.CurrentPrice),
		DetectedAt:   detectedAt,
		Checks:       checks,
	}
}

// inferSignalType derives a classifier from the total score
func inferSignalType(total float64) string {
	switch {
	case total >= strongBuyThreshold:
		return domain.SignalTypeStrongBuy
	case total >= buyThreshold:
		return domain.SignalTypeBuy
	default:
		return domain.SignalTypeModerateBuy
	}
}

// firstFloat returns the first defined value, defaulting to 0
func firstFloat(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

// firstPtr returns the first non-nil pointer
func firstPtr(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// firstTime parses the first resolvable timestamp, defaulting to now
func firstTime(now time.Time, values ...string) time.Time {
	for _, v := range values {
		if v == "" {
			continue
		}
		if ts, ok := parseTimestamp(v); ok {
			return ts
		}
	}
	return now
}

// parseTimestamp accepts the ISO-8601 variants the backends emit
func parseTimestamp(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
