package dashboard

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FormatMetric maps a stored metric item onto the canonical Metric. Missing
// numbers become 0, a missing metric type becomes "count".
func FormatMetric(rec Record) Metric {
	return Metric{
		MetricName:        rec.Text("metric_name"),
		DisplayName:       rec.Text("display_name"),
		ActualValue:       rec.Float("actual_value"),
		AnnualTarget:      rec.Float("annual_target"),
		AttainmentPercent: rec.Float("attainment_percent"),
		MetricType:        rec.TextOr("metric_type", MetricTypeCount),
	}
}

func FormatMetrics(records []Record) []Metric {
	metrics := make([]Metric, 0, len(records))
	for _, rec := range records {
		metrics = append(metrics, FormatMetric(rec))
	}
	return metrics
}

func UserFromRecord(rec Record) User {
	return User{
		Alias:      rec.Text("alias"),
		Name:       rec.Text("name"),
		JobTitle:   rec.Text("job_title"),
		StaffLevel: rec.Text("staff_level"),
		Supervisor: rec.Text("supervisor"),
		Region:     rec.Text("region"),
	}
}

func UsersFromRecords(records []Record) []User {
	users := make([]User, 0, len(records))
	for _, rec := range records {
		users = append(users, UserFromRecord(rec))
	}
	return users
}

// TeamMemberFromRecord accepts both user items (keyed by "alias") and
// precomputed member items (keyed by "user_alias").
func TeamMemberFromRecord(rec Record) TeamMember {
	alias := rec.Text("user_alias")
	if alias == "" {
		alias = rec.Text("alias")
	}
	return TeamMember{
		UserAlias:         alias,
		Name:              rec.Text("name"),
		JobTitle:          rec.Text("job_title"),
		OverallAttainment: rec.Float("overall_attainment"),
		MetricsCount:      rec.Int("metrics_count"),
		OnTrackMetrics:    rec.Int("on_track_metrics"),
		AtRiskMetrics:     rec.Int("at_risk_metrics"),
	}
}

func TeamMembersFromRecords(records []Record) []TeamMember {
	members := make([]TeamMember, 0, len(records))
	for _, rec := range records {
		members = append(members, TeamMemberFromRecord(rec))
	}
	return members
}

func (r Record) Text(key string) string {
	return r.TextOr(key, "")
}

func (r Record) TextOr(key, fallback string) string {
	value, ok := r[key]
	if !ok || value == nil {
		return fallback
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fallback
	}
}

// Float coerces the value at key to a finite number. Missing, unparsable,
// NaN and infinite values read as 0.
func (r Record) Float(key string) float64 {
	value, ok := r[key]
	if !ok || value == nil {
		return 0
	}
	return finite(toFloat(value))
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (r Record) Int(key string) int {
	return int(r.Float(key))
}
