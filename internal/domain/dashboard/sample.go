package dashboard

import (
	"crypto/md5"
	"encoding/binary"
	"math"
)

var sampleUsers = []User{
	{
		Alias:      "jsmith",
		Name:       "John Smith",
		JobTitle:   "Senior Solutions Architect",
		StaffLevel: "L6",
		Supervisor: "manager1",
		Region:     "US East",
	},
	{
		Alias:      "mjohnson",
		Name:       "Mary Johnson",
		JobTitle:   "Principal Solutions Architect",
		StaffLevel: "L7",
		Supervisor: "manager1",
		Region:     "US West",
	},
	{
		Alias:      "rbrown",
		Name:       "Robert Brown",
		JobTitle:   "Solutions Architect",
		StaffLevel: "L5",
		Supervisor: "manager2",
		Region:     "US Central",
	},
}

type metricTemplate struct {
	name         string
	displayName  string
	annualTarget float64
	metricType   string
}

var sampleMetricTemplates = []metricTemplate{
	{name: "revenue_target", displayName: "Revenue Target", annualTarget: 1000000, metricType: MetricTypeCurrency},
	{name: "customer_engagements", displayName: "Customer Engagements", annualTarget: 50, metricType: MetricTypeCount},
	{name: "win_rate", displayName: "Win Rate", annualTarget: 70, metricType: MetricTypePercentage},
}

const sampleTeamSize = 2

// SampleUsers returns the canonical sample users in fixed order. The slice is
// a fresh copy on every call.
func SampleUsers() []User {
	out := make([]User, len(sampleUsers))
	copy(out, sampleUsers)
	return out
}

// LookupUserInfo returns the identity block for alias. Unknown aliases get the
// first sample user rather than an error.
func LookupUserInfo(alias string) UserInfo {
	user := sampleUsers[0]
	for _, candidate := range sampleUsers {
		if candidate.Alias == alias {
			user = candidate
			break
		}
	}
	return UserInfo{
		UserAlias:  user.Alias,
		UserName:   user.Name,
		JobTitle:   user.JobTitle,
		StaffLevel: user.StaffLevel,
		Supervisor: user.Supervisor,
	}
}

// SampleUserDashboard derives a stable dashboard for alias. Actual values land
// between 75% and 90% of target depending on the alias hash.
func SampleUserDashboard(alias string) UserDashboard {
	variation := float64(aliasHash(alias)%30) / 100

	metrics := make([]Metric, 0, len(sampleMetricTemplates))
	for _, tmpl := range sampleMetricTemplates {
		actual := math.Floor(tmpl.annualTarget * (0.75 + variation*0.5))
		metrics = append(metrics, Metric{
			MetricName:        tmpl.name,
			DisplayName:       tmpl.displayName,
			AnnualTarget:      tmpl.annualTarget,
			ActualValue:       actual,
			AttainmentPercent: Attainment(actual, tmpl.annualTarget),
			MetricType:        tmpl.metricType,
		})
	}

	return UserDashboard{
		UserInfo: LookupUserInfo(alias),
		Metrics:  metrics,
	}
}

// SampleTeam returns the first two sample users as team members. The manager
// alias does not filter the roster.
func SampleTeam(managerAlias string) []TeamMember {
	members := make([]TeamMember, 0, sampleTeamSize)
	for _, user := range sampleUsers[:sampleTeamSize] {
		members = append(members, TeamMember{
			UserAlias:         user.Alias,
			Name:              user.Name,
			JobTitle:          user.JobTitle,
			OverallAttainment: 85.0 + float64(aliasHash(user.Alias)%20),
			MetricsCount:      3,
			OnTrackMetrics:    2,
			AtRiskMetrics:     1,
		})
	}
	return members
}

// Attainment returns actual as a percentage of target, or 0 when the target
// is not positive or the ratio is not finite.
func Attainment(actual, target float64) float64 {
	if target <= 0 || math.IsInf(target, 0) {
		return 0
	}
	return finite(actual / target * 100)
}

// aliasHash is the first 32 bits of the MD5 digest of alias, big endian.
func aliasHash(alias string) uint32 {
	sum := md5.Sum([]byte(alias))
	return binary.BigEndian.Uint32(sum[:4])
}
