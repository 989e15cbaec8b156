package dashboard

type User struct {
	Alias      string `json:"alias"`
	Name       string `json:"name"`
	JobTitle   string `json:"job_title"`
	StaffLevel string `json:"staff_level"`
	Supervisor string `json:"supervisor"`
	Region     string `json:"region"`
}

type Metric struct {
	MetricName        string  `json:"metric_name"`
	DisplayName       string  `json:"display_name"`
	AnnualTarget      float64 `json:"annual_target"`
	ActualValue       float64 `json:"actual_value"`
	AttainmentPercent float64 `json:"attainment_percent"`
	MetricType        string  `json:"metric_type"`
}

type TeamMember struct {
	UserAlias         string  `json:"user_alias"`
	Name              string  `json:"name"`
	JobTitle          string  `json:"job_title"`
	OverallAttainment float64 `json:"overall_attainment"`
	MetricsCount      int     `json:"metrics_count"`
	OnTrackMetrics    int     `json:"on_track_metrics"`
	AtRiskMetrics     int     `json:"at_risk_metrics"`
}

type TeamSummary struct {
	TotalMembers   int     `json:"total_members"`
	AvgAttainment  float64 `json:"avg_attainment"`
	MembersOnTrack int     `json:"members_on_track"`
	MembersAtRisk  int     `json:"members_at_risk"`
}

// UserInfo is the identity block embedded at the top of a user dashboard.
type UserInfo struct {
	UserAlias  string `json:"user_alias"`
	UserName   string `json:"user_name"`
	JobTitle   string `json:"job_title"`
	StaffLevel string `json:"staff_level"`
	Supervisor string `json:"supervisor"`
}

type UserDashboard struct {
	UserInfo
	Metrics []Metric `json:"metrics"`
}

type TeamDashboard struct {
	ManagerAlias string       `json:"manager_alias"`
	TeamSummary  TeamSummary  `json:"team_summary"`
	TeamMembers  []TeamMember `json:"team_members"`
}

type UserList struct {
	Users []User `json:"users"`
}

// Record is an item as read from a backing store. Field types depend on the
// backend, so every accessor tolerates missing or oddly typed values.
type Record map[string]any
