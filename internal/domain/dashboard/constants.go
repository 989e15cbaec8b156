package dashboard

const (
	MetricTypeCurrency   = "currency"
	MetricTypeCount      = "count"
	MetricTypePercentage = "percentage"
)

const (
	// OnTrackThreshold is the overall attainment at or above which a team
	// member counts as on track.
	OnTrackThreshold = 80.0

	DefaultUsersLimit = 100
)
