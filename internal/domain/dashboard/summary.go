package dashboard

import "strconv"

// Summarize rolls a team roster up into a TeamSummary.
func Summarize(members []TeamMember) TeamSummary {
	if len(members) == 0 {
		return TeamSummary{}
	}

	var total float64
	onTrack := 0
	for _, member := range members {
		total += member.OverallAttainment
		if member.OverallAttainment >= OnTrackThreshold {
			onTrack++
		}
	}

	return TeamSummary{
		TotalMembers:   len(members),
		AvgAttainment:  roundOneDecimal(total / float64(len(members))),
		MembersOnTrack: onTrack,
		MembersAtRisk:  len(members) - onTrack,
	}
}

// roundOneDecimal rounds on the exact decimal expansion, ties to even.
func roundOneDecimal(value float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(value, 'f', 1, 64), 64)
	if err != nil {
		return value
	}
	return rounded
}
