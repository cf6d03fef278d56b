package meeting

import "fmt"

// DefaultHourlyRate is the per-participant hourly cost used for estimates
const DefaultHourlyRate = 100.0

// EstimateCost returns participants * hours * hourlyRate
func EstimateCost(participants, durationMinutes int, hourlyRate float64) float64 {
	return float64(participants) * (float64(durationMinutes) / 60) * hourlyRate
}

// Cost estimates the meeting cost from the current participant count and
// duration. Every participant row counts, filled in or not.
func (d Draft) Cost(hourlyRate float64) float64 {
	return EstimateCost(len(d.Participants), d.Duration, hourlyRate)
}

// FormatCost renders a cost as dollars with two decimals
func FormatCost(cost float64) string {
	return fmt.Sprintf("$%.2f", cost)
}
