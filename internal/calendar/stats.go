package calendar

import (
	"math"
	"sort"
)

// Statistics is a snapshot of a daily distribution, computed over days with
// at least one commit (all-zero windows yield the zero value). Min and Max
// likewise describe commit days only; a window full of zero days has no
// meaningful minimum.
type Statistics struct {
	Total           int     `json:"total"`
	DaysWithCommits int     `json:"days_with_commits"`
	Mean            float64 `json:"mean"`
	Median          float64 `json:"median"`
	StdDev          float64 `json:"std_dev"`
	Min             int     `json:"min"`
	Max             int     `json:"max"`
	Coverage        float64 `json:"coverage"`
}

// Compute derives Statistics from a histogram. Pure; safe on empty input.
func Compute(h *Histogram) Statistics {
	var counts []int
	for _, d := range h.Days() {
		if d.Count > 0 {
			counts = append(counts, d.Count)
		}
	}
	if len(counts) == 0 {
		return Statistics{}
	}

	stats := Statistics{
		DaysWithCommits: len(counts),
		Min:             counts[0],
		Max:             counts[0],
	}
	for _, c := range counts {
		stats.Total += c
		if c < stats.Min {
			stats.Min = c
		}
		if c > stats.Max {
			stats.Max = c
		}
	}
	stats.Mean = float64(stats.Total) / float64(len(counts))
	stats.Median = median(counts)
	stats.StdDev = stdDev(counts, stats.Mean)
	if h.Len() > 0 {
		stats.Coverage = float64(len(counts)) / float64(h.Len())
	}
	return stats
}

func median(counts []int) float64 {
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// stdDev is the sample standard deviation, matching what a statistics
// library reports for the same counts. Zero when fewer than two samples.
func stdDev(counts []int, mean float64) float64 {
	if len(counts) < 2 {
		return 0
	}
	var sum float64
	for _, c := range counts {
		diff := float64(c) - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(counts)-1))
}
