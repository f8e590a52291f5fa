package emotion

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/julianstephens/moodlit/internal/models"
)

const topKeywordCount = 3

// Summarize aggregates the records of one month
func Summarize(year int, month time.Month, records map[string]models.EmotionRecord) models.MonthSummary {
	sum := models.MonthSummary{
		Year:        year,
		Month:       int(month),
		TopKeywords: []string{},
	}

	var moods stats.Float64Data
	counts := map[string]int{}
	for _, rec := range records {
		if rec.MoodLevel > 0 {
			moods = append(moods, float64(rec.MoodLevel))
		}
		for _, k := range rec.Keywords {
			counts[k]++
		}
	}
	sum.Count = len(records)

	if len(moods) > 0 {
		if mean, err := stats.Mean(moods); err == nil {
			sum.AverageMood, _ = stats.Round(mean, 2)
		}
		if median, err := stats.Median(moods); err == nil {
			sum.MedianMood = median
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > topKeywordCount {
		keys = keys[:topKeywordCount]
	}
	sum.TopKeywords = append(sum.TopKeywords, keys...)
	return sum
}
