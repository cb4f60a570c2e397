// Package stats aggregates saved timetable history into the review views: a
// contribution-style series of per-day completion counts and per-subject
// completed-minute totals. Aggregation reads raw saved records, not the
// merged cache view.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/julianstephens/timegrid/internal/dateutil"
	"github.com/julianstephens/timegrid/internal/models"
	"github.com/julianstephens/timegrid/internal/storage"
)

// ContributionDays is the history window: 20 weeks.
const ContributionDays = 140

// DayData is one cell of the contribution series.
type DayData struct {
	DateString     string
	CompletedCount int
	TotalSlots     int
}

// SubjectStat is the accumulated completed time for one subject.
type SubjectStat struct {
	ID           string
	Name         string
	ColorIndex   int
	TotalMinutes int
}

// Summary holds both review aggregates.
type Summary struct {
	Days     []DayData
	Subjects []SubjectStat
}

// Load fetches the last ContributionDays of history ending at baseDate and
// aggregates it. Days with no saved record show zero completions over the
// configured slot count. Subjects with no completed minutes are omitted;
// the rest sort by total descending.
func Load(ctx context.Context, repo storage.Provider, userID string, baseDate time.Time) (Summary, error) {
	slotsPerDay, ok, err := repo.FetchSlotsPerDay(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	if !ok {
		slotsPerDay = models.DefaultSlotsPerDay
	}
	slotsPerDay = models.ClampSlotsPerDay(slotsPerDay)

	subjects, err := repo.FetchSubjects(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	dateStrings := dateutil.LastNDays(ContributionDays, baseDate)
	records, err := repo.FetchMany(ctx, userID, dateStrings)
	if err != nil {
		return Summary{}, err
	}

	days := make([]DayData, 0, len(dateStrings))
	for _, dateString := range dateStrings {
		if record, ok := records[dateString]; ok {
			days = append(days, DayData{
				DateString:     dateString,
				CompletedCount: record.CompletedCount(),
				TotalSlots:     len(record.Slots),
			})
		} else {
			days = append(days, DayData{
				DateString: dateString,
				TotalSlots: slotsPerDay,
			})
		}
	}

	totals := make(map[string]int)
	for _, record := range records {
		for _, slot := range record.Slots {
			if slot.IsCompleted && slot.SubjectID != nil {
				totals[*slot.SubjectID] += slot.Minutes
			}
		}
	}

	subjectStats := make([]SubjectStat, 0, len(subjects))
	for _, subject := range subjects {
		minutes := totals[subject.ID]
		if minutes <= 0 {
			continue
		}
		subjectStats = append(subjectStats, SubjectStat{
			ID:           subject.ID,
			Name:         subject.Name,
			ColorIndex:   subject.ColorIndex,
			TotalMinutes: minutes,
		})
	}
	sort.SliceStable(subjectStats, func(i, j int) bool {
		return subjectStats[i].TotalMinutes > subjectStats[j].TotalMinutes
	})

	return Summary{Days: days, Subjects: subjectStats}, nil
}
