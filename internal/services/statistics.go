package services

import (
	"time"

	"github.com/swapnilgupta14/synapse-api/internal/constants"
	"github.com/swapnilgupta14/synapse-api/internal/models"
)

// TaskStatistics is a point-in-time snapshot derived from the active task
// collection. Nothing here is maintained incrementally.
type TaskStatistics struct {
	Total              int            `json:"total"`
	Completed          int            `json:"completed"`
	Pending            int            `json:"pending"`
	HighPriority       int            `json:"high_priority"`
	Overdue            int            `json:"overdue"`
	PerTeam            map[uint64]int `json:"per_team"`
	PerProject         map[uint64]int `json:"per_project"`
	PerCategory        map[string]int `json:"per_category"`
	AvgCompletionHours float64        `json:"avg_completion_hours"`
	Trend              []TrendPoint   `json:"trend"`
}

// TrendPoint is one day of the completion/creation trend.
type TrendPoint struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Created   int    `json:"created"`
}

// ComputeStatistics derives the statistics snapshot from tasks as of now.
// The trend covers the preceding seven calendar days inclusive of today,
// oldest first, grouping on the date portion of CompletedAt and CreatedAt.
func ComputeStatistics(tasks []models.Task, now time.Time) *TaskStatistics {
	stats := &TaskStatistics{
		PerTeam:     make(map[uint64]int),
		PerProject:  make(map[uint64]int),
		PerCategory: make(map[string]int),
	}

	var completionHours float64
	var completedWithTimes int

	completedByDay := make(map[string]int)
	createdByDay := make(map[string]int)

	for i := range tasks {
		t := &tasks[i]
		stats.Total++

		switch t.Status {
		case models.TaskStatusCompleted:
			stats.Completed++
		case models.TaskStatusPending:
			stats.Pending++
		}
		if t.Priority == models.TaskPriorityHigh {
			stats.HighPriority++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		if t.TeamID != nil {
			stats.PerTeam[*t.TeamID]++
		}
		if t.ProjectID != nil {
			stats.PerProject[*t.ProjectID]++
		}
		if t.Category != "" {
			stats.PerCategory[t.Category]++
		}

		if t.CompletedAt != nil {
			completionHours += t.CompletedAt.Sub(t.CreatedAt).Hours()
			completedWithTimes++
			completedByDay[t.CompletedAt.Format("2006-01-02")]++
		}
		createdByDay[t.CreatedAt.Format("2006-01-02")]++
	}

	if completedWithTimes > 0 {
		stats.AvgCompletionHours = completionHours / float64(completedWithTimes)
	}

	stats.Trend = make([]TrendPoint, 0, constants.TrendDays)
	for i := constants.TrendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		stats.Trend = append(stats.Trend, TrendPoint{
			Date:      day,
			Completed: completedByDay[day],
			Created:   createdByDay[day],
		})
	}

	return stats
}
