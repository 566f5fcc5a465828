package services

import (
	"context"

	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

type SummaryReader interface {
	ProjectStatusCounts(ctx context.Context, ownerID uint, identityID uint) ([]db.StatusCount, error)
	TaskDifficultyCounts(ctx context.Context, projectID uint) ([]db.DifficultyCount, error)
}

type ProjectSummary struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type DifficultySummary struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
}

type TaskSummary struct {
	Total        int64                        `json:"total"`
	Completed    int64                        `json:"completed"`
	ByDifficulty map[string]DifficultySummary `json:"by_difficulty"`
}

// SummaryService aggregates dashboard counts for an identity or a project.
type SummaryService struct {
	reader   SummaryReader
	projects *ProjectService
}

func NewSummaryService(reader SummaryReader, projects *ProjectService) *SummaryService {
	return &SummaryService{reader: reader, projects: projects}
}

func (service *SummaryService) ProjectSummary(ctx context.Context, ownerID uint, identityID uint) (ProjectSummary, error) {
	summary := ProjectSummary{ByStatus: map[string]int64{
		models.StatusNotStarted: 0,
		models.StatusInProgress: 0,
		models.StatusCompleted:  0,
	}}
	if service.reader == nil {
		return ProjectSummary{}, storeFailure("loading project summary", errSummaryUnavailable)
	}

	counts, err := service.reader.ProjectStatusCounts(ctx, ownerID, identityID)
	if err != nil {
		return ProjectSummary{}, storeFailure("loading project summary", err)
	}
	for _, count := range counts {
		summary.ByStatus[count.Status] += count.Total
		summary.Total += count.Total
	}
	return summary, nil
}

func (service *SummaryService) TaskSummary(ctx context.Context, ownerID uint, projectID uint) (TaskSummary, error) {
	if _, err := service.projects.GetProject(ownerID, projectID); err != nil {
		return TaskSummary{}, err
	}

	summary := TaskSummary{ByDifficulty: map[string]DifficultySummary{
		models.DifficultyEasy:   {},
		models.DifficultyMedium: {},
		models.DifficultyHard:   {},
	}}
	if service.reader == nil {
		return TaskSummary{}, storeFailure("loading task summary", errSummaryUnavailable)
	}

	counts, err := service.reader.TaskDifficultyCounts(ctx, projectID)
	if err != nil {
		return TaskSummary{}, storeFailure("loading task summary", err)
	}
	for _, count := range counts {
		summary.ByDifficulty[count.Difficulty] = DifficultySummary{Total: count.Total, Completed: count.Completed}
		summary.Total += count.Total
		summary.Completed += count.Completed
	}
	return summary, nil
}
