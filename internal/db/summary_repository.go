package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type StatusCount struct {
	Status string `db:"status"`
	Total  int64  `db:"total"`
}

type DifficultyCount struct {
	Difficulty string `db:"difficulty"`
	Total      int64  `db:"total"`
	Completed  int64  `db:"completed"`
}

// SummaryRepository serves aggregate dashboard reads straight from SQL.
type SummaryRepository struct {
	database *sqlx.DB
	builder  squirrel.StatementBuilderType
}

func NewSummaryRepository(database *sql.DB) *SummaryRepository {
	return &SummaryRepository{
		database: sqlx.NewDb(database, "sqlite"),
		builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (repo *SummaryRepository) ProjectStatusCounts(ctx context.Context, ownerID uint, identityID uint) ([]StatusCount, error) {
	query, args, err := repo.builder.
		Select("status", "COUNT(*) AS total").
		From("projects").
		Where(squirrel.Eq{"owner_id": ownerID, "identity_id": identityID}).
		GroupBy("status").
		OrderBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project status counts: %w", err)
	}

	counts := make([]StatusCount, 0)
	if err := repo.database.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("load project status counts: %w", err)
	}
	return counts, nil
}

func (repo *SummaryRepository) TaskDifficultyCounts(ctx context.Context, projectID uint) ([]DifficultyCount, error) {
	query, args, err := repo.builder.
		Select("difficulty", "COUNT(*) AS total", "SUM(CASE WHEN is_complete = 1 THEN 1 ELSE 0 END) AS completed").
		From("tasks").
		Where(squirrel.Eq{"project_id": projectID}).
		GroupBy("difficulty").
		OrderBy("difficulty").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build task difficulty counts: %w", err)
	}

	counts := make([]DifficultyCount, 0)
	if err := repo.database.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("load task difficulty counts: %w", err)
	}
	return counts, nil
}
