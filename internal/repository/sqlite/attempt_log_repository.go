package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/tudoumono/pypuzzle/internal/logger"
	"github.com/tudoumono/pypuzzle/internal/models"
	"github.com/tudoumono/pypuzzle/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type attemptLogRepository struct {
	db *sql.DB
}

// NewAttemptLogRepository creates a new AttemptLogRepository implementation.
func NewAttemptLogRepository(db *sql.DB) repository.AttemptLogRepository {
	return &attemptLogRepository{db: db}
}

func (r *attemptLogRepository) Insert(ctx context.Context, e models.AttemptLogEntry) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_log_repo")
	log.Debug("inserting attempt: problem_id=%s, attempt_no=%d, correct=%t", e.ProblemID, e.AttemptNo, e.IsCorrect)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO attempt_log (problem_id, category_id, is_correct, points, used_hint, time_spent_sec, attempt_no, incorrect_pattern)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, e.ProblemID, e.CategoryID, e.IsCorrect, e.Points, e.UsedHint, e.TimeSpentSec, e.AttemptNo, e.IncorrectPattern)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *attemptLogRepository) List(ctx context.Context, filter models.AttemptLogFilter) ([]models.AttemptLogEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_log_repo")
	log.Debug("listing attempts: category_id=%s, problem_id=%s", filter.CategoryID, filter.ProblemID)

	query := applyAttemptFilter(sqlBuilder.
		Select("id", "problem_id", "category_id", "is_correct", "points", "used_hint", "time_spent_sec", "attempt_no", "incorrect_pattern", "logged_at").
		From("attempt_log"), filter).
		OrderBy("logged_at DESC", "id DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build attempt query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.AttemptLogEntry
	for rows.Next() {
		var e models.AttemptLogEntry
		if err := rows.Scan(&e.ID, &e.ProblemID, &e.CategoryID, &e.IsCorrect, &e.Points, &e.UsedHint, &e.TimeSpentSec, &e.AttemptNo, &e.IncorrectPattern, &e.LoggedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d attempts", len(entries))
	return entries, rows.Err()
}

func (r *attemptLogRepository) Count(ctx context.Context, filter models.AttemptLogFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_log_repo")

	sqlStr, args, err := applyAttemptFilter(sqlBuilder.Select("COUNT(*)").From("attempt_log"), filter).ToSql()
	if err != nil {
		log.Error("failed to build attempt count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func applyAttemptFilter(query squirrel.SelectBuilder, filter models.AttemptLogFilter) squirrel.SelectBuilder {
	if filter.ProblemID != "" {
		query = query.Where(squirrel.Eq{"problem_id": filter.ProblemID})
	}
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.Correct != nil {
		query = query.Where(squirrel.Eq{"is_correct": *filter.Correct})
	}
	return query
}
