package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// EvaluationRecord represents a stored evaluation row.
type EvaluationRecord struct {
	ID          int64
	UUID        string
	ProductName string
	BIOSVersion string
	ProductType int
	Category    string
	Passed      int
	Failed      int
	EvaluatedAt time.Time
	StoredAt    time.Time
	ReportJSON  string
}

// ListFilter holds optional query parameters for listing evaluations.
type ListFilter struct {
	ProductName     string
	ProductType     int
	FailingOnly     bool
	EvaluatedAfter  *time.Time
	EvaluatedBefore *time.Time
	PageSize        int
	Page            int
}

// Store provides CRUD operations for evaluation records.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores an evaluation record and returns the new ID and stored_at time.
func (s *Store) Insert(ctx context.Context, rec *EvaluationRecord) (int64, time.Time, error) {
	storedAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (uuid, product_name, bios_version, product_type, category, passed, failed, evaluated_at, stored_at, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UUID,
		rec.ProductName,
		rec.BIOSVersion,
		rec.ProductType,
		rec.Category,
		rec.Passed,
		rec.Failed,
		rec.EvaluatedAt.UTC().Format(time.RFC3339),
		storedAt.Format(time.RFC3339),
		rec.ReportJSON,
	)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("insert evaluation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("get last insert id: %w", err)
	}

	return id, storedAt, nil
}

const selectColumns = `id, uuid, product_name, bios_version, product_type, category, passed, failed, evaluated_at, stored_at`

// Get retrieves an evaluation record by UUID. It returns sql.ErrNoRows when
// no such evaluation exists.
func (s *Store) Get(ctx context.Context, uuid string) (*EvaluationRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+`, report_json FROM evaluations WHERE uuid = ?`, uuid)

	return scanRecord(row)
}

// LatestByProduct retrieves the most recent evaluation for a product name.
func (s *Store) LatestByProduct(ctx context.Context, productName string) (*EvaluationRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+`, report_json FROM evaluations
		 WHERE product_name = ? ORDER BY evaluated_at DESC, id DESC LIMIT 1`, productName)

	return scanRecord(row)
}

// Delete removes an evaluation record by UUID.
func (s *Store) Delete(ctx context.Context, uuid string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE uuid = ?`, uuid)
	if err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// List returns evaluation summaries matching the given filter, newest
// first. Summaries do not carry the report body.
func (s *Store) List(ctx context.Context, f ListFilter) ([]EvaluationRecord, int, error) {
	where, args := buildWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM evaluations" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count evaluations: %w", err)
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + selectColumns + `, '' FROM evaluations` + where +
		` ORDER BY evaluated_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, pageSize, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var records []EvaluationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}

	return records, total, rows.Err()
}

// Purge deletes evaluation records older than the given duration.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE evaluated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge evaluations: %w", err)
	}
	return result.RowsAffected()
}

func buildWhere(f ListFilter) (string, []any) {
	var conditions []string
	var args []any

	if f.ProductName != "" {
		conditions = append(conditions, "product_name = ?")
		args = append(args, f.ProductName)
	}
	if f.ProductType != 0 {
		conditions = append(conditions, "product_type = ?")
		args = append(args, f.ProductType)
	}
	if f.FailingOnly {
		conditions = append(conditions, "failed > 0")
	}
	if f.EvaluatedAfter != nil {
		conditions = append(conditions, "evaluated_at >= ?")
		args = append(args, f.EvaluatedAfter.UTC().Format(time.RFC3339))
	}
	if f.EvaluatedBefore != nil {
		conditions = append(conditions, "evaluated_at <= ?")
		args = append(args, f.EvaluatedBefore.UTC().Format(time.RFC3339))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*EvaluationRecord, error) {
	var rec EvaluationRecord
	var evaluatedAt, storedAt string
	err := row.Scan(&rec.ID, &rec.UUID, &rec.ProductName, &rec.BIOSVersion, &rec.ProductType, &rec.Category,
		&rec.Passed, &rec.Failed, &evaluatedAt, &storedAt, &rec.ReportJSON)
	if err != nil {
		return nil, err
	}

	rec.EvaluatedAt, _ = time.Parse(time.RFC3339, evaluatedAt)
	rec.StoredAt, _ = time.Parse(time.RFC3339, storedAt)

	return &rec, nil
}
