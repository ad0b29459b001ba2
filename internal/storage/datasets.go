package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/geoshelf/geoshelf/internal/common"
	"github.com/geoshelf/geoshelf/internal/model"
)

// SaveDataset inserts or updates a catalog entry. Path is the natural
// key; an existing entry for the same path keeps its ID. The record's ID
// and DateIndexed are filled in on return.
func (s *SQLiteCatalog) SaveDataset(ctx context.Context, record *model.DatasetRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM datasets WHERE path = ?`, record.Path).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		record.ID = uuid.New().String()
	case err != nil:
		return fmt.Errorf("failed to look up dataset: %w", err)
	default:
		record.ID = existingID
	}
	if record.DateIndexed.IsZero() {
		record.DateIndexed = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (
			id, path, name, format, size, title, abstract,
			creation_date, modification_date, coordinate_system,
			bbox_west, bbox_east, bbox_south, bbox_north,
			category, subcategory, date_indexed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			format = excluded.format,
			size = excluded.size,
			title = excluded.title,
			abstract = excluded.abstract,
			creation_date = excluded.creation_date,
			modification_date = excluded.modification_date,
			coordinate_system = excluded.coordinate_system,
			bbox_west = excluded.bbox_west,
			bbox_east = excluded.bbox_east,
			bbox_south = excluded.bbox_south,
			bbox_north = excluded.bbox_north,
			category = excluded.category,
			subcategory = excluded.subcategory,
			date_indexed = excluded.date_indexed
	`,
		record.ID, record.Path, record.Name, string(record.Format), record.Size,
		record.Title, record.Abstract, record.CreationDate, record.ModificationDate,
		record.CoordinateSystem,
		record.BBoxWest, record.BBoxEast, record.BBoxSouth, record.BBoxNorth,
		record.Category, record.Subcategory, record.DateIndexed,
	)
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	if err := s.replaceKeywordsTx(ctx, tx, record.ID, record.Keywords); err != nil {
		return err
	}
	if err := s.replaceAttributesTx(ctx, tx, record.ID, record.Attributes); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}
	return nil
}

func (s *SQLiteCatalog) replaceKeywordsTx(ctx context.Context, tx *sql.Tx, datasetID string, keywords []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_keywords WHERE dataset_id = ?`, datasetID); err != nil {
		return fmt.Errorf("failed to clear keywords: %w", err)
	}
	for _, keyword := range keywords {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO keywords (name) VALUES (?)`, keyword); err != nil {
			return fmt.Errorf("failed to save keyword: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO dataset_keywords (dataset_id, keyword_id)
			SELECT ?, id FROM keywords WHERE name = ?
		`, datasetID, keyword); err != nil {
			return fmt.Errorf("failed to link keyword: %w", err)
		}
	}
	return nil
}

func (s *SQLiteCatalog) replaceAttributesTx(ctx context.Context, tx *sql.Tx, datasetID string, attrs []model.DatasetAttribute) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_attributes WHERE dataset_id = ?`, datasetID); err != nil {
		return fmt.Errorf("failed to clear attributes: %w", err)
	}
	for _, attr := range attrs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dataset_attributes (dataset_id, name, data_type, description)
			VALUES (?, ?, ?, ?)
		`, datasetID, attr.Name, attr.DataType, attr.Description); err != nil {
			return fmt.Errorf("failed to save attribute: %w", err)
		}
	}
	return nil
}

// GetDatasetByPath retrieves a catalog entry by its path.
func (s *SQLiteCatalog) GetDatasetByPath(ctx context.Context, path string) (*model.DatasetRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return s.getDataset(ctx, `WHERE path = ?`, path)
}

// GetDataset retrieves a catalog entry by ID.
func (s *SQLiteCatalog) GetDataset(ctx context.Context, id string) (*model.DatasetRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	return s.getDataset(ctx, `WHERE id = ?`, id)
}

const datasetColumns = `
	id, path, name, format, size,
	COALESCE(title, ''), COALESCE(abstract, ''),
	COALESCE(creation_date, ''), COALESCE(modification_date, ''),
	COALESCE(coordinate_system, ''),
	bbox_west, bbox_east, bbox_south, bbox_north,
	COALESCE(category, ''), COALESCE(subcategory, ''), date_indexed`

func (s *SQLiteCatalog) getDataset(ctx context.Context, where string, arg any) (*model.DatasetRecord, error) {
	record, err := scanDataset(s.db.QueryRowContext(ctx,
		`SELECT `+datasetColumns+` FROM datasets `+where, arg))
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	if err := s.loadRelations(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDataset(row rowScanner) (*model.DatasetRecord, error) {
	var record model.DatasetRecord
	var format string
	err := row.Scan(
		&record.ID, &record.Path, &record.Name, &format, &record.Size,
		&record.Title, &record.Abstract,
		&record.CreationDate, &record.ModificationDate,
		&record.CoordinateSystem,
		&record.BBoxWest, &record.BBoxEast, &record.BBoxSouth, &record.BBoxNorth,
		&record.Category, &record.Subcategory, &record.DateIndexed,
	)
	if err != nil {
		return nil, err
	}
	record.Format = model.FileFormat(format)
	return &record, nil
}

func (s *SQLiteCatalog) loadRelations(ctx context.Context, record *model.DatasetRecord) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT k.name FROM keywords k
		JOIN dataset_keywords dk ON dk.keyword_id = k.id
		WHERE dk.dataset_id = ?
		ORDER BY k.name
	`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan keyword: %w", err)
		}
		record.Keywords = append(record.Keywords, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read keywords: %w", err)
	}

	attrRows, err := s.db.QueryContext(ctx, `
		SELECT name, COALESCE(data_type, ''), COALESCE(description, '')
		FROM dataset_attributes
		WHERE dataset_id = ?
		ORDER BY name
	`, record.ID)
	if err != nil {
		return fmt.Errorf("failed to load attributes: %w", err)
	}
	defer func() { _ = attrRows.Close() }()
	for attrRows.Next() {
		var attr model.DatasetAttribute
		if err := attrRows.Scan(&attr.Name, &attr.DataType, &attr.Description); err != nil {
			return fmt.Errorf("failed to scan attribute: %w", err)
		}
		record.Attributes = append(record.Attributes, attr)
	}
	if err := attrRows.Err(); err != nil {
		return fmt.Errorf("failed to read attributes: %w", err)
	}
	return nil
}

// ListDatasets returns catalog entries, optionally filtered by category.
// An empty category means all entries. Relations are not loaded; use
// GetDataset for the full record.
func (s *SQLiteCatalog) ListDatasets(ctx context.Context, category string) ([]model.DatasetRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + datasetColumns + ` FROM datasets`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY path`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DatasetRecord
	for rows.Next() {
		record, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read datasets: %w", err)
	}
	return records, nil
}

// DeleteDataset removes a catalog entry and its relations.
func (s *SQLiteCatalog) DeleteDataset(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		`DELETE FROM dataset_keywords WHERE dataset_id = ?`,
		`DELETE FROM dataset_attributes WHERE dataset_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete dataset relations: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// CategoryCounts returns the number of cataloged datasets per category.
func (s *SQLiteCatalog) CategoryCounts(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(category, ''), COUNT(*)
		FROM datasets
		GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category counts: %w", err)
	}
	return counts, nil
}
