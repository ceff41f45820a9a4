package cockroach

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
)

// invalid_text_representation: строка не похожа на UUID
const pqInvalidTextRepresentation = "22P02"

type materialRow struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	University    string         `db:"university"`
	MaterialType  string         `db:"material_type"`
	NoteCategory  sql.NullString `db:"note_category"`
	Subject       string         `db:"subject"`
	Semester      sql.NullInt64  `db:"semester"`
	Year          sql.NullInt64  `db:"year"`
	Chapter       sql.NullString `db:"chapter"`
	FileURL       string         `db:"file_url"`
	FileName      string         `db:"file_name"`
	FileSize      int64          `db:"file_size"`
	ThumbnailURL  sql.NullString `db:"thumbnail_url"`
	DownloadCount int64          `db:"download_count"`
	ViewCount     int64          `db:"view_count"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type MaterialDB struct {
	db *sqlx.DB
}

func NewMaterial(db *sqlx.DB) repo.Material {
	return &MaterialDB{db: db}
}

func (m *MaterialDB) ListMaterials(ctx context.Context, filter entity.CatalogFilter) ([]*entity.Material, error) {
	return m.selectMaterials(ctx, catalogQuery(filter).ToSql)
}

func (m *MaterialDB) ListAllMaterials(ctx context.Context) ([]*entity.Material, error) {
	return m.selectMaterials(ctx, allMaterialsQuery().ToSql)
}

func (m *MaterialDB) selectMaterials(ctx context.Context, build func() (string, []any, error)) ([]*entity.Material, error) {
	query, args, err := build()
	if err != nil {
		return nil, err
	}
	var rows []materialRow
	if err := m.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	materials := make([]*entity.Material, 0, len(rows))
	for i := range rows {
		materials = append(materials, rows[i].toEntity())
	}
	return materials, nil
}

func (m *MaterialDB) GetMaterial(ctx context.Context, id string) (*entity.Material, error) {
	query, args, err := materialByIDQuery(id).ToSql()
	if err != nil {
		return nil, err
	}
	var row materialRow
	err = m.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		return nil, notFound(err)
	}
	return row.toEntity(), nil
}

func (m *MaterialDB) AddMaterial(ctx context.Context, material *entity.Material) error {
	row := newMaterialRow(material)
	query, args, err := insertMaterialQuery(row).ToSql()
	if err != nil {
		return err
	}
	err = m.db.QueryRowxContext(ctx, query, args...).Scan(&material.CreatedAt, &material.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (m *MaterialDB) DeleteMaterial(ctx context.Context, id string, beforeCommit func(*entity.Material) error) (*entity.Material, error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE id = $1 RETURNING %s",
		materialsTable,
		strings.Join(materialColumns, ", "),
	)
	var row materialRow
	if err = tx.GetContext(ctx, &row, query, id); err != nil {
		err = notFound(err)
		return nil, err
	}
	material := row.toEntity()

	if beforeCommit != nil {
		if err = beforeCommit(material); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return material, nil
}

func (m *MaterialDB) IncrementViewCount(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `SELECT increment_view_count($1)`, id)
	return err
}

func (m *MaterialDB) IncrementDownloadCount(ctx context.Context, id string) error {
	_, err := m.db.ExecContext(ctx, `SELECT increment_download_count($1)`, id)
	return err
}

func (m *MaterialDB) GetDashboardStats(ctx context.Context, recent int) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		ByUniversity:    map[entity.University]int64{},
		RecentMaterials: []*entity.RecentMaterial{},
	}

	query, args, err := dashboardTotalsQuery().ToSql()
	if err != nil {
		return nil, err
	}
	err = m.db.QueryRowxContext(ctx, query, args...).Scan(&stats.TotalMaterials, &stats.TotalViews, &stats.TotalDownloads)
	if err != nil {
		return nil, err
	}

	query, args, err = dashboardByUniversityQuery().ToSql()
	if err != nil {
		return nil, err
	}
	var byUniversity []struct {
		University entity.University `db:"university"`
		Materials  int64             `db:"materials"`
	}
	if err := m.db.SelectContext(ctx, &byUniversity, query, args...); err != nil {
		return nil, err
	}
	for _, u := range byUniversity {
		stats.ByUniversity[u.University] = u.Materials
	}

	query, args, err = recentMaterialsQuery(recent).ToSql()
	if err != nil {
		return nil, err
	}
	if err := m.db.SelectContext(ctx, &stats.RecentMaterials, query, args...); err != nil {
		return nil, err
	}
	return stats, nil
}

// notFound сводит "нет строки" и некорректный идентификатор к repo.ErrMaterialNotFound
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repo.ErrMaterialNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepresentation {
		return repo.ErrMaterialNotFound
	}
	return err
}

func newMaterialRow(m *entity.Material) *materialRow {
	row := &materialRow{
		ID:           m.ID,
		Title:        m.Title,
		Description:  nullString(m.Description),
		University:   string(m.University),
		MaterialType: string(m.Type()),
		Subject:      m.Subject,
		Semester:     nullInt(m.Semester),
		Year:         nullInt(m.Year()),
		Chapter:      nullString(m.Chapter()),
		FileURL:      m.FileURL,
		FileName:     m.FileName,
		FileSize:     m.FileSize,
		ThumbnailURL: nullString(m.ThumbnailURL),
	}
	if category := m.NoteCategory(); category != nil {
		row.NoteCategory = sql.NullString{String: string(*category), Valid: true}
	}
	return row
}

// toEntity собирает материал из строки. Поля, неприменимые к типу материала, отбрасываются.
func (r *materialRow) toEntity() *entity.Material {
	material := &entity.Material{
		ID:            r.ID,
		Title:         r.Title,
		Description:   stringPtr(r.Description),
		University:    entity.University(r.University),
		Subject:       r.Subject,
		Semester:      intPtr(r.Semester),
		FileURL:       r.FileURL,
		FileName:      r.FileName,
		FileSize:      r.FileSize,
		ThumbnailURL:  stringPtr(r.ThumbnailURL),
		ViewCount:     r.ViewCount,
		DownloadCount: r.DownloadCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	switch entity.MaterialType(r.MaterialType) {
	case entity.MaterialTypePYQ:
		material.Details = entity.PYQDetails{Year: intPtr(r.Year)}
	default:
		details := entity.NotesDetails{Chapter: stringPtr(r.Chapter)}
		if r.NoteCategory.Valid {
			category := entity.NoteCategory(r.NoteCategory.String)
			details.Category = &category
		}
		material.Details = details
	}
	return material
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func intPtr(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int64)
	return &v
}
