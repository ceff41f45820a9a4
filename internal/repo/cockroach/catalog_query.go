package cockroach

import (
	sq "github.com/Masterminds/squirrel"

	"exampocket-backend/internal/entity"
)

const materialsTable = "materials"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var materialColumns = []string{
	"id",
	"title",
	"description",
	"university",
	"material_type",
	"note_category",
	"subject",
	"semester",
	"year",
	"chapter",
	"file_url",
	"file_name",
	"file_size",
	"thumbnail_url",
	"download_count",
	"view_count",
	"created_at",
	"updated_at",
}

// catalogQuery строит выборку страницы каталога: только равенства и один порядок сортировки.
// Конспекты - новые первыми; PYQ - по году экзамена, строки без года в конце.
func catalogQuery(filter entity.CatalogFilter) sq.SelectBuilder {
	query := psql.Select(materialColumns...).
		From(materialsTable).
		Where(sq.Eq{"material_type": string(filter.Type)})

	if filter.University != "" {
		query = query.Where(sq.Eq{"university": string(filter.University)})
	}
	if filter.Semester != nil {
		query = query.Where(sq.Eq{"semester": *filter.Semester})
	}
	if filter.Category != "" {
		query = query.Where(sq.Eq{"note_category": string(filter.Category)})
	}
	if filter.Year != nil {
		query = query.Where(sq.Eq{"year": *filter.Year})
	}

	if filter.Type == entity.MaterialTypePYQ {
		return query.OrderBy("year DESC NULLS LAST", "created_at DESC")
	}
	return query.OrderBy("created_at DESC")
}

func allMaterialsQuery() sq.SelectBuilder {
	return psql.Select(materialColumns...).
		From(materialsTable).
		OrderBy("created_at DESC")
}

func materialByIDQuery(id string) sq.SelectBuilder {
	return psql.Select(materialColumns...).
		From(materialsTable).
		Where(sq.Eq{"id": id})
}

func insertMaterialQuery(row *materialRow) sq.InsertBuilder {
	return psql.Insert(materialsTable).
		SetMap(map[string]any{
			"id":            row.ID,
			"title":         row.Title,
			"description":   row.Description,
			"university":    row.University,
			"material_type": row.MaterialType,
			"note_category": row.NoteCategory,
			"subject":       row.Subject,
			"semester":      row.Semester,
			"year":          row.Year,
			"chapter":       row.Chapter,
			"file_url":      row.FileURL,
			"file_name":     row.FileName,
			"file_size":     row.FileSize,
			"thumbnail_url": row.ThumbnailURL,
		}).
		Suffix("RETURNING created_at, updated_at")
}

func dashboardTotalsQuery() sq.SelectBuilder {
	return psql.Select(
		"COUNT(*)",
		"COALESCE(SUM(view_count), 0)",
		"COALESCE(SUM(download_count), 0)",
	).From(materialsTable)
}

func dashboardByUniversityQuery() sq.SelectBuilder {
	return psql.Select("university", "COUNT(*) AS materials").
		From(materialsTable).
		GroupBy("university")
}

func recentMaterialsQuery(limit int) sq.SelectBuilder {
	return psql.Select("id", "title", "university", "view_count", "download_count", "created_at").
		From(materialsTable).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
}
