package cockroach

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
)

func intRef(v int) *int { return &v }

func TestCatalogQuery(t *testing.T) {
	selectAll := "SELECT " + strings.Join(materialColumns, ", ") + " FROM materials"

	tests := []struct {
		name     string
		filter   entity.CatalogFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "notes without filters",
			filter:   entity.CatalogFilter{Type: entity.MaterialTypeNotes},
			wantSQL:  selectAll + " WHERE material_type = $1 ORDER BY created_at DESC",
			wantArgs: []any{"notes"},
		},
		{
			name: "notes with every filter",
			filter: entity.CatalogFilter{
				Type:       entity.MaterialTypeNotes,
				University: entity.UniversityAKTU,
				Semester:   intRef(3),
				Category:   entity.NoteCategoryChapterWise,
			},
			wantSQL: selectAll +
				" WHERE material_type = $1 AND university = $2 AND semester = $3 AND note_category = $4" +
				" ORDER BY created_at DESC",
			wantArgs: []any{"notes", "aktu", 3, "chapter_wise"},
		},
		{
			name:     "pyq ordered by year with nulls last",
			filter:   entity.CatalogFilter{Type: entity.MaterialTypePYQ},
			wantSQL:  selectAll + " WHERE material_type = $1 ORDER BY year DESC NULLS LAST, created_at DESC",
			wantArgs: []any{"pyq"},
		},
		{
			name:   "pyq with year and university",
			filter: entity.CatalogFilter{Type: entity.MaterialTypePYQ, University: entity.UniversityKIET, Year: intRef(2022)},
			wantSQL: selectAll +
				" WHERE material_type = $1 AND university = $2 AND year = $3" +
				" ORDER BY year DESC NULLS LAST, created_at DESC",
			wantArgs: []any{"pyq", "kiet", 2022},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := catalogQuery(tt.filter).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestInsertMaterialQuery(t *testing.T) {
	chapterWise := entity.NoteCategoryChapterWise
	row := newMaterialRow(&entity.Material{
		ID:         "id-1",
		Title:      "DS Unit 1",
		University: entity.UniversityAKTU,
		Subject:    "Data Structures",
		FileURL:    "http://minio/materials/materials/aktu/ds-unit-1-id-1.pdf",
		FileName:   "ds-unit-1-id-1.pdf",
		FileSize:   2 << 20,
		Details:    entity.NotesDetails{Category: &chapterWise},
	})

	query, args, err := insertMaterialQuery(row).ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(query, "INSERT INTO materials ("))
	assert.True(t, strings.HasSuffix(query, "RETURNING created_at, updated_at"))
	assert.NotContains(t, query, "view_count")
	assert.NotContains(t, query, "download_count")
	assert.Len(t, args, 14)
	assert.Contains(t, args, sql.NullString{String: "chapter_wise", Valid: true})
	assert.Contains(t, args, sql.NullInt64{})
}

func TestRecentMaterialsQuery(t *testing.T) {
	query, args, err := recentMaterialsQuery(5).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, title, university, view_count, download_count, created_at FROM materials ORDER BY created_at DESC LIMIT 5",
		query,
	)
	assert.Empty(t, args)
}

func TestMaterialRow_DropsInapplicableFields(t *testing.T) {
	legacy := materialRow{
		ID:           "id-2",
		MaterialType: string(entity.MaterialTypePYQ),
		NoteCategory: sql.NullString{String: "chapter_wise", Valid: true},
		Chapter:      sql.NullString{String: "Unit 1", Valid: true},
		Year:         sql.NullInt64{Int64: 2021, Valid: true},
	}
	material := legacy.toEntity()
	assert.Equal(t, entity.MaterialTypePYQ, material.Type())
	assert.Nil(t, material.NoteCategory())
	assert.Nil(t, material.Chapter())
	require.NotNil(t, material.Year())
	assert.Equal(t, 2021, *material.Year())

	legacy.MaterialType = string(entity.MaterialTypeNotes)
	material = legacy.toEntity()
	assert.Nil(t, material.Year())
	require.NotNil(t, material.NoteCategory())
	assert.Equal(t, entity.NoteCategoryChapterWise, *material.NoteCategory())
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(sql.ErrNoRows), repo.ErrMaterialNotFound)
	assert.ErrorIs(t, notFound(&pq.Error{Code: pqInvalidTextRepresentation}), repo.ErrMaterialNotFound)

	other := errors.New("connection refused")
	assert.Equal(t, other, notFound(other))
}
