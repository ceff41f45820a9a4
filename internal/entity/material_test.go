package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterial_MarshalJSONIsFlat(t *testing.T) {
	created := time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)
	subjectWise := NoteCategorySubjectWise

	tests := []struct {
		name     string
		material *Material
		want     map[string]any
	}{
		{
			name: "notes",
			material: &Material{
				ID:         "m1",
				Title:      "DS Unit 1",
				University: UniversityAKTU,
				Subject:    "Data Structures",
				FileURL:    "http://localhost:9000/materials/materials/aktu/ds-unit-1-m1.pdf",
				FileName:   "ds-unit-1-m1.pdf",
				FileSize:   2 << 20,
				CreatedAt:  created,
				UpdatedAt:  created,
				Details:    NotesDetails{Category: &subjectWise},
			},
			want: map[string]any{
				"material_type": "notes",
				"note_category": "subject_wise",
				"year":          nil,
				"chapter":       nil,
				"semester":      nil,
				"view_count":    float64(0),
			},
		},
		{
			name: "pyq",
			material: &Material{
				ID:         "m2",
				Title:      "DBMS 2022",
				University: UniversityKIET,
				Subject:    "DBMS",
				Details:    PYQDetails{Year: intRef(2022)},
			},
			want: map[string]any{
				"material_type": "pyq",
				"note_category": nil,
				"chapter":       nil,
				"year":          float64(2022),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.material)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal(b, &got))
			assert.NotContains(t, got, "Details")
			for key, value := range tt.want {
				assert.Contains(t, got, key)
				assert.Equal(t, value, got[key], key)
			}
		})
	}
}

func TestMaterial_VariantAccessors(t *testing.T) {
	chapter := "Unit 3"
	notes := &Material{Details: NotesDetails{Chapter: &chapter}}
	assert.Equal(t, MaterialTypeNotes, notes.Type())
	assert.Equal(t, &chapter, notes.Chapter())
	assert.Nil(t, notes.Year())

	pyq := &Material{Details: PYQDetails{Year: intRef(2020)}}
	assert.Equal(t, MaterialTypePYQ, pyq.Type())
	assert.Nil(t, pyq.NoteCategory())
	assert.Nil(t, pyq.Chapter())
	assert.Equal(t, 2020, *pyq.Year())
}

func TestParseUniversity(t *testing.T) {
	for _, info := range Universities {
		u, err := ParseUniversity(string(info.Code))
		require.NoError(t, err)
		assert.Equal(t, info.Code, u)
	}
	_, err := ParseUniversity("AKTU")
	assert.ErrorIs(t, err, ErrValidation)
}
