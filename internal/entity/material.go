package entity

import (
	"encoding/json"
	"time"
)

type University string

const (
	UniversityAKTU   University = "aktu"
	UniversityABESEC University = "abes_ec"
	UniversityAKGEC  University = "akgec"
	UniversityKIET   University = "kiet"
)

type UniversityInfo struct {
	Code     University `json:"code"`
	Name     string     `json:"name"`
	FullName string     `json:"full_name"`
}

// Universities - закрытый список вузов, в рамках которых публикуются материалы
var Universities = []UniversityInfo{
	{Code: UniversityAKTU, Name: "AKTU", FullName: "Dr. A.P.J. Abdul Kalam Technical University"},
	{Code: UniversityABESEC, Name: "ABES EC", FullName: "ABES Engineering College"},
	{Code: UniversityAKGEC, Name: "AKGEC", FullName: "Ajay Kumar Garg Engineering College"},
	{Code: UniversityKIET, Name: "KIET", FullName: "KIET Group of Institutions"},
}

func (u University) IsValid() bool {
	for _, info := range Universities {
		if info.Code == u {
			return true
		}
	}
	return false
}

func ParseUniversity(s string) (University, error) {
	u := University(s)
	if !u.IsValid() {
		return "", &ValidationError{Field: "university", Reason: "unknown university " + s}
	}
	return u, nil
}

type MaterialType string

const (
	MaterialTypeNotes MaterialType = "notes"
	MaterialTypePYQ   MaterialType = "pyq"
)

func ParseMaterialType(s string) (MaterialType, error) {
	switch t := MaterialType(s); t {
	case MaterialTypeNotes, MaterialTypePYQ:
		return t, nil
	}
	return "", &ValidationError{Field: "material_type", Reason: "unknown material type " + s}
}

type NoteCategory string

const (
	NoteCategoryChapterWise NoteCategory = "chapter_wise"
	NoteCategorySubjectWise NoteCategory = "subject_wise"
)

func ParseNoteCategory(s string) (NoteCategory, error) {
	switch c := NoteCategory(s); c {
	case NoteCategoryChapterWise, NoteCategorySubjectWise:
		return c, nil
	}
	return "", &ValidationError{Field: "note_category", Reason: "unknown note category " + s}
}

const (
	MinSemester = 1
	MaxSemester = 8
	MinYear     = 1990
)

func ValidSemester(semester int) bool {
	return semester >= MinSemester && semester <= MaxSemester
}

// ValidYear допускает экзамены следующего года: вопросы иногда публикуют заранее
func ValidYear(year int, now time.Time) bool {
	return year >= MinYear && year <= now.Year()+1
}

// MaterialDetails - поля, которые имеют смысл только для конкретного типа материала.
// Реализации: NotesDetails и PYQDetails.
type MaterialDetails interface {
	MaterialType() MaterialType
}

type NotesDetails struct {
	Category *NoteCategory
	Chapter  *string
}

func (NotesDetails) MaterialType() MaterialType { return MaterialTypeNotes }

type PYQDetails struct {
	Year *int
}

func (PYQDetails) MaterialType() MaterialType { return MaterialTypePYQ }

type Material struct {
	ID            string
	Title         string
	Description   *string
	University    University
	Subject       string
	Semester      *int
	FileURL       string
	FileName      string
	FileSize      int64
	ThumbnailURL  *string
	ViewCount     int64
	DownloadCount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Details       MaterialDetails
}

func (m *Material) Type() MaterialType {
	if m.Details == nil {
		return ""
	}
	return m.Details.MaterialType()
}

func (m *Material) NoteCategory() *NoteCategory {
	if d, ok := m.Details.(NotesDetails); ok {
		return d.Category
	}
	return nil
}

func (m *Material) Chapter() *string {
	if d, ok := m.Details.(NotesDetails); ok {
		return d.Chapter
	}
	return nil
}

func (m *Material) Year() *int {
	if d, ok := m.Details.(PYQDetails); ok {
		return d.Year
	}
	return nil
}

// StoragePath возвращает путь файла материала внутри бакета
func (m *Material) StoragePath() string {
	return StoragePath(m.University, m.FileName)
}

type materialJSON struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   *string       `json:"description"`
	University    University    `json:"university"`
	MaterialType  MaterialType  `json:"material_type"`
	NoteCategory  *NoteCategory `json:"note_category"`
	Subject       string        `json:"subject"`
	Semester      *int          `json:"semester"`
	Year          *int          `json:"year"`
	Chapter       *string       `json:"chapter"`
	FileURL       string        `json:"file_url"`
	FileName      string        `json:"file_name"`
	FileSize      int64         `json:"file_size"`
	ThumbnailURL  *string       `json:"thumbnail_url"`
	DownloadCount int64         `json:"download_count"`
	ViewCount     int64         `json:"view_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// MarshalJSON отдаёт материал плоским объектом, как строку таблицы materials
func (m *Material) MarshalJSON() ([]byte, error) {
	return json.Marshal(materialJSON{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		University:    m.University,
		MaterialType:  m.Type(),
		NoteCategory:  m.NoteCategory(),
		Subject:       m.Subject,
		Semester:      m.Semester,
		Year:          m.Year(),
		Chapter:       m.Chapter(),
		FileURL:       m.FileURL,
		FileName:      m.FileName,
		FileSize:      m.FileSize,
		ThumbnailURL:  m.ThumbnailURL,
		DownloadCount: m.DownloadCount,
		ViewCount:     m.ViewCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	})
}

// Subject объявлен в хранилище, но ни один сценарий его пока не читает
type Subject struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Code       *string    `json:"code" db:"code"`
	University University `json:"university" db:"university"`
	Semester   int        `json:"semester" db:"semester"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
