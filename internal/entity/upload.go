package entity

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxFileSize - 50 МиБ
	MaxFileSize    = 50 << 20
	PDFContentType = "application/pdf"
	PDFExtension   = "pdf"
	StorageRoot    = "materials"

	maxSlugLength = 60
)

// UploadFile - файл, выбранный администратором
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Validate проверяет заявленный тип, размер и сигнатуру содержимого файла
func (f *UploadFile) Validate() error {
	if f == nil {
		return ErrFileRequired
	}
	if f.ContentType != PDFContentType {
		return ErrFileNotPDF
	}
	if f.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	if f.Size <= 0 || len(f.Data) == 0 {
		return ErrFileEmpty
	}
	if !mimetype.Detect(f.Data).Is(PDFContentType) {
		return ErrFileNotPDF
	}
	return nil
}

// UploadForm - сырые значения формы загрузки. Пустая строка означает незаполненное поле.
type UploadForm struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	University   string `form:"university"`
	MaterialType string `form:"material_type"`
	NoteCategory string `form:"note_category"`
	Subject      string `form:"subject"`
	Semester     string `form:"semester"`
	Year         string `form:"year"`
	Chapter      string `form:"chapter"`
}

// Validate превращает форму в материал без файловых полей.
// Поля, неприменимые к выбранному типу материала, отклоняются.
func (f *UploadForm) Validate(now time.Time) (*Material, error) {
	title := strings.TrimSpace(f.Title)
	subject := strings.TrimSpace(f.Subject)
	if title == "" || subject == "" || f.University == "" || f.MaterialType == "" {
		return nil, ErrRequiredFields
	}
	university, err := ParseUniversity(f.University)
	if err != nil {
		return nil, err
	}
	materialType, err := ParseMaterialType(f.MaterialType)
	if err != nil {
		return nil, err
	}

	material := &Material{
		Title:       title,
		Description: optionalString(f.Description),
		University:  university,
		Subject:     subject,
	}

	if v := strings.TrimSpace(f.Semester); v != "" {
		semester, err := strconv.Atoi(v)
		if err != nil || !ValidSemester(semester) {
			return nil, &ValidationError{Field: "semester", Reason: "semester must be between 1 and 8"}
		}
		material.Semester = &semester
	}

	switch materialType {
	case MaterialTypeNotes:
		if strings.TrimSpace(f.Year) != "" {
			return nil, &ValidationError{Field: "year", Reason: "year applies to previous year questions only"}
		}
		details := NotesDetails{Chapter: optionalString(f.Chapter)}
		if v := strings.TrimSpace(f.NoteCategory); v != "" {
			category, err := ParseNoteCategory(v)
			if err != nil {
				return nil, err
			}
			details.Category = &category
		}
		material.Details = details
	case MaterialTypePYQ:
		if strings.TrimSpace(f.NoteCategory) != "" {
			return nil, &ValidationError{Field: "note_category", Reason: "note category applies to notes only"}
		}
		if strings.TrimSpace(f.Chapter) != "" {
			return nil, &ValidationError{Field: "chapter", Reason: "chapter applies to notes only"}
		}
		details := PYQDetails{}
		if v := strings.TrimSpace(f.Year); v != "" {
			year, err := strconv.Atoi(v)
			if err != nil || !ValidYear(year, now) {
				return nil, &ValidationError{Field: "year", Reason: "invalid exam year " + v}
			}
			details.Year = &year
		}
		material.Details = details
	}
	return material, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Slugify приводит название к виду, безопасному для пути в хранилище
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return "material"
	}
	return slug
}

// MaterialFileName включает идентификатор материала, поэтому одинаковые названия не конфликтуют
func MaterialFileName(title, materialID string) string {
	return Slugify(title) + "-" + materialID + "." + PDFExtension
}

// StoragePath - materials/<university>/<file name>
func StoragePath(university University, fileName string) string {
	return StorageRoot + "/" + string(university) + "/" + fileName
}

// Прогресс загрузки в процентах, сообщается на границах шагов
const (
	ProgressStarted   = 0
	ProgressUploading = 20
	ProgressUploaded  = 60
	ProgressSaving    = 80
	ProgressDone      = 100
)

type ProgressFunc func(percent int)
