package entity

import (
	"net/url"
	"strconv"
	"strings"
)

// Параметры адресной строки страниц каталога
const (
	ParamUniversity = "university"
	ParamSemester   = "semester"
	ParamCategory   = "category"
	ParamYear       = "year"
)

const (
	NotesPath = "/notes"
	PYQsPath  = "/pyqs"
)

// CatalogFilter - набор фильтров страницы каталога. Type фиксируется страницей,
// остальные поля пустые, если фильтр не выбран.
// Semester и Category применимы только к конспектам, Year - только к PYQ.
type CatalogFilter struct {
	Type       MaterialType `json:"material_type"`
	University University   `json:"university,omitempty"`
	Semester   *int         `json:"semester,omitempty"`
	Category   NoteCategory `json:"category,omitempty"`
	Year       *int         `json:"year,omitempty"`
}

// ParseCatalogFilter разбирает параметры адресной строки для страницы указанного типа.
// Отсутствующий или пустой параметр означает "без фильтра", чужие параметры игнорируются.
// Семестр и год проверяются только на число: значение вне допустимого диапазона
// остаётся фильтром на равенство и даёт пустой список.
func ParseCatalogFilter(materialType MaterialType, query url.Values) (CatalogFilter, error) {
	filter := CatalogFilter{Type: materialType}
	if _, err := ParseMaterialType(string(materialType)); err != nil {
		return filter, err
	}

	if v := strings.TrimSpace(query.Get(ParamUniversity)); v != "" {
		u, err := ParseUniversity(v)
		if err != nil {
			return filter, err
		}
		filter.University = u
	}

	switch materialType {
	case MaterialTypeNotes:
		if v := strings.TrimSpace(query.Get(ParamSemester)); v != "" {
			semester, err := strconv.Atoi(v)
			if err != nil {
				return filter, &ValidationError{Field: ParamSemester, Reason: "semester must be a number"}
			}
			filter.Semester = &semester
		}
		if v := strings.TrimSpace(query.Get(ParamCategory)); v != "" {
			category, err := ParseNoteCategory(v)
			if err != nil {
				return filter, err
			}
			filter.Category = category
		}
	case MaterialTypePYQ:
		if v := strings.TrimSpace(query.Get(ParamYear)); v != "" {
			year, err := strconv.Atoi(v)
			if err != nil {
				return filter, &ValidationError{Field: ParamYear, Reason: "year must be a number"}
			}
			filter.Year = &year
		}
	}
	return filter, nil
}

// Query возвращает только непустые фильтры. Тип материала в адрес не попадает.
func (f CatalogFilter) Query() url.Values {
	query := url.Values{}
	if f.University != "" {
		query.Set(ParamUniversity, string(f.University))
	}
	if f.Semester != nil {
		query.Set(ParamSemester, strconv.Itoa(*f.Semester))
	}
	if f.Category != "" {
		query.Set(ParamCategory, string(f.Category))
	}
	if f.Year != nil {
		query.Set(ParamYear, strconv.Itoa(*f.Year))
	}
	return query
}

func (f CatalogFilter) IsEmpty() bool {
	return len(f.Query()) == 0
}

func (f CatalogFilter) ListingPath() string {
	if f.Type == MaterialTypePYQ {
		return PYQsPath
	}
	return NotesPath
}

// DeepLink - адрес страницы каталога с текущими фильтрами. Без фильтров - голый путь.
func (f CatalogFilter) DeepLink() string {
	if f.IsEmpty() {
		return f.ListingPath()
	}
	return f.ListingPath() + "?" + f.Query().Encode()
}

// Matches проверяет материал на соответствие всем заданным фильтрам
func (f CatalogFilter) Matches(m *Material) bool {
	if m.Type() != f.Type {
		return false
	}
	if f.University != "" && m.University != f.University {
		return false
	}
	if f.Semester != nil && (m.Semester == nil || *m.Semester != *f.Semester) {
		return false
	}
	if f.Category != "" {
		category := m.NoteCategory()
		if category == nil || *category != f.Category {
			return false
		}
	}
	if f.Year != nil {
		year := m.Year()
		if year == nil || *year != *f.Year {
			return false
		}
	}
	return true
}

// CatalogPage - результат запроса к каталогу
type CatalogPage struct {
	Materials []*Material   `json:"materials"`
	Filter    CatalogFilter `json:"filters"`
	DeepLink  string        `json:"deep_link"`
}
