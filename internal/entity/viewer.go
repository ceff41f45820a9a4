package entity

import "math"

const (
	MinScale     = 0.5
	MaxScale     = 3.0
	ScaleStep    = 0.25
	DefaultScale = 1.0

	RotationStep = 90

	LoadFailedMessage = "Failed to load PDF. Please try downloading instead."
)

// масштаб хранится в четвертях, чтобы шаги не накапливали погрешность
const (
	minScaleQuarters = 2
	maxScaleQuarters = 12
)

type ViewerAction string

const (
	ViewerNext       ViewerAction = "next"
	ViewerPrev       ViewerAction = "prev"
	ViewerGoTo       ViewerAction = "goto"
	ViewerZoomIn     ViewerAction = "zoom_in"
	ViewerZoomOut    ViewerAction = "zoom_out"
	ViewerRotate     ViewerAction = "rotate"
	ViewerFullscreen ViewerAction = "fullscreen"
)

var ErrUnknownViewerAction = &ValidationError{Field: "action", Reason: "unknown viewer action"}

// ViewerState - состояние просмотрщика открытого документа.
// Переходы не возвращают ошибок на границах: значения зажимаются.
type ViewerState struct {
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
	Scale      float64 `json:"scale"`
	Rotation   int     `json:"rotation"`
	Fullscreen bool    `json:"fullscreen"`
	Loading    bool    `json:"loading"`
	LoadFailed bool    `json:"load_failed"`
	Message    string  `json:"message,omitempty"`
}

func NewViewerState() ViewerState {
	return ViewerState{
		Page:    1,
		Scale:   DefaultScale,
		Loading: true,
	}
}

// Loaded фиксирует количество страниц, полученное от рендерера
func (s ViewerState) Loaded(totalPages int) ViewerState {
	s.Loading = false
	s.LoadFailed = false
	s.Message = ""
	s.TotalPages = max(totalPages, 0)
	s.Page = s.clampPage(s.Page)
	return s
}

// Failed - документ не удалось загрузить, повторных попыток нет
func (s ViewerState) Failed() ViewerState {
	s.Loading = false
	s.LoadFailed = true
	s.Message = LoadFailedMessage
	s.TotalPages = 0
	s.Page = 1
	return s
}

// Normalize приводит присланное клиентом состояние к допустимым значениям
func (s ViewerState) Normalize() ViewerState {
	if s.TotalPages < 0 {
		s.TotalPages = 0
	}
	s.Page = s.clampPage(s.Page)
	s.Scale = scaleFromQuarters(quarters(s.Scale))
	s.Rotation = ((s.Rotation/RotationStep)%4 + 4) % 4 * RotationStep
	return s
}

func (s ViewerState) clampPage(page int) int {
	if s.TotalPages < 1 {
		return 1
	}
	return min(max(page, 1), s.TotalPages)
}

func (s ViewerState) CanPrev() bool {
	return s.TotalPages > 0 && s.Page > 1
}

func (s ViewerState) CanNext() bool {
	return s.TotalPages > 0 && s.Page < s.TotalPages
}

func (s ViewerState) CanZoomIn() bool {
	return quarters(s.Scale) < maxScaleQuarters
}

func (s ViewerState) CanZoomOut() bool {
	return quarters(s.Scale) > minScaleQuarters
}

func (s ViewerState) NextPage() ViewerState {
	s.Page = s.clampPage(s.Page + 1)
	return s
}

func (s ViewerState) PrevPage() ViewerState {
	s.Page = s.clampPage(s.Page - 1)
	return s
}

func (s ViewerState) GoTo(page int) ViewerState {
	s.Page = s.clampPage(page)
	return s
}

func (s ViewerState) ZoomIn() ViewerState {
	s.Scale = scaleFromQuarters(quarters(s.Scale) + 1)
	return s
}

func (s ViewerState) ZoomOut() ViewerState {
	s.Scale = scaleFromQuarters(quarters(s.Scale) - 1)
	return s
}

// Rotate поворачивает по часовой стрелке: 0 -> 90 -> 180 -> 270 -> 0
func (s ViewerState) Rotate() ViewerState {
	s.Rotation = (s.Rotation + RotationStep) % 360
	return s
}

func (s ViewerState) ToggleFullscreen() ViewerState {
	s.Fullscreen = !s.Fullscreen
	return s
}

// Apply выполняет действие пользователя. page используется только для ViewerGoTo.
func (s ViewerState) Apply(action ViewerAction, page int) (ViewerState, error) {
	s = s.Normalize()
	switch action {
	case ViewerNext:
		return s.NextPage(), nil
	case ViewerPrev:
		return s.PrevPage(), nil
	case ViewerGoTo:
		return s.GoTo(page), nil
	case ViewerZoomIn:
		return s.ZoomIn(), nil
	case ViewerZoomOut:
		return s.ZoomOut(), nil
	case ViewerRotate:
		return s.Rotate(), nil
	case ViewerFullscreen:
		return s.ToggleFullscreen(), nil
	}
	return s, ErrUnknownViewerAction
}

func quarters(scale float64) int {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale == 0 {
		return int(DefaultScale / ScaleStep)
	}
	return int(math.Round(scale / ScaleStep))
}

func scaleFromQuarters(q int) float64 {
	q = min(max(q, minScaleQuarters), maxScaleQuarters)
	return float64(q) * ScaleStep
}

// ViewerSession - всё, что нужно странице просмотра при открытии
type ViewerSession struct {
	Material    *Material   `json:"material"`
	State       ViewerState `json:"state"`
	DownloadURL string      `json:"download_url"`
}
