package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/delivery/http/utils"
	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/usecase"
)

type viewerActionRequest struct {
	State  entity.ViewerState  `json:"state"`
	Action entity.ViewerAction `json:"action"`
	Page   int                 `json:"page"`
}

type Viewer struct {
	viewerUseCase usecase.Viewer
}

func NewViewer(viewerUseCase usecase.Viewer) *Viewer {
	return &Viewer{viewerUseCase: viewerUseCase}
}

func (h *Viewer) Configure(server *echo.Group) {
	server.GET("/:id", h.Open)
	server.POST("/:id/actions", h.Action)
}

// Open - загрузка страницы просмотра: ровно одно увеличение счётчика просмотров
func (h *Viewer) Open(c echo.Context) error {
	session, err := h.viewerUseCase.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

func (h *Viewer) Action(c echo.Context) error {
	request := &viewerActionRequest{}
	if err := utils.ReadJSON(c, request); err != nil {
		return utils.WriteError(c, http.StatusBadRequest, "Invalid request format")
	}
	state, err := h.viewerUseCase.Apply(request.State, request.Action, request.Page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"state":        state,
		"can_prev":     state.CanPrev(),
		"can_next":     state.CanNext(),
		"can_zoom_in":  state.CanZoomIn(),
		"can_zoom_out": state.CanZoomOut(),
	})
}
