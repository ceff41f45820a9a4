package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"exampocket-backend/internal/delivery/http/utils"
	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/usecase"
)

const materialsListingPath = "/admin/materials"

type Upload struct {
	uploadUseCase usecase.Upload
}

func NewUpload(uploadUseCase usecase.Upload) *Upload {
	return &Upload{uploadUseCase: uploadUseCase}
}

// Configure ожидает группу, уже закрытую RequireAdmin
func (u *Upload) Configure(protected *echo.Group, middleware ...echo.MiddlewareFunc) {
	protected.POST("/upload", u.Upload, middleware...)
}

func (u *Upload) Upload(c echo.Context) error {
	if _, ok := utils.AdminSessionFromContext(c); !ok {
		return utils.WriteError(c, http.StatusUnauthorized, "Admin authentication required")
	}

	form := &entity.UploadForm{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		University:   c.FormValue("university"),
		MaterialType: c.FormValue("material_type"),
		NoteCategory: c.FormValue("note_category"),
		Subject:      c.FormValue("subject"),
		Semester:     c.FormValue("semester"),
		Year:         c.FormValue("year"),
		Chapter:      c.FormValue("chapter"),
	}

	file, err := u.readFile(c)
	if err != nil {
		return writeError(c, err)
	}

	material, err := u.uploadUseCase.UploadMaterial(c.Request().Context(), form, file, func(percent int) {
		c.Logger().Debugf("Загрузка %q: %d%%", form.Title, percent)
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"material": material,
		"redirect": materialsListingPath,
	})
}

// readFile читает файл из формы. Слишком большой файл не читается: его отклонит проверка размера.
func (u *Upload) readFile(c echo.Context) (*entity.UploadFile, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, entity.ErrFileRequired
	}
	file := &entity.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
	}
	if file.Size > entity.MaxFileSize || file.ContentType != entity.PDFContentType {
		return file, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	file.Data, err = io.ReadAll(io.LimitReader(src, entity.MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	file.Size = int64(len(file.Data))
	return file, nil
}
