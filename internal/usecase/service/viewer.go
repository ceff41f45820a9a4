package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/ledongthuc/pdf"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
	"exampocket-backend/internal/usecase"
)

var errNoPages = errors.New("document has no pages")

type Viewer struct {
	materials usecase.Material
	storage   repo.MaterialStorage
}

func NewViewer(materials usecase.Material, storage repo.MaterialStorage) usecase.Viewer {
	return &Viewer{
		materials: materials,
		storage:   storage,
	}
}

func (v *Viewer) Open(ctx context.Context, id string) (*entity.ViewerSession, error) {
	material, err := v.materials.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	v.materials.RegisterView(ctx, material)

	state := entity.NewViewerState()
	pages, err := v.pageCount(ctx, material)
	if err != nil {
		log.Warnf("не удалось открыть документ %s: %v", material.ID, err)
		state = state.Failed()
	} else {
		state = state.Loaded(pages)
	}

	return &entity.ViewerSession{
		Material:    material,
		State:       state,
		DownloadURL: "/api/materials/" + material.ID + "/download",
	}, nil
}

func (v *Viewer) Apply(state entity.ViewerState, action entity.ViewerAction, page int) (entity.ViewerState, error) {
	return state.Apply(action, page)
}

func (v *Viewer) pageCount(ctx context.Context, material *entity.Material) (int, error) {
	data, err := v.storage.Get(ctx, material.StoragePath())
	if err != nil {
		return 0, err
	}
	return countPages(data)
}

// countPages читает структуру PDF. Разборщик паникует на части повреждённых файлов.
func countPages(data []byte) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	pages = reader.NumPage()
	if pages < 1 {
		return 0, errNoPages
	}
	return pages, nil
}
