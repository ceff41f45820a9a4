package service

import (
	"context"
	"errors"

	"github.com/labstack/gommon/log"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
	"exampocket-backend/internal/usecase"
)

type Catalog struct {
	materialRepo repo.Material
}

func NewCatalog(materialRepo repo.Material) usecase.Catalog {
	return &Catalog{materialRepo: materialRepo}
}

func (c *Catalog) List(ctx context.Context, filter entity.CatalogFilter) (*entity.CatalogPage, error) {
	materials, err := c.materialRepo.ListMaterials(ctx, filter)
	if err != nil {
		log.Errorf("ошибка запроса каталога %s: %v", filter.DeepLink(), err)
		return nil, errors.Join(usecase.ErrCatalogUnavailable, err)
	}
	if materials == nil {
		materials = []*entity.Material{}
	}
	return &entity.CatalogPage{
		Materials: materials,
		Filter:    filter,
		DeepLink:  filter.DeepLink(),
	}, nil
}
