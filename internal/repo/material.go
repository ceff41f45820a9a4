package repo

import (
	"context"
	"errors"

	"exampocket-backend/internal/entity"
)

type Material interface {
	// ListMaterials возвращает материалы, подходящие под все заданные фильтры, в порядке страницы каталога
	ListMaterials(ctx context.Context, filter entity.CatalogFilter) ([]*entity.Material, error)
	// ListAllMaterials возвращает все материалы, новые первыми
	ListAllMaterials(ctx context.Context) ([]*entity.Material, error)
	// GetMaterial возвращает материал по ID
	GetMaterial(ctx context.Context, id string) (*entity.Material, error)
	// AddMaterial добавляет материал с заранее выданным ID и заполняет CreatedAt/UpdatedAt
	AddMaterial(ctx context.Context, material *entity.Material) error
	// DeleteMaterial удаляет строку в транзакции. beforeCommit вызывается с удаляемым материалом;
	// если он вернул ошибку, транзакция откатывается и строка остаётся на месте.
	DeleteMaterial(ctx context.Context, id string, beforeCommit func(*entity.Material) error) (*entity.Material, error)
	// IncrementViewCount атомарно увеличивает счётчик просмотров (increment_view_count)
	IncrementViewCount(ctx context.Context, id string) error
	// IncrementDownloadCount атомарно увеличивает счётчик скачиваний (increment_download_count)
	IncrementDownloadCount(ctx context.Context, id string) error
	// GetDashboardStats возвращает сводку для панели администратора
	GetDashboardStats(ctx context.Context, recent int) (*entity.DashboardStats, error)
}

var (
	ErrMaterialNotFound = errors.New("material not found")
)
