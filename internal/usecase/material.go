package usecase

import (
	"context"

	"exampocket-backend/internal/entity"
)

type Material interface {
	// GetMaterial возвращает материал по ID без побочных эффектов
	GetMaterial(ctx context.Context, id string) (*entity.Material, error)
	// ListMaterials возвращает все материалы для раздела администратора
	ListMaterials(ctx context.Context) ([]*entity.Material, error)
	// RegisterView запускает увеличение счётчика просмотров и не ждёт его результата
	RegisterView(ctx context.Context, material *entity.Material)
	// RegisterDownload находит материал и запускает увеличение счётчика скачиваний
	RegisterDownload(ctx context.Context, id string) (*entity.Material, error)
	// DeleteMaterial удаляет строку и файл материала
	DeleteMaterial(ctx context.Context, id string) error
	// Dashboard возвращает сводку для панели администратора
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)
}
