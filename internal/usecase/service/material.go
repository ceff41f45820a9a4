package service

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
	"exampocket-backend/internal/usecase"
	"exampocket-backend/pkg/retry"
)

const recentMaterialsCount = 5

type Material struct {
	materialRepo repo.Material
	storage      repo.MaterialStorage
	events       repo.MaterialEvent
	run          runner
}

func NewMaterial(materialRepo repo.Material, storage repo.MaterialStorage, events repo.MaterialEvent) usecase.Material {
	return &Material{
		materialRepo: materialRepo,
		storage:      storage,
		events:       events,
		run:          goRunner,
	}
}

func (m *Material) GetMaterial(ctx context.Context, id string) (*entity.Material, error) {
	return m.materialRepo.GetMaterial(ctx, id)
}

func (m *Material) ListMaterials(ctx context.Context) ([]*entity.Material, error) {
	materials, err := m.materialRepo.ListAllMaterials(ctx)
	if err != nil {
		return nil, err
	}
	if materials == nil {
		materials = []*entity.Material{}
	}
	return materials, nil
}

func (m *Material) RegisterView(ctx context.Context, material *entity.Material) {
	m.run(func() {
		ctx, cancel := detach(ctx)
		defer cancel()
		if err := m.materialRepo.IncrementViewCount(ctx, material.ID); err != nil {
			log.Errorf("не удалось увеличить счётчик просмотров %s: %v", material.ID, err)
		}
	})
	publishEvent(ctx, m.run, m.events, entity.MaterialViewed, material)
}

func (m *Material) RegisterDownload(ctx context.Context, id string) (*entity.Material, error) {
	material, err := m.materialRepo.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	m.run(func() {
		ctx, cancel := detach(ctx)
		defer cancel()
		if err := m.materialRepo.IncrementDownloadCount(ctx, material.ID); err != nil {
			log.Errorf("не удалось увеличить счётчик скачиваний %s: %v", material.ID, err)
		}
	})
	publishEvent(ctx, m.run, m.events, entity.MaterialDownloaded, material)
	return material, nil
}

// DeleteMaterial удаляет строку в транзакции и до фиксации удаляет файл.
// Удаление файла идемпотентно и повторяется; если оно так и не удалось, строка остаётся.
func (m *Material) DeleteMaterial(ctx context.Context, id string) error {
	// после удаления файла строку нужно закоммитить, даже если клиент уже отключился
	ctx, cancel := detach(ctx)
	defer cancel()

	deleted, err := m.materialRepo.DeleteMaterial(ctx, id, func(material *entity.Material) error {
		path := material.StoragePath()
		err := retry.Do(ctx, func() error {
			return m.storage.Remove(ctx, path)
		})
		if err != nil {
			return fmt.Errorf("remove file %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Infof("удалён материал %s (%s)", deleted.ID, deleted.StoragePath())
	publishEvent(ctx, m.run, m.events, entity.MaterialDeleted, deleted)
	return nil
}

func (m *Material) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	return m.materialRepo.GetDashboardStats(ctx, recentMaterialsCount)
}
