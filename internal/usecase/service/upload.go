package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
	"exampocket-backend/internal/usecase"
	"exampocket-backend/pkg/retry"
)

type Upload struct {
	materialRepo repo.Material
	storage      repo.MaterialStorage
	events       repo.MaterialEvent
	run          runner
	newID        func() string
	now          func() time.Time
}

func NewUpload(materialRepo repo.Material, storage repo.MaterialStorage, events repo.MaterialEvent) usecase.Upload {
	return &Upload{
		materialRepo: materialRepo,
		storage:      storage,
		events:       events,
		run:          goRunner,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

func (u *Upload) UploadMaterial(ctx context.Context, form *entity.UploadForm, file *entity.UploadFile, progress entity.ProgressFunc) (*entity.Material, error) {
	report := func(percent int) {
		if progress != nil {
			progress(percent)
		}
	}
	report(entity.ProgressStarted)

	// Проверки выполняются до любого обращения к хранилищам
	if err := file.Validate(); err != nil {
		return nil, err
	}
	if form == nil {
		return nil, entity.ErrRequiredFields
	}
	material, err := form.Validate(u.now())
	if err != nil {
		return nil, err
	}

	// ID выдаётся до загрузки и входит в путь файла, поэтому одинаковые названия не конфликтуют
	material.ID = u.newID()
	material.FileName = entity.MaterialFileName(material.Title, material.ID)
	material.FileSize = file.Size
	path := material.StoragePath()

	report(entity.ProgressUploading)
	if err := u.storage.Upload(ctx, path, bytes.NewReader(file.Data), file.Size, entity.PDFContentType); err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	report(entity.ProgressUploaded)
	material.FileURL = u.storage.PublicURL(path)

	report(entity.ProgressSaving)
	if err := u.materialRepo.AddMaterial(ctx, material); err != nil {
		insertErr := fmt.Errorf("insert material: %w", err)
		if rmErr := u.removeOrphan(ctx, path); rmErr != nil {
			return nil, errors.Join(insertErr, rmErr)
		}
		return nil, insertErr
	}
	report(entity.ProgressDone)

	log.Infof("загружен материал %s (%s, %d байт)", material.ID, path, material.FileSize)
	publishEvent(ctx, u.run, u.events, entity.MaterialCreated, material)
	return material, nil
}

// removeOrphan удаляет файл, для которого не удалось создать строку
func (u *Upload) removeOrphan(ctx context.Context, path string) error {
	ctx, cancel := detach(ctx)
	defer cancel()
	err := retry.Do(ctx, func() error {
		return u.storage.Remove(ctx, path)
	})
	if err != nil {
		log.Errorf("не удалось удалить осиротевший файл %s: %v", path, err)
		return fmt.Errorf("remove orphaned file %s: %w", path, err)
	}
	return nil
}
