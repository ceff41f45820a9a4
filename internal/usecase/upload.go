package usecase

import (
	"context"

	"exampocket-backend/internal/entity"
)

type Upload interface {
	// UploadMaterial проверяет файл и форму, загружает файл в хранилище и создаёт строку материала.
	// При ошибке после загрузки файла он удаляется: частичных артефактов не остаётся.
	UploadMaterial(ctx context.Context, form *entity.UploadForm, file *entity.UploadFile, progress entity.ProgressFunc) (*entity.Material, error)
}
