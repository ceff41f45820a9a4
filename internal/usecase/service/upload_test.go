package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
)

type uploadFixture struct {
	materials *fakeMaterialRepo
	storage   *fakeStorage
	events    *fakeEvents
	upload    *Upload
	ids       []string
}

func newUploadFixture() *uploadFixture {
	f := &uploadFixture{
		materials: newFakeMaterialRepo(),
		storage:   newFakeStorage(),
		events:    &fakeEvents{},
		ids:       []string{"6f1c3c1e-0a7e-4d43-9b4b-111111111111", "6f1c3c1e-0a7e-4d43-9b4b-222222222222"},
	}
	f.upload = &Upload{
		materialRepo: f.materials,
		storage:      f.storage,
		events:       f.events,
		run:          syncRunner,
		newID: func() string {
			id := f.ids[0]
			f.ids = f.ids[1:]
			return id
		},
		now: func() time.Time { return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC) },
	}
	return f
}

func dsUnitForm() *entity.UploadForm {
	return &entity.UploadForm{
		Title:        "DS Unit 1",
		University:   "aktu",
		MaterialType: "notes",
		Subject:      "Data Structures",
	}
}

func twoMiBPDF() []byte {
	data := make([]byte, 2<<20)
	copy(data, buildPDF(1))
	return data
}

func TestUpload_DSUnitScenario(t *testing.T) {
	f := newUploadFixture()
	var progress []int

	material, err := f.upload.UploadMaterial(context.Background(), dsUnitForm(), pdfFile(twoMiBPDF()), func(p int) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 20, 60, 80, 100}, progress)
	assert.Len(t, f.materials.materials, 1)

	stored, err := f.materials.GetMaterial(context.Background(), material.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MaterialTypeNotes, stored.Type())
	assert.Nil(t, stored.NoteCategory())
	assert.Nil(t, stored.Year())
	assert.Zero(t, stored.ViewCount)
	assert.Zero(t, stored.DownloadCount)
	assert.Equal(t, int64(2<<20), stored.FileSize)
	assert.Equal(t, "ds-unit-1-6f1c3c1e-0a7e-4d43-9b4b-111111111111.pdf", stored.FileName)
	assert.Equal(t, "materials/aktu/ds-unit-1-6f1c3c1e-0a7e-4d43-9b4b-111111111111.pdf", stored.StoragePath())
	assert.Equal(t, "http://localhost:9000/materials/"+stored.StoragePath(), stored.FileURL)
	assert.False(t, stored.CreatedAt.IsZero())

	// file_url указывает на загруженный объект
	blob, err := f.storage.Get(context.Background(), stored.StoragePath())
	require.NoError(t, err)
	assert.Len(t, blob, 2<<20)
	assert.Equal(t, entity.PDFContentType, f.storage.contentTypes[stored.StoragePath()])

	assert.Equal(t, []entity.MaterialEventType{entity.MaterialCreated}, f.events.types())
}

func TestUpload_SameTitleTwice(t *testing.T) {
	f := newUploadFixture()

	first, err := f.upload.UploadMaterial(context.Background(), dsUnitForm(), pdfFile(buildPDF(1)), nil)
	require.NoError(t, err)
	second, err := f.upload.UploadMaterial(context.Background(), dsUnitForm(), pdfFile(buildPDF(1)), nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.StoragePath(), second.StoragePath())
	assert.Len(t, f.materials.materials, 2)
}

func TestUpload_RejectsBeforeAnyNetworkCall(t *testing.T) {
	tests := []struct {
		name string
		form *entity.UploadForm
		file *entity.UploadFile
		want error
	}{
		{
			name: "60 MiB file",
			form: dsUnitForm(),
			file: &entity.UploadFile{ContentType: entity.PDFContentType, Size: 60 << 20},
			want: entity.ErrFileTooLarge,
		},
		{
			name: "non pdf file",
			form: dsUnitForm(),
			file: &entity.UploadFile{ContentType: "image/jpeg", Size: 3, Data: []byte{0xff, 0xd8, 0xff}},
			want: entity.ErrFileNotPDF,
		},
		{
			name: "pdf declared but not pdf bytes",
			form: dsUnitForm(),
			file: &entity.UploadFile{ContentType: entity.PDFContentType, Size: 5, Data: []byte("hello")},
			want: entity.ErrFileNotPDF,
		},
		{
			name: "no file",
			form: dsUnitForm(),
			want: entity.ErrFileRequired,
		},
		{
			name: "missing subject",
			form: &entity.UploadForm{Title: "DS Unit 1", University: "aktu", MaterialType: "notes"},
			file: pdfFile(buildPDF(1)),
			want: entity.ErrRequiredFields,
		},
		{
			name: "year on notes",
			form: &entity.UploadForm{Title: "DS", University: "aktu", MaterialType: "notes", Subject: "DS", Year: "2022"},
			file: pdfFile(buildPDF(1)),
			want: entity.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUploadFixture()
			var progress []int

			_, err := f.upload.UploadMaterial(context.Background(), tt.form, tt.file, func(p int) {
				progress = append(progress, p)
			})
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, f.storage.calls())
			assert.Zero(t, f.materials.addCalls)
			assert.Empty(t, f.events.types())
			assert.Equal(t, []int{0}, progress)
		})
	}
}

func TestUpload_StorageCollision(t *testing.T) {
	f := newUploadFixture()
	f.storage.objects["materials/aktu/ds-unit-1-6f1c3c1e-0a7e-4d43-9b4b-111111111111.pdf"] = []byte("existing")

	_, err := f.upload.UploadMaterial(context.Background(), dsUnitForm(), pdfFile(buildPDF(1)), nil)
	assert.ErrorIs(t, err, repo.ErrObjectExists)
	assert.Equal(t, []byte("existing"), f.storage.objects["materials/aktu/ds-unit-1-6f1c3c1e-0a7e-4d43-9b4b-111111111111.pdf"])
	assert.Zero(t, f.materials.addCalls)
}

func TestUpload_StorageFailure(t *testing.T) {
	f := newUploadFixture()
	f.storage.uploadErr = errBackend

	_, err := f.upload.UploadMaterial(context.Background(), dsUnitForm(), pdfFile(buildPDF(1)), nil)
	assert.ErrorIs(t, err, errBackend)
	assert.Zero(t, f.materials.addCalls)
	assert.Empty(t, f.storage.objects)
}

func TestUpload_InsertFailureRemovesBlob(t *testing.T) {
	f := newUploadFixture()
	f.materials.addErr = errBackend
	// первая попытка удаления неудачна, вторая проходит
	f.storage.removeErrs = []error{errors.New("timeout")}

	_, err := f.upload.UploadMaterial(context.Background(), dsUnitForm(), pdfFile(buildPDF(1)), nil)
	assert.ErrorIs(t, err, errBackend)
	assert.Empty(t, f.storage.objects)
	assert.Empty(t, f.materials.materials)
	assert.Equal(t, 2, f.storage.removeCalls)
	assert.Empty(t, f.events.types())
}

func TestUpload_InsertAndCompensationFailure(t *testing.T) {
	f := newUploadFixture()
	f.materials.addErr = errBackend
	removeErr := errors.New("storage down")
	f.storage.removeErrs = []error{removeErr, removeErr, removeErr, removeErr, removeErr}

	_, err := f.upload.UploadMaterial(context.Background(), dsUnitForm(), pdfFile(buildPDF(1)), nil)
	assert.ErrorIs(t, err, errBackend)
	assert.ErrorIs(t, err, removeErr)
	assert.Equal(t, 5, f.storage.removeCalls)
}

func TestUpload_CancelledRequestStillCompensates(t *testing.T) {
	f := newUploadFixture()
	ctx, cancel := context.WithCancel(context.Background())
	f.materials.addErr = context.Canceled
	f.storage.removeErrs = []error{errors.New("timeout")}
	cancel()

	_, err := f.upload.UploadMaterial(ctx, dsUnitForm(), pdfFile(buildPDF(1)), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.storage.objects)
}
