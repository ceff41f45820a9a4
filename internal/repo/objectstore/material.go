package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"

	"exampocket-backend/internal/repo"
)

const (
	cacheControl = "max-age=3600"
	noSuchKey    = "NoSuchKey"
)

// publicReadPolicy открывает анонимное чтение объектов бакета: ссылки на файлы постоянные
const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

type MaterialStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMaterialStorage создаёт бакет с публичным чтением, если его ещё нет.
// publicURL - внешний адрес хранилища; пустой означает адрес, по которому подключён клиент.
func NewMaterialStorage(ctx context.Context, client *minio.Client, bucket, publicURL string) (repo.MaterialStorage, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		if err := client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
	}
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}
	return &MaterialStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *MaterialStorage) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	// S3 молча перезаписывает объект, поэтому занятость пути проверяем сами.
	// Проверка не атомарна: между Stat и Put возможна параллельная запись,
	// уникальность пути держится на ID материала в имени файла.
	_, err := s.client.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	switch {
	case err == nil:
		return repo.ErrObjectExists
	case !isNotFound(err):
		return fmt.Errorf("stat object: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *MaterialStorage) PublicURL(path string) string {
	return s.publicURL + "/" + s.bucket + "/" + path
}

func (s *MaterialStorage) Get(ctx context.Context, path string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	defer func() { _ = object.Close() }()

	data, err := io.ReadAll(object)
	if err != nil {
		if isNotFound(err) {
			return nil, repo.ErrObjectNotFound
		}
		return nil, fmt.Errorf("read object: %w", err)
	}
	return data, nil
}

func (s *MaterialStorage) Remove(ctx context.Context, path string) error {
	err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == noSuchKey || resp.StatusCode == http.StatusNotFound
	}
	return minio.ToErrorResponse(err).Code == noSuchKey
}
