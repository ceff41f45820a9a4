package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"exampocket-backend/internal/entity"
	"exampocket-backend/internal/repo"
)

func syncRunner(f func()) { f() }

type fakeMaterialRepo struct {
	mu        sync.Mutex
	materials map[string]*entity.Material
	now       time.Time

	listErr   error
	addErr    error
	incErr    error
	listCalls int
	addCalls  int
	viewIncs  map[string]int
	downIncs  map[string]int
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{
		materials: map[string]*entity.Material{},
		now:       time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
		viewIncs:  map[string]int{},
		downIncs:  map[string]int{},
	}
}

func (r *fakeMaterialRepo) ListMaterials(_ context.Context, filter entity.CatalogFilter) ([]*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []*entity.Material
	for _, m := range r.sorted() {
		if filter.Matches(m) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeMaterialRepo) ListAllMaterials(context.Context) ([]*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(), nil
}

func (r *fakeMaterialRepo) sorted() []*entity.Material {
	result := make([]*entity.Material, 0, len(r.materials))
	for _, m := range r.materials {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *fakeMaterialRepo) GetMaterial(_ context.Context, id string) (*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, repo.ErrMaterialNotFound
	}
	return m, nil
}

func (r *fakeMaterialRepo) AddMaterial(_ context.Context, material *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addCalls++
	if r.addErr != nil {
		return r.addErr
	}
	r.now = r.now.Add(time.Minute)
	material.CreatedAt = r.now
	material.UpdatedAt = r.now
	r.materials[material.ID] = material
	return nil
}

func (r *fakeMaterialRepo) DeleteMaterial(ctx context.Context, id string, beforeCommit func(*entity.Material) error) (*entity.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, repo.ErrMaterialNotFound
	}
	if beforeCommit != nil {
		if err := beforeCommit(m); err != nil {
			return nil, err
		}
	}
	// как database/sql: отменённый контекст откатывает транзакцию
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	delete(r.materials, id)
	return m, nil
}

func (r *fakeMaterialRepo) IncrementViewCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewIncs[id]++
	if r.incErr != nil {
		return r.incErr
	}
	if m, ok := r.materials[id]; ok {
		m.ViewCount++
	}
	return nil
}

func (r *fakeMaterialRepo) IncrementDownloadCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downIncs[id]++
	if r.incErr != nil {
		return r.incErr
	}
	if m, ok := r.materials[id]; ok {
		m.DownloadCount++
	}
	return nil
}

func (r *fakeMaterialRepo) GetDashboardStats(_ context.Context, recent int) (*entity.DashboardStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entity.DashboardStats{ByUniversity: map[entity.University]int64{}}
	for i, m := range r.sorted() {
		stats.TotalMaterials++
		stats.TotalViews += m.ViewCount
		stats.TotalDownloads += m.DownloadCount
		stats.ByUniversity[m.University]++
		if i < recent {
			stats.RecentMaterials = append(stats.RecentMaterials, &entity.RecentMaterial{ID: m.ID, Title: m.Title})
		}
	}
	return stats, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte

	uploadErr    error
	removeErrs   []error
	uploadCalls  int
	removeCalls  int
	getCalls     int
	urlCalls     int
	contentTypes map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (s *fakeStorage) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploadCalls + s.removeCalls + s.getCalls + s.urlCalls
}

func (s *fakeStorage) Upload(_ context.Context, path string, r io.Reader, size int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadCalls++
	if s.uploadErr != nil {
		return s.uploadErr
	}
	if _, ok := s.objects[path]; ok {
		return repo.ErrObjectExists
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: %d != %d", len(data), size)
	}
	s.objects[path] = data
	s.contentTypes[path] = contentType
	return nil
}

func (s *fakeStorage) PublicURL(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urlCalls++
	return "http://localhost:9000/materials/" + path
}

func (s *fakeStorage) Get(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	data, ok := s.objects[path]
	if !ok {
		return nil, repo.ErrObjectNotFound
	}
	return bytes.Clone(data), nil
}

func (s *fakeStorage) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeCalls++
	if len(s.removeErrs) > 0 {
		err := s.removeErrs[0]
		s.removeErrs = s.removeErrs[1:]
		if err != nil {
			return err
		}
	}
	delete(s.objects, path)
	return nil
}

type fakeEvents struct {
	mu        sync.Mutex
	published []*entity.MaterialEvent
	stream    chan *entity.MaterialEvent
	err       error
}

func (e *fakeEvents) PublishMaterialEvent(_ context.Context, event *entity.MaterialEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.published = append(e.published, event)
	return nil
}

func (e *fakeEvents) SubscribeMaterialEvents(context.Context, string) (<-chan *entity.MaterialEvent, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.stream, nil
}

func (e *fakeEvents) Close() error { return nil }

func (e *fakeEvents) types() []entity.MaterialEventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	var types []entity.MaterialEventType
	for _, event := range e.published {
		types = append(types, event.Type)
	}
	return types
}

var errBackend = errors.New("backend unavailable")

// buildPDF собирает минимальный корректный PDF с заданным числом пустых страниц
func buildPDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int
	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	object("<< /Type /Catalog /Pages 2 0 R >>")
	var kids bytes.Buffer
	for i := 0; i < pages; i++ {
		fmt.Fprintf(&kids, "%d 0 R ", i+3)
	}
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids.String(), pages))
	for i := 0; i < pages; i++ {
		object("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func pdfFile(data []byte) *entity.UploadFile {
	return &entity.UploadFile{
		Name:        "unit1.pdf",
		ContentType: entity.PDFContentType,
		Size:        int64(len(data)),
		Data:        data,
	}
}
