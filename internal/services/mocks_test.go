package services

import (
	"context"
	"sync"

	"hvac-backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Register(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type mockEquipmentStore struct {
	mock.Mock
}

func (m *mockEquipmentStore) ListClients(ctx context.Context) ([]*models.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Client), args.Error(1)
}

func (m *mockEquipmentStore) Create(ctx context.Context, e *models.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEquipmentStore) Get(ctx context.Context, id int) (*models.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *mockEquipmentStore) List(ctx context.Context, filter models.EquipmentFilter) ([]*models.Equipment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Equipment), args.Error(1)
}

type mockServiceRequestStore struct {
	mock.Mock
}

func (m *mockServiceRequestStore) Create(ctx context.Context, s *models.ServiceRequest) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockServiceRequestStore) Update(ctx context.Context, s *models.ServiceRequest) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockServiceRequestStore) Get(ctx context.Context, id int) (*models.ServiceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRequest), args.Error(1)
}

func (m *mockServiceRequestStore) List(ctx context.Context, filter models.ServiceRequestFilter) ([]*models.ServiceRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceRequest), args.Error(1)
}

type mockPMOCStore struct {
	mock.Mock
}

func (m *mockPMOCStore) Create(ctx context.Context, report *models.PMOCReport, images []models.ReportImageInput) error {
	args := m.Called(ctx, report, images)
	return args.Error(0)
}

func (m *mockPMOCStore) Get(ctx context.Context, id int) (*models.PMOCReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PMOCReport), args.Error(1)
}

func (m *mockPMOCStore) List(ctx context.Context, filter models.PMOCFilter) ([]*models.PMOCReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PMOCReport), args.Error(1)
}

func (m *mockPMOCStore) ReplaceImages(ctx context.Context, reportID int, images []models.ReportImageInput) ([]models.ReportImage, error) {
	args := m.Called(ctx, reportID, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportImage), args.Error(1)
}

func (m *mockPMOCStore) ListImages(ctx context.Context, reportID int) ([]models.ReportImage, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportImage), args.Error(1)
}

// memFinancialStore keeps transactions in memory and runs UpdateStatus
// callbacks under a lock, like the row lock of the real repository.
type memFinancialStore struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]*models.FinancialTransaction
}

func newMemFinancialStore() *memFinancialStore {
	return &memFinancialStore{rows: map[int]*models.FinancialTransaction{}}
}

func (s *memFinancialStore) Create(_ context.Context, t *models.FinancialTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	cp := *t
	s.rows[t.ID] = &cp
	return nil
}

func (s *memFinancialStore) Get(_ context.Context, id int) (*models.FinancialTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.rows[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *memFinancialStore) List(_ context.Context, _ models.TransactionFilter) ([]*models.FinancialTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.FinancialTransaction
	for _, t := range s.rows {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memFinancialStore) UpdateStatus(_ context.Context, id int, apply func(*models.FinancialTransaction) error) (*models.FinancialTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.rows[id]
	if !ok {
		return nil, errRecordNotFound
	}
	cp := *t
	if err := apply(&cp); err != nil {
		return nil, err
	}
	s.rows[id] = &cp
	out := cp
	return &out, nil
}

type mockReceiptStore struct {
	mock.Mock
}

func (m *mockReceiptStore) Create(ctx context.Context, r *models.Receipt) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockReceiptStore) Get(ctx context.Context, id int) (*models.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *mockReceiptStore) List(ctx context.Context, filter models.ReceiptFilter) ([]*models.Receipt, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Receipt), args.Error(1)
}

// memObjectStore records puts and deletes.
type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	deleted []string
	putErr  error
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *memObjectStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	s.types[key] = contentType
	return nil
}

func (s *memObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *memObjectStore) URL(key string) string {
	return "https://cdn.example.com/" + key
}
