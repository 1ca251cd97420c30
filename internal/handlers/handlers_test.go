package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hvac-backend/internal/auth"
	"hvac-backend/internal/config"
	"hvac-backend/internal/models"
	"hvac-backend/internal/repositories"
	"hvac-backend/internal/services"
	"hvac-backend/internal/timeutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserStore is an in-memory services.UserStore.
type memUserStore struct {
	mu    sync.Mutex
	users []*models.User
}

func (s *memUserStore) Register(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = len(s.users) + 1
	s.users = append(s.users, u)
	return nil
}

func (s *memUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) Get(_ context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memUserStore) List(context.Context, models.UserFilter) ([]*models.User, error) {
	return nil, nil
}

// memPMOCStore serves fixed reports by id.
type memPMOCStore struct {
	reports map[int]*models.PMOCReport
}

func (s *memPMOCStore) Create(context.Context, *models.PMOCReport, []models.ReportImageInput) error {
	return errors.New("read only")
}

func (s *memPMOCStore) Get(_ context.Context, id int) (*models.PMOCReport, error) {
	if r, ok := s.reports[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *memPMOCStore) List(context.Context, models.PMOCFilter) ([]*models.PMOCReport, error) {
	return nil, nil
}

func (s *memPMOCStore) ReplaceImages(context.Context, int, []models.ReportImageInput) ([]models.ReportImage, error) {
	return nil, repositories.ErrNotFound
}

func (s *memPMOCStore) ListImages(_ context.Context, id int) ([]models.ReportImage, error) {
	if r, ok := s.reports[id]; ok {
		return r.Images, nil
	}
	return nil, repositories.ErrNotFound
}

type memBucket struct {
	objects map[string][]byte
}

func (b *memBucket) Put(_ context.Context, key string, body []byte, _ string) error {
	b.objects[key] = body
	return nil
}

func (b *memBucket) Delete(_ context.Context, key string) error {
	delete(b.objects, key)
	return nil
}

func (b *memBucket) URL(key string) string {
	return "https://cdn.example.com/" + key
}

func newTestUserService() *services.UserService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-secret"
	cfg.JWT.ExpirationHours = 2
	return services.NewUserService(&memUserStore{}, auth.NewJWTManager(cfg))
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(method, target, &buf))
	return rec
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&services.FieldError{Kind: services.ErrMissingField}, http.StatusBadRequest},
		{services.ErrInvalidNumber, http.StatusBadRequest},
		{services.ErrDuplicateEmail, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrDuplicateNumber, http.StatusConflict},
		{&services.FieldError{Kind: services.ErrTooLarge}, http.StatusRequestEntityTooLarge},
		{&services.FieldError{Kind: services.ErrUnsupportedType}, http.StatusUnsupportedMediaType},
		{&services.FieldError{Kind: services.ErrImageProcessing}, http.StatusUnprocessableEntity},
		{fmt.Errorf("query: %w", errors.New("conn reset")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestWriteError_StoreFailureIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/services", nil)

	writeError(rec, req, errors.New("pq: relation does not exist"), "Erro ao buscar serviços")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Erro ao buscar serviços"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	h := NewAuthHandler(newTestUserService(), "hvac_session", false)

	rec := doJSON(t, h.Register, http.MethodPost, "/auth/register", map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "segredo123",
		"role": "client", "companyName": "Frio Bom",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"message"`)
	assert.NotContains(t, rec.Body.String(), "segredo123")
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = doJSON(t, h.Register, http.MethodPost, "/auth/register", map[string]string{
		"name": "Ana", "email": "ana@example.com", "password": "x", "role": "client", "companyName": "Frio Bom",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email já cadastrado"}`, rec.Body.String())

	rec = doJSON(t, h.Login, http.MethodPost, "/auth/login", map[string]string{"email": "ana@example.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h.Login, http.MethodPost, "/auth/login", map[string]string{"email": "ana@example.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "hvac_session", cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 7200, cookies[0].MaxAge)

	rec = doJSON(t, h.Logout, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestLogin_SecureCookie(t *testing.T) {
	h := NewAuthHandler(newTestUserService(), "hvac_session", true)

	rec := doJSON(t, h.Register, http.MethodPost, "/auth/register", map[string]string{
		"name": "Caio", "email": "caio@example.com", "password": "segredo123",
		"role": "technician", "licenseNumber": "CREA-SP 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h.Login, http.MethodPost, "/auth/login", map[string]string{"email": "caio@example.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)

	rec = doJSON(t, h.Logout, http.MethodPost, "/auth/logout", nil)
	assert.True(t, rec.Result().Cookies()[0].Secure)
}

func TestRegister_MalformedBody(t *testing.T) {
	h := NewAuthHandler(newTestUserService(), "hvac_session", false)
	rec := httptest.NewRecorder()

	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func newTestPMOCHandler() *PMOCHandler {
	report := &models.PMOCReport{
		ID:               1,
		ReportNumber:     "PMOC-000001",
		ComplianceStatus: models.ComplianceCompliant,
		Findings:         "OK",
		Recommendations:  "Nenhuma",
		Equipment: &models.ReportEquipment{
			Client: models.ClientSummary{CompanyName: "ACME"},
		},
		Images: []models.ReportImage{},
	}
	store := &memPMOCStore{reports: map[int]*models.PMOCReport{1: report}}
	return NewPMOCHandler(services.NewPMOCService(store), services.NewExportService())
}

func withID(req *http.Request, id string) *http.Request {
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestPMOCHandler_Get(t *testing.T) {
	h := newTestPMOCHandler()

	rec := httptest.NewRecorder()
	h.Get(rec, withID(httptest.NewRequest(http.MethodGet, "/api/pmoc/1", nil), "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reportNumber":"PMOC-000001"`)

	rec = httptest.NewRecorder()
	h.Get(rec, withID(httptest.NewRequest(http.MethodGet, "/api/pmoc/9", nil), "9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, withID(httptest.NewRequest(http.MethodGet, "/api/pmoc/0", nil), "0"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPMOCHandler_ListEmptyIsArray(t *testing.T) {
	h := newTestPMOCHandler()
	rec := httptest.NewRecorder()

	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/pmoc?status=compliant", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/pmoc?equipmentId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPMOCHandler_GeneratePDF(t *testing.T) {
	h := newTestPMOCHandler()
	rec := httptest.NewRecorder()

	h.GeneratePDF(rec, withID(httptest.NewRequest(http.MethodPost, "/api/pmoc/1/generate-pdf", nil), "1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="pmoc-PMOC-000001.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = httptest.NewRecorder()
	h.GeneratePDF(rec, withID(httptest.NewRequest(http.MethodPost, "/api/pmoc/2/generate-pdf", nil), "2"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPMOCHandler_Share(t *testing.T) {
	h := newTestPMOCHandler()
	rec := httptest.NewRecorder()

	h.Share(rec, withID(httptest.NewRequest(http.MethodGet, "/api/pmoc/1/share", nil), "1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var link models.ShareLink
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &link))
	assert.True(t, strings.HasPrefix(link.WhatsappURL, "https://wa.me/?text="), link.WhatsappURL)
	assert.Contains(t, link.Text, "STATUS: CONFORME")
}

func TestPMOCHandler_ReplaceImagesUnknownReport(t *testing.T) {
	h := newTestPMOCHandler()
	body := strings.NewReader(`{"images":[]}`)
	rec := httptest.NewRecorder()

	h.ReplaceImages(rec, withID(httptest.NewRequest(http.MethodPost, "/api/pmoc/5/images", body), "5"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartFile(t *testing.T, field, filename string, data []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	for k, v := range extra {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImageHandler_Upload(t *testing.T) {
	bucket := &memBucket{objects: map[string][]byte{}}
	svc := services.NewImageService(bucket, services.ImageOptions{
		MaxBytes: 1 << 20, MaxWidth: 1920, MaxHeight: 1080, Quality: 80, DefaultFolder: "pmoc",
	})
	h := NewImageHandler(svc)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 16, 16))))

	body, contentType := multipartFile(t, "file", "foto.png", img.Bytes(), map[string]string{"folder": "pmoc/42"})
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Image models.UploadedImage `json:"image"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Image.Path, "pmoc/42/"))
	assert.Equal(t, "image/png", resp.Image.ContentType)
	assert.Contains(t, bucket.objects, resp.Image.Path)

	body, contentType = multipartFile(t, "file", "notas.txt", []byte("apenas texto"), nil)
	req = httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	body, contentType = multipartFile(t, "other", "foto.png", img.Bytes(), nil)
	req = httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageHandler_Delete(t *testing.T) {
	bucket := &memBucket{objects: map[string][]byte{"pmoc/a.png": {1}}}
	h := NewImageHandler(services.NewImageService(bucket, services.ImageOptions{}))

	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/images?path=pmoc/a.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, bucket.objects)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/images", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryDate(t *testing.T) {
	rec := httptest.NewRecorder()
	d, ok := queryDate(rec, httptest.NewRequest(http.MethodGet, "/api/financial?startDate=2024-01-31", nil), "startDate")
	require.True(t, ok)
	require.NotNil(t, d)
	assert.Equal(t, 31, d.Day())

	rec = httptest.NewRecorder()
	_, ok = queryDate(rec, httptest.NewRequest(http.MethodGet, "/api/financial?endDate=31/01/2024", nil), "endDate")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryEndDate_PlainDateCoversWholeDay(t *testing.T) {
	rec := httptest.NewRecorder()
	end, exclusive, ok := queryEndDate(rec, httptest.NewRequest(http.MethodGet, "/api/financial?endDate=2024-01-31", nil), "endDate")
	require.True(t, ok)
	require.NotNil(t, end)
	assert.True(t, exclusive)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, timeutil.BRT), *end)

	end, exclusive, ok = queryEndDate(rec, httptest.NewRequest(http.MethodGet, "/api/financial", nil), "endDate")
	assert.True(t, ok)
	assert.Nil(t, end)
	assert.False(t, exclusive)

	rec = httptest.NewRecorder()
	_, _, ok = queryEndDate(rec, httptest.NewRequest(http.MethodGet, "/api/financial?endDate=ontem", nil), "endDate")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
