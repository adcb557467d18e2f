package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
	"github.com/opsdesk/requisition_backend/internal/core/domain"
	"github.com/opsdesk/requisition_backend/internal/dto"
	"github.com/opsdesk/requisition_backend/internal/middleware"
)

// stubRequisitionService implements the requisition facade with injectable
// behavior per test.
type stubRequisitionService struct {
	createFn func(ctx context.Context, req dto.CreateRequisitionRequest, attachments []string, creator domain.Principal) (*domain.Requisition, error)
	getFn    func(ctx context.Context, id string) (*domain.Requisition, error)
	listFn   func(ctx context.Context, viewer domain.Principal) ([]domain.Requisition, error)
	statusFn func(ctx context.Context, id, status string, actor domain.Principal, comment string) (*domain.Requisition, string, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubRequisitionService) CreateRequisition(ctx context.Context, req dto.CreateRequisitionRequest, attachments []string, creator domain.Principal) (*domain.Requisition, error) {
	return s.createFn(ctx, req, attachments, creator)
}

func (s *stubRequisitionService) GetRequisitionByID(ctx context.Context, id string) (*domain.Requisition, error) {
	return s.getFn(ctx, id)
}

func (s *stubRequisitionService) ListRequisitions(ctx context.Context, viewer domain.Principal) ([]domain.Requisition, error) {
	return s.listFn(ctx, viewer)
}

func (s *stubRequisitionService) ApplyStatusChange(ctx context.Context, id, status string, actor domain.Principal, comment string) (*domain.Requisition, string, error) {
	return s.statusFn(ctx, id, status, actor, comment)
}

func (s *stubRequisitionService) DeleteRequisition(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

// stubVerifier authenticates every bearer token as the given principal.
type stubVerifier struct {
	principal domain.Principal
}

func (v *stubVerifier) VerifyToken(context.Context, string) (domain.Principal, error) {
	return v.principal, nil
}

// memStore keeps attachments in a map.
type memStore struct {
	saved map[string][]byte
}

func (m *memStore) Save(filename string, data []byte) (string, error) {
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[filename] = data
	return "stored-" + filename, nil
}

func (m *memStore) Get(path string) ([]byte, error) { return m.saved[path], nil }
func (m *memStore) Delete(path string) error        { return nil }

func newRequisitionTestRouter(svc *stubRequisitionService, store *memStore, principal domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(middleware.AuthMiddleware(&stubVerifier{principal: principal}))
	registerRequisitionRoutes(group, svc, store)
	return r
}

func authedRequest(method, target string, body *bytes.Buffer) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func multipartCreateBody(t *testing.T, data string, attachments map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("data", data))
	for name, content := range attachments {
		part, err := w.CreateFormFile("attachments", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestCreateRequisition_Endpoint(t *testing.T) {
	store := &memStore{}
	var gotAttachments []string
	svc := &stubRequisitionService{
		createFn: func(_ context.Context, req dto.CreateRequisitionRequest, attachments []string, creator domain.Principal) (*domain.Requisition, error) {
			gotAttachments = attachments
			return &domain.Requisition{
				RequisitionID:     "r1",
				RequisitionNumber: "IR-20260830-000042",
				Title:             req.Title,
				Status:            domain.StatusPending,
				User:              creator.Snapshot(),
				TotalAmount:       decimal.NewFromInt(50),
			}, nil
		},
	}
	r := newRequisitionTestRouter(svc, store, domain.Principal{Name: "Jane", Department: "IT"})

	payload := `{"title":"Office Supplies","items":[{"description":"Paper","quantity":10,"unitPrice":"5"}]}`
	body, contentType := multipartCreateBody(t, payload, map[string]string{"quote.pdf": "pdf-bytes"})

	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/v1/internal-requisitions/create", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []string{"stored-quote.pdf"}, gotAttachments)
	assert.Equal(t, []byte("pdf-bytes"), store.saved["quote.pdf"])

	var created domain.Requisition
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Office Supplies", created.Title)
	assert.Equal(t, "Jane", created.User.Name)
}

func TestCreateRequisition_MissingDataField(t *testing.T) {
	r := newRequisitionTestRouter(&stubRequisitionService{}, &memStore{}, domain.Principal{Name: "Jane"})

	body, contentType := multipartCreateBody(t, "", nil)
	// An empty data value reads as missing.
	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/v1/internal-requisitions/create", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRequisition_PayloadFailsBindingValidation(t *testing.T) {
	r := newRequisitionTestRouter(&stubRequisitionService{}, &memStore{}, domain.Principal{Name: "Jane"})

	// Missing title and empty items both violate the payload's binding tags.
	body, contentType := multipartCreateBody(t, `{"items":[]}`, nil)
	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/v1/internal-requisitions/create", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRequisition_TooManyAttachments(t *testing.T) {
	r := newRequisitionTestRouter(&stubRequisitionService{}, &memStore{}, domain.Principal{Name: "Jane"})

	files := map[string]string{}
	for i := 0; i < maxAttachments+1; i++ {
		files[fmt.Sprintf("file-%d.pdf", i)] = "x"
	}
	body, contentType := multipartCreateBody(t, `{"title":"T","items":[{"description":"x","quantity":1,"unitPrice":"1"}]}`, files)

	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/v1/internal-requisitions/create", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatus_Endpoint(t *testing.T) {
	svc := &stubRequisitionService{
		statusFn: func(_ context.Context, id, status string, actor domain.Principal, comment string) (*domain.Requisition, string, error) {
			assert.Equal(t, "r1", id)
			assert.Equal(t, "approved", status)
			assert.Equal(t, "ok", comment)
			assert.Equal(t, "Fiona", actor.Name)
			return &domain.Requisition{RequisitionID: id, RequisitionNumber: "IR-20260830-000042", Status: domain.StatusApproved},
				"Requisition IR-20260830-000042 is now approved", nil
		},
	}
	r := newRequisitionTestRouter(svc, &memStore{}, domain.Principal{Name: "Fiona", Department: "finance"})

	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPut, "/api/v1/internal-requisitions/r1/status",
		bytes.NewBufferString(`{"status":"approved","comment":"ok"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.RequisitionStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "approved")
	assert.Equal(t, domain.StatusApproved, resp.Data.Status)
}

func TestUpdateStatus_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown status", fmt.Errorf("invalid status: %w", apperrors.ErrValidation), http.StatusBadRequest},
		{"missing requisition", apperrors.ErrNotFound, http.StatusNotFound},
		{"storage failure", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubRequisitionService{
				statusFn: func(context.Context, string, string, domain.Principal, string) (*domain.Requisition, string, error) {
					return nil, "", tc.err
				},
			}
			r := newRequisitionTestRouter(svc, &memStore{}, domain.Principal{Name: "Fiona"})

			w := httptest.NewRecorder()
			req := authedRequest(http.MethodPut, "/api/v1/internal-requisitions/r1/status",
				bytes.NewBufferString(`{"status":"approved"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestUpdateStatus_RejectsBodyWithoutStatus(t *testing.T) {
	r := newRequisitionTestRouter(&stubRequisitionService{}, &memStore{}, domain.Principal{Name: "Fiona"})

	w := httptest.NewRecorder()
	req := authedRequest(http.MethodPut, "/api/v1/internal-requisitions/r1/status",
		bytes.NewBufferString(`{"comment":"no status here"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRequisitions_Endpoint(t *testing.T) {
	svc := &stubRequisitionService{
		listFn: func(_ context.Context, viewer domain.Principal) ([]domain.Requisition, error) {
			assert.Equal(t, "Jane", viewer.Name)
			return []domain.Requisition{{RequisitionID: "r1"}}, nil
		},
	}
	r := newRequisitionTestRouter(svc, &memStore{}, domain.Principal{Name: "Jane"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/internal-requisitions/list", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "r1"))
}

func TestGetRequisition_NotFound(t *testing.T) {
	svc := &stubRequisitionService{
		getFn: func(context.Context, string) (*domain.Requisition, error) {
			return nil, fmt.Errorf("failed to get requisition: %w", apperrors.ErrNotFound)
		},
	}
	r := newRequisitionTestRouter(svc, &memStore{}, domain.Principal{Name: "Jane"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodGet, "/api/v1/internal-requisitions/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
