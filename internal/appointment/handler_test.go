package appointment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func newTestRouter(t *testing.T) (chi.Router, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)

	store := NewStore(mock)
	handler := NewHandler(NewService(store, nil, nil), store, nil)

	r := chi.NewRouter()
	r.Get("/appointments/{id}", handler.Get)
	r.Post("/appointments/{id}/attendance", handler.RecordAttendance)
	r.Post("/appointments/{id}/absence", handler.RecordAbsence)
	r.Post("/appointments/{id}/payment", handler.RecordPayment)
	r.Post("/appointments/{id}/status", handler.SetStatus)
	return r, mock
}

func TestHandlerRecordAttendance(t *testing.T) {
	r, mock := newTestRouter(t)
	id := uuid.New()

	expectGetPending(mock, id)
	mock.ExpectExec(`UPDATE appointments`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	req := httptest.NewRequest(http.MethodPost, "/appointments/"+id.String()+"/attendance",
		strings.NewReader(`{"present": true}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var a Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", a.Status)
	}
	if a.Attended == nil || !*a.Attended {
		t.Error("Attended should be true")
	}
}

func TestHandlerRecordAttendanceUnknownAppointment(t *testing.T) {
	r, mock := newTestRouter(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT id, patient_id, status`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(appointmentColumns))

	req := httptest.NewRequest(http.MethodPost, "/appointments/"+id.String()+"/attendance",
		strings.NewReader(`{"present": true}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandlerInvalidID(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/appointments/not-a-uuid/absence",
		strings.NewReader(`{"absent": true}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerInvalidStatusValue(t *testing.T) {
	r, _ := newTestRouter(t)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/appointments/"+id.String()+"/status",
		strings.NewReader(`{"status": "archived"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerGet(t *testing.T) {
	r, mock := newTestRouter(t)
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, patient_id, status`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(appointmentColumns).
			AddRow(id, uuid.New(), "confirmed", (*bool)(nil), (*bool)(nil), (*string)(nil), now, now, now))

	req := httptest.NewRequest(http.MethodGet, "/appointments/"+id.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var a Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if a.Status != StatusConfirmed {
		t.Errorf("Status = %q, want confirmed", a.Status)
	}
}
