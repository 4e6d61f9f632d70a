package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/praxis/internal/scheduling/application/commands"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
	"github.com/praxishq/praxis/internal/scheduling/application/services"
	schedulingPersistence "github.com/praxishq/praxis/internal/scheduling/infrastructure/persistence"
	"github.com/praxishq/praxis/internal/shared/infrastructure/database"
	"github.com/praxishq/praxis/internal/shared/infrastructure/migrations"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/praxishq/praxis/internal/shared/infrastructure/persistence"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), db))

	repo := schedulingPersistence.NewSQLiteAppointmentRepository(db)
	outboxRepo := outbox.NewSQLiteRepository(db)
	uow := sharedPersistence.NewSQLiteUnitOfWork(db)
	detector := services.NewConflictDetector(repo)
	finder := services.NewSlotFinder(repo, 0)

	update := commands.NewUpdateAppointmentHandler(repo, detector, outboxRepo, uow)
	handler := NewAppointmentHandler(AppointmentHandlerConfig{
		Book:             commands.NewBookAppointmentHandler(repo, detector, outboxRepo, uow),
		Update:           update,
		Cancel:           commands.NewCancelAppointmentHandler(repo, outboxRepo, uow),
		Complete:         commands.NewCompleteAppointmentHandler(repo, outboxRepo, uow),
		MarkNoShow:       commands.NewMarkNoShowHandler(repo, outboxRepo, uow),
		Delete:           commands.NewDeleteAppointmentHandler(repo),
		Get:              queries.NewGetAppointmentHandler(repo),
		FindAlternatives: queries.NewFindAlternativesHandler(finder),
		GetAgenda:        queries.NewGetAgendaHandler(repo, nil),
		Detector:         detector,
		ActorID:          "api-test",
	})

	return NewServer(DefaultServerConfig(), handler, nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

// 2026-09-07 is a Monday.
const mondayNine = "2026-09-07T09:00:00Z"

func bookBody(doctorID uuid.UUID, start string) map[string]any {
	return map[string]any{
		"doctor_id":  doctorID.String(),
		"patient_id": uuid.New().String(),
		"room":       "A1",
		"start_time": start,
		"reason":     "check-up",
	}
}

func TestServer_BookAndGet(t *testing.T) {
	s := newTestServer(t)
	doctorID := uuid.New()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/appointments", bookBody(doctorID, mondayNine))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var booked appointmentResponse
	decodeBody(t, rec, &booked)
	assert.Equal(t, "scheduled", booked.Status)
	assert.Equal(t, doctorID.String(), booked.DoctorID)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/appointments/"+booked.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_ConflictResponse(t *testing.T) {
	s := newTestServer(t)
	doctorID := uuid.New()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/appointments", bookBody(doctorID, mondayNine))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/appointments", bookBody(doctorID, "2026-09-07T09:15:00Z"))
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "schedule_conflict", resp.Code)
	require.Len(t, resp.Conflicting, 1, "conflict responses carry the overlapping appointments")
}

func TestServer_ErrorStatusMapping(t *testing.T) {
	s := newTestServer(t)

	t.Run("validation failure is 400", func(t *testing.T) {
		body := bookBody(uuid.New(), mondayNine)
		body["room"] = ""
		rec := doJSON(t, s, http.MethodPost, "/api/v1/appointments", body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp errorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "validation_failed", resp.Code)
	})

	t.Run("unknown appointment is 404", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/api/v1/appointments/"+uuid.New().String(), nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp errorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "not_found", resp.Code)
	})

	t.Run("action on a terminal appointment is 422", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/appointments", bookBody(uuid.New(), mondayNine))
		require.Equal(t, http.StatusCreated, rec.Code)
		var booked appointmentResponse
		decodeBody(t, rec, &booked)

		path := fmt.Sprintf("/api/v1/appointments/%s/complete", booked.ID)
		require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, path, nil).Code)

		rec = doJSON(t, s, http.MethodPost, path, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp errorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "invalid_state_transition", resp.Code)
	})
}

func TestServer_CancelOutcome(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/appointments", bookBody(uuid.New(), mondayNine))
	require.Equal(t, http.StatusCreated, rec.Code)
	var booked appointmentResponse
	decodeBody(t, rec, &booked)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/appointments/"+booked.ID+"/cancel", map[string]any{
		"outcome":      "late_cancelled",
		"initiated_by": "patient",
		"reason":       "overslept",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cancelled appointmentResponse
	decodeBody(t, rec, &cancelled)
	assert.Equal(t, "late_cancelled", cancelled.Status)
	assert.Equal(t, "patient", cancelled.CancellationInitiator)
}

func TestServer_Alternatives(t *testing.T) {
	s := newTestServer(t)
	doctorID := uuid.New()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/appointments", bookBody(doctorID, mondayNine))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet,
		"/api/v1/appointments/alternatives?doctor_id="+doctorID.String()+"&rejected_start="+mondayNine, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Slots []slotResponse `json:"slots"`
	}
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Slots, 19, "every grid slot except the booked one")
	assert.Equal(t, 30, resp.Slots[0].DurationMin)
}

func TestServer_AgendaGrouped(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/appointments", bookBody(uuid.New(), mondayNine))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet,
		"/api/v1/agenda?from=2026-09-07T00:00:00Z&to=2026-09-08T00:00:00Z&grouped=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp agendaResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Appointments, 1)
	require.NotNil(t, resp.Groups)
	assert.Len(t, resp.Groups.Scheduled, 1)
	assert.Empty(t, resp.Groups.Completed)
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
