package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/application/commands"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
	"github.com/praxishq/praxis/internal/scheduling/application/services"
	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// AppointmentHandler handles appointment API requests.
type AppointmentHandler struct {
	book             *commands.BookAppointmentHandler
	update           *commands.UpdateAppointmentHandler
	cancel           *commands.CancelAppointmentHandler
	complete         *commands.CompleteAppointmentHandler
	markNoShow       *commands.MarkNoShowHandler
	delete           *commands.DeleteAppointmentHandler
	get              *queries.GetAppointmentHandler
	findAlternatives *queries.FindAlternativesHandler
	getAgenda        *queries.GetAgendaHandler
	detector         *services.ConflictDetector
	actorID          string
	logger           *slog.Logger
}

// AppointmentHandlerConfig holds dependencies for the appointment handler.
type AppointmentHandlerConfig struct {
	Book             *commands.BookAppointmentHandler
	Update           *commands.UpdateAppointmentHandler
	Cancel           *commands.CancelAppointmentHandler
	Complete         *commands.CompleteAppointmentHandler
	MarkNoShow       *commands.MarkNoShowHandler
	Delete           *commands.DeleteAppointmentHandler
	Get              *queries.GetAppointmentHandler
	FindAlternatives *queries.FindAlternativesHandler
	GetAgenda        *queries.GetAgendaHandler
	Detector         *services.ConflictDetector
	ActorID          string
	Logger           *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(cfg AppointmentHandlerConfig) *AppointmentHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &AppointmentHandler{
		book:             cfg.Book,
		update:           cfg.Update,
		cancel:           cfg.Cancel,
		complete:         cfg.Complete,
		markNoShow:       cfg.MarkNoShow,
		delete:           cfg.Delete,
		get:              cfg.Get,
		findAlternatives: cfg.FindAlternatives,
		getAgenda:        cfg.GetAgenda,
		detector:         cfg.Detector,
		actorID:          cfg.ActorID,
		logger:           cfg.Logger,
	}
}

type appointmentResponse struct {
	ID                    string    `json:"id"`
	DoctorID              string    `json:"doctor_id"`
	PatientID             string    `json:"patient_id"`
	Room                  string    `json:"room,omitempty"`
	StartTime             time.Time `json:"start_time"`
	EndTime               time.Time `json:"end_time"`
	Reason                string    `json:"reason,omitempty"`
	Status                string    `json:"status"`
	CancellationInitiator string    `json:"cancellation_initiator,omitempty"`
	CancellationReason    string    `json:"cancellation_reason,omitempty"`
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:                    a.ID().String(),
		DoctorID:              a.DoctorID().String(),
		PatientID:             a.PatientID().String(),
		Room:                  a.Room(),
		StartTime:             a.StartTime(),
		EndTime:               a.EndTime(),
		Reason:                a.Reason(),
		Status:                string(a.Status()),
		CancellationInitiator: a.CancellationInitiator(),
		CancellationReason:    a.CancellationReason(),
	}
}

type errorResponse struct {
	Code        string                `json:"code"`
	Message     string                `json:"message"`
	Conflicting []appointmentResponse `json:"conflicting,omitempty"`
}

// writeDomainError maps core errors onto HTTP statuses. Conflict responses
// carry the overlapping appointments so the caller can offer rebooking.
func (h *AppointmentHandler) writeDomainError(w http.ResponseWriter, err error) {
	resp := errorResponse{
		Code:    domain.ReasonCode(err),
		Message: err.Error(),
	}

	status := http.StatusInternalServerError
	switch resp.Code {
	case domain.CodeValidationFailed:
		status = http.StatusBadRequest
	case domain.CodeScheduleConflict:
		status = http.StatusConflict
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			for _, a := range conflictErr.Report.Conflicting {
				resp.Conflicting = append(resp.Conflicting, toAppointmentResponse(a))
			}
		}
	case domain.CodeInvalidTransition:
		status = http.StatusUnprocessableEntity
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	default:
		h.logger.Error("unhandled error", slog.String("error", err.Error()))
	}

	writeJSON(w, status, resp)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("appointmentID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    domain.CodeValidationFailed,
			Message: "invalid appointment ID",
		})
		return uuid.Nil, false
	}
	return id, true
}

type bookRequest struct {
	DoctorID  string    `json:"doctor_id"`
	PatientID string    `json:"patient_id"`
	Room      string    `json:"room"`
	StartTime time.Time `json:"start_time"`
	Reason    string    `json:"reason"`
}

// Book handles POST /api/v1/appointments
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code: domain.CodeValidationFailed, Message: "invalid request body",
		})
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "doctor_id", Reason: "must be a UUID"})
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "patient_id", Reason: "must be a UUID"})
		return
	}

	booked, err := h.book.Handle(r.Context(), commands.BookAppointmentCommand{
		DoctorID:  doctorID,
		PatientID: patientID,
		Room:      req.Room,
		Start:     req.StartTime,
		Reason:    req.Reason,
		ActorID:   h.actorID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAppointmentResponse(booked))
}

// Get handles GET /api/v1/appointments/{appointmentID}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	found, err := h.get.Handle(r.Context(), queries.GetAppointmentQuery{ID: id})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAppointmentResponse(found))
}

type updateRequest struct {
	StartTime *time.Time `json:"start_time"`
	DoctorID  *string    `json:"doctor_id"`
	Room      *string    `json:"room"`
	Reason    *string    `json:"reason"`
}

// Update handles PATCH /api/v1/appointments/{appointmentID}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code: domain.CodeValidationFailed, Message: "invalid request body",
		})
		return
	}

	amendment := domain.Amendment{
		Start:  req.StartTime,
		Room:   req.Room,
		Reason: req.Reason,
	}
	if req.DoctorID != nil {
		doctorID, err := uuid.Parse(*req.DoctorID)
		if err != nil {
			h.writeDomainError(w, &domain.ValidationError{Field: "doctor_id", Reason: "must be a UUID"})
			return
		}
		amendment.DoctorID = &doctorID
	}

	updated, err := h.update.Handle(r.Context(), commands.UpdateAppointmentCommand{
		ID:        id,
		Amendment: amendment,
		ActorID:   h.actorID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAppointmentResponse(updated))
}

// Delete handles DELETE /api/v1/appointments/{appointmentID}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.delete.Handle(r.Context(), commands.DeleteAppointmentCommand{ID: id}); err != nil {
		h.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type cancelRequest struct {
	Outcome     string `json:"outcome"`
	InitiatedBy string `json:"initiated_by"`
	Reason      string `json:"reason"`
}

// Cancel handles POST /api/v1/appointments/{appointmentID}/cancel
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code: domain.CodeValidationFailed, Message: "invalid request body",
		})
		return
	}
	if req.Outcome == "" {
		req.Outcome = string(domain.StatusCancelled)
	}

	target, err := domain.ParseStatus(req.Outcome)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	cancelled, err := h.cancel.Handle(r.Context(), commands.CancelAppointmentCommand{
		ID:          id,
		Target:      target,
		InitiatedBy: req.InitiatedBy,
		Reason:      req.Reason,
		ActorID:     h.actorID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAppointmentResponse(cancelled))
}

// Complete handles POST /api/v1/appointments/{appointmentID}/complete
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	completed, err := h.complete.Handle(r.Context(), commands.CompleteAppointmentCommand{
		ID:      id,
		ActorID: h.actorID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAppointmentResponse(completed))
}

// MarkNoShow handles POST /api/v1/appointments/{appointmentID}/no-show
func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	marked, err := h.markNoShow.Handle(r.Context(), commands.MarkNoShowCommand{
		ID:      id,
		ActorID: h.actorID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAppointmentResponse(marked))
}

type conflictResponse struct {
	HasConflict bool                  `json:"has_conflict"`
	Conflicting []appointmentResponse `json:"conflicting,omitempty"`
}

// CheckConflicts handles GET /api/v1/appointments/conflicts
func (h *AppointmentHandler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(r.URL.Query().Get("doctor_id"))
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "doctor_id", Reason: "must be a UUID"})
		return
	}
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start_time"))
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "start_time", Reason: "must be RFC 3339"})
		return
	}

	var excludeID *uuid.UUID
	if exclude := r.URL.Query().Get("exclude_id"); exclude != "" {
		id, err := uuid.Parse(exclude)
		if err != nil {
			h.writeDomainError(w, &domain.ValidationError{Field: "exclude_id", Reason: "must be a UUID"})
			return
		}
		excludeID = &id
	}

	report, err := h.detector.CheckConflict(r.Context(), doctorID, start, excludeID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	resp := conflictResponse{HasConflict: report.HasConflict}
	for _, a := range report.Conflicting {
		resp.Conflicting = append(resp.Conflicting, toAppointmentResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

type slotResponse struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
}

// FindAlternatives handles GET /api/v1/appointments/alternatives
func (h *AppointmentHandler) FindAlternatives(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(r.URL.Query().Get("doctor_id"))
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "doctor_id", Reason: "must be a UUID"})
		return
	}
	rejected, err := time.Parse(time.RFC3339, r.URL.Query().Get("rejected_start"))
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "rejected_start", Reason: "must be RFC 3339"})
		return
	}

	slots, err := h.findAlternatives.Handle(r.Context(), queries.FindAlternativesQuery{
		DoctorID:      doctorID,
		RejectedStart: rejected,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	resp := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, slotResponse{Start: s.Start, End: s.End, DurationMin: s.DurationMin})
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": resp})
}

type agendaResponse struct {
	Appointments []appointmentResponse `json:"appointments"`
	Groups       *agendaGroupsResponse `json:"groups,omitempty"`
}

type agendaGroupsResponse struct {
	Scheduled []appointmentResponse `json:"scheduled"`
	Completed []appointmentResponse `json:"completed"`
	Cancelled []appointmentResponse `json:"cancelled"`
}

// Agenda handles GET /api/v1/agenda
func (h *AppointmentHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	from, err := time.Parse(time.RFC3339, params.Get("from"))
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "from", Reason: "must be RFC 3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, params.Get("to"))
	if err != nil {
		h.writeDomainError(w, &domain.ValidationError{Field: "to", Reason: "must be RFC 3339"})
		return
	}

	var filter domain.AgendaFilter
	if statusParam := params.Get("status"); statusParam != "" {
		status, err := domain.ParseStatus(statusParam)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		filter.Status = &status
	}
	if doctorParam := params.Get("doctor_id"); doctorParam != "" {
		doctorID, err := uuid.Parse(doctorParam)
		if err != nil {
			h.writeDomainError(w, &domain.ValidationError{Field: "doctor_id", Reason: "must be a UUID"})
			return
		}
		filter.DoctorID = &doctorID
	}
	if roomParam := params.Get("room"); roomParam != "" {
		filter.Room = &roomParam
	}
	if dayParam := params.Get("day"); dayParam != "" {
		day, err := time.Parse("2006-01-02", dayParam)
		if err != nil {
			h.writeDomainError(w, &domain.ValidationError{Field: "day", Reason: "must be YYYY-MM-DD"})
			return
		}
		filter.Day = &day
	}

	result, err := h.getAgenda.Handle(r.Context(), queries.GetAgendaQuery{
		From:   from,
		To:     to,
		Filter: filter,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	resp := agendaResponse{Appointments: make([]appointmentResponse, 0, len(result.Appointments))}
	for _, a := range result.Appointments {
		resp.Appointments = append(resp.Appointments, toAppointmentResponse(a))
	}
	if params.Get("grouped") == "true" {
		resp.Groups = &agendaGroupsResponse{
			Scheduled: toResponses(result.Groups.Scheduled),
			Completed: toResponses(result.Groups.Completed),
			Cancelled: toResponses(result.Groups.Cancelled),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func toResponses(appointments []*domain.Appointment) []appointmentResponse {
	resp := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		resp = append(resp, toAppointmentResponse(a))
	}
	return resp
}
