package queries

import (
	"context"
	"time"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// AgendaCache is an optional read accelerator for the agenda feed. It
// caches raw appointment sets per range; filtering and grouping always run
// fresh, and conflict evaluation never reads from it.
//
// Writes do not invalidate entries: the projection may lag behind the
// store by up to the cache TTL. Surfaces that need a write to show up
// immediately must bypass the cache or use a TTL of zero.
type AgendaCache interface {
	Get(ctx context.Context, from, to time.Time) ([]*domain.Appointment, bool)
	Set(ctx context.Context, from, to time.Time, appointments []*domain.Appointment)
}

// GetAgendaQuery projects the appointment set for a calendar surface.
type GetAgendaQuery struct {
	From   time.Time
	To     time.Time
	Filter domain.AgendaFilter
}

// AgendaResult is the projection output: the filtered, ordered set plus
// the status buckets for tabbed presentation.
type AgendaResult struct {
	Appointments []*domain.Appointment
	Groups       domain.AgendaGroups
}

// GetAgendaHandler handles the GetAgendaQuery.
type GetAgendaHandler struct {
	repo  domain.AppointmentRepository
	cache AgendaCache
}

// NewGetAgendaHandler creates a new GetAgendaHandler. cache may be nil.
func NewGetAgendaHandler(repo domain.AppointmentRepository, cache AgendaCache) *GetAgendaHandler {
	return &GetAgendaHandler{repo: repo, cache: cache}
}

// Handle executes the GetAgendaQuery.
func (h *GetAgendaHandler) Handle(ctx context.Context, query GetAgendaQuery) (AgendaResult, error) {
	if !query.To.After(query.From) {
		return AgendaResult{}, &domain.ValidationError{Field: "range", Reason: "to must be after from"}
	}

	appointments, ok := h.cached(ctx, query.From, query.To)
	if !ok {
		var err error
		appointments, err = h.repo.ListByDateRange(ctx, query.From, query.To)
		if err != nil {
			return AgendaResult{}, err
		}
		if h.cache != nil {
			h.cache.Set(ctx, query.From, query.To, appointments)
		}
	}

	filtered := domain.FilterAgenda(appointments, query.Filter)

	return AgendaResult{
		Appointments: filtered,
		Groups:       domain.GroupByOutcome(filtered),
	}, nil
}

func (h *GetAgendaHandler) cached(ctx context.Context, from, to time.Time) ([]*domain.Appointment, bool) {
	if h.cache == nil {
		return nil, false
	}
	return h.cache.Get(ctx, from, to)
}
