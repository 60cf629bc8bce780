package badges

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/pytutor/internal/logging"
	"github.com/abhisek/pytutor/internal/store"
)

// Service evaluates badges and records each award in the event log.
type Service struct {
	catalog   Catalog
	eventRepo store.BadgeEventRepo
	log       *zap.Logger
}

// NewService creates a badge Service. eventRepo may be nil.
func NewService(cat Catalog, eventRepo store.BadgeEventRepo, log *zap.Logger) *Service {
	return &Service{
		catalog:   cat,
		eventRepo: eventRepo,
		log:       logging.OrNop(log),
	}
}

// Evaluate runs the badge rules against rec and records new awards for
// sessionID. Event log failures are logged and otherwise ignored.
func (s *Service) Evaluate(ctx context.Context, rec store.ProgressRecord, sessionID string) (store.ProgressRecord, []Award) {
	next, awards := Evaluate(rec, s.catalog)
	s.Record(ctx, awards, sessionID)
	return next, awards
}

// Record logs awards that were evaluated elsewhere and appends them to the
// event log. Callers that persist the record themselves call it after the
// record is saved.
func (s *Service) Record(ctx context.Context, awards []Award, sessionID string) {
	for _, a := range awards {
		s.log.Info("badge awarded",
			zap.String("badge", string(a.Badge)),
			zap.String("reason", a.Reason),
			zap.String("session_id", sessionID))
		s.persist(ctx, a, sessionID)
	}
}

func (s *Service) persist(ctx context.Context, a Award, sessionID string) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendBadgeAward(ctx, store.BadgeAwardData{
		Badge:     string(a.Badge),
		Reason:    a.Reason,
		SessionID: sessionID,
	})
	if err != nil {
		s.log.Warn("record badge award", zap.Error(err))
	}
}
