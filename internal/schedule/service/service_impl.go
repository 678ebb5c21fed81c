package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bookingdomain "github.com/joemerrillis/sniffr-staging-sub001/internal/booking/domain"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/config"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/dates"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/locks"
	"github.com/joemerrillis/sniffr-staging-sub001/internal/observability/metrics"
	scheduledomain "github.com/joemerrillis/sniffr-staging-sub001/internal/schedule/domain"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     scheduledomain.Repository
	Bookings bookingdomain.Repository
	Cfg      config.Config    `optional:"true"`
	Locker   *locks.Locker    `optional:"true"`
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     scheduledomain.Repository
	bookings bookingdomain.Repository
	locker   *locks.Locker
	metrics  *metrics.Metrics
	lockTTL  time.Duration
}

func New(p Params) scheduledomain.Service {
	lockTTL := 30 * time.Second
	if p.Cfg.ExpandLockTTL > 0 {
		lockTTL = time.Duration(p.Cfg.ExpandLockTTL) * time.Second
	}
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("schedule.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		bookings: p.Bookings,
		locker:   p.Locker,
		metrics:  p.Metrics,
		lockTTL:  lockTTL,
	}
}

// Expand walks every calendar day in the range and materializes one pending
// service per active (window, day) pair. The check-then-insert here is not
// atomic; the unique index on (client_id, service_date, window_id) is the
// real guard, and a duplicate-key insert counts as "already exists".
func (s *Service) Expand(ctx context.Context, req scheduledomain.ExpandRequest) (*scheduledomain.ExpandResult, error) {
	if req.ClientID == 0 {
		return nil, scheduledomain.ErrInvalidClient
	}
	if req.TenantID == 0 {
		return nil, scheduledomain.ErrInvalidTenant
	}

	days, err := dates.EachDay(req.Start, req.End)
	if err != nil {
		return nil, scheduledomain.ErrInvalidDateRange
	}

	release := s.acquireExpandLock(ctx, req.ClientID)
	defer release()

	windows, err := s.repo.ListByClient(ctx, s.db, req.ClientID)
	if err != nil {
		return nil, err
	}

	result := &scheduledomain.ExpandResult{}
	dogCache := make(map[snowflake.ID][]snowflake.ID)

	for _, day := range days {
		for i := range windows {
			window := &windows[i]
			if window.TenantID != req.TenantID || !window.ActiveOn(day) {
				continue
			}
			s.expandOne(ctx, req, window, day, dogCache, result)
		}
	}

	s.log.Info("expansion completed",
		zap.Int64("client_id", req.ClientID.Int64()),
		zap.String("start", dates.Format(days[0])),
		zap.String("end", dates.Format(days[len(days)-1])),
		zap.Int("created", result.CreatedCount),
		zap.Int("failed", len(result.Failures)),
	)
	return result, nil
}

// expandOne handles a single (window, day) pair. Any failure is recorded
// against that pair alone so the rest of the range still commits.
func (s *Service) expandOne(
	ctx context.Context,
	req scheduledomain.ExpandRequest,
	window *scheduledomain.RecurringWindow,
	day time.Time,
	dogCache map[snowflake.ID][]snowflake.ID,
	result *scheduledomain.ExpandResult,
) {
	dogs, ok := dogCache[window.ID]
	if !ok {
		byWindow, err := s.repo.ListDogs(ctx, s.db, []snowflake.ID{window.ID})
		if err != nil {
			s.recordFailure(result, window.ID, day, fmt.Errorf("dog lookup: %w", err))
			return
		}
		dogs = byWindow[window.ID]
		dogCache[window.ID] = dogs
	}

	existing, err := s.bookings.FindByKey(ctx, s.db, req.ClientID, day, window.ID)
	if err != nil {
		s.recordFailure(result, window.ID, day, err)
		return
	}
	if existing != nil {
		return
	}

	entity := s.materialize(req, window, day, dogs)
	err = s.bookings.Insert(ctx, s.db, entity)
	if errors.Is(err, bookingdomain.ErrDuplicateService) {
		// A concurrent expansion won the race. Not a failure.
		return
	}
	if err != nil {
		s.recordFailure(result, window.ID, day, err)
		return
	}

	result.CreatedCount++
	if s.metrics != nil {
		s.metrics.ExpansionsCreated.Inc()
	}
	if req.IncludeCreated {
		result.Created = append(result.Created, *entity)
	}
}

// materialize snapshots the window's dogs and detail payload; later window
// edits do not touch instances that already exist.
func (s *Service) materialize(
	req scheduledomain.ExpandRequest,
	window *scheduledomain.RecurringWindow,
	day time.Time,
	dogs []snowflake.ID,
) *bookingdomain.PendingService {
	windowID := window.ID
	return &bookingdomain.PendingService{
		ID:          s.genID.Generate(),
		ClientID:    req.ClientID,
		TenantID:    req.TenantID,
		ServiceDate: day,
		ServiceType: window.ServiceType,
		WindowID:    &windowID,
		DogIDs:      datatypes.JSONSlice[snowflake.ID](append([]snowflake.ID(nil), dogs...)),
		Details: datatypes.JSONMap{
			bookingdomain.DetailDurationMinutes: window.DurationMinutes,
			bookingdomain.DetailStartTime:       window.StartTime,
			bookingdomain.DetailEndTime:         window.EndTime,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func (s *Service) recordFailure(result *scheduledomain.ExpandResult, windowID snowflake.ID, day time.Time, err error) {
	result.Failures = append(result.Failures, scheduledomain.ExpansionFailure{
		WindowID: windowID,
		Date:     day,
		Reason:   err.Error(),
	})
	if s.metrics != nil {
		s.metrics.ExpansionFailures.Inc()
	}
	s.log.Warn("expansion failed for window/day",
		zap.Int64("window_id", windowID.Int64()),
		zap.String("date", dates.Format(day)),
		zap.Error(err),
	)
}

// acquireExpandLock serializes concurrent expansions for the same client on
// a best-effort basis. Running without the lock is safe, only redundant.
func (s *Service) acquireExpandLock(ctx context.Context, clientID snowflake.ID) func() {
	noop := func() {}
	if s.locker == nil {
		return noop
	}

	key := fmt.Sprintf("sniffr:expand:%s", clientID.String())
	token, acquired, err := s.locker.TryLock(ctx, key, s.lockTTL)
	if err != nil {
		s.log.Debug("expansion lock unavailable", zap.Error(err))
		return noop
	}
	if !acquired {
		s.log.Debug("expansion already running for client",
			zap.Int64("client_id", clientID.Int64()),
		)
		return noop
	}
	return func() {
		if err := s.locker.Release(ctx, key, token); err != nil {
			s.log.Debug("expansion lock release failed", zap.Error(err))
		}
	}
}

func (s *Service) CreateWindow(ctx context.Context, req scheduledomain.WindowRequest) (*scheduledomain.RecurringWindow, error) {
	entity, err := s.buildWindow(req)
	if err != nil {
		return nil, err
	}
	entity.ID = s.genID.Generate()
	now := time.Now().UTC()
	entity.CreatedAt = now
	entity.UpdatedAt = now

	if err := s.repo.Insert(ctx, s.db, entity, req.DogIDs); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) ListWindows(ctx context.Context, clientID snowflake.ID) ([]scheduledomain.RecurringWindow, error) {
	if clientID == 0 {
		return nil, scheduledomain.ErrInvalidClient
	}
	return s.repo.ListByClient(ctx, s.db, clientID)
}

// UpdateWindow edits a window in place. Already-materialized instances keep
// their snapshots.
func (s *Service) UpdateWindow(ctx context.Context, id snowflake.ID, req scheduledomain.WindowRequest) (*scheduledomain.RecurringWindow, error) {
	current, err := s.repo.FindByID(ctx, s.db, req.ClientID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, scheduledomain.ErrWindowNotFound
	}

	entity, err := s.buildWindow(req)
	if err != nil {
		return nil, err
	}
	entity.ID = current.ID
	entity.CreatedAt = current.CreatedAt
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, entity, req.DogIDs); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) DeleteWindow(ctx context.Context, clientID, id snowflake.ID) error {
	current, err := s.repo.FindByID(ctx, s.db, clientID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return scheduledomain.ErrWindowNotFound
	}
	return s.repo.Delete(ctx, s.db, clientID, id)
}

func (s *Service) buildWindow(req scheduledomain.WindowRequest) (*scheduledomain.RecurringWindow, error) {
	if req.ClientID == 0 {
		return nil, scheduledomain.ErrInvalidClient
	}
	if req.TenantID == 0 {
		return nil, scheduledomain.ErrInvalidTenant
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, scheduledomain.ErrInvalidDayOfWeek
	}

	startTime, err := parseClock(req.StartTime)
	if err != nil {
		return nil, scheduledomain.ErrInvalidTimeRange
	}
	endTime, err := parseClock(req.EndTime)
	if err != nil {
		return nil, scheduledomain.ErrInvalidTimeRange
	}
	if endTime <= startTime {
		return nil, scheduledomain.ErrInvalidTimeRange
	}

	if req.EffectiveStart.IsZero() {
		return nil, scheduledomain.ErrInvalidEffective
	}
	effectiveStart := dates.Truncate(req.EffectiveStart)
	var effectiveEnd *time.Time
	if req.EffectiveEnd != nil {
		end := dates.Truncate(*req.EffectiveEnd)
		if end.Before(effectiveStart) {
			return nil, scheduledomain.ErrInvalidEffective
		}
		effectiveEnd = &end
	}

	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = "walk"
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 30
	}

	return &scheduledomain.RecurringWindow{
		ClientID:        req.ClientID,
		TenantID:        req.TenantID,
		ServiceType:     serviceType,
		DayOfWeek:       req.DayOfWeek,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		EffectiveStart:  effectiveStart,
		EffectiveEnd:    effectiveEnd,
		DurationMinutes: duration,
	}, nil
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
