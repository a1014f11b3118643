package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/svitoratos/tangocrm-backend/internal/clients/redis"
	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/requestdata"
	"github.com/svitoratos/tangocrm-backend/internal/types"
)

// DashboardMetrics is the overview payload: pipeline totals for the active
// niche plus today/this-week schedule counts in the user's timezone.
type DashboardMetrics struct {
	Niche            string             `json:"niche"`
	TotalOpportunities int              `json:"total_opportunities"`
	ActiveDeals      int                `json:"active_deals"`
	PipelineValue    float64            `json:"pipeline_value"`
	WonRevenue       float64            `json:"won_revenue"`
	ValueByStage     map[string]float64 `json:"value_by_stage"`
	ClientsByStatus  map[string]int     `json:"clients_by_status"`
	EventsToday      int                `json:"events_today"`
	EventsThisWeek   int                `json:"events_this_week"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

type DashboardService interface {
	Overview(ctx context.Context, niche string) (*DashboardMetrics, error)
}

type dashboardService struct {
	db         *gorm.DB
	log        *logger.Logger
	oppRepo    repos.OpportunityRepo
	clientRepo repos.ClientRepo
	eventRepo  repos.CalendarEventRepo
	cache      redisclient.Cache
	cacheTTL   time.Duration
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	oppRepo repos.OpportunityRepo,
	clientRepo repos.ClientRepo,
	eventRepo repos.CalendarEventRepo,
	cache redisclient.Cache,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardService{
		db:         db,
		log:        log.With("service", "DashboardService"),
		oppRepo:    oppRepo,
		clientRepo: clientRepo,
		eventRepo:  eventRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (ds *dashboardService) Overview(ctx context.Context, niche string) (*DashboardMetrics, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	activeNiche := pipeline.NormalizeNiche(niche)

	cacheKey := fmt.Sprintf("dashboard:%s:%s", userID, activeNiche)
	if ds.cache != nil {
		var cached DashboardMetrics
		if hit, err := ds.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
			ds.log.Warn("Dashboard cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	timezone := ""
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		timezone = rd.Timezone
	}
	loc := pipeline.ResolveTimezone(timezone)
	now := time.Now()
	startOfToday := pipeline.StartOfDay(now, loc)
	endOfToday := startOfToday.AddDate(0, 0, 1)
	endOfWeek := startOfToday.AddDate(0, 0, 7)

	var (
		opps    []*types.Opportunity
		clients []*types.Client
		events  []*types.CalendarEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opps, err = ds.oppRepo.ListByNiche(gctx, nil, userID, string(activeNiche))
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = ds.clientRepo.ListByNiche(gctx, nil, userID, string(activeNiche))
		return err
	})
	g.Go(func() error {
		var err error
		events, err = ds.eventRepo.ListBetween(gctx, nil, userID, string(activeNiche), startOfToday.UTC(), endOfWeek.UTC())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error aggregating dashboard: %w", err)
	}

	metrics := &DashboardMetrics{
		Niche:           string(activeNiche),
		ValueByStage:    map[string]float64{},
		ClientsByStatus: map[string]int{},
		GeneratedAt:     now.UTC(),
	}
	firstStage := pipeline.FirstStage(activeNiche).ID
	for _, opp := range opps {
		metrics.TotalOpportunities++
		decoded := decodeOpportunity(opp, activeNiche)
		stageID := decoded.StageID
		if !pipeline.IsValidStage(activeNiche, stageID) {
			stageID = firstStage
		}
		metrics.ValueByStage[stageID] += opp.Value
		switch pipeline.Status(opp.Status) {
		case pipeline.StatusWon:
			metrics.WonRevenue += opp.Value
		case pipeline.StatusLost:
			// Lost deals count toward neither active nor pipeline value.
		default:
			metrics.ActiveDeals++
			metrics.PipelineValue += opp.Value
		}
	}
	for _, client := range clients {
		metrics.ClientsByStatus[client.Status]++
	}
	for _, event := range events {
		if event.StartTime.Before(endOfToday.UTC()) && !event.StartTime.Before(startOfToday.UTC()) {
			metrics.EventsToday++
		}
		metrics.EventsThisWeek++
	}

	if ds.cache != nil {
		if err := ds.cache.SetJSON(ctx, cacheKey, metrics, ds.cacheTTL); err != nil {
			ds.log.Warn("Dashboard cache write failed", "error", err)
		}
	}
	return metrics, nil
}
