package refresh

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/channel"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/resolution"
	"github.com/salesbridge/backend/internal/domain/shared"
	"github.com/salesbridge/backend/internal/infrastructure/config"
)

// Service rebuilds the sales fact store. Full refreshes resolve every
// eligible order line against a fresh configuration snapshot and swap
// the published batch; incremental refreshes append facts for lines
// past the watermark, escalating to full when configuration changed.
//
// Concurrent full refresh requests coalesce onto one run via
// singleflight; callers blocked on the flight all receive the same
// result.
type Service struct {
	productRepo catalog.ProductRepository
	linkRepo    catalog.MasterBoxLinkRepository
	ruleRepo    mapping.RuleRepository
	lineRepo    channel.OrderLineRepository
	factRepo    resolution.FactRepository
	stateStore  resolution.StateStore
	cfg         config.RefreshConfig
	logger      *zap.Logger

	flight  singleflight.Group
	running atomic.Bool
}

// NewService creates a new refresh Service
func NewService(
	productRepo catalog.ProductRepository,
	linkRepo catalog.MasterBoxLinkRepository,
	ruleRepo mapping.RuleRepository,
	lineRepo channel.OrderLineRepository,
	factRepo resolution.FactRepository,
	stateStore resolution.StateStore,
	cfg config.RefreshConfig,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 500
	}
	return &Service{
		productRepo: productRepo,
		linkRepo:    linkRepo,
		ruleRepo:    ruleRepo,
		lineRepo:    lineRepo,
		factRepo:    factRepo,
		stateStore:  stateStore,
		cfg:         cfg,
		logger:      logger.Named("refresh"),
	}
}

// RefreshFull rebuilds the entire fact store. Concurrent calls share
// one run.
func (s *Service) RefreshFull(ctx context.Context) (*ResultResponse, error) {
	result, err, shared := s.flight.Do("full", func() (any, error) {
		return s.runFull(ctx)
	})
	if err != nil {
		return nil, err
	}

	resp := *result.(*ResultResponse)
	resp.Coalesced = shared
	return &resp, nil
}

// RefreshIncremental appends facts for order lines past the watermark.
// A dirty configuration or an empty store escalates to a full run.
func (s *Service) RefreshIncremental(ctx context.Context) (*ResultResponse, error) {
	if s.running.Load() {
		return nil, shared.ErrRefreshInProgress
	}

	state, err := s.stateStore.Get(ctx)
	if err != nil {
		return nil, err
	}
	if state.ConfigDirty {
		s.logger.Info("configuration dirty, escalating incremental refresh to full")
		return s.RefreshFull(ctx)
	}

	batchID, err := s.factRepo.CurrentBatchID(ctx)
	if err != nil {
		return nil, err
	}
	if batchID == uuid.Nil {
		return s.RefreshFull(ctx)
	}

	start := time.Now()
	lines, err := s.lineRepo.FindEligibleSince(ctx, s.eligibility(), state.Watermark)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	facts, err := s.resolveAll(ctx, snapshot, lines, batchID)
	if err != nil {
		return nil, err
	}
	if err := s.factRepo.AppendToBatch(ctx, batchID, facts); err != nil {
		return nil, err
	}

	unmapped := countUnmapped(facts)
	if len(lines) > 0 {
		state.Watermark = lines[len(lines)-1].CreatedAt
	}
	state.LastLineCount = int64(len(lines))
	state.LastUnmappedCount = unmapped
	state.LastDuration = time.Since(start).Milliseconds()
	state.LastError = ""
	if err := s.stateStore.Put(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info("incremental refresh complete",
		zap.String("batch_id", batchID.String()),
		zap.Int("lines", len(lines)),
		zap.Int64("unmapped", unmapped),
		zap.Duration("elapsed", time.Since(start)))

	return &ResultResponse{
		BatchID:       batchID,
		Mode:          ModeIncremental,
		LineCount:     int64(len(lines)),
		UnmappedCount: unmapped,
		DurationMs:    time.Since(start).Milliseconds(),
	}, nil
}

// Status reports refresh progress and the published batch
func (s *Service) Status(ctx context.Context) (*StatusResponse, error) {
	state, err := s.stateStore.Get(ctx)
	if err != nil {
		return nil, err
	}
	batchID, err := s.factRepo.CurrentBatchID(ctx)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{
		Running:           s.running.Load(),
		CurrentBatchID:    batchID,
		SnapshotVersion:   state.SnapshotVersion,
		LastFullRefreshAt: state.LastFullRefreshAt,
		Watermark:         state.Watermark,
		ConfigDirty:       state.ConfigDirty,
		LastLineCount:     state.LastLineCount,
		LastUnmappedCount: state.LastUnmappedCount,
		LastDurationMs:    state.LastDuration,
		LastError:         state.LastError,
	}, nil
}

// Preview resolves one identifier against the current configuration
// without touching the fact store.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	line, err := channel.NewOrderLine(
		"preview", req.RawIdentifier, quantity,
		decimal.Zero, decimal.Zero,
		previewChannel(req.Channel), time.Now(),
		channel.OrderStatusConfirmed, channel.AcceptanceStatusAccepted,
	)
	if err != nil {
		return nil, err
	}

	fact := resolution.NewResolver(snapshot, s.logger).Resolve(line, uuid.Nil)
	return &PreviewResponse{
		RawIdentifier:      req.RawIdentifier,
		MatchType:          string(fact.MatchType),
		CatalogSKU:         fact.CatalogSKU,
		SKUPrimario:        fact.SKUPrimario,
		ProductName:        fact.ProductName,
		Category:           fact.Category,
		ConversionFactor:   fact.ConversionFactor,
		QuantityMultiplier: fact.QuantityMultiplier,
		UnitsSold:          fact.UnitsSold,
	}, nil
}

func (s *Service) runFull(ctx context.Context) (*ResultResponse, error) {
	s.running.Store(true)
	defer s.running.Store(false)

	start := time.Now()
	state, err := s.stateStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, s.recordFailure(ctx, state, err)
	}

	lines, err := s.lineRepo.FindEligible(ctx, s.eligibility())
	if err != nil {
		return nil, s.recordFailure(ctx, state, err)
	}

	batchID := uuid.New()
	facts, err := s.resolveAll(ctx, snapshot, lines, batchID)
	if err != nil {
		return nil, s.recordFailure(ctx, state, err)
	}

	if err := s.factRepo.PublishBatch(ctx, batchID, facts); err != nil {
		return nil, s.recordFailure(ctx, state, err)
	}

	unmapped := countUnmapped(facts)
	state.LastBatchID = batchID
	state.SnapshotVersion++
	state.LastFullRefreshAt = time.Now()
	state.ConfigDirty = false
	state.LastLineCount = int64(len(lines))
	state.LastUnmappedCount = unmapped
	state.LastDuration = time.Since(start).Milliseconds()
	state.LastError = ""
	if len(lines) > 0 {
		state.Watermark = lines[len(lines)-1].CreatedAt
	}
	if err := s.stateStore.Put(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info("full refresh complete",
		zap.String("batch_id", batchID.String()),
		zap.Int("lines", len(lines)),
		zap.Int64("unmapped", unmapped),
		zap.Int("products", snapshot.ProductCount()),
		zap.Int("rules", snapshot.RuleCount()),
		zap.Duration("elapsed", time.Since(start)))

	return &ResultResponse{
		BatchID:       batchID,
		Mode:          ModeFull,
		LineCount:     int64(len(lines)),
		UnmappedCount: unmapped,
		DurationMs:    time.Since(start).Milliseconds(),
	}, nil
}

// resolveAll resolves lines in parallel. Workers own disjoint chunks of
// the output slice, so no locking is needed and fact order matches line
// order regardless of scheduling.
func (s *Service) resolveAll(ctx context.Context, snapshot *resolution.ConfigSnapshot, lines []*channel.OrderLine, batchID uuid.UUID) ([]*resolution.SalesFact, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	resolver := resolution.NewResolver(snapshot, s.logger)
	facts := make([]*resolution.SalesFact, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for begin := 0; begin < len(lines); begin += s.cfg.ChunkSize {
		begin := begin
		end := begin + s.cfg.ChunkSize
		if end > len(lines) {
			end = len(lines)
		}
		g.Go(func() error {
			for i := begin; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				facts[i] = resolver.Resolve(lines[i], batchID)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return facts, nil
}

// loadSnapshot builds an immutable configuration snapshot from the
// current catalog, links and rules.
func (s *Service) loadSnapshot(ctx context.Context) (*resolution.ConfigSnapshot, error) {
	products, err := s.productRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.linkRepo.FindAllLinks(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := resolution.NewConfigSnapshot(products, links, rules)
	if n := snapshot.InvalidRuleCount(); n > 0 {
		s.logger.Warn("excluded mapping rules with uncompilable patterns from snapshot",
			zap.Int("excluded", n))
	}
	return snapshot, nil
}

func (s *Service) eligibility() channel.LineQuery {
	query := channel.LineQuery{}
	for _, status := range s.cfg.EligibleOrderStatuses {
		query.OrderStatuses = append(query.OrderStatuses, channel.OrderStatus(status))
	}
	for _, status := range s.cfg.EligibleAcceptanceStatuses {
		query.AcceptanceStatuses = append(query.AcceptanceStatuses, channel.AcceptanceStatus(status))
	}
	return query
}

func (s *Service) recordFailure(ctx context.Context, state *resolution.RefreshState, cause error) error {
	state.LastError = cause.Error()
	if err := s.stateStore.Put(ctx, state); err != nil {
		s.logger.Error("failed to record refresh failure", zap.Error(err))
	}
	return cause
}

func countUnmapped(facts []*resolution.SalesFact) int64 {
	var unmapped int64
	for _, f := range facts {
		if f.MatchType == resolution.MatchTypeUnmapped {
			unmapped++
		}
	}
	return unmapped
}

func previewChannel(name string) string {
	if name == "" {
		return "preview"
	}
	return name
}
