package correlation

import (
	"context"
	"fmt"
	"time"

	"github.com/BackCheck/justice-unveiled/internal/domain/claim"
	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/redis"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/prometheus"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
	"github.com/BackCheck/justice-unveiled/pkg/types/common"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

const (
	analysisCacheTTL = 5 * time.Minute
	treeCacheTTL     = 5 * time.Minute
)

// Service is the application facade of the correlation engine.  Reads
// recompute derived state from the store; the Redis cache memoizes the
// expensive aggregates between mutations.
type Service struct {
	claims       claim.Repository
	requirements evidence.RequirementRepository
	links        evidence.LinkRepository
	fulfillments evidence.FulfillmentRepository
	cache        redis.Cache
	logger       logging.Logger
	metrics      *prometheus.AppMetrics
}

// NewService wires the correlation service.  cache and metrics may be nil;
// the service then recomputes on every read and records nothing.
func NewService(
	claims claim.Repository,
	requirements evidence.RequirementRepository,
	links evidence.LinkRepository,
	fulfillments evidence.FulfillmentRepository,
	cache redis.Cache,
	logger logging.Logger,
	metrics *prometheus.AppMetrics,
) *Service {
	return &Service{
		claims:       claims,
		requirements: requirements,
		links:        links,
		fulfillments: fulfillments,
		cache:        cache,
		logger:       logger.Named("correlation"),
		metrics:      metrics,
	}
}

// CreateClaimInput carries the user-supplied fields of a new claim.
type CreateClaimInput struct {
	CaseID         string          `json:"case_id"`
	ClaimType      legal.ClaimType `json:"claim_type"`
	LegalSection   string          `json:"legal_section"`
	LegalFramework legal.Framework `json:"legal_framework"`
	Allegation     string          `json:"allegation"`
	AllegedBy      string          `json:"alleged_by"`
	AllegedAgainst string          `json:"alleged_against"`
	DateOfClaim    *time.Time      `json:"date_of_claim"`
	SourceDocument *common.ID      `json:"source_document"`
}

// CreateClaim validates and persists a new claim.  Validation failures
// surface synchronously; nothing is written on rejection.
func (s *Service) CreateClaim(ctx context.Context, in CreateClaimInput) (*claim.LegalClaim, error) {
	c, err := claim.NewLegalClaim(in.CaseID, in.ClaimType, in.LegalSection, in.LegalFramework, in.Allegation)
	if err != nil {
		return nil, err
	}
	c.AllegedBy = in.AllegedBy
	c.AllegedAgainst = in.AllegedAgainst
	c.DateOfClaim = in.DateOfClaim
	c.SourceDocument = in.SourceDocument

	if err := s.claims.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateCase(ctx, c.CaseID)

	s.logger.Info("claim created",
		logging.String("claim_id", string(c.ID)),
		logging.String("case_id", c.CaseID),
		logging.String("section", c.LegalSection),
		logging.String("framework", string(c.LegalFramework)))
	return c, nil
}

// ListClaims returns the case's claims, freshly derived and narrowed by the
// filter.  Filtering happens after derivation so status filters see current
// statuses.
func (s *Service) ListClaims(ctx context.Context, caseID string, f claim.Filter) ([]*claim.LegalClaim, error) {
	claims, _, _, err := s.loadAndDerive(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return f.Apply(claims), nil
}

// ListRequirements returns the evidence requirement catalog, optionally
// narrowed to one (section, framework) pair.
func (s *Service) ListRequirements(ctx context.Context, section string, framework legal.Framework) ([]*evidence.Requirement, error) {
	if section != "" {
		return s.requirements.ListBySection(ctx, section, framework)
	}
	return s.requirements.ListAll(ctx)
}

// ListLinks returns every link attached to the case's claims.
func (s *Service) ListLinks(ctx context.Context, caseID string) ([]*evidence.Link, error) {
	return s.links.ListByCase(ctx, caseID)
}

// ListFulfillments returns the case's full fulfillment history, oldest first.
func (s *Service) ListFulfillments(ctx context.Context, caseID string) ([]*evidence.Fulfillment, error) {
	return s.fulfillments.ListByCase(ctx, caseID)
}

// CreateLinkInput carries the user-supplied fields of a new link.
type CreateLinkInput struct {
	ClaimID          common.ID      `json:"claim_id"`
	UploadID         *common.ID     `json:"upload_id"`
	ExtractedEventID *common.ID     `json:"extracted_event_id"`
	LinkType         legal.LinkType `json:"link_type"`
	ExhibitNumber    string         `json:"exhibit_number"`
	RelevanceScore   float64        `json:"relevance_score"`
	Notes            string         `json:"notes"`
	LinkedBy         common.ActorID `json:"linked_by"`
}

// CreateLink attaches an evidence artifact to a claim.
func (s *Service) CreateLink(ctx context.Context, in CreateLinkInput) (*evidence.Link, error) {
	c, err := s.claims.GetByID(ctx, in.ClaimID)
	if err != nil {
		return nil, err
	}

	l, err := evidence.NewLink(in.ClaimID, in.UploadID, in.ExtractedEventID, in.LinkType, in.LinkedBy)
	if err != nil {
		return nil, err
	}
	l.SetExhibitNumber(in.ExhibitNumber)
	l.RelevanceScore = in.RelevanceScore
	l.Notes = in.Notes

	if err := s.links.Create(ctx, l); err != nil {
		return nil, err
	}
	s.invalidateCase(ctx, c.CaseID)

	s.logger.Info("evidence linked",
		logging.String("link_id", string(l.ID)),
		logging.String("claim_id", string(c.ID)),
		logging.String("link_type", string(l.LinkType)))
	return l, nil
}

// DeleteLink removes a link; the claim's derivation reflects the removal on
// the next read.
func (s *Service) DeleteLink(ctx context.Context, linkID common.ID) error {
	l, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return err
	}
	c, err := s.claims.GetByID(ctx, l.ClaimID)
	if err != nil {
		return err
	}
	if err := s.links.Delete(ctx, linkID); err != nil {
		return err
	}
	s.invalidateCase(ctx, c.CaseID)
	return nil
}

// SetFulfillment appends a fulfillment record for (claimID, requirementID).
// History is retained; the newest record governs derivation.
func (s *Service) SetFulfillment(ctx context.Context, claimID, requirementID common.ID, fulfilled bool, evidenceRef *common.ID, verifiedBy common.ActorID) (*evidence.Fulfillment, error) {
	c, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requirements.GetByID(ctx, requirementID); err != nil {
		return nil, err
	}

	f, err := evidence.NewFulfillment(claimID, requirementID, fulfilled, evidenceRef, verifiedBy)
	if err != nil {
		return nil, err
	}
	if err := s.fulfillments.Create(ctx, f); err != nil {
		return nil, err
	}
	s.invalidateCase(ctx, c.CaseID)

	s.logger.Info("requirement fulfillment recorded",
		logging.String("claim_id", string(claimID)),
		logging.String("requirement_id", string(requirementID)),
		logging.Bool("fulfilled", fulfilled))
	return f, nil
}

// Analyze computes the case-level analysis, serving from cache when a
// previous computation is still valid.
func (s *Service) Analyze(ctx context.Context, caseID string) (*Analysis, error) {
	start := time.Now()

	var out Analysis
	load := func(ctx context.Context) (interface{}, error) {
		return s.computeAnalysis(ctx, caseID)
	}

	if s.cache == nil {
		a, err := s.computeAnalysis(ctx, caseID)
		if err != nil {
			return nil, err
		}
		out = *a
	} else if err := s.cache.GetOrSet(ctx, analysisKey(caseID), &out, analysisCacheTTL, load); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AnalysisDuration.WithLabelValues("any").Observe(time.Since(start).Seconds())
		s.metrics.ClaimsTotal.WithLabelValues(caseID).Set(float64(out.TotalClaims))
		s.metrics.MissingEvidenceTotal.WithLabelValues(caseID).Set(float64(out.MissingMandatoryEvidence))
	}
	return &out, nil
}

// ExhibitTree builds the section / claim / exhibit view over the filtered
// claim set.
func (s *Service) ExhibitTree(ctx context.Context, caseID string, f claim.Filter, displayNames map[common.ID]string) ([]SectionNode, error) {
	start := time.Now()

	claims, links, _, err := s.loadAndDerive(ctx, caseID)
	if err != nil {
		return nil, err
	}
	tree := BuildExhibitTree(f.Apply(claims), links, displayNames)

	if s.metrics != nil {
		s.metrics.TreeBuildDuration.WithLabelValues("no").Observe(time.Since(start).Seconds())
	}
	return tree, nil
}

// computeAnalysis does the full read-derive-aggregate pass and persists any
// derivations that changed.
func (s *Service) computeAnalysis(ctx context.Context, caseID string) (*Analysis, error) {
	claims, _, state, err := s.loadAndDeriveWithState(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return Aggregate(caseID, claims, state.requirements, state.resolved), nil
}

type caseState struct {
	requirements []*evidence.Requirement
	resolved     map[common.ID]map[common.ID]*evidence.Fulfillment
}

func (s *Service) loadAndDerive(ctx context.Context, caseID string) ([]*claim.LegalClaim, []*evidence.Link, *caseState, error) {
	return s.loadAndDeriveWithState(ctx, caseID)
}

// loadAndDeriveWithState fetches the four record sets of a case, recomputes
// every claim's status and score, and persists changed derivations.
//
// A claim-list failure is fatal; failures fetching the supporting sets
// degrade to empty slices so a partial view can still render, with the
// error logged.
func (s *Service) loadAndDeriveWithState(ctx context.Context, caseID string) ([]*claim.LegalClaim, []*evidence.Link, *caseState, error) {
	claims, err := s.claims.ListByCase(ctx, caseID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, errors.ErrCodeAnalysisFailed, "list claims failed").
			WithDetail(caseID)
	}

	requirements, err := s.requirements.ListAll(ctx)
	if err != nil {
		s.logger.Error("requirement catalog fetch failed, deriving without it",
			logging.String("case_id", caseID), logging.Err(err))
		requirements = nil
	}
	links, err := s.links.ListByCase(ctx, caseID)
	if err != nil {
		s.logger.Error("link fetch failed, deriving without links",
			logging.String("case_id", caseID), logging.Err(err))
		links = nil
	}
	history, err := s.fulfillments.ListByCase(ctx, caseID)
	if err != nil {
		s.logger.Error("fulfillment fetch failed, deriving without fulfillments",
			logging.String("case_id", caseID), logging.Err(err))
		history = nil
	}

	before := make(map[common.ID]claim.Derivation, len(claims))
	for _, c := range claims {
		before[c.ID] = claim.Derivation{Status: c.Status, Score: c.SupportScore}
	}

	_, resolved := deriveAll(claims, requirements, links, history)

	for _, c := range claims {
		now := claim.Derivation{Status: c.Status, Score: c.SupportScore}
		if now == before[c.ID] {
			continue
		}
		if s.metrics != nil {
			s.metrics.DerivationTotal.WithLabelValues(string(c.Status)).Inc()
		}
		if err := s.claims.UpdateDerivation(ctx, c.ID, now); err != nil {
			// The derived values are still correct in memory; the
			// next read will retry the persist.
			s.logger.Warn("derivation persist failed",
				logging.String("claim_id", string(c.ID)), logging.Err(err))
		}
	}

	return claims, links, &caseState{requirements: requirements, resolved: resolved}, nil
}

// invalidateCase drops every cached aggregate of the case after a mutation.
func (s *Service) invalidateCase(ctx context.Context, caseID string) {
	if s.cache == nil || caseID == "" {
		return
	}
	if _, err := s.cache.DeleteByPrefix(ctx, casePrefix(caseID)); err != nil {
		s.logger.Warn("cache invalidation failed",
			logging.String("case_id", caseID), logging.Err(err))
	}
}

func casePrefix(caseID string) string {
	return fmt.Sprintf("case:%s:", caseID)
}

func analysisKey(caseID string) string {
	return casePrefix(caseID) + "analysis"
}
