package search

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/enrich"
	"jobfinder-engine/internal/provider"
	"jobfinder-engine/internal/query"
	"jobfinder-engine/internal/session"
)

// Service runs the search pipeline: criteria → queries → cache check →
// provider → enrichment → cache store. One search at a time per session;
// duplicate in-flight requests for the same criteria collapse to a single
// provider round trip.
type Service struct {
	Provider provider.Client

	group singleflight.Group
}

func New(p provider.Client) *Service {
	return &Service{Provider: p}
}

// Run returns the enriched result set for crit, from the session cache when
// possible. A provider failure caches nothing and is returned as-is; an
// empty result set is a normal outcome, not an error.
func (s *Service) Run(ctx context.Context, cfg config.Config, sess *session.Session, crit domain.SearchCriteria) (domain.ResultSet, error) {
	crit = crit.Normalize()
	fp := query.Fingerprint(crit)

	if rs, ok := sess.Lookup(fp); ok {
		sess.SetCurrent(fp)
		log.Printf("[search] cache hit session=%s fp=%q n=%d", sess.ID(), fp, len(rs))
		return rs, nil
	}

	v, err, _ := s.group.Do(sess.ID()+"|"+fp, func() (any, error) {
		return s.fetch(ctx, cfg, crit)
	})
	if err != nil {
		return nil, err
	}

	rs := v.(domain.ResultSet)
	sess.Store(fp, rs)
	return rs, nil
}

func (s *Service) fetch(ctx context.Context, cfg config.Config, crit domain.SearchCriteria) (domain.ResultSet, error) {
	queries, params := query.Build(cfg, crit)

	// Sequential on purpose: one blocking provider call at a time.
	var union domain.ResultSet
	for _, q := range queries {
		raw, err := s.Provider.Search(ctx, q, params)
		if err != nil {
			log.Printf("[search] provider error flag=%q err=%v", q.Flag, err)
			return nil, err
		}
		enriched := enrich.Listings(cfg, raw, q.Flag)
		log.Printf("[search] flag=%q raw=%d kept=%d", q.Flag, len(raw), len(enriched))
		union = append(union, enriched...)
	}

	union = enrich.Dedupe(union)
	union = enrich.FilterByLocationMode(crit.LocationMode, union)

	if max := cfg.Filters.MaxResults; max > 0 && len(union) > max {
		union = union[:max]
	}
	return union, nil
}
