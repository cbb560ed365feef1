package seasons

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/sportsboard/internal/logging"
	"github.com/preston-bernstein/sportsboard/internal/store"
	"github.com/preston-bernstein/sportsboard/internal/timeutil"
)

// AutoResult is the outcome of one domain's boundary check.
type AutoResult struct {
	Domain     string            `json:"domain"`
	Action     string            `json:"action"`
	Tournament *store.Tournament `json:"tournament,omitempty"`
}

// Changed reports whether the check modified the domain.
func (r AutoResult) Changed() bool { return r.Action != ActionNoop }

// Auto runs the boundary check for domain: an expired current window is
// deactivated; otherwise, with nothing active, a queue head covering today is
// promoted. At most one of the two happens per run. The store is written only
// when something changed.
func (s *Service) Auto(ctx context.Context, domain string) (AutoResult, error) {
	results, err := s.autoDomains(ctx, func(repo *store.Repository) ([]string, error) {
		if !repo.Known(domain) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
		}
		return []string{domain}, nil
	})
	if err != nil {
		return AutoResult{}, err
	}
	return results[0], nil
}

// AutoAll runs the boundary check for every stored or built-in domain under a
// single lock and a single save.
func (s *Service) AutoAll(ctx context.Context) ([]AutoResult, error) {
	return s.autoDomains(ctx, func(repo *store.Repository) ([]string, error) {
		return repo.Domains(), nil
	})
}

func (s *Service) autoDomains(ctx context.Context, pick func(*store.Repository) ([]string, error)) ([]AutoResult, error) {
	today := s.Today()
	var results []AutoResult

	_, _, err := store.Update(ctx, s.store, func(doc *store.Document) (bool, error) {
		repo := s.repository(doc)
		domains, err := pick(repo)
		if err != nil {
			return false, err
		}
		results = make([]AutoResult, 0, len(domains))
		changed := false
		for _, domain := range domains {
			res := s.checkBoundary(doc, repo, domain, today)
			if res.Changed() {
				changed = true
			}
			results = append(results, res)
		}
		return changed, nil
	})
	if err != nil {
		for _, res := range results {
			s.metrics.RecordBoundaryCheck(res.Domain, "", err)
		}
		return nil, err
	}

	for _, res := range results {
		s.metrics.RecordBoundaryCheck(res.Domain, res.Action, nil)
		if res.Changed() {
			args := []any{
				slog.String(logging.FieldDomain, res.Domain),
				slog.String(logging.FieldAction, res.Action),
				slog.String(logging.FieldDate, timeutil.FormatDate(today)),
			}
			if res.Tournament != nil {
				args = append(args, slog.String(logging.FieldWindow, res.Tournament.Name))
			}
			logging.Info(s.log(ctx), "boundary check changed domain", args...)
		} else {
			s.log(ctx).Debug("boundary check no-op", slog.String(logging.FieldDomain, res.Domain))
		}
	}
	return results, nil
}

// checkBoundary mutates the domain's state in doc. Catalog-backed domains are
// written into doc only when they change, so a no-op never persists defaults.
func (s *Service) checkBoundary(doc *store.Document, repo *store.Repository, domain string, today time.Time) AutoResult {
	state, persisted := repo.State(domain)
	res := AutoResult{Domain: domain, Action: ActionNoop}

	if expired := state.ExpireCurrent(today, s.catalog.IdleFrequency(domain)); expired != nil {
		res.Action, res.Tournament = ActionExpired, expired
	} else if promoted := state.PromoteHead(today); promoted != nil {
		res.Action, res.Tournament = ActionPromoted, promoted
	}

	if res.Changed() && !persisted {
		doc.Domains[domain] = state
	}
	return res
}
