package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobfinder-engine/internal/config"
	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/provider"
	"jobfinder-engine/internal/query"
	"jobfinder-engine/internal/session"
)

type fakeProvider struct {
	calls    int
	listings map[string][]provider.Listing // keyed by query flag
	err      error
}

func (f *fakeProvider) Search(_ context.Context, q query.ProviderQuery, _ query.Params) ([]provider.Listing, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.listings[q.Flag], nil
}

func testConfig() config.Config {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return cfg
}

func TestRunCachesByFingerprint(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{listings: map[string][]provider.Listing{
		"Internship": {{Title: "ML Intern", Employer: "Acme", ApplyLink: "https://a.example"}},
	}}
	svc := New(fp)
	sess := session.NewRegistry(time.Minute).Ensure("")
	crit := domain.SearchCriteria{Keywords: "ml", RoleCategory: domain.RoleInternship}

	first, err := svc.Run(context.Background(), testConfig(), sess, crit)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("first run kept %d listings, want 1", len(first))
	}
	callsAfterFirst := fp.calls

	second, err := svc.Run(context.Background(), testConfig(), sess, crit)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if fp.calls != callsAfterFirst {
		t.Errorf("cache hit still called provider (%d -> %d calls)", callsAfterFirst, fp.calls)
	}
	if len(second) != len(first) {
		t.Errorf("cached set differs: %d vs %d", len(second), len(first))
	}
}

func TestRunBothRolesUnion(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{listings: map[string][]provider.Listing{
		"Internship": {
			{Title: "ML Intern", Employer: "Acme", ApplyLink: "https://a.example"},
		},
		"Entry-Level / New-Grad Full-Time": {
			{Title: "ML Engineer", Employer: "Acme", ApplyLink: "https://b.example"},
			{Title: "ML Intern", Employer: "Acme", ApplyLink: "https://a.example"}, // dup across queries
		},
	}}
	svc := New(fp)
	sess := session.NewRegistry(time.Minute).Ensure("")

	rs, err := svc.Run(context.Background(), testConfig(), sess,
		domain.SearchCriteria{Keywords: "ml", RoleCategory: domain.RoleBoth})
	if err != nil {
		t.Fatal(err)
	}
	if fp.calls != 2 {
		t.Errorf("provider calls = %d, want 2", fp.calls)
	}
	if len(rs) != 2 {
		t.Errorf("union kept %d listings, want 2 after dedup", len(rs))
	}
}

func TestRunErrorNotCached(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{err: errors.New("provider down")}
	svc := New(fp)
	sess := session.NewRegistry(time.Minute).Ensure("")
	crit := domain.SearchCriteria{Keywords: "ml", RoleCategory: domain.RoleInternship}

	if _, err := svc.Run(context.Background(), testConfig(), sess, crit); err == nil {
		t.Fatal("expected provider error")
	}
	if _, ok := sess.Current(); ok {
		t.Error("failed search left a current result set")
	}

	// Once the provider recovers, the same criteria must hit it again.
	fp.err = nil
	fp.listings = map[string][]provider.Listing{
		"Internship": {{Title: "ML Intern", Employer: "Acme", ApplyLink: "https://a.example"}},
	}
	rs, err := svc.Run(context.Background(), testConfig(), sess, crit)
	if err != nil {
		t.Fatalf("run after recovery: %v", err)
	}
	if len(rs) != 1 {
		t.Errorf("kept %d listings, want 1", len(rs))
	}
}

func TestRunAppliesLocationMode(t *testing.T) {
	t.Parallel()

	fp := &fakeProvider{listings: map[string][]provider.Listing{
		"Internship": {
			{Title: "Remote Intern", Employer: "Acme", ApplyLink: "https://a.example", IsRemote: true},
			{Title: "Office Intern", Employer: "Acme", ApplyLink: "https://b.example", City: "Austin"},
		},
	}}
	svc := New(fp)
	sess := session.NewRegistry(time.Minute).Ensure("")

	rs, err := svc.Run(context.Background(), testConfig(), sess, domain.SearchCriteria{
		Keywords: "x", RoleCategory: domain.RoleInternship, LocationMode: domain.OnSiteOnly,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 || rs[0].Title != "Office Intern" {
		t.Errorf("onsite_only kept %+v", rs)
	}
}

type countingProvider struct {
	calls    atomic.Int32
	listings []provider.Listing
}

func (c *countingProvider) Search(context.Context, query.ProviderQuery, query.Params) ([]provider.Listing, error) {
	c.calls.Add(1)
	return c.listings, nil
}

// Identical searches arriving together on one session must all succeed and
// leave the cache consistent.
func TestRunConcurrentIdenticalSearches(t *testing.T) {
	t.Parallel()

	cp := &countingProvider{listings: []provider.Listing{
		{Title: "ML Intern", Employer: "Acme", ApplyLink: "https://a.example"},
	}}
	svc := New(cp)
	sess := session.NewRegistry(time.Minute).Ensure("")
	crit := domain.SearchCriteria{Keywords: "ml", RoleCategory: domain.RoleInternship}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rs, err := svc.Run(context.Background(), testConfig(), sess, crit)
			if err != nil {
				t.Errorf("run: %v", err)
				return
			}
			if len(rs) != 1 {
				t.Errorf("kept %d listings, want 1", len(rs))
			}
		}()
	}
	wg.Wait()

	if _, ok := sess.Current(); !ok {
		t.Error("no current set after concurrent searches")
	}
	if cp.calls.Load() == 0 {
		t.Error("provider never called")
	}
}

func TestRunCapsResults(t *testing.T) {
	t.Parallel()

	var many []provider.Listing
	for i := 0; i < 40; i++ {
		many = append(many, provider.Listing{
			Title:     "Intern " + string(rune('a'+i)),
			Employer:  "Acme",
			ApplyLink: "https://a.example",
		})
	}
	fp := &fakeProvider{listings: map[string][]provider.Listing{"Internship": many}}
	svc := New(fp)
	sess := session.NewRegistry(time.Minute).Ensure("")

	cfg := testConfig()
	cfg.Filters.MaxResults = 5
	rs, err := svc.Run(context.Background(), cfg, sess,
		domain.SearchCriteria{Keywords: "x", RoleCategory: domain.RoleInternship})
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 5 {
		t.Errorf("kept %d listings, want cap of 5", len(rs))
	}
}
