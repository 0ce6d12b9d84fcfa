package query

import (
	"testing"

	"jobfinder-engine/internal/domain"
)

func TestFingerprintDeterministic(t *testing.T) {
	t.Parallel()

	crit := domain.SearchCriteria{
		Keywords:     "Machine  Learning",
		Location:     "Austin, TX",
		RoleCategory: domain.RoleInternship,
		Season:       domain.SeasonFall2025,
		LocationMode: domain.IncludeRemote,
	}
	if Fingerprint(crit) != Fingerprint(crit) {
		t.Fatal("same criteria produced different fingerprints")
	}
}

func TestFingerprintNormalizesText(t *testing.T) {
	t.Parallel()

	a := domain.SearchCriteria{Keywords: "Machine Learning", Location: "Austin"}
	b := domain.SearchCriteria{Keywords: "  machine   learning ", Location: "AUSTIN"}
	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("fingerprints differ:\n%q\n%q", Fingerprint(a), Fingerprint(b))
	}
}

func TestFingerprintDistinguishesEnums(t *testing.T) {
	t.Parallel()

	base := domain.SearchCriteria{Keywords: "ml"}
	variants := []domain.SearchCriteria{
		{Keywords: "ml", RoleCategory: domain.RoleInternship},
		{Keywords: "ml", Season: domain.SeasonSpring2026},
		{Keywords: "ml", LocationMode: domain.RemoteOnly},
		{Keywords: "ml", Location: "NYC"},
	}
	for i, v := range variants {
		if Fingerprint(base) == Fingerprint(v) {
			t.Errorf("variant %d collides with base fingerprint", i)
		}
	}
}
