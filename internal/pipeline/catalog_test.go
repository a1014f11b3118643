package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStageCatalogsOrderedAndMapped(t *testing.T) {
	for _, niche := range Niches() {
		stages := StagesFor(niche)
		if len(stages) == 0 {
			t.Fatalf("niche %q has an empty catalog", niche)
		}
		for i, s := range stages {
			if s.ID == "" || s.Name == "" {
				t.Errorf("%s stage %d is missing id or name", niche, i)
			}
			if s.Order != i+1 {
				t.Errorf("%s stage %q has order %d at position %d", niche, s.ID, s.Order, i)
			}
			if _, ok := stageToStatus[niche][s.ID]; !ok {
				t.Errorf("%s stage %q has no status mapping", niche, s.ID)
			}
		}
	}
}

func TestNormalizeNiche(t *testing.T) {
	if NormalizeNiche("podcaster") != NichePodcaster {
		t.Error("podcaster should normalize to itself")
	}
	if NormalizeNiche("") != NicheCreator {
		t.Error("empty niche should fall back to creator")
	}
	if NormalizeNiche("astronaut") != NicheCreator {
		t.Error("unknown niche should fall back to creator")
	}
}

func TestConversionStages(t *testing.T) {
	cases := []struct {
		niche   Niche
		stageID string
		want    bool
	}{
		{NicheCreator, "paid", true},
		{NicheCreator, "outreach", false},
		{NicheCoach, "active", true},
		{NichePodcaster, "published", true},
		{NichePodcaster, "recorded", false},
		{NicheFreelancer, "completed", true},
	}
	for _, tc := range cases {
		if got := IsConversionStage(tc.niche, tc.stageID); got != tc.want {
			t.Errorf("IsConversionStage(%q, %q) = %v, want %v", tc.niche, tc.stageID, got, tc.want)
		}
	}
}

func TestLoadCatalogOverrides(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(good, []byte(`
niches:
  creator:
    - id: outreach
      name: Cold Outreach
      color: "#112233"
      order: 1
    - id: paid
      name: Closed
      color: "#445566"
      order: 2
`), 0o644); err != nil {
		t.Fatal(err)
	}
	orig := StagesFor(NicheCreator)
	defer func() { stageCatalogs[NicheCreator] = orig }()
	if err := LoadCatalogOverrides(good); err != nil {
		t.Fatalf("valid override rejected: %v", err)
	}
	stages := StagesFor(NicheCreator)
	if len(stages) != 2 || stages[0].Name != "Cold Outreach" {
		t.Errorf("override not applied: %+v", stages)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(`
niches:
  creator:
    - id: not-a-stage
      name: Bogus
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadCatalogOverrides(bad); err == nil {
		t.Error("override with an unmapped stage id should be rejected")
	}
}
