package categorizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ledger/internal/cache"
	"ledger/internal/core"
)

func TestCategorizeDefaultRules(t *testing.T) {
	c := Default()
	cases := []struct {
		desc string
		want core.Category
	}{
		{"Lunch", core.Food},
		{"COFFEE with team", core.Food},
		{"Taxi to airport", core.Travel},
		{"Petrol", core.Travel},
		{"Rent", core.Bills},
		{"Electricity bill", core.Bills},
		{"Bought shoes", core.Shopping},
		{"Birthday gift", core.Shopping},
		{"xyz123", core.Other},
		{"", core.Other},
		// substring matching, first rule wins
		{"Breakfast on the train", core.Food},
		{"Scary movie", core.Travel},
	}
	for _, tc := range cases {
		if got := c.Categorize(tc.desc); got != tc.want {
			t.Errorf("%q expected %s, got %s", tc.desc, tc.want, got)
		}
	}
}

func TestCategorizeIsPure(t *testing.T) {
	c := Default()
	first := c.Categorize("Dinner at cafe")
	for i := 0; i < 5; i++ {
		if got := c.Categorize("Dinner at cafe"); got != first {
			t.Fatalf("iteration %d: expected %s, got %s", i, first, got)
		}
	}
}

func TestDefaultRulesOrder(t *testing.T) {
	rules := DefaultRules()
	want := []core.Category{core.Food, core.Travel, core.Bills, core.Shopping}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i, r := range rules {
		if r.Category != want[i] {
			t.Errorf("rule %d expected %s, got %s", i, want[i], r.Category)
		}
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(`
rules:
  - category: shopping
    keywords: [" Einkauf ", ""]
  - category: Food
    keywords: [Essen]
`))
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	c := New(rules)
	if got := c.Categorize("Einkauf Markt"); got != core.Shopping {
		t.Errorf("expected Shopping, got %s", got)
	}
	if got := c.Categorize("Abendessen"); got != core.Food {
		t.Errorf("expected Food, got %s", got)
	}
	if got := c.Categorize("lunch"); got != core.Other {
		t.Errorf("custom table should replace defaults, got %s", got)
	}

	bads := map[string]string{
		"empty":       `rules: []`,
		"unknown":     "rules:\n  - category: Groceries\n    keywords: [milk]",
		"other":       "rules:\n  - category: Other\n    keywords: [misc]",
		"no keywords": "rules:\n  - category: Food\n    keywords: []",
		"bad yaml":    "rules: [",
	}
	for name, doc := range bads {
		if _, err := ParseRules([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := "rules:\n  - category: Bills\n    keywords: [bolletta]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := New(rules).Categorize("Bolletta luce"); got != core.Bills {
		t.Fatalf("expected Bills, got %s", got)
	}

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read rules file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

type countingClassifier struct {
	calls int
}

func (c *countingClassifier) Categorize(string) core.Category {
	c.calls++
	return core.Bills
}

func TestCachedCategorizer(t *testing.T) {
	next := &countingClassifier{}
	c := NewCached(next, 8, 0)

	for _, d := range []string{"Rent", "rent", "RENT", "Water"} {
		if got := c.Categorize(d); got != core.Bills {
			t.Fatalf("%q expected Bills, got %s", d, got)
		}
	}
	if next.calls != 2 {
		t.Fatalf("expected 2 underlying calls, got %d", next.calls)
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 2 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestCachedWithExpiringCache(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	lru := cache.NewLRUCache[core.Category](4, time.Minute).WithClock(func() time.Time { return now })
	next := &countingClassifier{}
	c := NewCachedWith(next, lru)

	c.Categorize("Electricity bill")
	c.Categorize("electricity BILL")
	if next.calls != 1 {
		t.Fatalf("expected a cached second lookup, got %d calls", next.calls)
	}

	now = now.Add(2 * time.Minute)
	c.Categorize("Electricity bill")
	if next.calls != 2 {
		t.Fatalf("expired entry should be recomputed, got %d calls", next.calls)
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 2 {
		t.Fatalf("unexpected stats %+v", s)
	}
}
