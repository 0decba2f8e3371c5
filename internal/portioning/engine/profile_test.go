package engine

import (
	"testing"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

func TestSelectBudgetProfile_ExactMatchShortcut(t *testing.T) {
	profiles := []domain.BudgetProfile{
		{ID: 1, Name: "small", CategoryIDs: []int64{1, 2}},
		{ID: 2, Name: "large", CategoryIDs: []int64{1, 2, 3, 4}, IsDefault: true},
	}

	got := SelectBudgetProfile([]int64{1, 2}, profiles)
	if got == nil || got.Name != "small" {
		t.Fatalf("expected exact match to win, got %+v", got)
	}
}

func TestSelectBudgetProfile_FallsBackToDefaultBelowThreshold(t *testing.T) {
	profiles := []domain.BudgetProfile{
		{ID: 1, Name: "unrelated", CategoryIDs: []int64{9, 10}},
		{ID: 2, Name: "default", CategoryIDs: []int64{1, 2, 3}, IsDefault: true},
	}

	got := SelectBudgetProfile([]int64{1}, profiles)
	if got == nil || got.Name != "default" {
		t.Fatalf("expected fallback to the default profile, got %+v", got)
	}
}

func TestSelectBudgetProfile_BestJaccardAboveThreshold(t *testing.T) {
	profiles := []domain.BudgetProfile{
		{ID: 1, Name: "mostly-match", CategoryIDs: []int64{1, 2, 3}},
		{ID: 2, Name: "default", CategoryIDs: []int64{9, 10}, IsDefault: true},
	}

	// present {1,2} vs mostly-match {1,2,3}: intersection 2, union 3 → 0.67 ≥ 0.5
	got := SelectBudgetProfile([]int64{1, 2}, profiles)
	if got == nil || got.Name != "mostly-match" {
		t.Fatalf("expected the best-scoring profile above threshold, got %+v", got)
	}
}
