package repository

import (
	"context"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
)

// FixedConfigStore is a fixture-backed application.ConfigStore used by
// tests and the CLI: a single global config/constraint pair, no
// category overrides, one guest profile and no budget profiles (the
// selector falls back to the system default ceilings).
type FixedConfigStore struct {
	globalConfig        domain.GlobalConfig
	globalConstraint    domain.GlobalConstraint
	categoryConstraints []domain.CategoryConstraint
	budgetProfiles      []domain.BudgetProfile
	guestProfiles       []domain.GuestProfile
	combinationRules    []domain.CombinationRule
}

// NewFixedConfigStore returns a ConfigStore seeded with the system
// defaults and a single "Ladies" guest profile at the standard 0.7
// portion multiplier.
func NewFixedConfigStore() *FixedConfigStore {
	return &FixedConfigStore{
		globalConfig:     domain.DefaultGlobalConfig(),
		globalConstraint: domain.DefaultGlobalConstraint(),
		guestProfiles:    []domain.GuestProfile{{Name: "Ladies", PortionMultiplier: 0.7}},
	}
}

// GlobalConfig implements application.ConfigStore.
func (s *FixedConfigStore) GlobalConfig(_ context.Context) (domain.GlobalConfig, error) {
	return s.globalConfig, nil
}

// GlobalConstraint implements application.ConfigStore.
func (s *FixedConfigStore) GlobalConstraint(_ context.Context) (domain.GlobalConstraint, error) {
	return s.globalConstraint, nil
}

// CategoryConstraints implements application.ConfigStore.
func (s *FixedConfigStore) CategoryConstraints(_ context.Context) ([]domain.CategoryConstraint, error) {
	return s.categoryConstraints, nil
}

// BudgetProfiles implements application.ConfigStore.
func (s *FixedConfigStore) BudgetProfiles(_ context.Context) ([]domain.BudgetProfile, error) {
	return s.budgetProfiles, nil
}

// GuestProfiles implements application.ConfigStore.
func (s *FixedConfigStore) GuestProfiles(_ context.Context) ([]domain.GuestProfile, error) {
	return s.guestProfiles, nil
}

// CombinationRules implements application.ConfigStore.
func (s *FixedConfigStore) CombinationRules(_ context.Context) ([]domain.CombinationRule, error) {
	return s.combinationRules, nil
}

var _ application.ConfigStore = (*FixedConfigStore)(nil)
