package engine

import (
	"fmt"

	"github.com/caterstack/portioning/internal/portioning/domain"
)

// SelectBudgetProfile ranks the supplied profiles by the Jaccard
// similarity of their category set to the present category set,
// falling back to the default profile when no candidate scores ≥ 0.5,
// and returning nil when there is no default to fall back to.
// profiles must be in a stable, deterministic order (e.g. by id) so
// ties resolve the same way on every call.
func SelectBudgetProfile(presentCategoryIDs []int64, profiles []domain.BudgetProfile) *domain.BudgetProfile {
	present := toSet(presentCategoryIDs)

	var best *domain.BudgetProfile
	bestScore := -1.0

	for i := range profiles {
		profile := profiles[i]
		profileCats := toSet(profile.CategoryIDs)

		if setsEqual(profileCats, present) {
			return &profile
		}

		score := jaccard(present, profileCats)
		if score > bestScore {
			bestScore = score
			best = &profile
		}
	}

	if bestScore < 0.5 {
		for i := range profiles {
			if profiles[i].IsDefault {
				return &profiles[i]
			}
		}
		return nil
	}

	return best
}

func toSet(ids []int64) map[int64]bool {
	s := make(map[int64]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

func setsEqual(a, b map[int64]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func jaccard(a, b map[int64]bool) float64 {
	union := make(map[int64]bool, len(a)+len(b))
	intersection := 0
	for k := range a {
		union[k] = true
		if b[k] {
			intersection++
		}
	}
	for k := range b {
		union[k] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

// ProfileCeilingAdjustments compares a selected profile's protein pool
// ceiling override to the global default and emits one message when it
// actually changed, naming the protein pool's categories. Accompaniment
// and dessert overrides are not compared and produce no message.
func ProfileCeilingAdjustments(
	profile *domain.BudgetProfile,
	config domain.GlobalConfig,
	poolCategoryDisplayNames []string,
) []string {
	if profile == nil {
		return nil
	}

	var adjustments []string
	label := joinPlus(poolCategoryDisplayNames)

	if profile.ProteinPoolCeilingGrams != nil {
		defaultCeil := config.ProteinPoolCeilingGrams
		newCeil := *profile.ProteinPoolCeilingGrams
		if newCeil != defaultCeil {
			if newCeil > defaultCeil {
				adjustments = append(adjustments, fmt.Sprintf(
					"Large menu — combined %s limit raised from %.0fg to %.0fg per person", label, defaultCeil, newCeil,
				))
			} else {
				adjustments = append(adjustments, fmt.Sprintf(
					"Combined %s limit lowered from %.0fg to %.0fg per person", label, defaultCeil, newCeil,
				))
			}
		}
	}

	return adjustments
}

func joinPlus(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " + "
		}
		out += p
	}
	return out
}

// EffectivePoolCeilings resolves the protein/accompaniment/dessert
// ceilings a calculation should use: the profile's override when set,
// else the global default.
func EffectivePoolCeilings(profile *domain.BudgetProfile, config domain.GlobalConfig) (protein, accompaniment, dessert float64) {
	protein = config.ProteinPoolCeilingGrams
	accompaniment = config.AccompanimentPoolCeilingGrams
	dessert = config.DessertPoolCeilingGrams

	if profile == nil {
		return protein, accompaniment, dessert
	}
	if profile.ProteinPoolCeilingGrams != nil {
		protein = *profile.ProteinPoolCeilingGrams
	}
	if profile.AccompanimentPoolCeilingGrams != nil {
		accompaniment = *profile.AccompanimentPoolCeilingGrams
	}
	if profile.DessertPoolCeilingGrams != nil {
		dessert = *profile.DessertPoolCeilingGrams
	}
	return protein, accompaniment, dessert
}
