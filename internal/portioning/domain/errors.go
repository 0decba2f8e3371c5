package domain

import "errors"

var (
	// ErrNoDishes is returned when a calculation request carries no
	// dish ids at all. Ids that resolve to no active catalogue entry do
	// not produce it; the engine returns an empty result with a warning.
	ErrNoDishes = errors.New("no active dishes found for the given ids")

	// ErrGuestMixRequired is mapped to 400 by the HTTP layer, but no
	// operation returns it: a calculation with zero guests succeeds with
	// zero per-person figures.
	ErrGuestMixRequired = errors.New("guest mix must include at least one guest")

	// ErrDishIDMismatch is returned when the dish ids referenced by a
	// user portion plan don't match the dish ids the calculation is
	// scoped to.
	ErrDishIDMismatch = errors.New("dish id set in user portions differs from dish ids")

	// ErrMenuTemplateNotFound is returned when a menu template id does
	// not resolve to an active template.
	ErrMenuTemplateNotFound = errors.New("menu template not found")

	// ErrNoPriceTier is returned when a menu template has no price
	// tier applicable to the requested guest count.
	ErrNoPriceTier = errors.New("no price tier found for this guest count")

	// ErrInvalidPool is returned when a dish references a pool outside
	// the known set.
	ErrInvalidPool = errors.New("invalid pool")

	// ErrInvalidUnit is returned when a dish references a unit outside
	// the known set.
	ErrInvalidUnit = errors.New("invalid unit")
)
