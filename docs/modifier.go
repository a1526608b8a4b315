package docs

import "context"

// EntityDistribution is the entity type passed to modifiers when asking
// whether distribution-level documentation must be hidden.
const EntityDistribution = "distribution"

// Modifier is the hook by which access-control or redaction logic outside
// this package influences documentation output. Implementations answer
// whether docs for the given entity must be modified (i.e. suppressed).
type Modifier interface {
	RequiresModification(ctx context.Context, entityType, identifier string) (bool, error)
}

// ModifierFunc adapts a function to Modifier.
type ModifierFunc func(ctx context.Context, entityType, identifier string) (bool, error)

func (f ModifierFunc) RequiresModification(ctx context.Context, entityType, identifier string) (bool, error) {
	return f(ctx, entityType, identifier)
}

// Modifiers queries registered modifiers in order, short-circuiting on the
// first true answer. An empty list answers false.
type Modifiers []Modifier

func (ms Modifiers) RequiresModification(ctx context.Context, entityType, identifier string) (bool, error) {
	for _, m := range ms {
		required, err := m.RequiresModification(ctx, entityType, identifier)
		if err != nil {
			return false, err
		}
		if required {
			return true, nil
		}
	}
	return false, nil
}
