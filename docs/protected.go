package docs

import "context"

// ProtectedDatasets is a config-driven modifier that suppresses
// distribution-level documentation for the listed dataset identifiers.
type ProtectedDatasets struct {
	ids map[string]struct{}
}

func NewProtectedDatasets(identifiers []string) *ProtectedDatasets {
	p := &ProtectedDatasets{ids: make(map[string]struct{}, len(identifiers))}
	for _, id := range identifiers {
		p.ids[id] = struct{}{}
	}
	return p
}

func (p *ProtectedDatasets) RequiresModification(_ context.Context, entityType, identifier string) (bool, error) {
	if entityType != EntityDistribution {
		return false, nil
	}
	_, protected := p.ids[identifier]
	return protected, nil
}
