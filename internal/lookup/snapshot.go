package lookup

// Snapshot is the immutable, in-memory view of both lookup tables.
type Snapshot struct {
	excluded map[string]struct{}
	mapping  map[string]string
}

// NewSnapshot builds a snapshot from already validated values. The inputs are copied.
func NewSnapshot(excluded []string, mapping map[string]string) *Snapshot {
	s := &Snapshot{
		excluded: make(map[string]struct{}, len(excluded)),
		mapping:  make(map[string]string, len(mapping)),
	}
	for _, spu := range excluded {
		s.excluded[spu] = struct{}{}
	}
	for sku, spu := range mapping {
		s.mapping[sku] = spu
	}
	return s
}

// Empty returns a snapshot with no exclusions and no mappings.
func Empty() *Snapshot {
	return NewSnapshot(nil, nil)
}

// IsExcluded reports whether the SPU belongs to the exclusion set.
func (s *Snapshot) IsExcluded(spu string) bool {
	if s == nil {
		return false
	}
	_, ok := s.excluded[spu]
	return ok
}

// SPU returns the coarse identifier mapped to sku.
func (s *Snapshot) SPU(sku string) (string, bool) {
	if s == nil {
		return "", false
	}
	spu, ok := s.mapping[sku]
	return spu, ok
}

// ExclusionCount returns the number of excluded SPUs.
func (s *Snapshot) ExclusionCount() int {
	if s == nil {
		return 0
	}
	return len(s.excluded)
}

// MappingCount returns the number of SKU mappings.
func (s *Snapshot) MappingCount() int {
	if s == nil {
		return 0
	}
	return len(s.mapping)
}
