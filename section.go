package prunedoc

import "context"

// SectionSpec describes one template section of a report instance. The
// upstream aggregator produces one spec per section, in template order, and
// flags the sections that ended up with no data. Specs are read-only input.
type SectionSpec struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Empty bool   `json:"empty"`
}

// Validate returns an error if the spec contains invalid fields.
func (s *SectionSpec) Validate() error {
	if s.Key == "" {
		return Errorf(EINVALID, "section key required")
	}
	return nil
}

// SectionSource supplies the ordered section specs for one report instance.
// Implementations hide where the specs come from (spreadsheet aggregation,
// fixtures, a service).
type SectionSource interface {
	Sections(ctx context.Context, instance string) ([]SectionSpec, error)
}

// EmptySections returns the specs flagged as having no data, in order.
func EmptySections(specs []SectionSpec) []SectionSpec {
	var out []SectionSpec
	for _, s := range specs {
		if s.Empty {
			out = append(out, s)
		}
	}
	return out
}
