package diff

// ChangeSummary is the per-category change count rollup for one modified
// entity. It carries everything the complexity scorer consumes, so the
// score is a pure function of this value.
type ChangeSummary struct {
	ClassTypeChanged bool           `json:"class_type_changed"`
	BasesAdded       int            `json:"bases_added"`
	BasesRemoved     int            `json:"bases_removed"`
	Properties       CategoryCounts `json:"properties"`
	Inputs           CategoryCounts `json:"inputs"`
	Outputs          CategoryCounts `json:"outputs"`
	Spawnflags       CategoryCounts `json:"spawnflags"`
}

// CategoryCounts counts the added/removed/modified items of one
// category. JSON keys match the report's set-diff keys.
type CategoryCounts struct {
	Added    int `json:"new"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Total is the sum across all three buckets.
func (c CategoryCounts) Total() int {
	return c.Added + c.Removed + c.Modified
}

// TotalChanges sums every counted change. Used to rank modified entities
// in the text summary.
func (s ChangeSummary) TotalChanges() int {
	total := s.BasesAdded + s.BasesRemoved +
		s.Properties.Total() + s.Inputs.Total() + s.Outputs.Total() + s.Spawnflags.Total()
	if s.ClassTypeChanged {
		total++
	}
	return total
}

// Complexity buckets the backward-porting complexity score.
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// Scoring weights per change kind.
const (
	weightClassType    = 3.0
	weightBase         = 2.0
	weightPropAddRem   = 2.0
	weightPropModified = 1.0
	weightIOAddRem     = 1.5
	weightIOModified   = 0.5
	weightFlagAddRem   = 1.0
	weightFlagModified = 0.5
)

// ScoreSummary computes the weighted backward-porting complexity score
// for one entity's change summary.
func ScoreSummary(s ChangeSummary) float64 {
	score := 0.0
	if s.ClassTypeChanged {
		score += weightClassType
	}
	score += float64(s.BasesAdded+s.BasesRemoved) * weightBase

	score += float64(s.Properties.Added+s.Properties.Removed) * weightPropAddRem
	score += float64(s.Properties.Modified) * weightPropModified

	score += float64(s.Inputs.Added+s.Inputs.Removed) * weightIOAddRem
	score += float64(s.Inputs.Modified) * weightIOModified

	score += float64(s.Outputs.Added+s.Outputs.Removed) * weightIOAddRem
	score += float64(s.Outputs.Modified) * weightIOModified

	score += float64(s.Spawnflags.Added+s.Spawnflags.Removed) * weightFlagAddRem
	score += float64(s.Spawnflags.Modified) * weightFlagModified

	return score
}

// BucketScore maps a score to its complexity bucket: >20 High,
// >10 Medium, otherwise Low.
func BucketScore(score float64) Complexity {
	switch {
	case score > 20:
		return ComplexityHigh
	case score > 10:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

// summarize derives the change summary from a computed entity diff.
func summarize(d *EntityDiff) ChangeSummary {
	s := ChangeSummary{ClassTypeChanged: d.ClassType != nil}
	if d.Definitions != nil {
		s.BasesAdded = len(d.Definitions.BasesAdded)
		s.BasesRemoved = len(d.Definitions.BasesRemoved)
	}
	if d.Properties != nil {
		s.Properties = CategoryCounts{
			Added:    len(d.Properties.Added),
			Removed:  len(d.Properties.Removed),
			Modified: len(d.Properties.Modified),
		}
	}
	if d.Inputs != nil {
		s.Inputs = CategoryCounts{
			Added:    len(d.Inputs.Added),
			Removed:  len(d.Inputs.Removed),
			Modified: len(d.Inputs.Modified),
		}
	}
	if d.Outputs != nil {
		s.Outputs = CategoryCounts{
			Added:    len(d.Outputs.Added),
			Removed:  len(d.Outputs.Removed),
			Modified: len(d.Outputs.Modified),
		}
	}
	if d.Spawnflags != nil {
		s.Spawnflags = CategoryCounts{
			Added:    len(d.Spawnflags.Added),
			Removed:  len(d.Spawnflags.Removed),
			Modified: len(d.Spawnflags.Modified),
		}
	}
	return s
}
