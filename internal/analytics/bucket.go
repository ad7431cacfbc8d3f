package analytics

import (
	"sort"
	"strconv"

	"recruiter-pipeline-backend/internal/domain"
)

// Buckets assigns numeric values to half-open ranges [b(i), b(i+1)).
// Values at or above the last boundary, or below the first, land in the default bucket.
type Buckets struct {
	Boundaries   []float64
	DefaultLabel string
}

// ExperienceBuckets is the fixed years-of-experience histogram
var ExperienceBuckets = Buckets{
	Boundaries:   []float64{0, 2, 5, 8, 12, 15, 20, 25, 30},
	DefaultLabel: "30+",
}

// Index returns the bucket position of v, or len(Boundaries)-1 for the default bucket
func (b Buckets) Index(v float64) int {
	n := len(b.Boundaries)
	if n < 2 || v < b.Boundaries[0] || v >= b.Boundaries[n-1] {
		return n - 1
	}
	// first boundary strictly greater than v, minus one
	return sort.Search(n, func(i int) bool { return b.Boundaries[i] > v }) - 1
}

// Label returns the bucket label of v ("2-5", "30+")
func (b Buckets) Label(v float64) string {
	return b.LabelAt(b.Index(v))
}

// LabelAt returns the label of bucket i
func (b Buckets) LabelAt(i int) string {
	if i < 0 || i >= len(b.Boundaries)-1 {
		return b.DefaultLabel
	}
	return formatBound(b.Boundaries[i]) + "-" + formatBound(b.Boundaries[i+1])
}

// Labels lists every label in order, default last
func (b Buckets) Labels() []string {
	labels := make([]string, 0, len(b.Boundaries))
	for i := 0; i < len(b.Boundaries)-1; i++ {
		labels = append(labels, b.LabelAt(i))
	}
	return append(labels, b.DefaultLabel)
}

// Order returns the display position of a label; unknown labels sort last
func (b Buckets) Order(label string) int {
	for i, l := range b.Labels() {
		if l == label {
			return i
		}
	}
	return len(b.Boundaries)
}

// Describe returns an empty ExperienceBucket carrying the range of label
func (b Buckets) Describe(label string) domain.ExperienceBucket {
	i := b.Order(label)
	if i >= len(b.Boundaries)-1 {
		last := 0.0
		if len(b.Boundaries) > 0 {
			last = b.Boundaries[len(b.Boundaries)-1]
		}
		return domain.ExperienceBucket{Label: b.DefaultLabel, Min: last}
	}
	upper := b.Boundaries[i+1]
	return domain.ExperienceBucket{Label: label, Min: b.Boundaries[i], Max: &upper}
}

// Spec returns the aggregate spec that groups by these buckets
func (b Buckets) Spec(collectNames bool) domain.AggregateSpec {
	return domain.AggregateSpec{
		GroupBy:      domain.GroupByExperienceBucket,
		Boundaries:   b.Boundaries,
		DefaultLabel: b.DefaultLabel,
		CollectNames: collectNames,
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
