package postgres

import (
	"fmt"
	"strings"

	"recruiter-pipeline-backend/internal/analytics"
	"recruiter-pipeline-backend/internal/domain"
)

const applicationColumns = `id::text, owner_id, candidate_name, role, years_of_experience,
	resume_link, status, notes, created_at, last_updated`

// whereBuilder accumulates AND-ed conditions with positional args.
// Each condition is a format string whose %[1]d is replaced by the arg position.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

func (b *whereBuilder) add(cond string, arg interface{}) {
	b.args = append(b.args, arg)
	b.conditions = append(b.conditions, fmt.Sprintf(cond, len(b.args)))
}

// arg appends a value and returns its placeholder
func (b *whereBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) clause() string {
	return strings.Join(b.conditions, " AND ")
}

// ownerWhere scopes every query to one owner before applying the filter
func ownerWhere(ownerID string, f domain.ApplicationFilter) *whereBuilder {
	b := &whereBuilder{}
	b.add("owner_id = $%[1]d", ownerID)

	if f.Status != "" {
		b.add("status = $%[1]d", string(f.Status))
	}
	if f.Role != "" {
		b.add("role ILIKE $%[1]d", likePattern(f.Role))
	}
	if f.ExperienceMin != nil {
		b.add("years_of_experience >= $%[1]d", *f.ExperienceMin)
	}
	if f.Search != "" {
		b.add("(candidate_name ILIKE $%[1]d OR role ILIKE $%[1]d OR notes ILIKE $%[1]d)", likePattern(f.Search))
	}
	if f.CreatedFrom != nil {
		b.add("created_at >= $%[1]d", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		b.add("created_at <= $%[1]d", *f.CreatedTo)
	}
	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns user text into a literal substring pattern
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt:         "created_at",
	domain.SortByLastUpdated:       "last_updated",
	domain.SortByCandidateName:     "candidate_name",
	domain.SortByRole:              "role",
	domain.SortByYearsOfExperience: "years_of_experience",
	domain.SortByStatus:            "status",
}

func orderClause(s domain.Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", col, dir)
}

var periodFormats = map[domain.Period]string{
	domain.PeriodDaily:   `YYYY-MM-DD`,
	domain.PeriodWeekly:  `IYYY-"W"IW`,
	domain.PeriodMonthly: `YYYY-MM`,
}

// groupKeyExpr renders the SQL expression that yields the group key of spec.
// Keys must match analytics.KeyFor and Buckets.Label exactly.
func groupKeyExpr(b *whereBuilder, spec domain.AggregateSpec) (string, error) {
	switch spec.GroupBy {
	case domain.GroupByNone:
		return "''", nil
	case domain.GroupByStatus:
		return "status", nil
	case domain.GroupByRole:
		return "role", nil
	case domain.GroupByPeriod:
		format, ok := periodFormats[spec.Period]
		if !ok {
			return "", fmt.Errorf("%w: unknown period %q", domain.ErrInvalidAggregation, spec.Period)
		}
		return fmt.Sprintf("to_char(created_at AT TIME ZONE 'UTC', %s)", b.arg(format)), nil
	case domain.GroupByExperienceBucket:
		return bucketExpr(b, spec), nil
	}
	return "", fmt.Errorf("%w: unknown group key %q", domain.ErrInvalidAggregation, spec.GroupBy)
}

// bucketExpr renders half-open [lo, hi) ranges as a CASE expression
func bucketExpr(b *whereBuilder, spec domain.AggregateSpec) string {
	buckets := analytics.Buckets{Boundaries: spec.Boundaries, DefaultLabel: spec.DefaultLabel}

	var sb strings.Builder
	sb.WriteString("CASE")
	for i := 0; i+1 < len(spec.Boundaries); i++ {
		fmt.Fprintf(&sb, " WHEN years_of_experience >= %s AND years_of_experience < %s THEN %s",
			b.arg(spec.Boundaries[i]), b.arg(spec.Boundaries[i+1]), b.arg(buckets.LabelAt(i)))
	}
	fmt.Fprintf(&sb, " ELSE %s END", b.arg(spec.DefaultLabel))
	return sb.String()
}

// aggregateQuery builds the grouped query. Grouping is by ordinal so that
// parameterised key expressions are accepted by the planner.
func aggregateQuery(ownerID string, spec domain.AggregateSpec) (string, []interface{}, error) {
	if err := spec.Validate(); err != nil {
		return "", nil, err
	}
	b := ownerWhere(ownerID, spec.Filter)
	key, err := groupKeyExpr(b, spec)
	if err != nil {
		return "", nil, err
	}

	names := "ARRAY[]::text[]"
	if spec.CollectNames {
		names = "array_agg(candidate_name ORDER BY created_at, id)"
	}

	query := fmt.Sprintf(`
		SELECT
			%s AS group_key,
			COUNT(*),
			COALESCE(SUM(years_of_experience), 0),
			COALESCE(MIN(years_of_experience), 0),
			COALESCE(MAX(years_of_experience), 0),
			COUNT(*) FILTER (WHERE status = 'applied'),
			COUNT(*) FILTER (WHERE status = 'interview'),
			COUNT(*) FILTER (WHERE status = 'offer'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			%s
		FROM applications
		WHERE %s
		GROUP BY 1
		ORDER BY 1`, key, names, b.clause())

	return query, b.args, nil
}
