package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recruiter-pipeline-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

// NewApplicationRepository creates a new application repository.
// Every query runs under its own deadline of timeout (no deadline when zero).
func NewApplicationRepository(db *pgxpool.Pool, timeout time.Duration) domain.ApplicationRepository {
	return &applicationRepo{db: db, timeout: timeout}
}

func (r *applicationRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) (err error) {
	defer observe("create", time.Now(), &err)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	app.LastUpdated = app.CreatedAt

	query := `
		INSERT INTO applications (id, owner_id, candidate_name, role, years_of_experience,
			resume_link, status, notes, created_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.Exec(ctx, query,
		app.ID,
		app.OwnerID,
		app.CandidateName,
		app.Role,
		app.YearsOfExperience,
		app.ResumeLink,
		string(app.Status),
		app.Notes,
		app.CreatedAt,
		app.LastUpdated,
	)
	return mapError("create", err)
}

// GetByID retrieves one of ownerID's applications
func (r *applicationRepo) GetByID(ctx context.Context, ownerID, id string) (app *domain.Application, err error) {
	defer observe("get", time.Now(), &err)
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND owner_id = $2`
	app, err = scanApplication(r.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, mapError("get", err)
	}
	return app, nil
}

// Find returns one sorted page of matching applications
func (r *applicationRepo) Find(ctx context.Context, ownerID string, filter domain.ApplicationFilter, s domain.Sort, skip, limit int) (apps []domain.Application, err error) {
	defer observe("find", time.Now(), &err)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b := ownerWhere(ownerID, filter)
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE %s ORDER BY %s`,
		applicationColumns, b.clause(), orderClause(s))
	if limit > 0 {
		query += " LIMIT " + b.arg(limit)
	}
	if skip > 0 {
		query += " OFFSET " + b.arg(skip)
	}

	rows, err := r.db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, mapError("find", err)
	}
	defer rows.Close()

	apps = []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, mapError("find", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("find", err)
	}
	return apps, nil
}

// Count returns the number of matching applications
func (r *applicationRepo) Count(ctx context.Context, ownerID string, filter domain.ApplicationFilter) (n int64, err error) {
	defer observe("count", time.Now(), &err)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b := ownerWhere(ownerID, filter)
	query := `SELECT COUNT(*) FROM applications WHERE ` + b.clause()
	if err := r.db.QueryRow(ctx, query, b.args...).Scan(&n); err != nil {
		return 0, mapError("count", err)
	}
	return n, nil
}

// Aggregate runs one grouped query; groups come back ordered by key
func (r *applicationRepo) Aggregate(ctx context.Context, ownerID string, spec domain.AggregateSpec) (groups []domain.Group, err error) {
	defer observe("aggregate", time.Now(), &err)
	query, args, err := aggregateQuery(ownerID, spec)
	if err != nil {
		return nil, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("aggregate", err)
	}
	defer rows.Close()

	groups = []domain.Group{}
	for rows.Next() {
		g, err := scanGroup(rows, spec.CollectNames)
		if err != nil {
			return nil, mapError("aggregate", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("aggregate", err)
	}
	return groups, nil
}

// Update applies a sparse patch in a single statement.
// last_updated moves only when the new status differs from the stored one.
func (r *applicationRepo) Update(ctx context.Context, ownerID, id string, patch domain.ApplicationPatch) (app *domain.Application, err error) {
	defer observe("update", time.Now(), &err)
	if patch.Empty() {
		return r.GetByID(ctx, ownerID, id)
	}
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b := &whereBuilder{}
	idArg, ownerArg := b.arg(id), b.arg(ownerID)

	var sets []string
	set := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = %s", col, b.arg(v)))
	}
	if patch.CandidateName != nil {
		set("candidate_name", *patch.CandidateName)
	}
	if patch.Role != nil {
		set("role", *patch.Role)
	}
	if patch.YearsOfExperience != nil {
		set("years_of_experience", *patch.YearsOfExperience)
	}
	if patch.ResumeLink != nil {
		set("resume_link", *patch.ResumeLink)
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}
	if patch.Status != nil {
		statusArg := b.arg(string(*patch.Status))
		// right-hand sides see the pre-update row
		sets = append(sets,
			"status = "+statusArg,
			fmt.Sprintf("last_updated = CASE WHEN status IS DISTINCT FROM %s THEN %s ELSE last_updated END",
				statusArg, touchExpr))
	}

	query := fmt.Sprintf(`UPDATE applications SET %s WHERE id = %s AND owner_id = %s RETURNING %s`,
		strings.Join(sets, ", "), idArg, ownerArg, applicationColumns)

	app, err = scanApplication(r.db.QueryRow(ctx, query, b.args...))
	if err != nil {
		return nil, mapError("update", err)
	}
	return app, nil
}

// touchExpr yields a timestamp strictly after the stored last_updated
const touchExpr = `GREATEST(clock_timestamp(), last_updated + interval '1 microsecond')`

// SetStatus is a single find-and-update keyed by (id, owner_id)
func (r *applicationRepo) SetStatus(ctx context.Context, ownerID, id string, status domain.Status) (app *domain.Application, err error) {
	defer observe("set_status", time.Now(), &err)
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE applications
		SET status = $3, last_updated = ` + touchExpr + `
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + applicationColumns

	app, err = scanApplication(r.db.QueryRow(ctx, query, id, ownerID, string(status)))
	if err != nil {
		return nil, mapError("set_status", err)
	}
	return app, nil
}

// Delete permanently removes one of ownerID's applications
func (r *applicationRepo) Delete(ctx context.Context, ownerID, id string) (err error) {
	defer observe("delete", time.Now(), &err)
	if !validID(id) {
		return domain.ErrNotFound
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return mapError("delete", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return mapError("ping", r.db.Ping(ctx))
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var status string
	if err := row.Scan(
		&app.ID, &app.OwnerID, &app.CandidateName, &app.Role, &app.YearsOfExperience,
		&app.ResumeLink, &status, &app.Notes, &app.CreatedAt, &app.LastUpdated,
	); err != nil {
		return nil, err
	}
	app.Status = domain.Status(status)
	app.CreatedAt = app.CreatedAt.UTC()
	app.LastUpdated = app.LastUpdated.UTC()
	return &app, nil
}

// scanGroup reads one aggregate row. The names column is text[], decoded by
// pgx in binary format.
func scanGroup(row pgx.Row, collectNames bool) (domain.Group, error) {
	var g domain.Group
	var names []string
	if err := row.Scan(
		&g.Key, &g.Count,
		&g.SumExperience, &g.MinExperience, &g.MaxExperience,
		&g.ByStatus.Applied, &g.ByStatus.Interview, &g.ByStatus.Offer, &g.ByStatus.Rejected,
		&names,
	); err != nil {
		return domain.Group{}, err
	}
	if collectNames {
		g.Candidates = names
	}
	return g, nil
}

// validID rejects ids that cannot exist; they are reported as not found
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
