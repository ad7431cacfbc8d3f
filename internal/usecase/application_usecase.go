package usecase

import (
	"context"
	"math"

	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/apperror"
	"recruiter-pipeline-backend/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 20
	maxExportRows   = 10000
)

type applicationUsecase struct {
	repo     domain.ApplicationRepository
	validate *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(repo domain.ApplicationRepository, validate *validator.Validate) domain.ApplicationUsecase {
	return &applicationUsecase{
		repo:     repo,
		validate: validate,
	}
}

// Create stores a new application owned by ownerID. Status defaults to applied.
func (uc *applicationUsecase) Create(ctx context.Context, ownerID string, req domain.CreateApplicationRequest) (*domain.Application, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := uc.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	app := &domain.Application{
		OwnerID:           ownerID,
		CandidateName:     req.CandidateName,
		Role:              req.Role,
		YearsOfExperience: *req.YearsOfExperience,
		ResumeLink:        req.ResumeLink,
		Status:            req.Status,
		Notes:             req.Notes,
	}
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}

	if err := uc.repo.Create(ctx, app); err != nil {
		return nil, translateStoreError(err)
	}
	return app, nil
}

func (uc *applicationUsecase) Get(ctx context.Context, ownerID, id string) (*domain.Application, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	app, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return app, nil
}

// List returns one page of ownerID's applications with pagination metadata
func (uc *applicationUsecase) List(ctx context.Context, ownerID string, q domain.ListApplicationsQuery) (*domain.ApplicationList, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	filter, sort, err := uc.parseQuery(&q)
	if err != nil {
		return nil, err
	}

	total, err := uc.repo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, translateStoreError(err)
	}

	skip := (q.Page - 1) * q.Limit
	apps, err := uc.repo.Find(ctx, ownerID, filter, sort, skip, q.Limit)
	if err != nil {
		return nil, translateStoreError(err)
	}

	return &domain.ApplicationList{
		Applications: apps,
		Pagination: domain.Pagination{
			CurrentPage:  q.Page,
			TotalPages:   int(math.Ceil(float64(total) / float64(q.Limit))),
			TotalItems:   total,
			ItemsPerPage: q.Limit,
		},
	}, nil
}

// parseQuery applies paging defaults, validates, and builds the store filter
func (uc *applicationUsecase) parseQuery(q *domain.ListApplicationsQuery) (domain.ApplicationFilter, domain.Sort, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}
	if err := uc.validate.Struct(q); err != nil {
		return domain.ApplicationFilter{}, domain.Sort{}, validationError(err)
	}

	filter := domain.ApplicationFilter{
		Status:        domain.Status(q.Status),
		Role:          q.Role,
		ExperienceMin: q.ExperienceMin,
		Search:        q.Search,
	}

	sort := domain.DefaultSort
	if q.SortBy != "" {
		sort.Field = domain.SortField(q.SortBy)
	}
	if q.SortOrder != "" {
		sort.Descending = q.SortOrder == "desc"
	}
	return filter, sort, nil
}

// Update applies a sparse patch; only provided fields change
func (uc *applicationUsecase) Update(ctx context.Context, ownerID, id string, patch domain.ApplicationPatch) (*domain.Application, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	patch.Normalize()
	if err := uc.validate.Struct(patch); err != nil {
		return nil, validationError(err)
	}
	// omitempty skips pointers to "", so blank required text is caught here
	var details []string
	if patch.CandidateName != nil && *patch.CandidateName == "" {
		details = append(details, "Candidate name: is required")
	}
	if patch.Role != nil && *patch.Role == "" {
		details = append(details, "Role: is required")
	}
	if len(details) > 0 {
		return nil, apperror.Validation(details)
	}

	app, err := uc.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return app, nil
}

// SetStatus moves an application to any of the four stages.
// The write is a single find-and-update; lastUpdated is always refreshed.
func (uc *applicationUsecase) SetStatus(ctx context.Context, ownerID, id string, status domain.Status) (*domain.Application, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperror.Validation([]string{"Status: must be one of: applied, interview, offer, rejected"})
	}

	app, err := uc.repo.SetStatus(ctx, ownerID, id, status)
	if err != nil {
		return nil, translateStoreError(err)
	}
	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()
	return app, nil
}

// Delete permanently removes an application
func (uc *applicationUsecase) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return translateStoreError(uc.repo.Delete(ctx, ownerID, id))
}

// Export renders every application matching q (paging ignored) as xlsx or csv
func (uc *applicationUsecase) Export(ctx context.Context, ownerID string, q domain.ListApplicationsQuery, format string) (*domain.ExportFile, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	q.Page, q.Limit = 1, 1
	filter, sort, err := uc.parseQuery(&q)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.Find(ctx, ownerID, filter, sort, 0, maxExportRows)
	if err != nil {
		return nil, translateStoreError(err)
	}

	switch format {
	case "xlsx", "":
		return exportExcel(apps)
	case "csv":
		return exportCSV(apps)
	default:
		return nil, apperror.Validation([]string{"Export format: must be one of: xlsx, csv"})
	}
}
