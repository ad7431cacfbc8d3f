package domain

import (
	"context"
	"strings"
	"time"
)

// Status is the pipeline stage of an application
type Status string

// Application status constants
const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
)

// AllStatuses lists the stages in funnel order
var AllStatuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

// Valid reports whether s is one of the four stages.
// Any stage may move to any other stage, so this is the only transition guard.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Label returns the capitalised display name ("Applied")
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Application represents one candidate moving through a recruiter's pipeline
type Application struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"ownerId"`
	CandidateName     string    `json:"candidateName"`
	Role              string    `json:"role"`
	YearsOfExperience float64   `json:"yearsOfExperience"`
	ResumeLink        string    `json:"resumeLink,omitempty"`
	Status            Status    `json:"status"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// RecentApplication is the slim projection used by the dashboard activity feed
type RecentApplication struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidateName"`
	Role          string    `json:"role"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateApplicationRequest is the payload for creating an application
type CreateApplicationRequest struct {
	CandidateName     string   `json:"candidateName" validate:"required,not_blank,min=2,max=120,valid_name"`
	Role              string   `json:"role" validate:"required,not_blank,min=2,max=120,valid_name"`
	YearsOfExperience *float64 `json:"yearsOfExperience" validate:"required,gte=0,lte=50"`
	ResumeLink        string   `json:"resumeLink" validate:"omitempty,url"`
	Status            Status   `json:"status" validate:"omitempty,oneof=applied interview offer rejected"`
	Notes             string   `json:"notes" validate:"omitempty,max=5000,no_emoji"`
}

// Normalize trims text fields the same way the store would
func (r *CreateApplicationRequest) Normalize() {
	r.CandidateName = strings.TrimSpace(r.CandidateName)
	r.Role = strings.TrimSpace(r.Role)
	r.ResumeLink = strings.TrimSpace(r.ResumeLink)
	r.Notes = strings.TrimSpace(r.Notes)
}

// ApplicationPatch is a sparse update: nil fields are left untouched
type ApplicationPatch struct {
	CandidateName     *string  `json:"candidateName" validate:"omitempty,not_blank,min=2,max=120,valid_name"`
	Role              *string  `json:"role" validate:"omitempty,not_blank,min=2,max=120,valid_name"`
	YearsOfExperience *float64 `json:"yearsOfExperience" validate:"omitempty,gte=0,lte=50"`
	ResumeLink        *string  `json:"resumeLink" validate:"omitempty,url"`
	Status            *Status  `json:"status" validate:"omitempty,oneof=applied interview offer rejected"`
	Notes             *string  `json:"notes" validate:"omitempty,max=5000,no_emoji"`
}

// Normalize trims every provided text field
func (p *ApplicationPatch) Normalize() {
	for _, s := range []*string{p.CandidateName, p.Role, p.ResumeLink, p.Notes} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
}

// Empty reports whether the patch changes nothing
func (p ApplicationPatch) Empty() bool {
	return p.CandidateName == nil && p.Role == nil && p.YearsOfExperience == nil &&
		p.ResumeLink == nil && p.Status == nil && p.Notes == nil
}

// Apply copies the provided fields onto app. It returns true when the status value changed.
func (p ApplicationPatch) Apply(app *Application) bool {
	if p.CandidateName != nil {
		app.CandidateName = *p.CandidateName
	}
	if p.Role != nil {
		app.Role = *p.Role
	}
	if p.YearsOfExperience != nil {
		app.YearsOfExperience = *p.YearsOfExperience
	}
	if p.ResumeLink != nil {
		app.ResumeLink = *p.ResumeLink
	}
	if p.Notes != nil {
		app.Notes = *p.Notes
	}
	if p.Status != nil && *p.Status != app.Status {
		app.Status = *p.Status
		return true
	}
	return false
}

// SortField is a persisted field the list can be ordered by
type SortField string

const (
	SortByCreatedAt         SortField = "createdAt"
	SortByLastUpdated       SortField = "lastUpdated"
	SortByCandidateName     SortField = "candidateName"
	SortByRole              SortField = "role"
	SortByYearsOfExperience SortField = "yearsOfExperience"
	SortByStatus            SortField = "status"
)

// Valid reports whether f names a sortable field
func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByLastUpdated, SortByCandidateName, SortByRole,
		SortByYearsOfExperience, SortByStatus:
		return true
	}
	return false
}

// Sort describes list ordering
type Sort struct {
	Field      SortField
	Descending bool
}

// DefaultSort is createdAt descending
var DefaultSort = Sort{Field: SortByCreatedAt, Descending: true}

// ApplicationFilter holds the store-level predicates. Zero values mean "no constraint".
type ApplicationFilter struct {
	Status        Status     // exact match
	Role          string     // case-insensitive substring
	ExperienceMin *float64   // years_of_experience >= N
	Search        string     // case-insensitive substring over name OR role OR notes
	CreatedFrom   *time.Time // inclusive
	CreatedTo     *time.Time // inclusive
}

// ListApplicationsQuery is the parsed query string of the list endpoint
type ListApplicationsQuery struct {
	Status        string   `validate:"omitempty,oneof=applied interview offer rejected"`
	Role          string   `validate:"omitempty,max=120"`
	ExperienceMin *float64 `validate:"omitempty,gte=0,lte=50"`
	Search        string   `validate:"omitempty,max=200"`
	Page          int      `validate:"gte=1"`
	Limit         int      `validate:"gte=1,lte=100"`
	SortBy        string   `validate:"omitempty,oneof=createdAt lastUpdated candidateName role yearsOfExperience status"`
	SortOrder     string   `validate:"omitempty,oneof=asc desc"`
}

// Pagination is returned with every page of results
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// ApplicationList is one page of applications
type ApplicationList struct {
	Applications []Application `json:"applications"`
	Pagination   Pagination    `json:"pagination"`
}

// ExportFile is a rendered export ready to be streamed
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ApplicationRepository is the owner-scoped record store.
// Every method takes the caller's ownerID; implementations must never return or
// touch another owner's records.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, ownerID, id string) (*Application, error)
	Find(ctx context.Context, ownerID string, filter ApplicationFilter, sort Sort, skip, limit int) ([]Application, error)
	Count(ctx context.Context, ownerID string, filter ApplicationFilter) (int64, error)
	Aggregate(ctx context.Context, ownerID string, spec AggregateSpec) ([]Group, error)
	// Update applies a sparse patch in one atomic write; lastUpdated moves only if status changed
	Update(ctx context.Context, ownerID, id string, patch ApplicationPatch) (*Application, error)
	// SetStatus is a single find-and-update keyed by (id, ownerID) that always refreshes lastUpdated
	SetStatus(ctx context.Context, ownerID, id string, status Status) (*Application, error)
	Delete(ctx context.Context, ownerID, id string) error
	Ping(ctx context.Context) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	Create(ctx context.Context, ownerID string, req CreateApplicationRequest) (*Application, error)
	Get(ctx context.Context, ownerID, id string) (*Application, error)
	List(ctx context.Context, ownerID string, q ListApplicationsQuery) (*ApplicationList, error)
	Update(ctx context.Context, ownerID, id string, patch ApplicationPatch) (*Application, error)
	SetStatus(ctx context.Context, ownerID, id string, status Status) (*Application, error)
	Delete(ctx context.Context, ownerID, id string) error
	Export(ctx context.Context, ownerID string, q ListApplicationsQuery, format string) (*ExportFile, error)
}
