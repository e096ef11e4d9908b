package usecase

import (
	"context"
	"errors"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/metrics"
	"jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Error details returned to clients
const (
	msgJobNotFound      = "Job not found"
	msgResumeNotFound   = "Resume not found"
	msgAlreadyApplied   = "You have already applied to this job"
	msgCompanyNotFound  = "Company not found for this job"
	msgResumeFileAbsent = "Resume file not found on server"
)

// ApplicationDeps groups the collaborators of the applications service
type ApplicationDeps struct {
	Applications domain.ApplicationRepository
	Jobs         domain.JobRepository
	Resumes      domain.ResumeRepository
	Companies    domain.CompanyRepository
	Users        domain.UserRepository
	Files        domain.ResumeStore
	Validate     *validator.Validate
}

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	resumeRepo      domain.ResumeRepository
	companyRepo     domain.CompanyRepository
	userRepo        domain.UserRepository
	files           domain.ResumeStore
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(deps ApplicationDeps) domain.ApplicationUsecase {
	validate := deps.Validate
	if validate == nil {
		validate = validation.New()
	}
	return &applicationUsecase{
		applicationRepo: deps.Applications,
		jobRepo:         deps.Jobs,
		resumeRepo:      deps.Resumes,
		companyRepo:     deps.Companies,
		userRepo:        deps.Users,
		files:           deps.Files,
		validate:        validate,
	}
}

// ApplyToJob stores a pending application for the caller
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, in domain.ApplyInput) (*domain.ApplicationSummary, error) {
	// 1. Validate input
	if err := uc.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	// 2. Job must exist
	job, err := uc.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ApplicationsRejected.WithLabelValues("job_not_found").Inc()
			return nil, apperror.NotFound(msgJobNotFound)
		}
		return nil, apperror.Internal(err)
	}

	// 3. Resume must exist and belong to the caller
	if _, err := uc.resumeRepo.GetByIDForUser(ctx, in.ResumeID, in.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ApplicationsRejected.WithLabelValues("resume_not_found").Inc()
			return nil, apperror.NotFound(msgResumeNotFound)
		}
		return nil, apperror.Internal(err)
	}

	// 4. Check for duplicate application
	exists, err := uc.applicationRepo.CheckExists(ctx, in.UserID, in.JobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		metrics.ApplicationsRejected.WithLabelValues("duplicate").Inc()
		return nil, apperror.BadRequest(msgAlreadyApplied)
	}

	// 5. Resolve the company
	companyID, err := uc.resolveCompanyID(ctx, job)
	if err != nil {
		return nil, err
	}

	// 6. Create application
	app := &domain.Application{
		UserID:      in.UserID,
		ResumeID:    in.ResumeID,
		JobID:       in.JobID,
		CompanyID:   companyID,
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationStatusPending,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// A concurrent request won the race past the existence check
		if errors.Is(err, domain.ErrDuplicate) {
			metrics.ApplicationsRejected.WithLabelValues("duplicate").Inc()
			return nil, apperror.BadRequest(msgAlreadyApplied)
		}
		return nil, apperror.Internal(err)
	}

	metrics.ApplicationsSubmitted.Inc()
	logger.Log.Infow("Application submitted",
		"application_id", app.ID, "user_id", app.UserID, "job_id", app.JobID, "company_id", app.CompanyID)

	return &domain.ApplicationSummary{
		ID:          app.ID,
		JobID:       job.ID,
		JobTitle:    job.Title,
		CompanyName: job.Company,
		Status:      app.Status,
		AppliedAt:   app.AppliedAt,
	}, nil
}

// resolveCompanyID prefers the job's company_id and falls back to a name match
func (uc *applicationUsecase) resolveCompanyID(ctx context.Context, job *domain.Job) (int64, error) {
	if job.CompanyID != nil && *job.CompanyID != 0 {
		return *job.CompanyID, nil
	}

	company, err := uc.companyRepo.GetByName(ctx, job.Company)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ApplicationsRejected.WithLabelValues("company_not_found").Inc()
			return 0, apperror.NotFound(msgCompanyNotFound)
		}
		return 0, apperror.Internal(err)
	}
	return company.ID, nil
}

// GetMyApplications returns the caller's applications, newest first
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID int64) ([]domain.ApplicationSummary, error) {
	apps, err := uc.applicationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Several applications can point at the same job; look each job up once
	jobs := make(map[int64]*domain.Job)
	results := make([]domain.ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		job, seen := jobs[app.JobID]
		if !seen {
			job, err = uc.jobRepo.GetByID(ctx, app.JobID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.Internal(err)
			}
			jobs[app.JobID] = job
		}

		summary := domain.ApplicationSummary{
			ID:          app.ID,
			JobID:       app.JobID,
			JobTitle:    domain.UnknownJobField,
			CompanyName: domain.UnknownJobField,
			Status:      app.Status,
			AppliedAt:   app.AppliedAt,
		}
		if job != nil {
			summary.JobTitle = job.Title
			summary.CompanyName = job.Company
		}
		results = append(results, summary)
	}
	return results, nil
}

// CheckApplicationStatus reports whether the caller applied to jobID
func (uc *applicationUsecase) CheckApplicationStatus(ctx context.Context, userID, jobID int64) (*domain.ApplicationStatus, error) {
	app, err := uc.applicationRepo.GetByUserAndJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ApplicationStatus{HasApplied: false}, nil
		}
		return nil, apperror.Internal(err)
	}

	status := app.Status
	appliedAt := app.AppliedAt
	return &domain.ApplicationStatus{
		HasApplied: true,
		Status:     &status,
		AppliedAt:  &appliedAt,
	}, nil
}
