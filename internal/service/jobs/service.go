package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	jobRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/job"
	"github.com/m04kA/SMC-SchedulingService/internal/service/jobs/models"
)

// Service сервис для работы с заказами: чтение, смена статуса, отмена, редактирование.
// Принятие заказа исполнителем вынесено в use case accept_job.
type Service struct {
	jobRepo      JobRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(jobRepo JobRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		jobRepo:      jobRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает заказ компании с исполнителями
func (s *Service) GetByID(ctx context.Context, companyID, id uuid.UUID) (*models.JobResponse, error) {
	s.logger.Info("GetByID: fetching job id=%s for company=%s", id, companyID)

	job, err := s.jobRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return models.FromDomainJob(job), nil
}

// List получает заказы компании с количеством принятых и требуемых исполнителей.
// По умолчанию только открытые заказы, status=all отключает фильтр.
func (s *Service) List(ctx context.Context, req *models.ListJobsRequest) (*models.JobListResponse, error) {
	s.logger.Info("List: fetching jobs for company=%s, status=%q", req.CompanyID, req.Status)

	filter := domain.JobsFilter{CompanyID: req.CompanyID}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case domain.JobStatusFilterAll:
	case "":
		open := domain.JobStatusOpen
		filter.Status = &open
	default:
		parsed, err := domain.ParseJobStatus(status)
		if err != nil {
			s.logger.Warn("List: invalid status=%q for company=%s", req.Status, req.CompanyID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		filter.Status = &parsed
	}

	jobs, err := s.jobRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for company=%s: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d jobs for company=%s", len(jobs), req.CompanyID)
	return models.FromDomainJobList(jobs), nil
}

// Transition применяет действие администратора к статусу заказа.
// Отмена выполняется через Cancel, чтобы сохранить причину и время.
func (s *Service) Transition(ctx context.Context, companyID, id uuid.UUID, req *models.TransitionRequest) (*models.JobResponse, error) {
	action := domain.JobAction(strings.ToLower(strings.TrimSpace(req.Action)))
	s.logger.Info("Transition: job id=%s, action=%s", id, action)

	if action == domain.JobActionCancel {
		return s.Cancel(ctx, companyID, id, &models.CancelJobRequest{})
	}

	var result *domain.Job
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		job, err := s.jobRepo.GetByIDForUpdate(txCtx, companyID, id)
		if err != nil {
			return s.mapRepoError("Transition", id, err)
		}

		next, ok := domain.NextStatus(action, job.Status)
		if !ok {
			s.logger.Warn("Transition: action=%s not allowed for job id=%s in status=%s", action, id, job.Status)
			return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, job.Status)
		}

		if err := s.jobRepo.UpdateStatus(txCtx, job.ID, next); err != nil {
			return s.mapRepoError("Transition", id, err)
		}

		job.Status = next
		result = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transition: job id=%s is now %s", id, result.Status)
	return models.FromDomainJob(result), nil
}

// Cancel отменяет заказ в любом нетерминальном статусе. Исполнители сохраняются.
func (s *Service) Cancel(ctx context.Context, companyID, id uuid.UUID, req *models.CancelJobRequest) (*models.JobResponse, error) {
	s.logger.Info("Cancel: cancelling job id=%s for company=%s", id, companyID)

	reason := req.Reason
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if len(trimmed) > domain.MaxDescriptionLength {
			return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
		}
		if trimmed == "" {
			reason = nil
		} else {
			reason = &trimmed
		}
	}

	var result *domain.Job
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		job, err := s.jobRepo.GetByIDForUpdate(txCtx, companyID, id)
		if err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		if !job.CanBeCancelled() {
			s.logger.Warn("Cancel: job id=%s cannot be cancelled, status=%s", id, job.Status)
			return fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, job.Status)
		}

		cancelledAt := s.timeProvider.Now()
		if err := s.jobRepo.Cancel(txCtx, job.ID, reason, cancelledAt); err != nil {
			return s.mapRepoError("Cancel", id, err)
		}

		job.Status = domain.JobStatusCancelled
		job.CancellationReason = reason
		job.CancelledAt = &cancelledAt
		result = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled job id=%s, workers kept=%d", id, result.AcceptedWorkers())
	return models.FromDomainJob(result), nil
}

// UpdateDetails изменяет описательные поля и цены заказа в статусе draft или open
func (s *Service) UpdateDetails(ctx context.Context, companyID, id uuid.UUID, req *models.UpdateJobRequest) (*models.JobResponse, error) {
	s.logger.Info("UpdateDetails: updating job id=%s for company=%s", id, companyID)

	var result *domain.Job
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		job, err := s.jobRepo.GetByIDForUpdate(txCtx, companyID, id)
		if err != nil {
			return s.mapRepoError("UpdateDetails", id, err)
		}

		if !job.CanBeEdited() {
			s.logger.Warn("UpdateDetails: job id=%s cannot be edited, status=%s", id, job.Status)
			return ErrCannotEdit
		}

		if req.Title != nil {
			job.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			job.Description = req.Description
		}
		if req.LocationAddress != nil {
			job.LocationAddress = req.LocationAddress
		}
		if req.BasePrice != nil {
			job.BasePrice = *req.BasePrice
		}
		if req.MinimumPrice != nil {
			job.MinimumPrice = *req.MinimumPrice
		}

		if err := validateDetails(job); err != nil {
			s.logger.Warn("UpdateDetails: validation failed for job id=%s: %v", id, err)
			return err
		}

		if err := s.jobRepo.UpdateDetails(txCtx, job); err != nil {
			return s.mapRepoError("UpdateDetails", id, err)
		}

		result = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateDetails: successfully updated job id=%s", id)
	return models.FromDomainJob(result), nil
}

func (s *Service) mapRepoError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, jobRepo.ErrJobNotFound) {
		s.logger.Warn("%s: job id=%s not found", op, id)
		return ErrJobNotFound
	}
	s.logger.Error("%s: repository error for job id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
}

func validateDetails(job *domain.Job) error {
	if job.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if len(job.Title) > domain.MaxNameLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if job.Description != nil && len(*job.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if err := domain.ValidatePricing(job.EstimatedDuration, job.MinimumPrice, job.BasePrice); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
