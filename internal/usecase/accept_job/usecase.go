package accept_job

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	jobRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/job"
)

const tracerName = "github.com/m04kA/SMC-SchedulingService/internal/usecase/accept_job"

// UseCase use case для принятия заказа исполнителем
type UseCase struct {
	jobRepo      JobRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	tracer       trace.Tracer
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	jobRepo JobRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		jobRepo:      jobRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		tracer:       otel.Tracer(tracerName),
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case принятия заказа.
// Чтение заказа с блокировкой строки, добавление исполнителя и смена статуса
// выполняются в одной транзакции: параллельные принятия одного заказа
// выстраиваются в очередь на блокировке и видят исполнителей друг друга.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (_ *Response, err error) {
	ctx, span := uc.tracer.Start(ctx, "AcceptJob",
		trace.WithAttributes(
			attribute.String("company.id", req.CompanyID.String()),
			attribute.String("job.id", req.JobID.String()),
			attribute.String("worker.id", req.WorkerID.String()),
		))

	var result *domain.AcceptResult
	defer func() {
		outcome := outcomeOf(result, err)
		if uc.metrics != nil {
			uc.metrics.ObserveJobAccept(outcome)
		}
		span.SetAttributes(attribute.String("accept.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("AcceptJob: company=%s, job=%s, worker=%s", req.CompanyID, req.JobID, req.WorkerID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptJob: validation failed: %v", err)
		return nil, err
	}

	// 2. Выполняем операции с БД в транзакции (READ COMMITTED + FOR UPDATE)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем заказ с блокировкой строки (FOR UPDATE)
		job, err := uc.jobRepo.GetByIDForUpdate(txCtx, req.CompanyID, req.JobID)
		if err != nil {
			if errors.Is(err, jobRepo.ErrJobNotFound) {
				uc.logger.Warn("AcceptJob: job id=%s not found", req.JobID)
				return ErrJobNotFound
			}
			uc.logger.Error("AcceptJob: failed to get job id=%s: %v", req.JobID, err)
			return fmt.Errorf("%w: failed to get job: %w", ErrInternal, err)
		}

		// 2.2. Заказ должен набирать исполнителей
		if !job.CanAcceptWorkers() {
			uc.logger.Warn("AcceptJob: job id=%s is not accepting workers, status=%s", job.ID, job.Status)
			return fmt.Errorf("%w: status is %s", ErrInvalidState, job.Status)
		}

		// 2.3. Исполнитель не должен быть назначен повторно
		if job.HasWorker(req.WorkerID) {
			uc.logger.Warn("AcceptJob: worker id=%s already accepted job id=%s", req.WorkerID, job.ID)
			return ErrDuplicateAssignment
		}

		// 2.4. Добавляем исполнителя
		assignment := domain.WorkerAssignment{
			JobID:      job.ID,
			WorkerID:   req.WorkerID,
			AssignedAt: uc.timeProvider.Now(),
		}
		if err := uc.jobRepo.AddWorker(txCtx, assignment); err != nil {
			if errors.Is(err, jobRepo.ErrDuplicateAssignment) {
				uc.logger.Warn("AcceptJob: worker id=%s already accepted job id=%s", req.WorkerID, job.ID)
				return ErrDuplicateAssignment
			}
			if errors.Is(err, jobRepo.ErrJobNotFound) {
				return ErrJobNotFound
			}
			uc.logger.Error("AcceptJob: failed to add worker to job id=%s: %v", job.ID, err)
			return fmt.Errorf("%w: failed to add worker: %w", ErrInternal, err)
		}

		// 2.5. Пересчитываем статус по числу исполнителей
		accepted := job.AcceptedWorkers() + 1
		next := job.StatusAfterAccept(accepted)
		if next != job.Status {
			if err := uc.jobRepo.UpdateStatus(txCtx, job.ID, next); err != nil {
				uc.logger.Error("AcceptJob: failed to update status of job id=%s: %v", job.ID, err)
				return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
			}
			uc.logger.Info("AcceptJob: job id=%s status %s -> %s", job.ID, job.Status, next)
		}

		result = &domain.AcceptResult{
			JobID:           job.ID,
			WorkerID:        req.WorkerID,
			Status:          next,
			AcceptedWorkers: accepted,
			RequiredWorkers: job.RequiredWorkers,
			AssignedAt:      assignment.AssignedAt,
		}
		return nil
	})

	if err != nil {
		result = nil
		return nil, err
	}

	uc.logger.Info("AcceptJob: worker id=%s accepted job id=%s, %d/%d workers",
		result.WorkerID, result.JobID, result.AcceptedWorkers, result.RequiredWorkers)

	return &Response{
		Result:  *result,
		Message: buildMessage(*result),
	}, nil
}
