package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/FoodMap-ReservationService/internal/infra/storage/reservation"
	menuClient "github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями столиков
type Service struct {
	reservationRepo ReservationRepository
	menuClient      MenuServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	menuClient MenuServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		menuClient:      menuClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит своё бронирование; персонал ресторана — любое бронирование ресторана
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.fetch(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if reservation.UserID != userID {
		if err := s.checkStaffAccess(ctx, reservation.RestaurantID, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainReservation(reservation), nil
}

// ListForRestaurant получает страницу бронирований ресторана, сначала новые.
// Доступно только персоналу ресторана. Чистое чтение, ничего не мутирует.
func (s *Service) ListForRestaurant(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForRestaurant: restaurant=%d, user=%d, page=%d, limit=%d, status=%v",
		req.RestaurantID, req.UserID, req.Page, req.Limit, req.Status)

	// Проверяем права доступа персонала
	if err := s.checkStaffAccess(ctx, req.RestaurantID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр (нормализует пагинацию)
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForRestaurant: invalid status filter=%v for restaurant=%d", *req.Status, req.RestaurantID)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidStatus)
	}

	reservations, total, err := s.reservationRepo.ListByRestaurant(ctx, filter)
	if err != nil {
		s.logger.Error("ListForRestaurant: repository error for restaurant=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: ListForRestaurant - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForRestaurant: fetched %d of %d reservations for restaurant=%d",
		len(reservations), total, req.RestaurantID)
	return models.FromDomainReservationList(reservations, filter, total), nil
}

// UpdateStatus применяет событие жизненного цикла: подтверждение (confirmed),
// отказ (rejected, заметка персонала записывается, если передана) или отмену (cancelled).
// Остальные статусы достижимы только через RequestDeposit / MarkPaid / Confirm.
// Переход применяется через check-and-set: проигравший из двух одновременных
// сотрудников получает ErrStatusConflict, а не молча перезаписывает чужой переход.
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Валидируем и конвертируем статус
	target, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Через эту операцию доступны только события confirm/reject/cancel
	if target != domain.StatusConfirmed && target != domain.StatusRejected && target != domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: status=%s is not reachable via UpdateStatus, reservation id=%d",
			target, reservationID)
		return nil, fmt.Errorf("%w: %s is not reachable via status update", ErrInvalidStatus, target)
	}

	// Получаем бронирование
	reservation, err := s.fetch(ctx, "UpdateStatus", reservationID)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа:
	// отмена доступна владельцу бронирования и персоналу, остальные события — только персоналу
	isOwner := reservation.UserID == req.UserID
	if target != domain.StatusCancelled || !isOwner {
		if err := s.checkStaffAccess(ctx, reservation.RestaurantID, req.UserID); err != nil {
			s.logger.Warn("UpdateStatus: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
			return nil, err
		}
	}

	// Проверяем допустимость перехода из текущего статуса
	if !reservation.Status.CanTransitionTo(target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed, reservation id=%d",
			reservation.Status, target, reservationID)
		return nil, fmt.Errorf("%w: cannot move from %s to %s", ErrStatusConflict, reservation.Status, target)
	}

	// Заметка персонала записывается вместе с отказом или отменой
	var ownerNote *string
	if req.OwnerNote != nil && (target == domain.StatusRejected || target == domain.StatusCancelled) {
		ownerNote = req.OwnerNote
	}

	// Применяем переход (check-and-set от прочитанного статуса)
	if err := s.applyTransition(ctx, "UpdateStatus", reservationID, reservation.Status, target, ownerNote); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: reservation id=%d moved %s -> %s", reservationID, reservation.Status, target)
	return s.refetch(ctx, "UpdateStatus", reservationID)
}

// MarkPaid фиксирует оплату депозита по внешней ссылке на платёж.
// Ссылка обязательна при любом статусе; сервис её не проверяет у платёжного провайдера.
func (s *Service) MarkPaid(ctx context.Context, reservationID int64, req *models.MarkPaidRequest) (*models.ReservationResponse, error) {
	s.logger.Info("MarkPaid: reservation id=%d by user=%d", reservationID, req.UserID)

	// Ссылка на платёж обязательна — проверяется до чтения бронирования
	reference := strings.TrimSpace(req.PaymentReference)
	if reference == "" {
		s.logger.Warn("MarkPaid: empty payment reference for reservation id=%d", reservationID)
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidInput)
	}

	reservation, err := s.fetch(ctx, "MarkPaid", reservationID)
	if err != nil {
		return nil, err
	}

	// Только персонал ресторана
	if err := s.checkStaffAccess(ctx, reservation.RestaurantID, req.UserID); err != nil {
		s.logger.Warn("MarkPaid: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return nil, err
	}

	if !reservation.CanBeMarkedPaid() {
		s.logger.Warn("MarkPaid: reservation id=%d is not waiting for deposit, status=%s",
			reservationID, reservation.Status)
		return nil, fmt.Errorf("%w: cannot mark paid from %s", ErrStatusConflict, reservation.Status)
	}

	if err := s.reservationRepo.MarkDepositPaid(ctx, reservationID, reservation.Status, reference); err != nil {
		return nil, s.mapRepoError("MarkPaid", reservationID, err)
	}

	s.logger.Info("MarkPaid: reservation id=%d deposit paid, reference=%s", reservationID, reference)
	return s.refetch(ctx, "MarkPaid", reservationID)
}

// Confirm завершает бронирование (итоговый расчёт).
// Допустимо из confirmed (депозит не требовался) и из deposit_paid.
func (s *Service) Confirm(ctx context.Context, reservationID int64, req *models.ConfirmRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Confirm: reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.fetch(ctx, "Confirm", reservationID)
	if err != nil {
		return nil, err
	}

	// Только персонал ресторана
	if err := s.checkStaffAccess(ctx, reservation.RestaurantID, req.UserID); err != nil {
		s.logger.Warn("Confirm: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return nil, err
	}

	if !reservation.CanBeFinalized() {
		s.logger.Warn("Confirm: reservation id=%d cannot be finalized from status=%s",
			reservationID, reservation.Status)
		return nil, fmt.Errorf("%w: cannot confirm from %s", ErrStatusConflict, reservation.Status)
	}

	if err := s.applyTransition(ctx, "Confirm", reservationID, reservation.Status, domain.StatusDone, nil); err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: reservation id=%d moved %s -> %s", reservationID, reservation.Status, domain.StatusDone)
	return s.refetch(ctx, "Confirm", reservationID)
}

// Вспомогательные методы

// fetch получает бронирование, транслируя ошибки репозитория в ошибки сервиса
func (s *Service) fetch(ctx context.Context, method string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", method, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return reservation, nil
}

// refetch перечитывает бронирование после успешного перехода
func (s *Service) refetch(ctx context.Context, method string, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.fetch(ctx, method, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(reservation), nil
}

// applyTransition выполняет check-and-set переход и транслирует ошибки репозитория
func (s *Service) applyTransition(ctx context.Context, method string, id int64, from, to domain.ReservationStatus, ownerNote *string) error {
	if err := s.reservationRepo.UpdateStatus(ctx, id, from, to, ownerNote); err != nil {
		return s.mapRepoError(method, id, err)
	}
	return nil
}

// mapRepoError транслирует ошибки репозитория в ошибки сервиса
func (s *Service) mapRepoError(method string, id int64, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		s.logger.Warn("%s: reservation id=%d not found during update", method, id)
		return ErrReservationNotFound
	case errors.Is(err, reservationRepo.ErrStatusConflict):
		s.logger.Warn("%s: concurrent status change detected for reservation id=%d", method, id)
		return fmt.Errorf("%w: reservation was modified concurrently", ErrStatusConflict)
	default:
		s.logger.Error("%s: repository error for reservation id=%d: %v", method, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
}

// checkStaffAccess проверяет, что пользователь входит в персонал ресторана
func (s *Service) checkStaffAccess(ctx context.Context, restaurantID int64, userID int64) error {
	restaurant, err := s.menuClient.GetRestaurant(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, menuClient.ErrRestaurantNotFound) {
			s.logger.Warn("checkStaffAccess: restaurant id=%d not found", restaurantID)
			return ErrRestaurantNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get restaurant id=%d: %v", restaurantID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get restaurant: %v", ErrInternal, err)
	}

	if !restaurant.IsOwner(userID) {
		s.logger.Warn("checkStaffAccess: user=%d is not staff of restaurant=%d", userID, restaurantID)
		return ErrAccessDenied
	}

	return nil
}
