package request_deposit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	menuClient "github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
	"github.com/m04kA/FoodMap-ReservationService/internal/integrations/notifyqueue"
	storage "github.com/m04kA/FoodMap-ReservationService/internal/infra/storage/reservation"
)

// publishTimeout таймаут на публикацию уведомления в фоне
const publishTimeout = 10 * time.Second

// UseCase use case запроса депозита по бронированию.
// Перевод CONFIRMED -> WAITING_DEPOSIT выполняется атомарно (check-and-set),
// уведомление клиенту отправляется после успешного перевода и не влияет на результат.
type UseCase struct {
	reservationRepo ReservationRepository
	menuClient      MenuServiceClient
	publisher       NotificationPublisher
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// publisher может быть nil — тогда уведомления не отправляются.
func NewUseCase(
	reservationRepo ReservationRepository,
	menuClient MenuServiceClient,
	publisher NotificationPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		menuClient:      menuClient,
		publisher:       publisher,
		logger:          logger,
	}
}

// Execute выполняет use case запроса депозита
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestDeposit: user=%d, reservation=%d, percent=%d",
		req.UserID, req.ReservationID, req.DepositPercent)

	// 1. Валидация входных данных
	if req.UserID <= 0 || req.ReservationID <= 0 {
		uc.logger.Warn("RequestDeposit: invalid identifiers user=%d, reservation=%d", req.UserID, req.ReservationID)
		return nil, fmt.Errorf("%w: userID and reservationID must be positive", ErrInvalidInput)
	}
	if req.DepositPercent < domain.MinDepositPercent || req.DepositPercent > domain.MaxDepositPercent {
		uc.logger.Warn("RequestDeposit: percent=%d out of range", req.DepositPercent)
		return nil, ErrInvalidPercent
	}

	// 2. Получаем бронирование
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			uc.logger.Warn("RequestDeposit: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("RequestDeposit: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Проверяем, что пользователь является персоналом ресторана
	restaurant, err := uc.menuClient.GetRestaurant(ctx, reservation.RestaurantID)
	if err != nil {
		if errors.Is(err, menuClient.ErrRestaurantNotFound) {
			uc.logger.Warn("RequestDeposit: restaurant id=%d not found", reservation.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("RequestDeposit: failed to get restaurant id=%d: %v", reservation.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}
	if !restaurant.IsOwner(req.UserID) {
		uc.logger.Warn("RequestDeposit: user id=%d is not staff of restaurant id=%d",
			req.UserID, reservation.RestaurantID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем, что статус допускает запрос депозита
	if !reservation.CanRequestDeposit() {
		uc.logger.Warn("RequestDeposit: reservation id=%d in status %s does not allow deposit request",
			reservation.ID, reservation.Status)
		return nil, ErrStatusConflict
	}

	// 5. Вычисляем сумму депозита от полной стоимости заказа
	amount := domain.ComputeDepositAmount(reservation.TotalAmount(), req.DepositPercent)
	currency := reservation.DepositCurrency
	if currency == "" {
		currency = restaurant.Currency
	}
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	// 6. Атомарный перевод CONFIRMED -> WAITING_DEPOSIT (check-and-set)
	err = uc.reservationRepo.RequestDeposit(ctx, reservation.ID, reservation.Status,
		req.DepositPercent, amount, currency)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		case errors.Is(err, storage.ErrStatusConflict):
			uc.logger.Warn("RequestDeposit: concurrent status change for reservation id=%d", reservation.ID)
			return nil, ErrStatusConflict
		default:
			uc.logger.Error("RequestDeposit: failed to request deposit for reservation id=%d: %v",
				reservation.ID, err)
			return nil, fmt.Errorf("%w: failed to request deposit: %v", ErrInternal, err)
		}
	}

	// 7. Перечитываем бронирование
	updated, err := uc.reservationRepo.GetByID(ctx, reservation.ID)
	if err != nil {
		uc.logger.Error("RequestDeposit: failed to reload reservation id=%d: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: failed to reload reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("RequestDeposit: reservation id=%d moved to %s, amount=%.2f %s",
		updated.ID, updated.Status, amount, currency)

	// 8. Отправляем уведомление клиенту в фоне, если персонал его запросил (fire-and-forget)
	if req.SendNotification {
		uc.notifyAsync(updated, amount, currency, req.DepositPercent, req.EmailNote)
	}

	return toResponse(updated), nil
}

// notifyAsync публикует событие о запросе депозита в отдельной горутине.
// Ошибка публикации только логируется, статус бронирования уже изменен.
func (uc *UseCase) notifyAsync(r *domain.Reservation, amount float64, currency string, percent int, emailNote *string) {
	if uc.publisher == nil {
		return
	}

	event := notifyqueue.DepositRequestedEvent{
		ReservationID:  r.ID,
		Code:           r.Code,
		RestaurantID:   r.RestaurantID,
		ContactName:    r.ContactName,
		ContactPhone:   r.ContactPhone,
		DepositPercent: percent,
		DepositAmount:  amount,
		Currency:       currency,
		EmailNote:      emailNote,
		RequestedAt:    r.UpdatedAt,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := uc.publisher.PublishDepositRequested(ctx, event); err != nil {
			uc.logger.Error("RequestDeposit: failed to publish notification for reservation id=%d: %v",
				r.ID, err)
			return
		}
		uc.logger.Info("RequestDeposit: notification published for reservation id=%d", r.ID)
	}()
}
