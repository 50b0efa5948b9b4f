package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	menuClient "github.com/m04kA/FoodMap-ReservationService/internal/integrations/menuservice"
)

// UseCase use case для создания бронирования столика
type UseCase struct {
	reservationRepo ReservationRepository
	menuClient      MenuServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	menuClient MenuServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		menuClient:      menuClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Бронирование создается в статусе PENDING и ожидает реакции ресторана.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, restaurant=%d, items=%d, guests=%d",
		req.UserID, req.RestaurantID, len(req.Items), req.GuestCount)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем ресторан
	restaurant, err := uc.menuClient.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		if errors.Is(err, menuClient.ErrRestaurantNotFound) {
			uc.logger.Warn("CreateReservation: restaurant id=%d not found", req.RestaurantID)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("CreateReservation: failed to get restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// 4. Проверяем, что ресторан принимает бронирования
	if !restaurant.IsActive {
		uc.logger.Warn("CreateReservation: restaurant id=%d is inactive", req.RestaurantID)
		return nil, ErrRestaurantInactive
	}

	// 5. Получаем меню ресторана
	menuItems, err := uc.menuClient.GetMenuItems(ctx, req.RestaurantID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get menu for restaurant id=%d: %v", req.RestaurantID, err)
		return nil, fmt.Errorf("%w: failed to get menu items: %v", ErrInternal, err)
	}

	// 6. Сопоставляем позиции заказа с меню, денормализуем название и цену
	items, err := resolveItems(req.Items, menuItems)
	if err != nil {
		uc.logger.Warn("CreateReservation: failed to resolve items: %v", err)
		return nil, err
	}

	// 7. Генерируем код бронирования
	code, err := generateCode()
	if err != nil {
		uc.logger.Error("CreateReservation: failed to generate code: %v", err)
		return nil, err
	}

	reservation := &domain.Reservation{
		Code:            code,
		RestaurantID:    req.RestaurantID,
		UserID:          req.UserID,
		Items:           items,
		GuestCount:      req.GuestCount,
		ArrivalAt:       req.ArrivalAt,
		ContactName:     req.ContactName,
		ContactPhone:    req.ContactPhone,
		CustomerNote:    trimOptional(req.CustomerNote),
		Status:          domain.StatusPending,
		DepositCurrency: resolveCurrency(restaurant.Currency),
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 8. Сохраняем бронирование вместе с позициями в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, code=%s", result.ID, result.Code)

	return toResponse(result), nil
}

// resolveCurrency возвращает валюту ресторана или валюту по умолчанию
func resolveCurrency(currency string) string {
	if currency == "" {
		return domain.DefaultCurrency
	}
	return currency
}
