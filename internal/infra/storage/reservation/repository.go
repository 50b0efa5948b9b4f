package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FoodMap-ReservationService/internal/domain"
	"github.com/m04kA/FoodMap-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/FoodMap-ReservationService/pkg/psqlbuilder"
)

// reservationColumns колонки таблицы reservations в порядке сканирования
var reservationColumns = []string{
	"id",
	"code",
	"restaurant_id",
	"user_id",
	"guest_count",
	"arrival_at",
	"contact_name",
	"contact_phone",
	"customer_note",
	"owner_note",
	"status",
	"deposit_percent",
	"deposit_amount",
	"deposit_currency",
	"is_deposit_paid",
	"payment_reference",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями столиков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями заказа.
// Если в контексте передана активная транзакция (через context.Value), использует её —
// вставка в reservations и reservation_items должна быть атомарной, поэтому
// use case создания всегда вызывает Create внутри txmanager.Do.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"code",
			"restaurant_id",
			"user_id",
			"guest_count",
			"arrival_at",
			"contact_name",
			"contact_phone",
			"customer_note",
			"status",
			"deposit_currency",
		).
		Values(
			res.Code,
			res.RestaurantID,
			res.UserID,
			res.GuestCount,
			res.ArrivalAt,
			res.ContactName,
			res.ContactPhone,
			res.CustomerNote,
			res.Status,
			res.DepositCurrency,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	// Вставляем позиции заказа
	for _, item := range res.Items {
		item.ReservationID = res.ID

		itemQuery, itemArgs, err := psqlbuilder.Insert("reservation_items").
			Columns(
				"reservation_id",
				"menu_item_id",
				"name",
				"unit_price",
				"quantity",
				"note",
			).
			Values(
				item.ReservationID,
				item.MenuItemID,
				item.Name,
				item.UnitPrice,
				item.Quantity,
				item.Note,
			).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Create - build item insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, itemQuery, itemArgs...).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute item insert: %v", ErrExecQuery, err)
		}
	}

	return res, nil
}

// GetByID получает бронирование по ID вместе с позициями заказа
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	items, err := r.loadItems(ctx, executor, []int64{res.ID})
	if err != nil {
		return nil, err
	}
	res.Items = items[res.ID]

	return res, nil
}

// ListByRestaurant получает страницу бронирований ресторана, сначала новые.
// Возвращает бронирования и общее количество записей под фильтром.
func (r *Repository) ListByRestaurant(ctx context.Context, filter domain.RestaurantReservationsFilter) ([]*domain.Reservation, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{"restaurant_id": filter.RestaurantID}

	countBuilder := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(where)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(where)

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"status": *filter.Status})
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByRestaurant - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListByRestaurant - scan count: %v", ErrScanRow, err)
	}

	query, args, err := selectBuilder.
		OrderBy("created_at DESC, id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset())).
		ToSql()

	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByRestaurant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListByRestaurant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations, err := r.scanReservations(rows)
	if err != nil {
		return nil, 0, err
	}

	if len(reservations) > 0 {
		ids := make([]int64, len(reservations))
		for i, res := range reservations {
			ids[i] = res.ID
		}

		items, err := r.loadItems(ctx, executor, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, res := range reservations {
			res.Items = items[res.ID]
		}
	}

	return reservations, total, nil
}

// UpdateStatus переводит бронирование в новый статус через check-and-set:
// UPDATE выполняется только если сохранённый статус всё ещё равен from.
// Если ownerNote != nil, заметка персонала записывается тем же запросом.
// Возвращает ErrStatusConflict, если бронирование уже успел изменить другой клиент.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus, ownerNote *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from})

	if ownerNote != nil {
		updateBuilder = updateBuilder.Set("owner_note", *ownerNote)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, id, "UpdateStatus", query, args)
}

// RequestDeposit записывает депозит и переводит бронирование в waiting_deposit.
// Check-and-set: переход выполняется только из from (confirmed).
func (r *Repository) RequestDeposit(ctx context.Context, id int64, from domain.ReservationStatus, percent int, amount float64, currency string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusWaitingDeposit).
		Set("deposit_percent", percent).
		Set("deposit_amount", amount).
		Set("deposit_currency", currency).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RequestDeposit - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, id, "RequestDeposit", query, args)
}

// MarkDepositPaid фиксирует оплату депозита и переводит бронирование в deposit_paid.
// Ссылка на платёж и флаг оплаты выставляются тем же UPDATE, что и статус —
// частичной записи быть не может.
func (r *Repository) MarkDepositPaid(ctx context.Context, id int64, from domain.ReservationStatus, paymentReference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusDepositPaid).
		Set("is_deposit_paid", true).
		Set("payment_reference", paymentReference).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDepositPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, id, "MarkDepositPaid", query, args)
}

// execCAS выполняет check-and-set UPDATE и различает "не найдено" и "конфликт статуса"
func (r *Repository) execCAS(ctx context.Context, executor DBExecutor, id int64, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// UPDATE никого не задел: либо бронирования нет, либо статус уже другой
	existsQuery, existsArgs, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build exists query: %v", ErrBuildQuery, method, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %s - scan exists: %v", ErrScanRow, method, err)
	}

	return ErrStatusConflict
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку таблицы reservations
func (r *Repository) scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.RestaurantID,
		&res.UserID,
		&res.GuestCount,
		&res.ArrivalAt,
		&res.ContactName,
		&res.ContactPhone,
		&res.CustomerNote,
		&res.OwnerNote,
		&res.Status,
		&res.DepositPercent,
		&res.DepositAmount,
		&res.DepositCurrency,
		&res.IsDepositPaid,
		&res.PaymentReference,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := r.scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// loadItems загружает позиции заказа для набора бронирований одним запросом
func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, reservationIDs []int64) (map[int64][]*domain.ReservationItem, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"menu_item_id",
		"name",
		"unit_price",
		"quantity",
		"note",
	).
		From("reservation_items").
		Where(squirrel.Eq{"reservation_id": reservationIDs}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make(map[int64][]*domain.ReservationItem)
	for rows.Next() {
		var item domain.ReservationItem
		err := rows.Scan(
			&item.ID,
			&item.ReservationID,
			&item.MenuItemID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&item.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadItems - scan row: %v", ErrScanRow, err)
		}

		items[item.ReservationID] = append(items[item.ReservationID], &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}
