package reservationlist

import (
	"context"
	"sync"

	"github.com/m04kA/FoodMap-ReservationService/internal/service/reservations/models"
)

// Fetcher источник страниц бронирований для модели списка
type Fetcher interface {
	ListForRestaurant(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Model состояние экрана со списком бронирований ресторана.
// Держит текущую страницу, фильтр по статусу и выбранную строку.
// Потокобезопасна: обновления и чтения могут идти из разных горутин.
type Model struct {
	mu sync.Mutex

	fetcher      Fetcher
	logger       Logger
	userID       int64
	restaurantID int64

	items        []models.ReservationResponse
	statusFilter *string
	page         int64
	limit        int64
	total        int64
	pages        int64
	selectedID   int64 // 0 — ничего не выбрано
	loading      bool
}

// NewModel создает модель списка бронирований ресторана
func NewModel(fetcher Fetcher, logger Logger, userID, restaurantID, limit int64) *Model {
	return &Model{
		fetcher:      fetcher,
		logger:       logger,
		userID:       userID,
		restaurantID: restaurantID,
		page:         1,
		limit:        limit,
	}
}

// Refresh перечитывает текущую страницу с текущим фильтром.
// Строки страницы заменяются полученными, выбор сохраняется,
// если выбранная строка все еще присутствует в результате.
func (m *Model) Refresh(ctx context.Context) error {
	m.mu.Lock()
	req := &models.ListReservationsRequest{
		UserID:       m.userID,
		RestaurantID: m.restaurantID,
		Page:         m.page,
		Limit:        m.limit,
		Status:       m.statusFilter,
	}
	m.loading = true
	m.mu.Unlock()

	resp, err := m.fetcher.ListForRestaurant(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		m.logger.Warn("reservationlist: refresh failed for restaurant=%d page=%d: %v",
			m.restaurantID, m.page, err)
		return err
	}

	m.items = resp.Reservations
	m.total = resp.Meta.Total
	m.pages = resp.Meta.Pages
	m.page = resp.Meta.Page
	m.limit = resp.Meta.Limit

	// Сбрасываем выбор, если выбранная строка пропала из списка
	if m.selectedID != 0 && m.indexOf(m.selectedID) < 0 {
		m.selectedID = 0
	}

	return nil
}

// SetStatusFilter меняет фильтр по статусу, возвращает модель на первую
// страницу и перечитывает список. nil снимает фильтр.
func (m *Model) SetStatusFilter(ctx context.Context, status *string) error {
	m.mu.Lock()
	m.statusFilter = status
	m.page = 1
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// SetPage переходит на указанную страницу и перечитывает список.
// Значения меньше 1 приводятся к 1.
func (m *Model) SetPage(ctx context.Context, page int64) error {
	m.mu.Lock()
	if page < 1 {
		page = 1
	}
	m.page = page
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// Merge вливает обновленные бронирования в текущую страницу по ID.
// Строки, которых нет на странице, игнорируются: они относятся к другим
// страницам или отфильтрованы.
func (m *Model) Merge(updated ...models.ReservationResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range updated {
		if i := m.indexOf(r.ID); i >= 0 {
			m.items[i] = r
		}
	}
}

// Select отмечает строку выбранной. Возвращает false, если строки нет на странице.
func (m *Model) Select(reservationID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(reservationID) < 0 {
		return false
	}
	m.selectedID = reservationID
	return true
}

// ClearSelection снимает выбор
func (m *Model) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selectedID = 0
}

// Selected возвращает выбранное бронирование, если оно есть на текущей странице
func (m *Model) Selected() (models.ReservationResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(m.selectedID); m.selectedID != 0 && i >= 0 {
		return m.items[i], true
	}
	return models.ReservationResponse{}, false
}

// Items возвращает копию строк текущей страницы
func (m *Model) Items() []models.ReservationResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ReservationResponse, len(m.items))
	copy(out, m.items)
	return out
}

// Page возвращает номер текущей страницы
func (m *Model) Page() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page
}

// Pages возвращает общее количество страниц по последнему ответу
func (m *Model) Pages() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pages
}

// Total возвращает общее количество бронирований по последнему ответу
func (m *Model) Total() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// Loading сообщает, выполняется ли сейчас загрузка страницы
func (m *Model) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// indexOf возвращает позицию бронирования на странице. Вызывается под мьютексом.
func (m *Model) indexOf(reservationID int64) int {
	for i := range m.items {
		if m.items[i].ID == reservationID {
			return i
		}
	}
	return -1
}
