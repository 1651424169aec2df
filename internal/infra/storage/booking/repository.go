package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/psqlbuilder"
)

const (
	tableBookings     = "bookings"
	refCodeConstraint = "bookings_ref_code_key"
)

// Порядок колонок совпадает с порядком полей в scanBooking
var selectColumns = []string{
	"id",
	"shop_id",
	"service_id",
	"service_name",
	"price",
	"service_duration",
	"to_char(booking_date, 'YYYY-MM-DD')",
	"start_time",
	"duration_minutes",
	"staff_id",
	"staff_name",
	"status",
	"slot_id",
	"recurring_group_id",
	"recurring_interval",
	"ref_code",
	"client_name",
	"client_email",
	"client_phone",
	"notes",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование с заранее сгенерированным ID.
// Если в контексте передана активная транзакция, использует её.
// Конфликт ref_code возвращается как ErrDuplicateRefCode.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"shop_id",
			"service_id",
			"service_name",
			"price",
			"service_duration",
			"booking_date",
			"start_time",
			"duration_minutes",
			"staff_id",
			"staff_name",
			"status",
			"slot_id",
			"recurring_group_id",
			"recurring_interval",
			"ref_code",
			"client_name",
			"client_email",
			"client_phone",
			"notes",
		).
		Values(
			booking.ID,
			booking.ShopID,
			booking.ServiceID,
			booking.ServiceName,
			booking.Price,
			booking.ServiceDuration,
			booking.Date,
			booking.Time,
			booking.Duration,
			booking.StaffID,
			booking.StaffName,
			booking.Status,
			booking.SlotID,
			booking.RecurringGroupID,
			booking.RecurringInterval,
			booking.RefCode,
			booking.ClientName,
			booking.ClientEmail,
			booking.ClientPhone,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if pgerr.IsUniqueViolation(err, refCodeConstraint) {
			return nil, fmt.Errorf("%w: Create - ref_code %s", ErrDuplicateRefCode, booking.RefCode)
		}
		if pgerr.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrWriteConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование магазина по ID
func (r *Repository) GetByID(ctx context.Context, shopID, id string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"shop_id": shopID, "id": id})
}

// GetByRefCode получает бронирование магазина по коду
func (r *Repository) GetByRefCode(ctx context.Context, shopID, refCode string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByRefCode", squirrel.Eq{"shop_id": shopID, "ref_code": refCode})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableBookings).
		Where(where)

	// Внутри транзакции блокируем строку до конца операции
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// GetActiveByShop получает активные (pending, confirmed) бронирования магазина начиная с даты fromDate.
// Используется как снимок для расчета слотов и проверки конфликтов.
func (r *Repository) GetActiveByShop(ctx context.Context, shopID string, fromDate string) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"shop_id": shopID, "status": statuses}).
		Where(squirrel.GtOrEq{"booking_date": fromDate}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByGroup получает все бронирования серии
func (r *Repository) GetByGroup(ctx context.Context, shopID, groupID string) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(selectColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"shop_id": shopID, "recurring_group_id": groupID}).
		OrderBy("booking_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroup - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroup - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Reschedule сохраняет новые дату, время, слот, мастера и статус бронирования
func (r *Repository) Reschedule(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("booking_date", booking.Date).
		Set("start_time", booking.Time).
		Set("slot_id", booking.SlotID).
		Set("staff_id", booking.StaffID).
		Set("staff_name", booking.StaffName).
		Set("status", booking.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"shop_id": booking.ShopID, "id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Reschedule", query, args)
}

// Cancel переводит бронирование в статус cancelled
func (r *Repository) Cancel(ctx context.Context, shopID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"shop_id": shopID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Cancel", query, args)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, shopID, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"shop_id": shopID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			return fmt.Errorf("%w: %s - execute update: %v", ErrWriteConflict, op, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ShopID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.Price,
		&booking.ServiceDuration,
		&booking.Date,
		&booking.Time,
		&booking.Duration,
		&booking.StaffID,
		&booking.StaffName,
		&booking.Status,
		&booking.SlotID,
		&booking.RecurringGroupID,
		&booking.RecurringInterval,
		&booking.RefCode,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
