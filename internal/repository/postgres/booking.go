package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/repository"
)

const bookingColumns = `id, property_id, renter_id, host_id, start_at, end_at, guest_count,
	daily_rate_cents, total_price_cents, status, message, reject_reason, cancel_reason,
	created_at, decided_at, checked_in_at, checked_out_at, canceled_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) q(ctx context.Context) querier {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (property_id, renter_id, host_id, start_at, end_at, guest_count,
	          daily_rate_cents, total_price_cents, status, message, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	b.CreatedAt = time.Now().UTC()
	return r.q(ctx).QueryRowContext(ctx, query,
		b.PropertyID, b.RenterID, b.HostID, b.StartAt, b.EndAt, b.GuestCount,
		b.DailyRateCents, b.TotalPriceCents, b.Status, b.Message, b.CreatedAt,
	).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	return r.scanOne(r.q(ctx).QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 FOR UPDATE`, bookingColumns)
	return r.scanOne(r.q(ctx).QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, reject_reason=$2, cancel_reason=$3,
	          decided_at=$4, checked_in_at=$5, checked_out_at=$6, canceled_at=$7
	          WHERE id=$8`
	_, err := r.q(ctx).ExecContext(ctx, query,
		b.Status, b.RejectReason, b.CancelReason,
		b.DecidedAt, b.CheckedInAt, b.CheckedOutAt, b.CanceledAt, b.ID)
	return err
}

func (r *bookingRepository) ListActiveByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings
	        WHERE property_id = $1 AND status IN ('PENDING', 'APPROVED', 'CHECKED_IN')
	        ORDER BY start_at`, bookingColumns)
	rows, err := r.q(ctx).QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "renter_id", renterID, status, page, pageSize)
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.listByParty(ctx, "host_id", hostID, status, page, pageSize)
}

func (r *bookingRepository) listByParty(ctx context.Context, column string, userID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s = $1`, bookingColumns, column)

	args := []any{userID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.q(ctx).QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := r.scanAll(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

// WithPropertyLock serializes all mutating booking operations on a property
// through a session advisory lock. The lock is released automatically at
// transaction end. Properties are independent partitions, so throughput
// shards naturally by property id.
func (r *bookingRepository) WithPropertyLock(ctx context.Context, propertyID int64, fn func(ctx context.Context) error) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		if _, err := txFrom(ctx).ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, propertyID); err != nil {
			return fmt.Errorf("acquire property lock: %w", err)
		}
		return fn(ctx)
	})
}

func (r *bookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return runInTx(ctx, r.db, fn)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *bookingRepository) scanOne(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	var message, rejectReason, cancelReason sql.NullString
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.RenterID, &b.HostID, &b.StartAt, &b.EndAt, &b.GuestCount,
		&b.DailyRateCents, &b.TotalPriceCents, &b.Status, &message, &rejectReason, &cancelReason,
		&b.CreatedAt, &b.DecidedAt, &b.CheckedInAt, &b.CheckedOutAt, &b.CanceledAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b.Message = message.String
	b.RejectReason = rejectReason.String
	b.CancelReason = cancelReason.String
	return b, nil
}

func (r *bookingRepository) scanAll(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
