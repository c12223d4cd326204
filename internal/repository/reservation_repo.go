package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bungalowpark/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type ReservationFilters struct {
	Search     string
	Status     string
	BungalowID int64
	CustomerID int64
	Limit      int
	Offset     int
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	tx := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Bungalow").
		First(&res, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &res, nil
}

func (r *ReservationRepository) GetByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error) {
	var res domain.Reservation
	tx := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Bungalow").
		Where("confirmation_code = ?", code).
		First(&res)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilters) ([]domain.Reservation, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Reservation{})

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Joins("LEFT JOIN customers ON customers.id = reservations.customer_id").
			Where("reservations.code LIKE ? OR customers.full_name LIKE ? OR customers.email LIKE ?", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("reservations.status = ?", f.Status)
	}
	if f.BungalowID > 0 {
		q = q.Where("reservations.bungalow_id = ?", f.BungalowID)
	}
	if f.CustomerID > 0 {
		q = q.Where("reservations.customer_id = ?", f.CustomerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Reservation
	tx := q.
		Preload("Customer").
		Preload("Bungalow").
		Order("reservations.check_in DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&out)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	return out, total, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Reservation{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReservationRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("code = ?", code).
		Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *ReservationRepository) ConfirmationCodeExists(ctx context.Context, code string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("confirmation_code = ?", code).
		Count(&cnt)
	return cnt > 0, tx.Error
}

// HasOverlap reports whether any non-cancelled reservation on the bungalow
// intersects [checkIn, checkOut]. Boundaries are inclusive: back-to-back
// dates conflict, matching the admin UI's behavior.
func (r *ReservationRepository) HasOverlap(ctx context.Context, bungalowID, excludeID int64, checkIn, checkOut time.Time) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Where("bungalow_id = ?", bungalowID).
		Where("status <> ?", domain.ReservationCancelled).
		Where("check_in <= ? AND check_out >= ?", checkOut, checkIn)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// Mutate runs a read-modify-write on one reservation inside a single
// transaction, so the remaining_amount recomputation cannot interleave with a
// concurrent writer. Postgres takes a row lock; sqlite's single-writer
// transaction gives the same guarantee.
func (r *ReservationRepository) Mutate(ctx context.Context, id int64, fn func(*domain.Reservation) error) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&res, id).Error; err != nil {
			return err
		}
		if err := fn(&res); err != nil {
			return err
		}
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListExpiredPending returns pending reservations whose confirmation window
// lapsed before now. Used by the expiry sweeper.
func (r *ReservationRepository) ListExpiredPending(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	tx := r.db.WithContext(ctx).
		Where("status = ?", domain.ReservationPending).
		Where("confirmation_expires_at IS NOT NULL AND confirmation_expires_at < ?", now).
		Find(&out)
	return out, tx.Error
}

// ListTouchingWindow returns non-cancelled reservations intersecting
// [from, to). Feeds the occupancy report.
func (r *ReservationRepository) ListTouchingWindow(ctx context.Context, from, to time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	tx := r.db.WithContext(ctx).
		Where("status <> ?", domain.ReservationCancelled).
		Where("check_in < ? AND check_out > ?", to, from).
		Find(&out)
	return out, tx.Error
}

// CountByStatus groups reservation counts for the report summary.
func (r *ReservationRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Cnt    int64
	}
	var rows []row
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Select("status, COUNT(1) AS cnt").
		Group("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.Cnt
	}
	return out, nil
}

// RevenueTotals sums collected and outstanding amounts over non-cancelled
// reservations.
func (r *ReservationRepository) RevenueTotals(ctx context.Context) (collected, outstanding float64, err error) {
	type row struct {
		Collected   float64
		Outstanding float64
	}
	var rw row
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Select("COALESCE(SUM(payment_amount),0) AS collected, COALESCE(SUM(remaining_amount),0) AS outstanding").
		Where("status <> ?", domain.ReservationCancelled).
		Scan(&rw)
	return rw.Collected, rw.Outstanding, tx.Error
}
