package repository

import (
	"context"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type CustomerFilters struct {
	Search string
	Status string
	Limit  int
	Offset int
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, f CustomerFilters) ([]domain.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Customer{})

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("full_name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Customer
	tx := q.Order("full_name").Limit(f.Limit).Offset(f.Offset).Find(&out)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	return out, total, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&domain.Reservation{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Customer{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Stats aggregates reservation count and total spend per customer at read
// time; the customer rows themselves stay denormalization-free.
type CustomerStats struct {
	CustomerID        int64
	ReservationsCount int64
	TotalSpent        float64
}

func (r *CustomerRepository) StatsFor(ctx context.Context, ids []int64) (map[int64]CustomerStats, error) {
	if len(ids) == 0 {
		return map[int64]CustomerStats{}, nil
	}

	var rows []CustomerStats
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Select("customer_id, COUNT(1) AS reservations_count, COALESCE(SUM(payment_amount),0) AS total_spent").
		Where("customer_id IN ?", ids).
		Where("status <> ?", domain.ReservationCancelled).
		Group("customer_id").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[int64]CustomerStats, len(rows))
	for _, rw := range rows {
		out[rw.CustomerID] = rw
	}
	return out, nil
}
