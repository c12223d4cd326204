package repository

import (
	"context"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

type BungalowRepository struct {
	db *gorm.DB
}

func NewBungalowRepository(db *gorm.DB) *BungalowRepository {
	return &BungalowRepository{db: db}
}

type BungalowFilters struct {
	Search string
	Status string
	Limit  int
	Offset int
}

func (r *BungalowRepository) Create(ctx context.Context, b *domain.Bungalow) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BungalowRepository) GetByID(ctx context.Context, id int64) (*domain.Bungalow, error) {
	var b domain.Bungalow
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BungalowRepository) List(ctx context.Context, f BungalowFilters) ([]domain.Bungalow, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Bungalow{})

	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Bungalow
	tx := q.Order("name").Limit(f.Limit).Offset(f.Offset).Find(&out)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	return out, total, nil
}

func (r *BungalowRepository) Update(ctx context.Context, b *domain.Bungalow) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BungalowRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cascade owned reservations; sqlite does not always enforce the FK.
		if err := tx.Where("bungalow_id = ?", id).Delete(&domain.Reservation{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Bungalow{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ActiveReservationCounts returns per-bungalow counts of non-terminal
// (pending/confirmed/checked_in) reservations. Derived on read, never stored.
func (r *BungalowRepository) ActiveReservationCounts(ctx context.Context, ids []int64) (map[int64]int64, error) {
	if len(ids) == 0 {
		return map[int64]int64{}, nil
	}

	type row struct {
		BungalowID int64
		Cnt        int64
	}
	var rows []row
	tx := r.db.WithContext(ctx).
		Model(&domain.Reservation{}).
		Select("bungalow_id, COUNT(1) AS cnt").
		Where("bungalow_id IN ?", ids).
		Where("status IN ?", []string{
			string(domain.ReservationPending),
			string(domain.ReservationConfirmed),
			string(domain.ReservationCheckedIn),
		}).
		Group("bungalow_id").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[int64]int64, len(rows))
	for _, rw := range rows {
		out[rw.BungalowID] = rw.Cnt
	}
	return out, nil
}

func (r *BungalowRepository) CountByStatus(ctx context.Context, status domain.BungalowStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Bungalow{}).
		Where("status = ?", status).
		Count(&cnt)
	return cnt, tx.Error
}
