package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
)

// SessionRow is the checkout_sessions table. The whole state is one JSON column.
type SessionRow struct {
	ID        string         `gorm:"type:char(36);primaryKey"`
	State     datatypes.JSON `gorm:"type:json;not null"`
	ExpiresAt time.Time      `gorm:"precision:3;not null;index:ix_checkout_sessions_expires_at"`
	CreatedAt time.Time      `gorm:"precision:3;not null"`
	UpdatedAt time.Time      `gorm:"precision:3;not null"`
}

func (SessionRow) TableName() string { return "checkout_sessions" }

// SQL is the gorm-backed store. Update locks the row for the duration of the
// read-modify-write.
type SQL struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQL(db *gorm.DB, ttl time.Duration) *SQL {
	return &SQL{db: db, ttl: ttlOr(ttl), now: time.Now}
}

// AutoMigrate creates the table; production schemas come from migrations/.
func (s *SQL) AutoMigrate() error {
	return s.db.AutoMigrate(&SessionRow{})
}

func (s *SQL) Create(ctx context.Context, sess checkout.Session) error {
	b, err := encodeSession(sess)
	if err != nil {
		return err
	}
	now := s.now()
	row := SessionRow{
		ID:        sess.ID,
		State:     datatypes.JSON(b),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *SQL) Get(ctx context.Context, id string) (checkout.Session, error) {
	var row SessionRow
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, s.now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return checkout.Session{}, checkout.ErrSessionNotFound
	}
	if err != nil {
		return checkout.Session{}, err
	}
	return decodeSession(row.State)
}

func (s *SQL) Update(ctx context.Context, id string, fn checkout.UpdateFunc) (checkout.Session, error) {
	var out checkout.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := s.now()

		var row SessionRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND expires_at > ?", id, now).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return checkout.ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		cur, err := decodeSession(row.State)
		if err != nil {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			out = cur
			return err
		}
		b, err := encodeSession(next)
		if err != nil {
			return err
		}

		if err := tx.Model(&SessionRow{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"state":      datatypes.JSON(b),
				"expires_at": now.Add(s.ttl),
				"updated_at": now,
			}).Error; err != nil {
			return err
		}
		out = next
		return nil
	})
	return out, err
}

func (s *SQL) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&SessionRow{}, "id = ?", id).Error
}

// PurgeExpired removes rows past their expiry and returns how many went.
func (s *SQL) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&SessionRow{})
	return res.RowsAffected, res.Error
}

func (s *SQL) String() string { return "mysql" }
