package postgres

import (
	"context"
	"errors"
	"time"

	"moviestore/auth"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoginAttemptModel is one row of login_attempts. A NULL jailed_until means
// the account is not jailed.
type LoginAttemptModel struct {
	Username    string `gorm:"primaryKey;type:varchar(150)"`
	FailedCount int    `gorm:"not null"`
	JailedUntil *time.Time
}

func (LoginAttemptModel) TableName() string {
	return "login_attempts"
}

// LoginAttemptRepository implements [auth.LoginAttemptRepository] over the
// shared pool rather than a catalog session: lockout bookkeeping is not part
// of any catalog unit of work. Usernames are normalized on every call.
type LoginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

func (r *LoginAttemptRepository) Get(ctx context.Context, username string) (auth.LoginAttempt, error) {
	var model LoginAttemptModel
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: auth.NormalizeUsername(username)}).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.LoginAttempt{}, nil
	}
	if err != nil {
		return auth.LoginAttempt{}, err
	}

	attempt := auth.LoginAttempt{FailedCount: model.FailedCount}
	if model.JailedUntil != nil {
		attempt.JailedUntil = model.JailedUntil.UTC()
	}
	return attempt, nil
}

// Save upserts the attempt row; a zero JailedUntil clears the jail.
func (r *LoginAttemptRepository) Save(ctx context.Context, username string, attempt auth.LoginAttempt) error {
	model := LoginAttemptModel{
		Username:    auth.NormalizeUsername(username),
		FailedCount: attempt.FailedCount,
	}
	if !attempt.JailedUntil.IsZero() {
		until := attempt.JailedUntil.UTC()
		model.JailedUntil = &until
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"failed_count", "jailed_until"}),
	}).Create(&model).Error
}

func (r *LoginAttemptRepository) Reset(ctx context.Context, username string) error {
	return r.db.WithContext(ctx).
		Delete(&LoginAttemptModel{Username: auth.NormalizeUsername(username)}).Error
}
