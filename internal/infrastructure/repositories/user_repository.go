package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/glodetung92/ECSite/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"column:password"`
	Role         string `gorm:"index;size:32;default:CUSTOMER"`

	// Digest of the outstanding reset token, never the raw value.
	ResetTokenDigest *string    `gorm:"column:password_reset_token;index;size:64"`
	ResetExpiresAt   *time.Time `gorm:"column:password_reset_expires"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. The unique index on email
// makes a duplicate registration surface as ErrEmailTaken without
// mutating the existing row.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if dbUser.Role == "" {
		dbUser.Role = domain.RoleCustomer
	}
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}
	user.ID = dbUser.ID
	user.Role = dbUser.Role
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository. Lookup is exact, with
// the email case as stored.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByResetDigest implements domain.UserRepository
func (r *UserRepositoryImpl) FindByResetDigest(ctx context.Context, digest string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("password_reset_token = ?", digest).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context) ([]*domain.User, error) {
	var dbUsers []DBUser
	if err := r.db.WithContext(ctx).Order("id").Find(&dbUsers).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(user)).Error
}

// SetResetToken implements domain.UserRepository. Digest and expiry are
// written together; issuing a new token replaces any outstanding one.
func (r *UserRepositoryImpl) SetResetToken(ctx context.Context, userID uint, digest string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_reset_token":   digest,
		"password_reset_expires": expiresAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ResetPassword implements domain.UserRepository. The digest condition
// in the WHERE clause makes the swap-and-clear atomic: of two racing
// resets with the same token, exactly one matches and the other sees
// zero rows affected.
func (r *UserRepositoryImpl) ResetPassword(ctx context.Context, userID uint, digest, newHash string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND password_reset_token = ?", userID, digest).
		Updates(map[string]interface{}{
			"password":               newHash,
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidResetToken
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		PasswordHash:     user.PasswordHash,
		Role:             user.Role,
		ResetTokenDigest: user.ResetTokenDigest,
		ResetExpiresAt:   user.ResetExpiresAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:               dbUser.ID,
		Email:            dbUser.Email,
		Name:             dbUser.Name,
		PasswordHash:     dbUser.PasswordHash,
		Role:             dbUser.Role,
		ResetTokenDigest: dbUser.ResetTokenDigest,
		ResetExpiresAt:   dbUser.ResetExpiresAt,
		CreatedAt:        dbUser.CreatedAt,
		UpdatedAt:        dbUser.UpdatedAt,
	}
}
