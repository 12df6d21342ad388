package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/glodetung92/ECSite/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// A single connection keeps the in-memory database shared across
	// the pool and serializes concurrent writers.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&DBUser{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *DBUser {
	t.Helper()

	user := &DBUser{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hashed_password",
		Role:         domain.RoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepositoryImpl_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and store-defaulted role", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		user := &domain.User{Email: "a@x.com", Name: "A", PasswordHash: "hash"}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if user.ID == 0 {
			t.Error("expected assigned id")
		}
		if user.Role != domain.RoleCustomer {
			t.Errorf("expected store-defaulted role %s, got %s", domain.RoleCustomer, user.Role)
		}
	})

	t.Run("duplicate email fails without mutating the existing row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		first := &domain.User{Email: "a@x.com", Name: "First", PasswordHash: "hash1"}
		if err := repo.Create(ctx, first); err != nil {
			t.Fatalf("first create failed: %v", err)
		}

		second := &domain.User{Email: "a@x.com", Name: "Second", PasswordHash: "hash2"}
		if err := repo.Create(ctx, second); !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}

		var stored DBUser
		if err := db.Where("email = ?", "a@x.com").First(&stored).Error; err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if stored.Name != "First" || stored.PasswordHash != "hash1" {
			t.Errorf("existing row was mutated by failed create: %+v", stored)
		}
	})

	t.Run("email lookup is case sensitive as stored", func(t *testing.T) {
		repo := NewUserRepository(setupTestDB(t))

		user := &domain.User{Email: "A@x.com", Name: "A", PasswordHash: "hash"}
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("create failed: %v", err)
		}

		found, err := repo.FindByEmail(ctx, "A@x.com")
		if err != nil {
			t.Fatalf("expected exact-case lookup to succeed: %v", err)
		}
		if found.Email != "A@x.com" {
			t.Errorf("expected stored case preserved, got %s", found.Email)
		}
	})
}

func TestUserRepositoryImpl_FindByEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		seed          bool
		email         string
		expectedError error
	}{
		{name: "found", seed: true, email: "a@x.com", expectedError: nil},
		{name: "not found", seed: false, email: "missing@x.com", expectedError: domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			if tt.seed {
				seedUser(t, db, tt.email)
			}
			repo := NewUserRepository(db)

			user, err := repo.FindByEmail(ctx, tt.email)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if tt.expectedError == nil && user.Email != tt.email {
				t.Errorf("expected email %s, got %s", tt.email, user.Email)
			}
		})
	}
}

func TestUserRepositoryImpl_SetResetToken(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	seeded := seedUser(t, db, "a@x.com")

	expires := time.Now().Add(10 * time.Minute).UTC()
	if err := repo.SetResetToken(ctx, seeded.ID, "digest-1", expires); err != nil {
		t.Fatalf("set reset token failed: %v", err)
	}

	user, err := repo.FindByResetDigest(ctx, "digest-1")
	if err != nil {
		t.Fatalf("find by digest failed: %v", err)
	}
	if user.ID != seeded.ID {
		t.Errorf("expected user %d, got %d", seeded.ID, user.ID)
	}
	if user.ResetTokenDigest == nil || *user.ResetTokenDigest != "digest-1" {
		t.Error("expected digest to be stored")
	}
	if user.ResetExpiresAt == nil {
		t.Fatal("expected expiry to be stored alongside the digest")
	}

	t.Run("unknown user", func(t *testing.T) {
		err := repo.SetResetToken(ctx, 9999, "digest-x", expires)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("reissue replaces outstanding token", func(t *testing.T) {
		if err := repo.SetResetToken(ctx, seeded.ID, "digest-2", expires); err != nil {
			t.Fatalf("reissue failed: %v", err)
		}
		if _, err := repo.FindByResetDigest(ctx, "digest-1"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected old digest to be gone, got %v", err)
		}
	})
}

func TestUserRepositoryImpl_ResetPassword(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (domain.UserRepository, *gorm.DB, uint) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		seeded := seedUser(t, db, "a@x.com")
		expires := time.Now().Add(10 * time.Minute)
		if err := repo.SetResetToken(ctx, seeded.ID, "digest-1", expires); err != nil {
			t.Fatalf("set reset token failed: %v", err)
		}
		return repo, db, seeded.ID
	}

	t.Run("swaps hash and clears reset fields together", func(t *testing.T) {
		repo, db, userID := setup(t)

		if err := repo.ResetPassword(ctx, userID, "digest-1", "new_hash"); err != nil {
			t.Fatalf("reset failed: %v", err)
		}

		var stored DBUser
		if err := db.First(&stored, userID).Error; err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if stored.PasswordHash != "new_hash" {
			t.Errorf("expected new hash, got %s", stored.PasswordHash)
		}
		if stored.ResetTokenDigest != nil || stored.ResetExpiresAt != nil {
			t.Error("expected digest and expiry cleared together on consumption")
		}
	})

	t.Run("stale digest loses", func(t *testing.T) {
		repo, _, userID := setup(t)

		if err := repo.ResetPassword(ctx, userID, "digest-1", "new_hash"); err != nil {
			t.Fatalf("first reset failed: %v", err)
		}
		err := repo.ResetPassword(ctx, userID, "digest-1", "another_hash")
		if !errors.Is(err, domain.ErrInvalidResetToken) {
			t.Errorf("expected ErrInvalidResetToken on consumed token, got %v", err)
		}
	})

	t.Run("exactly one concurrent consumer wins", func(t *testing.T) {
		repo, _, userID := setup(t)

		const racers = 8
		var wg sync.WaitGroup
		results := make(chan error, racers)
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- repo.ResetPassword(ctx, userID, "digest-1", "new_hash")
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
			} else if !errors.Is(err, domain.ErrInvalidResetToken) {
				t.Errorf("unexpected racer error: %v", err)
			}
		}
		if wins != 1 {
			t.Errorf("expected exactly one winning reset, got %d", wins)
		}
	})
}

func TestUserRepositoryImpl_List(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, db, "a@x.com")
	seedUser(t, db, "b@x.com")

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != "a@x.com" || users[1].Email != "b@x.com" {
		t.Errorf("expected id-ordered listing, got %s, %s", users[0].Email, users[1].Email)
	}
}
