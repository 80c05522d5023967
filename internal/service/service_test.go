package service

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/model"
	"github.com/roomshare/roomshare/internal/repository"
	"github.com/roomshare/roomshare/pkg/storage"
)

type testEnv struct {
	db      *gorm.DB
	blobs   storage.BlobStore
	rooms   RoomService
	files   FileService
	cleanup CleanupService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Membership{},
		&model.File{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	fileRepo := repository.NewFileRepository(db)

	cleanup := NewCleanupService(roomRepo, fileRepo, blobs)

	return &testEnv{
		db:      db,
		blobs:   blobs,
		rooms:   NewRoomService(roomRepo, membershipRepo, userRepo, cleanup),
		files:   NewFileService(fileRepo, membershipRepo, userRepo, blobs),
		cleanup: cleanup,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, role, email string) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		FirstName:    "Test",
		LastName:     role,
		Email:        email,
		PasswordHash: string(hashed),
		Track:        model.TrackSRT,
		IndexNumber:  "42",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func bytesReader(s string) io.Reader {
	return strings.NewReader(s)
}

func countMemberships(t *testing.T, db *gorm.DB, roomID, userID uuid.UUID) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.Membership{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error)
	return count
}
