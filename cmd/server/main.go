package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/config"
	"github.com/roomshare/roomshare/internal/model"
	"github.com/roomshare/roomshare/internal/server"
	"github.com/roomshare/roomshare/pkg/database"
	"github.com/roomshare/roomshare/pkg/logger"
	"github.com/roomshare/roomshare/pkg/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Options{Level: cfg.LogLevel, Path: cfg.LogPath}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedProfessor(db); err != nil {
			log.Fatalf("failed to seed professor account: %v", err)
		}
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize blob storage: %v", err)
	}

	srv := server.New(cfg, db, blobs)

	logger.S().Infow("starting server", "port", cfg.Port, "storage", cfg.StorageDriver)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Membership{},
		&model.File{},
	)
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinaryStore(cfg.CloudinaryFolder)
	}
	return storage.NewDiskStore(cfg.UploadDir)
}

// seedProfessor creates a development professor account so room creation is
// exercisable out of the box; self-registration only produces students.
func seedProfessor(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "professor@roomshare.local").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("professor123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	professor := &model.User{
		FirstName:    "Petar",
		LastName:     "Petrovic",
		Email:        "professor@roomshare.local",
		PasswordHash: string(hashed),
		Track:        model.TrackSRT,
		IndexNumber:  "0000",
		Role:         model.RoleProfessor,
	}

	if err := db.Create(professor).Error; err != nil {
		return err
	}

	log.Println("seeded development professor account: professor@roomshare.local / professor123")
	return nil
}
