package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-authgate/passwordgrant/internal/config"
	"github.com/go-authgate/passwordgrant/internal/models"
	"github.com/go-authgate/passwordgrant/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

func New(ctx context.Context, driver, dsn string, cfg *config.Config) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.OAuthApplication{},
	); err != nil {
		return nil, err
	}

	if inMemorySQLite(driver, dsn) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	store := &Store{db: db}

	if err := store.seedData(ctx, cfg); err != nil {
		log.Printf("[Store] Warning: failed to seed data: %v", err)
	}

	return store, nil
}

func (s *Store) seedData(ctx context.Context, cfg *config.Config) error {
	db := s.db.WithContext(ctx)

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	userID := uuid.New().String()
	if userCount == 0 {
		password := strings.TrimSpace(cfg.DefaultAdminPassword)
		configured := password != ""
		if !configured {
			var err error
			if password, err = util.RandomPassword(16); err != nil {
				return err
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			ID:           userID,
			Username:     "admin",
			Email:        "admin@localhost",
			PasswordHash: string(hash),
			Role:         "admin",
			AuthSource:   config.AuthModeLocal,
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
		if !configured {
			log.Printf("[Store] Created default user: admin / %s (role: admin)", password)
		} else {
			log.Printf("[Store] Created default user: admin (role: admin)")
		}
	}

	var clientCount int64
	if err := db.Model(&models.OAuthApplication{}).Count(&clientCount).Error; err != nil {
		return err
	}
	if clientCount == 0 {
		scopes := strings.Join(cfg.DefaultClientScopes, " ")
		if scopes == "" {
			scopes = "read write"
		}
		client := &models.OAuthApplication{
			ClientID:    uuid.New().String(),
			ClientName:  "Password Grant CLI",
			Description: "Default client for the resource owner password grant",
			UserID:      userID,
			Scopes:      scopes,
			GrantTypes:  models.GrantTypePassword,
			ClientType:  "public",
			IsActive:    true,
		}
		if _, err := client.GenerateClientSecret(ctx); err != nil {
			return err
		}
		if err := db.Create(client).Error; err != nil {
			return err
		}
		log.Printf("[Store] Created default OAuth client: %s (%s)", client.ClientID, client.ClientName)
	}

	return nil
}

// notFound maps gorm's not-found error onto ErrRecordNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// User operations
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// UpsertExternalUser creates or refreshes the local record of a user that
// authenticated through an external provider.
func (s *Store) UpsertExternalUser(
	ctx context.Context,
	username, externalID, authSource, email, fullName string,
) (*models.User, error) {
	db := s.db.WithContext(ctx)
	if email == "" {
		email = fmt.Sprintf("%s@%s.invalid", username, strings.ReplaceAll(authSource, "_", "-"))
	}

	var user models.User
	err := db.Where("external_id = ? AND auth_source = ?", externalID, authSource).
		First(&user).
		Error

	if err == nil {
		if user.Username != username {
			var conflictingUser models.User
			conflictErr := db.Where("username = ? AND id != ?", username, user.ID).
				First(&conflictingUser).
				Error
			if conflictErr == nil {
				return nil, ErrUsernameConflict
			}
			if !errors.Is(conflictErr, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check username: %w", conflictErr)
			}
		}

		user.Username = username
		user.Email = email
		user.FullName = fullName
		if err := db.Save(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to update external user: %w", err)
		}
		return &user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query external user: %w", err)
	}

	var existingUser models.User
	err = db.Where("username = ?", username).First(&existingUser).Error
	if err == nil {
		return nil, ErrUsernameConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user = models.User{
		ID:         uuid.New().String(),
		Username:   username,
		Role:       "user",
		ExternalID: externalID,
		AuthSource: authSource,
		Email:      email,
		FullName:   fullName,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create external user: %w", err)
	}

	return &user, nil
}

// OAuth application operations
func (s *Store) GetClient(ctx context.Context, clientID string) (*models.OAuthApplication, error) {
	var client models.OAuthApplication
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

func (s *Store) CreateClient(ctx context.Context, client *models.OAuthApplication) error {
	return s.db.WithContext(ctx).Create(client).Error
}

func (s *Store) UpdateClient(ctx context.Context, client *models.OAuthApplication) error {
	return s.db.WithContext(ctx).Save(client).Error
}

// Health checks the database connection
func (s *Store) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
