package auth

import (
	"errors"

	"courtside/models/postgres"
	"courtside/services/apperrors"
	"courtside/services/redis"
	"courtside/services/sms"
	"courtside/services/token"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService owns registration, phone verification and login. Redis is a
// best-effort accelerant and may be nil; the SMS dispatcher is fire-and-
// forget.
type AuthService struct {
	DB     *gorm.DB
	Redis  *redis.RedisClient
	SMS    *sms.Dispatcher
	Tokens *token.Service
}

func NewAuthService(db *gorm.DB, rc *redis.RedisClient, dispatcher *sms.Dispatcher, tokens *token.Service) *AuthService {
	return &AuthService{DB: db, Redis: rc, SMS: dispatcher, Tokens: tokens}
}

// GetUserByPhone returns the user for a normalized phone number.
func (s *AuthService) GetUserByPhone(phone string) (*postgres.User, error) {
	var user postgres.User
	if err := s.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user for an id.
func (s *AuthService) GetUserByID(id uuid.UUID) (*postgres.User, error) {
	var user postgres.User
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
