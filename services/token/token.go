package token

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Phone   string    `json:"phone"`
	IsCoach bool      `json:"is_coach"`
	Kind    string    `json:"kind"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Pair is the credential pair handed out on successful verify and login.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Service signs and parses HS256 token pairs.
type Service struct {
	secret []byte
	issuer string
}

// NewService reads JWT_SECRET and JWT_ISSUER from the environment.
func NewService() *Service {
	return &Service{
		secret: []byte(os.Getenv("JWT_SECRET")),
		issuer: os.Getenv("JWT_ISSUER"),
	}
}

// IssuePair returns a fresh access/refresh pair for the user.
func (s *Service) IssuePair(userID uuid.UUID, phone string, isCoach bool) (Pair, error) {
	access, err := s.sign(userID, phone, isCoach, "access", accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.sign(userID, phone, isCoach, "refresh", refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

func (s *Service) sign(userID uuid.UUID, phone string, isCoach bool, kind string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:  userID,
		Phone:   phone,
		IsCoach: isCoach,
		Kind:    kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// ParseAccess validates an access token and returns its claims.
func (s *Service) ParseAccess(tokenString string) (*Claims, error) {
	return s.parse(tokenString, "access")
}

// ParseRefresh validates a refresh token and returns its claims.
func (s *Service) ParseRefresh(tokenString string) (*Claims, error) {
	return s.parse(tokenString, "refresh")
}

func (s *Service) parse(tokenString, kind string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
