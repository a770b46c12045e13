package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kavinraj/scantrack/internal/models"
	"github.com/kavinraj/scantrack/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMailInUse          = errors.New("mail already in use")
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService registers users and verifies credentials. Sessions are issued
// by the handler layer; the bearer token minted here serves non-browser
// clients.
type AuthService struct {
	store     store.UserStore
	jwtSecret []byte
}

func NewAuthService(s store.UserStore, jwtSecret []byte) *AuthService {
	return &AuthService{store: s, jwtSecret: jwtSecret}
}

// GenerateJWT generates a token carrying the user id and roles
func (s *AuthService) GenerateJWT(userID string, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"roles":   roles,
		"exp":     time.Now().Add(time.Hour * 4).Unix(), // Token expires in 4 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Register creates a new account with a hashed password and an empty history.
func (s *AuthService) Register(ctx context.Context, fullname, mail, password, timezone string) (*models.User, error) {
	_, err := s.store.GetByMail(ctx, mail)
	if err == nil {
		return nil, ErrMailInUse
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check mail: %w", err)
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:               primitive.NewObjectID(),
		Fullname:         fullname,
		Mail:             mail,
		Password:         hashedPassword,
		Timezone:         timezone,
		Roles:            []string{"user"},
		NumberScan:       0,
		History:          []models.ScanEvent{},
		RegistrationDate: time.Now(),
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies mail and password and returns the matching user. Unknown
// mail and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, mail, password string) (*models.User, error) {
	user, err := s.store.GetByMail(ctx, mail)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
