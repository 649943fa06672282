package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fashionstore/internal/models"
	"fashionstore/internal/repositories"
	"fashionstore/internal/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and session tokens.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessions    *session.Store
	jwtSecret   []byte
	adminEmails map[string]bool
	tokenDurat  time.Duration
}

// NewAuthService creates a new AuthService. adminEmails lists the
// accounts allowed through the admin gate.
func NewAuthService(userRepo repositories.UserRepository, sessions *session.Store, jwtSecret string, adminEmails []string) *AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		admins[email] = true
	}
	return &AuthService{
		userRepo:    userRepo,
		sessions:    sessions,
		jwtSecret:   []byte(jwtSecret),
		adminEmails: admins,
		tokenDurat:  24 * time.Hour,
	}
}

// Register creates a new account. The password must match its
// confirmation and pass the policy before it is hashed. Email
// uniqueness is left to the storage constraint; a duplicate insert
// comes back as ErrEmailExists with no partial row. Email format is
// not validated.
func (s *AuthService) Register(name, email, password, confirmPassword string) (*models.User, error) {
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	if !IsValidPassword(password) {
		return nil, ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login authenticates by email and password and returns a signed
// session token carrying a fresh session ID. Unknown email and wrong
// password both produce ErrInvalidCredentials; nothing reveals which
// one it was.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"user_name":  user.Name,
		"session_id": uuid.New().String(),
		"admin":      s.adminEmails[user.Email],
		"exp":        now.Add(s.tokenDurat).Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Logout tears down the session's server-side state. The cart and any
// applied discount are gone afterward.
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}

// ValidateToken parses and validates a session token, returning the
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
