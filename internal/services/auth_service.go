package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"ordersystem/internal/models"
	"ordersystem/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const verificationPurpose = "email_verification"

// Registration is the outcome of a successful registration.
// VerificationSent reports the verification mail result; registration stands
// either way and the user can request the link again out of band.
type Registration struct {
	User             *models.User
	VerificationSent bool
}

// AuthService handles registration, login and email verification.
type AuthService struct {
	userRepo repositories.UserRepository
	mailer   Mailer
	secret   []byte
	baseURL  string
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService. baseURL is the externally
// reachable origin used to build verification links.
func NewAuthService(userRepo repositories.UserRepository, mailer Mailer, secret, baseURL string) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		secret:   []byte(secret),
		baseURL:  baseURL,
		tokenTTL: time.Hour,
	}
}

// Register creates an unverified user and sends the verification email.
// Username and email must be unused; the comparison is exact and
// case-sensitive.
func (s *AuthService) Register(username, email, password string) (*Registration, error) {
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, models.ErrUsernameTaken
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, models.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	reg := &Registration{User: user, VerificationSent: true}
	token, err := s.VerificationToken(user)
	if err != nil {
		log.Printf("Failed to issue verification token for user %s: %v", user.ID, err)
		reg.VerificationSent = false
		return reg, nil
	}
	verifyURL := fmt.Sprintf("%s/verify_email/%s", s.baseURL, token)
	if err := s.mailer.SendVerificationEmail(user.Email, user.Username, verifyURL); err != nil {
		log.Printf("Failed to send verification email to %s: %v", user.Email, err)
		reg.VerificationSent = false
	}
	return reg, nil
}

// Authenticate checks the credentials and the verification gate. It returns
// models.ErrInvalidCredentials for an unknown user or wrong password (the
// two are indistinguishable on purpose), and models.ErrNotVerified for a
// correct login against an unverified account.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, models.ErrNotVerified
	}
	return user, nil
}

// VerificationToken issues a signed, time-limited token embedding the
// user's identity and an expiry.
func (s *AuthService) VerificationToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"purpose": verificationPurpose,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign verification token: %w", err)
	}
	return signed, nil
}

// VerifyEmail redeems a verification token. Invalid and expired tokens both
// map to models.ErrInvalidToken, without revealing which. Redeeming a token
// for an already-verified account returns the user together with
// models.ErrAlreadyVerified, an informational outcome rather than a failure.
func (s *AuthService) VerifyEmail(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		log.Printf("Verification token rejected: %v", err)
		return nil, models.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, models.ErrInvalidToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != verificationPurpose {
		return nil, models.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, models.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.ErrInvalidToken
		}
		return nil, err
	}

	if user.IsVerified {
		return user, models.ErrAlreadyVerified
	}
	if err := s.userRepo.MarkVerified(user.ID); err != nil {
		return nil, fmt.Errorf("failed to verify user %s: %w", user.ID, err)
	}
	user.IsVerified = true
	return user, nil
}
