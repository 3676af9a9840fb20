package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/config"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

const tokenTypeAccess = "access"
const tokenTypeRefresh = "refresh"

type AuthService struct {
	userRepo   repo_interfaces.UserRepository
	holderRepo repo_interfaces.HolderRepository
	cfg        config.Config
}

func NewAuthService(
	userRepo repo_interfaces.UserRepository,
	holderRepo repo_interfaces.HolderRepository,
	cfg config.Config,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		holderRepo: holderRepo,
		cfg:        cfg,
	}
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (commons.Response[models.TokenResponse], error) {
	logger.Info("auth service signup request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service signup validation failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("validation failed", err.Error()), err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("auth service password hashing failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("failed to sign up", "Unable to sign up right now"), err
	}

	user := domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		IsActive:     true,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return commons.ErrorResponse[models.TokenResponse]("Email already registered", err.Error()), err
		}
		logger.Error("auth service signup failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("failed to sign up", "Unable to sign up right now"), err
	}

	tokens, err := s.issueTokens(created.ID)
	if err != nil {
		logger.Error("auth service token issuance failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("failed to sign up", "Unable to sign up right now"), err
	}

	logger.Info("auth service signup success", logger.Fields{"userId": created.ID})

	return commons.SuccessResponse("signup successful", tokens), nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.TokenResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TokenResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			err := domain.ErrInvalidCredentials
			return commons.ErrorResponse[models.TokenResponse]("Invalid credentials"), err
		}
		return commons.ErrorResponse[models.TokenResponse]("failed to log in", "Unable to log in right now"), err
	}

	if !user.IsActive {
		err := domain.ErrInvalidCredentials
		return commons.ErrorResponse[models.TokenResponse]("Invalid credentials"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		err := domain.ErrInvalidCredentials
		return commons.ErrorResponse[models.TokenResponse]("Invalid credentials"), err
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		logger.Error("auth service token issuance failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("failed to log in", "Unable to log in right now"), err
	}

	logger.Info("auth service login success", logger.Fields{"userId": user.ID})

	return commons.SuccessResponse("login successful", tokens), nil
}

func (s *AuthService) Refresh(ctx context.Context, req models.RefreshRequest) (commons.Response[models.TokenResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TokenResponse]("validation failed", err.Error()), err
	}

	userID, err := s.verifyToken(req.RefreshToken, tokenTypeRefresh)
	if err != nil {
		return commons.ErrorResponse[models.TokenResponse]("Invalid token"), err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		err := domain.ErrInvalidToken
		return commons.ErrorResponse[models.TokenResponse]("Invalid token"), err
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		logger.Error("auth service token issuance failed", err, nil)
		return commons.ErrorResponse[models.TokenResponse]("failed to refresh token", "Unable to refresh token right now"), err
	}

	return commons.SuccessResponse("token refreshed successfully", tokens), nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (commons.Response[models.MeResponse], error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.MeResponse]("User not found"), err
		}
		return commons.ErrorResponse[models.MeResponse]("failed to get profile", "Unable to fetch profile right now"), err
	}

	me := models.MeResponse{
		User: models.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
	}

	holder, err := s.holderRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		response := mapHolderToResponse(holder)
		me.Holder = &response
	case errors.Is(err, domain.ErrRecordNotFound):
		// no holder profile yet
	default:
		return commons.ErrorResponse[models.MeResponse]("failed to get profile", "Unable to fetch profile right now"), err
	}

	return commons.SuccessResponse("profile fetched successfully", me), nil
}

// VerifyAccessToken checks an access token and returns its subject user ID.
func (s *AuthService) VerifyAccessToken(_ context.Context, token string) (string, error) {
	return s.verifyToken(token, tokenTypeAccess)
}

func (s *AuthService) issueTokens(userID string) (models.TokenResponse, error) {
	accessToken, err := s.signToken(userID, tokenTypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return models.TokenResponse{}, err
	}
	refreshToken, err := s.signToken(userID, tokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return models.TokenResponse{}, err
	}

	return models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

func (s *AuthService) signToken(userID string, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) verifyToken(tokenString string, expectedType string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != expectedType {
		return "", domain.ErrInvalidToken
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return "", domain.ErrInvalidToken
	}

	return subject, nil
}
