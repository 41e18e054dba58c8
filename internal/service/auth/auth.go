package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"CourseForge/internal/app_errors"
	"CourseForge/internal/models"
	"CourseForge/pkg/logger"
)

type userRepo interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UserByName(ctx context.Context, username string) (*models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	ByPrimaryKey(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	userRepo   userRepo
	tokenRepo  tokenRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, uRepo userRepo, tRepo tokenRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		userRepo:   uRepo,
		tokenRepo:  tRepo,
	}
}

func (u *AuthService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if len(user.Password) < 6 || len(user.Password) > 16 {
		return nil, app_errors.ErrIncorrectPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	return u.userRepo.CreateUser(ctx, user)
}

func (u *AuthService) LoginUser(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	user, err := u.userRepo.UserByName(ctx, username)
	if err != nil {
		return "", "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", "", app_errors.ErrIncorrectPassword
	}

	tokenPair, err := u.jwtManager.GenerateTokenPair(user.ID, user.Roles)
	if err != nil {
		return "", "", err
	}

	if err = u.tokenRepo.DeleteUserTokens(ctx, user.ID); err != nil {
		return "", "", err
	}
	if _, err = u.tokenRepo.Create(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return "", "", err
	}

	return tokenPair.AccessToken.Raw, tokenPair.RefreshToken.Raw, nil
}

func (u *AuthService) RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error) {
	curToken, err := u.jwtManager.Parse(token)
	if err != nil {
		return nil, err
	}
	subject, err := curToken.Claims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, err
	}

	record, err := u.tokenRepo.ByPrimaryKey(ctx, userID, curToken)
	if err != nil {
		return nil, err
	}
	if record.ExpiresAt.Before(time.Now()) {
		return nil, app_errors.ErrTokenExpired
	}

	user, err := u.userRepo.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tokenPair, err := u.jwtManager.GenerateTokenPair(user.ID, user.Roles)
	if err != nil {
		return nil, err
	}
	if err := u.tokenRepo.DeleteUserTokens(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := u.tokenRepo.Create(ctx, user.ID, tokenPair.RefreshToken); err != nil {
		return nil, err
	}
	return tokenPair, nil
}

func (u *AuthService) ParseToken(ctx context.Context, token string) (*jwt.Token, error) {
	return u.jwtManager.Parse(token)
}

func (u *AuthService) IsAccessToken(ctx context.Context, token *jwt.Token) bool {
	return u.jwtManager.TokenType(token, AccessTokenType)
}

func (u *AuthService) AccessClaims(ctx context.Context, token string) (userID uuid.UUID, roles []string, err error) {
	claims, err := u.jwtManager.AccessClaims(token)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return claims.UserID, claims.Roles, nil
}

func (u *AuthService) User(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return u.userRepo.UserByID(ctx, id)
}
