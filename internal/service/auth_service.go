package service

import (
	"context"
	"time"

	"notes-admin-be/internal/config"
	"notes-admin-be/internal/dto"
	"notes-admin-be/internal/entity"
	"notes-admin-be/internal/pkg/logger"
	"notes-admin-be/internal/repository/specification"
	"notes-admin-be/internal/repository/unitofwork"
	"notes-admin-be/pkg/admin/mapper"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwt        config.JwtConfig
	logger     logger.ILogger
	now        func() time.Time
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtConfig config.JwtConfig, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		jwt:        jwtConfig,
		logger:     logger,
		now:        time.Now,
	}
}

// LoginAdmin checks the credentials of a staff account and issues an access
// token. Unknown users, wrong passwords and non staff accounts all fail with
// the same error.
func (s *authService) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Find user
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, entity.ErrInvalidCredentials
	}

	// 2. Compare passwords
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	// 3. Staff only
	if !user.IsStaff() {
		s.logger.Warn("AUTH", "Admin login refused for non staff account", map[string]interface{}{
			"userId": user.Id.String(),
		})
		return nil, entity.ErrInvalidCredentials
	}

	// 4. Generate JWT
	expiresAt := s.now().Add(s.jwt.TTL)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwt.Secret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "Admin logged in", map[string]interface{}{
		"userId": user.Id.String(),
	})

	return &dto.AdminLoginResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiresAt,
		User:        *mapper.UserToResponse(user),
	}, nil
}
