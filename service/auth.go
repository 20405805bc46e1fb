package service

import (
	"context"
	"net/http"
	"time"

	"Lumen/config"
	"Lumen/dao"
	"Lumen/models"
	"Lumen/pkg/jwt"
	"Lumen/pkg/response"
	"Lumen/types"

	"golang.org/x/crypto/bcrypt"
)

// 访问令牌有效期
const accessTokenExpire = 7 * 24 * time.Hour

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.TokenResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error)
}

type AuthService struct {
	UserDAO *dao.Users
	Config  *config.Config
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.TokenResponse, error) {
	exist, err := s.UserDAO.IsExist(ctx, "username = ?", req.Username)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, response.NewError(http.StatusConflict, "用户名已存在")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}
	user := &models.Users{
		Username:  req.Username,
		Nickname:  nickname,
		Password:  string(hash),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.UserDAO.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error) {
	user, err := s.UserDAO.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewError(http.StatusUnauthorized, "用户名或密码错误")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, response.NewError(http.StatusUnauthorized, "用户名或密码错误")
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.Users) (*types.TokenResponse, error) {
	token, err := jwt.GenerateToken(
		[]byte(s.Config.Jwt.Secret),
		user.Id,
		user.IsAdmin,
		jwt.TypeAccess,
		accessTokenExpire,
	)
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{Token: token, UserId: user.Id}, nil
}
