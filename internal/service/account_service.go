package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KJohnson82/MMPD/internal/model"
	"github.com/KJohnson82/MMPD/internal/repository"
	pkgerrors "github.com/KJohnson82/MMPD/pkg/errors"
)

// ── 账号模块业务错误 ──

var (
	ErrUsernameTaken   = errors.New("用户名已存在")
	ErrInvalidRole     = errors.New("角色不存在")
	ErrInvalidUsername = errors.New("用户名不能为空且不超过 30 个字符")
	ErrPasswordTooWeak = errors.New("密码长度至少 8 位")
)

// AccountService 后台账号维护（仅 CLI 使用）
type AccountService interface {
	CreateUser(ctx context.Context, username, password string, roleID int) (*model.UserAccount, error)
}

type accountService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(repo *repository.Repository, logger *zap.Logger) AccountService {
	return &accountService{repo: repo, logger: logger}
}

func (s *accountService) CreateUser(ctx context.Context, username, password string, roleID int) (*model.UserAccount, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > 30 {
		return nil, ErrInvalidUsername
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooWeak
	}

	ok, err := s.repo.UserAccount.RoleExists(ctx, roleID)
	if err != nil {
		s.logger.Error("查询角色失败", zap.Int("role_id", roleID), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.UserAccount.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户名失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	account := &model.UserAccount{
		Username:     username,
		PasswordHash: string(hash),
		RoleID:       roleID,
	}
	account.Activate(nowFunc())

	if err := s.repo.UserAccount.Create(ctx, account); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("创建账号失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("后台账号已创建", zap.String("username", username), zap.Int("role_id", roleID))
	return account, nil
}
