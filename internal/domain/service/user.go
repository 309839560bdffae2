package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/entity"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/utils/validator"

	tele "gopkg.in/telebot.v3"
)

// MaxRecentColors is how many custom colors are remembered per user.
const MaxRecentColors = 8

var ErrInvalidEmail = errors.New("invalid email")

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type UserService struct {
	userStorage UserStorage
}

func NewUserService(userStorage UserStorage) *UserService {
	return &UserService{
		userStorage: userStorage,
	}
}

func (s *UserService) Create(ctx context.Context, user entity.User) (*entity.User, error) {
	if user.Localisation == "" {
		user.Localisation = "en"
	}

	return s.userStorage.Create(ctx, &user)
}

func (s *UserService) Get(ctx context.Context, userID int64) (*entity.User, error) {
	return s.userStorage.Get(ctx, userID)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.userStorage.Update(ctx, user)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userStorage.Count(ctx)
}

// Register returns the stored user for the sender, creating it on first contact
// and refreshing the profile fields otherwise.
func (s *UserService) Register(ctx context.Context, sender *tele.User) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, sender.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return s.Create(ctx, entity.User{
			ID:           sender.ID,
			FirstName:    sender.FirstName,
			Username:     sender.Username,
			Localisation: sender.LanguageCode,
		})
	}

	if user.FirstName == sender.FirstName && user.Username == sender.Username {
		return user, nil
	}
	user.FirstName = sender.FirstName
	user.Username = sender.Username
	return s.userStorage.Update(ctx, user)
}

func (s *UserService) SetExportPreferences(ctx context.Context, userID int64, format Format, size int) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if format != "" {
		user.ExportFormat = string(format)
	}
	if size > 0 {
		user.ExportSize = size
	}
	return s.userStorage.Update(ctx, user)
}

func (s *UserService) SetEmail(ctx context.Context, userID int64, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if !validator.Email(email, nil) {
		return nil, ErrInvalidEmail
	}

	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Email = email
	return s.userStorage.Update(ctx, user)
}

// AddRecentColor puts hex in front of the recent colors of the user.
func (s *UserService) AddRecentColor(ctx context.Context, userID int64, hex string) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.RecentColors = pushRecent(user.RecentColors, strings.ToUpper(hex), MaxRecentColors)
	return s.userStorage.Update(ctx, user)
}

func pushRecent(colors []string, hex string, limit int) []string {
	out := make([]string, 0, limit)
	out = append(out, hex)
	for _, c := range colors {
		if len(out) == limit {
			break
		}
		if !strings.EqualFold(c, hex) {
			out = append(out, c)
		}
	}
	return out
}
