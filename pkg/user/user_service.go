package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/metrics"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/access"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const resetPasswordTTL = 30 * time.Minute

type (
	// SubscriptionChecker answers which of authorIDs userID follows.
	SubscriptionChecker interface {
		GetSubscribedAuthorIDs(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	MailSender func(toEmail, subject, body string) error

	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		CreateAdmin(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, token string) error
		GetUsers(ctx context.Context, identity domain.Identity, search string, page, limit int) (domain.PaginatedResponse[domain.User], error)
		GetUserByID(ctx context.Context, identity domain.Identity, id string) (domain.User, error)
		Me(ctx context.Context, identity domain.Identity) (domain.User, error)
		UpdateAvatar(ctx context.Context, identity domain.Identity, req domain.AvatarRequest) (domain.AvatarResponse, error)
		DeleteAvatar(ctx context.Context, identity domain.Identity) error
		SetPassword(ctx context.Context, identity domain.Identity, req domain.SetPasswordRequest) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository      UserRepository
		jwtService          jwt.JWTService
		s3                  storage.AwsS3
		subscriptionChecker SubscriptionChecker
		sendMail            MailSender
		appURL              string
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	s3 storage.AwsS3,
	subscriptionChecker SubscriptionChecker,
) UserService {
	return &userService{
		userRepository:      userRepository,
		jwtService:          jwtService,
		s3:                  s3,
		subscriptionChecker: subscriptionChecker,
		sendMail:            mailing.SendMail,
		appURL:              strings.TrimRight(utils.GetConfig("APP_URL"), "/"),
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	res, err := s.createUser(ctx, req, domain.RoleUser)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	metrics.UsersRegistered.Inc()
	return res, nil
}

// CreateAdmin is used by the command line bootstrap, never over HTTP.
func (s *userService) CreateAdmin(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	return s.createUser(ctx, req, domain.RoleAdmin)
}

func (s *userService) createUser(ctx context.Context, req domain.RegisterRequest, role string) (domain.RegisterResponse, error) {
	emailTaken, usernameTaken, err := s.userRepository.CheckUserExists(ctx, req.Email, req.Username)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if emailTaken {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyUsed
	}
	if usernameTaken {
		return domain.RegisterResponse{}, domain.ErrUsernameAlreadyUsed
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user, err := s.userRepository.RegisterUser(ctx, &entities.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashed,
		Role:      role,
	})
	if err != nil {
		// lost a race with another registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RegisterResponse{}, domain.ErrUserAlreadyExists
		}
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		Email:     user.Email,
		ID:        user.ID.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(ctx, user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	return s.jwtService.RevokeToken(ctx, token)
}

func (s *userService) GetUsers(ctx context.Context, identity domain.Identity, search string, page, limit int) (domain.PaginatedResponse[domain.User], error) {
	users, total, err := s.userRepository.GetUsers(ctx, strings.TrimSpace(search), utils.Offset(page, limit), limit)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	results, err := s.ToDomainList(ctx, identity, users)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}
	return domain.PaginatedResponse[domain.User]{
		Results:    results,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, identity domain.Identity, id string) (domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, domain.ErrUserNotFound
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}

	users, err := s.ToDomainList(ctx, identity, []*entities.User{user})
	if err != nil {
		return domain.User{}, err
	}
	return users[0], nil
}

func (s *userService) Me(ctx context.Context, identity domain.Identity) (domain.User, error) {
	if err := access.RequireAuthenticated(identity); err != nil {
		return domain.User{}, err
	}
	return s.GetUserByID(ctx, identity, identity.UserID.String())
}

func (s *userService) UpdateAvatar(ctx context.Context, identity domain.Identity, req domain.AvatarRequest) (domain.AvatarResponse, error) {
	if err := access.RequireAuthenticated(identity); err != nil {
		return domain.AvatarResponse{}, err
	}
	if req.Avatar == "" {
		return domain.AvatarResponse{}, domain.ErrAvatarRequired
	}

	user, err := s.currentUser(ctx, identity)
	if err != nil {
		return domain.AvatarResponse{}, err
	}

	file, err := storage.PrepareImage(req.Avatar)
	if err != nil {
		return domain.AvatarResponse{}, domain.NewValidationError("avatar", err.Error())
	}

	objectKey, err := s.s3.UploadFile(ctx, file, storage.FolderAvatars)
	if err != nil {
		metrics.ImageUploadFailures.WithLabelValues(storage.FolderAvatars).Inc()
		return domain.AvatarResponse{}, err
	}
	link := s.s3.GetPublicLinkKey(objectKey)

	if err := s.userRepository.UpdateAvatar(ctx, user.ID, link); err != nil {
		s.deleteImage(ctx, link)
		return domain.AvatarResponse{}, err
	}
	s.deleteImage(ctx, user.Avatar)

	return domain.AvatarResponse{Avatar: link}, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, identity domain.Identity) error {
	if err := access.RequireAuthenticated(identity); err != nil {
		return err
	}

	user, err := s.currentUser(ctx, identity)
	if err != nil {
		return err
	}
	if user.Avatar == "" {
		return nil
	}

	if err := s.userRepository.UpdateAvatar(ctx, user.ID, ""); err != nil {
		return err
	}
	s.deleteImage(ctx, user.Avatar)
	return nil
}

func (s *userService) SetPassword(ctx context.Context, identity domain.Identity, req domain.SetPasswordRequest) error {
	if err := access.RequireAuthenticated(identity); err != nil {
		return err
	}

	user, err := s.currentUser(ctx, identity)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, req.CurrentPassword) {
		return domain.ErrWrongPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, user.ID, hashed)
}

// ForgotPassword mails a reset link. Unknown emails succeed silently so the
// endpoint cannot be used to probe for accounts.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Infof("password reset requested for unknown email %s", req.Email)
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}, resetPasswordTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)
	return s.sendMail(user.Email, "Foodgram password reset", mailing.ResetPasswordBody(user.Username, link))
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	// the token is bound to the email it was issued for
	if email, _ := claims["email"].(string); !strings.EqualFold(email, user.Email) {
		return domain.ErrTokenInvalid
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, user.ID, hashed)
}

// ToDomainList projects users for identity, filling is_subscribed in one
// lookup. Anonymous callers are never subscribed.
func (s *userService) ToDomainList(ctx context.Context, identity domain.Identity, users []*entities.User) ([]domain.User, error) {
	subscribed, err := SubscribedTo(ctx, s.subscriptionChecker, identity, users)
	if err != nil {
		return nil, err
	}

	res := make([]domain.User, 0, len(users))
	for _, u := range users {
		res = append(res, ToDomain(u, subscribed[u.ID]))
	}
	return res, nil
}

func (s *userService) currentUser(ctx context.Context, identity domain.Identity) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, identity.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) deleteImage(ctx context.Context, link string) {
	if link == "" {
		return
	}
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Warnf("failed to delete image %s: %v", key, err)
	}
}

// SubscribedTo reports which of users identity follows.
func SubscribedTo(ctx context.Context, checker SubscriptionChecker, identity domain.Identity, users []*entities.User) (map[uuid.UUID]bool, error) {
	if !identity.Authenticated || checker == nil || len(users) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		if u != nil {
			ids = append(ids, u.ID)
		}
	}
	return checker.GetSubscribedAuthorIDs(ctx, identity.UserID, ids)
}

func ToDomain(user *entities.User, isSubscribed bool) domain.User {
	if user == nil {
		return domain.User{}
	}
	return domain.User{
		Email:        user.Email,
		ID:           user.ID.String(),
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       user.Avatar,
	}
}
