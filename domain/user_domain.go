package domain

import "fmt"

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessLogout         = "logout successful"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessUpdateAvatar   = "avatar updated successfully"
	MessageSuccessDeleteAvatar   = "avatar deleted successfully"
	MessageSuccessSetPassword    = "password changed successfully"
	MessageSuccessForgotPassword = "password reset link sent"
	MessageSuccessResetPassword  = "password reset successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedLogout         = "failed to logout"
	MessageFailedGetUsers       = "failed to get users"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedUpdateAvatar   = "failed to update avatar"
	MessageFailedDeleteAvatar   = "failed to delete avatar"
	MessageFailedSetPassword    = "failed to change password"
	MessageFailedForgotPassword = "failed to send password reset link"
	MessageFailedResetPassword  = "failed to reset password"

	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailAlreadyUsed    = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrUsernameAlreadyUsed = fmt.Errorf("%w: user with this username already exists", ErrConflict)
	ErrUserAlreadyExists   = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrInvalidCredentials  = NewValidationError("non_field_errors", "invalid email or password")
	ErrWrongPassword       = NewValidationError("current_password", "current password is incorrect")
	ErrAvatarRequired      = NewValidationError("avatar", "this field is required")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=128"`
	}

	RegisterResponse struct {
		Email     string `json:"email"`
		ID        string `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	AvatarRequest struct {
		Avatar string `json:"avatar" validate:"required,data_image"`
	}

	AvatarResponse struct {
		Avatar string `json:"avatar"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=128"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
	}

	User struct {
		Email        string `json:"email"`
		ID           string `json:"id"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
		Avatar       string `json:"avatar"`
	}
)
