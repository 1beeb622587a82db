package jwt

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	userTokenTTL = 24 * time.Hour

	purposeResetPassword = "reset_password"
)

type (
	JWTService interface {
		GenerateTokenUser(ctx context.Context, userID string, role string) (string, error)
		GetUserIDByToken(ctx context.Context, token string) (string, string, error)
		RevokeToken(ctx context.Context, token string) error
		GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error)
		ValidateTokenForgetPassword(token string) (jwt.MapClaims, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey       string
		issuer          string
		tokenRepository TokenRepository
		now             func() time.Time
	}
)

func getSecretKey() string {
	secretKey := utils.GetConfig("JWT_SECRET")
	if secretKey == "" {
		secretKey = "foodgram-insecure-dev-secret"
	}
	return secretKey
}

func NewJWTService(tokenRepository TokenRepository) JWTService {
	return &jwtService{
		secretKey:       getSecretKey(),
		issuer:          "FOODGRAM",
		tokenRepository: tokenRepository,
		now:             time.Now,
	}
}

// GenerateTokenUser signs a token for the user and records its id, so the
// token can later be revoked.
func (j *jwtService) GenerateTokenUser(ctx context.Context, userID string, role string) (string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	now := j.now()
	jti := uuid.New()
	claims := jwtUserClaim{
		userID,
		role,
		jwt.RegisteredClaims{
			ID:        jti.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(userTokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", err
	}

	// best-effort
	if err := j.tokenRepository.DeleteExpiredTokens(ctx, uid, now); err != nil {
		log.Warnf("failed to delete expired tokens of user %s: %v", uid, err)
	}
	if err := j.tokenRepository.CreateToken(ctx, &entities.AuthToken{
		ID:        jti,
		UserID:    uid,
		ExpiresAt: now.Add(userTokenTTL),
		CreatedAt: now,
	}); err != nil {
		return "", err
	}

	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) validateTokenUser(token string) (*jwtUserClaim, error) {
	t_Token, err := jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.ID == "" || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (j *jwtService) GetUserIDByToken(ctx context.Context, token string) (string, string, error) {
	claims, err := j.validateTokenUser(token)
	if err != nil {
		return "", "", err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return "", "", domain.ErrTokenInvalid
	}
	exists, err := j.tokenRepository.TokenExists(ctx, jti)
	if err != nil {
		return "", "", err
	}
	if !exists {
		return "", "", domain.ErrTokenNotFound
	}

	return claims.UserID, claims.Role, nil
}

func (j *jwtService) RevokeToken(ctx context.Context, token string) error {
	claims, err := j.validateTokenUser(token)
	if err != nil {
		return err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	deleted, err := j.tokenRepository.DeleteToken(ctx, jti)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTokenNotFound
	}
	return nil
}

func (j *jwtService) GenerateTokenForgetPassword(data map[string]any, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{}

	for key, value := range data {
		claims[key] = value
	}

	now := j.now()
	claims["exp"] = now.Add(duration).Unix()
	claims["iat"] = now.Unix()
	claims["iss"] = j.issuer
	claims["purpose"] = purposeResetPassword

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) ValidateTokenForgetPassword(token string) (jwt.MapClaims, error) {
	t_Token, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.MapClaims{}, domain.ErrTokenExpired
		}
		return jwt.MapClaims{}, domain.ErrTokenInvalid
	}

	if !t_Token.Valid {
		return jwt.MapClaims{}, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != purposeResetPassword {
		return jwt.MapClaims{}, domain.ErrTokenInvalid
	}
	return claims, nil
}
