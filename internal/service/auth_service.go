package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notely/internal/model"
	"notely/pkg/apierror"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// dummyPasswordHash is compared against on the unknown-email path so both
// branches of Login pay one bcrypt verify and response timing does not
// reveal whether an email exists.
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

type AuthService struct {
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	users      UserStore
	tokens     RefreshTokenStore
	logins     LoginEventStore
}

func NewAuthService(jwtSecret string, accessTTL time.Duration, refreshTTL time.Duration, users UserStore, tokens RefreshTokenStore, logins LoginEventStore) *AuthService {
	return &AuthService{
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		users:      users,
		tokens:     tokens,
		logins:     logins,
	}
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password produce the same error; a disabled account with correct
// credentials gets its own distinct message, a deliberate product exception
// to the anti-enumeration rule.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, model.NormalizeEmail(email))
	if errors.Is(err, model.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return model.TokenPair{}, errInvalidCredentials()
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordLogin(ctx, user, false)
		return model.TokenPair{}, errInvalidCredentials()
	}

	if !user.Active {
		s.recordLogin(ctx, user, false)
		return model.TokenPair{}, errAccountDisabled()
	}

	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		slog.Warn("failed to update last_login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}
	s.recordLogin(ctx, user, true)

	return s.issueTokenPair(ctx, user, now)
}

// Refresh exchanges a refresh token for a new pair. Rotation is enforced in
// the store: revoking the presented jti is a compare-and-swap, so of two
// racing refreshes at most one succeeds and a replayed token always fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return model.TokenPair{}, errTokenInvalid()
	}

	if err := s.tokens.Rotate(ctx, claims.TokenID); err != nil {
		if errors.Is(err, model.ErrTokenInvalid) {
			return model.TokenPair{}, errTokenInvalid()
		}
		return model.TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, errTokenInvalid()
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if !user.Active {
		return model.TokenPair{}, errAccountDisabled()
	}

	return s.issueTokenPair(ctx, user, time.Now().UTC())
}

// Logout revokes the refresh token. Malformed or already-revoked tokens are
// a no-op so the operation is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil
	}

	return s.tokens.Revoke(ctx, claims.TokenID)
}

// ValidateAccess checks an access token and returns the principal it was
// issued to. This is a pure signature/expiry check with no store lookup:
// role or active changes made after issuance take effect at the next login
// or refresh, a latency window the product accepts.
func (s *AuthService) ValidateAccess(tokenString string) (*model.Principal, error) {
	claims, err := s.parseToken(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, apierror.New("UNAUTHORIZED", "invalid or expired token", "", http.StatusUnauthorized)
	}

	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return nil, apierror.New("UNAUTHORIZED", "invalid token claims", "", http.StatusUnauthorized)
	}

	return &model.Principal{UserID: claims.UserID, Email: claims.Email, Role: role}, nil
}

// CurrentUser resolves the principal's current account record.
func (s *AuthService) CurrentUser(ctx context.Context, p model.Principal) (model.User, error) {
	return s.users.FindByID(ctx, p.UserID)
}

type tokenClaims struct {
	UserID  string
	Email   string
	Role    string
	Type    string
	TokenID string
}

func (s *AuthService) parseToken(tokenString string, expectedType string) (tokenClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return tokenClaims{}, model.ErrTokenInvalid
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, model.ErrTokenInvalid
	}

	claims := tokenClaims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Role, _ = claimsMap["role"].(string)
	claims.Type, _ = claimsMap["typ"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.UserID == "" || claims.TokenID == "" || claims.Type != expectedType {
		return tokenClaims{}, model.ErrTokenInvalid
	}

	return claims, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User, now time.Time) (model.TokenPair, error) {
	accessJTI := uuid.NewString()
	refreshJTI := uuid.NewString()
	refreshExpiry := now.Add(s.refreshTTL)

	accessToken, err := s.signToken(jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"typ":   tokenTypeAccess,
		"jti":   accessJTI,
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.signToken(jwt.MapClaims{
		"sub": user.ID,
		"typ": tokenTypeRefresh,
		"jti": refreshJTI,
		"iat": now.Unix(),
		"exp": refreshExpiry.Unix(),
	})
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.tokens.Store(ctx, refreshJTI, user.ID, now, refreshExpiry); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         user,
	}, nil
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// recordLogin is best-effort: a failed audit write must not block a login.
func (s *AuthService) recordLogin(ctx context.Context, user model.User, success bool) {
	ev := model.LoginEvent{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		Email:      user.Email,
		Success:    success,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.logins.Record(ctx, ev); err != nil {
		slog.Warn("failed to record login event", "user_id", user.ID, "error", err)
	}
}

func errInvalidCredentials() error {
	return apierror.New("INVALID_CREDENTIALS", "invalid email or password", "", http.StatusUnauthorized)
}

func errAccountDisabled() error {
	return apierror.New("ACCOUNT_DISABLED", "account disabled", "", http.StatusUnauthorized)
}

func errTokenInvalid() error {
	return apierror.New("TOKEN_INVALID", "refresh token is invalid, expired, or revoked", "", http.StatusUnauthorized)
}
