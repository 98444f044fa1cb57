package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/mail"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const uniqueViolation = "23505"

// AuthService coordinates signup, signin, sign-out and the verification-code
// lifecycle: Unregistered -> Registered(unverified) -> CodeIssued -> Verified.
//
// Concurrent send-code and verify-code on the same user are last-write-wins;
// each state change is a single-row UPDATE, so the code digest and its
// issuance timestamp always move together.
type AuthService struct {
	users      repository.UserRepository
	mailer     mail.Enqueuer
	revoked    auth.RevocationStore
	tokenMgr   *auth.TokenManager
	logger     *zap.Logger
	hmacKey    string
	bcryptCost int
	codeTTL    time.Duration
	now        func() time.Time
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Mailer     mail.Enqueuer
	Revocation auth.RevocationStore
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		mailer:     deps.Mailer,
		revoked:    deps.Revocation,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		logger:     deps.Logger,
		hmacKey:    cfg.Auth.HMACCodeKey,
		bcryptCost: cfg.Auth.BcryptCost,
		codeTTL:    cfg.Auth.CodeTTL(),
		now:        time.Now,
	}
}

// SignUp registers a new unverified user.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicate("User already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.NewDuplicate("User already exists")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// SignIn authenticates a user and issues a session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("User does not exist.")
		}
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials!")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Verified)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// SignOut revokes the presented token for its remaining lifetime. The client
// cookie is cleared by the handler; this makes the token unusable elsewhere too.
func (s *AuthService) SignOut(ctx context.Context, claims *auth.Claims) error {
	if s.revoked == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if err := s.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// SendVerificationCode issues a fresh one-time code for an unverified user.
// Only the keyed digest and issuance time are persisted; the plaintext code
// leaves the process through the mail queue. A failed enqueue is a degraded
// state, not a rollback: the digest stays and the user can request again.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("User does not exist.")
		}
		return apperrors.NewInternalError(err)
	}
	if user.Verified {
		return apperrors.NewConflict("User already verified.")
	}

	code, err := auth.GenerateCode()
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	digest := auth.CodeDigest(code, s.hmacKey)
	if err := s.users.SetVerificationCode(ctx, user.ID, digest, s.now()); err != nil {
		return apperrors.NewInternalError(err)
	}

	msg := mail.Message{
		To:      user.Email,
		Subject: "Verification Code",
		Body:    fmt.Sprintf("Your verification code is %s", code),
	}
	if err := s.mailer.Enqueue(ctx, msg); err != nil {
		s.logger.Warn("verification code enqueue failed; code remains pending",
			zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// VerifyCode checks a submitted code against the stored digest and, on match,
// flips the user to verified and clears the pending pair in one update.
// The window closes at exactly issuedAt + codeTTL.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage("User does not exist.")
		}
		return nil, apperrors.NewInternalError(err)
	}
	if user.Verified {
		return nil, apperrors.NewConflict("User already verified.")
	}
	if !user.HasPendingCode() {
		return nil, apperrors.NewConflict("Verification code not sent.")
	}
	if s.now().Sub(*user.VerificationCodeIssuedAt) >= s.codeTTL {
		return nil, apperrors.NewExpired("Verification code expired.")
	}

	digest := auth.CodeDigest(code, s.hmacKey)
	if !auth.CodeDigestEqual(digest, *user.VerificationCodeHash) {
		return nil, apperrors.NewConflict("Invalid verification code.")
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user.Verified = true
	user.VerificationCodeHash = nil
	user.VerificationCodeIssuedAt = nil
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
