package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"fundstack.backend/internal/domain/authz"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/internal/domain/repositories"
	"fundstack.backend/pkg/crypto"
	"fundstack.backend/pkg/jwt"
	"fundstack.backend/pkg/redis"
)

// UserUsecase handles accounts, authentication and admin account changes
type UserUsecase struct {
	userRepo     repositories.UserRepository
	jwtService   *jwt.JWTService
	sessionStore *redis.SessionStore
	sessionTTL   time.Duration
}

// NewUserUsecase creates a new user usecase. sessionStore may be nil when
// session login is disabled.
func NewUserUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
	sessionTTL time.Duration,
) *UserUsecase {
	return &UserUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Register registers a new account. New accounts start as active INVESTOR
// users; elevated roles are granted afterwards by a ROOT account.
func (u *UserUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	_, err := u.userRepo.GetByEmail(ctx, strings.ToLower(input.Email))
	if err == nil {
		return nil, domainerrors.AlreadyExists("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.StorageError(err)
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(input.Email),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: passwordHash,
		Role:         entities.RoleInvestor,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if input.Country != "" {
		user.Country = null.StringFrom(input.Country)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, domainerrors.StorageError(err)
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Login authenticates an account and issues a token pair. With UseSession
// set, the pair is stored encrypted in Redis and only a session ID is
// returned to the client.
func (u *UserUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid email or password")
		}
		return nil, domainerrors.StorageError(err)
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}
	if !user.IsActive {
		return nil, domainerrors.AccountDisabled()
	}

	user.LastLoginAt = null.TimeFrom(time.Now())
	if err := u.userRepo.Update(ctx, user); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.StorageError(err)
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	if input.UseSession && u.sessionStore != nil {
		sessionID, err := crypto.GenerateRandomToken(32)
		if err != nil {
			return nil, domainerrors.InternalError(err)
		}
		session := &redis.SessionData{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, session, u.sessionTTL); err != nil {
			return nil, domainerrors.InternalError(err)
		}
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// GetProfile returns a user profile. Owners read their own profile;
// ADMIN-ranked and above may read any profile.
func (u *UserUsecase) GetProfile(ctx context.Context, actor authz.Actor, targetID uuid.UUID) (*entities.User, error) {
	if d := authz.Authorize(actor, authz.OpViewOwnProfile, authz.Resource{OwnerID: targetID}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	user, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.StorageError(err)
	}
	return user, nil
}

// UpdateProfile updates the caller's own profile attributes
func (u *UserUsecase) UpdateProfile(ctx context.Context, actor authz.Actor, targetID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	if d := authz.Authorize(actor, authz.OpUpdateOwnProfile, authz.Resource{OwnerID: targetID}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	user, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = null.StringFrom(input.PhoneNumber)
	}
	if input.Country != "" {
		user.Country = null.StringFrom(input.Country)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return user, nil
}

// ListUsers lists accounts with an optional search term. ROOT only.
func (u *UserUsecase) ListUsers(ctx context.Context, actor authz.Actor, search string) ([]*entities.User, error) {
	if d := authz.Authorize(actor, authz.OpListUsers, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	users, err := u.userRepo.List(ctx, search)
	if err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return users, nil
}

// UpdateUserStatus flips the active flag on an account. ROOT accounts can
// never be deactivated, regardless of who asks.
func (u *UserUsecase) UpdateUserStatus(ctx context.Context, actor authz.Actor, targetID uuid.UUID, isActive bool) (*entities.User, error) {
	target, err := u.loadTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if d := authz.Authorize(actor, authz.OpUpdateUserStatus, authz.Resource{OwnerID: target.ID, TargetRole: target.Role}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	if err := u.userRepo.UpdateStatus(ctx, targetID, isActive); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	target.IsActive = isActive
	return target, nil
}

// UpdateUserRole changes an account's role. ROOT accounts keep their role,
// and ROOT itself is only granted through the out-of-band bootstrap.
func (u *UserUsecase) UpdateUserRole(ctx context.Context, actor authz.Actor, targetID uuid.UUID, rawRole string) (*entities.User, error) {
	role, ok := entities.ParseRole(rawRole)
	if !ok {
		return nil, domainerrors.Validation("invalid role: " + rawRole)
	}
	if role.IsRoot() {
		return nil, domainerrors.Validation("root role cannot be granted through this operation")
	}

	target, err := u.loadTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if d := authz.Authorize(actor, authz.OpUpdateUserRole, authz.Resource{OwnerID: target.ID, TargetRole: target.Role}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	if err := u.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	target.Role = role
	return target, nil
}

// DeleteUser soft deletes an account. Soft delete keeps investment
// references intact; ROOT accounts are never deleted.
func (u *UserUsecase) DeleteUser(ctx context.Context, actor authz.Actor, targetID uuid.UUID) error {
	target, err := u.loadTarget(ctx, targetID)
	if err != nil {
		return err
	}

	if d := authz.Authorize(actor, authz.OpDeleteUser, authz.Resource{OwnerID: target.ID, TargetRole: target.Role}); !d.Allowed {
		return domainerrors.Denied(d.Reason)
	}

	if err := u.userRepo.SoftDelete(ctx, targetID); err != nil {
		return domainerrors.StorageError(err)
	}
	return nil
}

func (u *UserUsecase) loadTarget(ctx context.Context, targetID uuid.UUID) (*entities.User, error) {
	target, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, domainerrors.StorageError(err)
	}
	return target, nil
}
