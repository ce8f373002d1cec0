package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink-app/carelink-backend/internal/accounts/domain"
	"github.com/carelink-app/carelink-backend/internal/auth"
	familydomain "github.com/carelink-app/carelink-backend/internal/family/domain"
	"github.com/carelink-app/carelink-backend/internal/identity"
	"github.com/carelink-app/carelink-backend/internal/logging"
)

// Identity is the slice of the identity service admin API the account
// lifecycle needs.
type Identity interface {
	UIDByEmail(ctx context.Context, email string) (string, error)
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	UpdatePassword(ctx context.Context, uid, password string) error
	DeleteUser(ctx context.Context, uid string) error
}

// PasswordVerifier delegates credential checks to the identity service's own
// store. The facade keeps no password hash of its own to compare against.
type PasswordVerifier interface {
	SignInWithPassword(ctx context.Context, email, password string) (*auth.SignInResult, error)
}

// FamilyLinks is the slice of the family service registration needs.
type FamilyLinks interface {
	JoinByCode(ctx context.Context, code string) (*familydomain.FamilyLink, error)
	CreateForNewUser(ctx context.Context, creatorID string) (*familydomain.FamilyLink, error)
}

// UserStore is the authoritative profile store.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, req *domain.UpdateProfileRequest) (*domain.User, error)
	TouchUpdated(ctx context.Context, id string) error
	DeleteCascade(ctx context.Context, id string) error
}

// ProfileCache mirrors profile writes into the document store.
type ProfileCache interface {
	Put(ctx context.Context, u *domain.User) error
	DeleteUserDocs(ctx context.Context, uid string) error
}

type AccountService struct {
	identity Identity
	verifier PasswordVerifier
	family   FamilyLinks
	users    UserStore
	cache    ProfileCache
}

func NewAccountService(id Identity, verifier PasswordVerifier, family FamilyLinks, users UserStore, cache ProfileCache) *AccountService {
	return &AccountService{
		identity: id,
		verifier: verifier,
		family:   family,
		users:    users,
		cache:    cache,
	}
}

// Register creates the identity credential, attaches the user to a family
// (joining by code or minting a new one) and writes the profile row plus its
// cache doc. There is no compensating rollback: a failure after the identity
// record exists leaves that record in place.
func (s *AccountService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, err := s.identity.UIDByEmail(ctx, req.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, identity.ErrNotFound) {
		return nil, fmt.Errorf("email lookup: %w", err)
	}

	uid, err := s.identity.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, err
	}

	var familyID string
	if req.FamilyCode != "" {
		link, err := s.family.JoinByCode(ctx, req.FamilyCode)
		if err != nil {
			return nil, err
		}
		familyID = link.FamilyID
	} else {
		link, err := s.family.CreateForNewUser(ctx, uid)
		if err != nil {
			return nil, err
		}
		familyID = link.FamilyID
	}

	user := &domain.User{
		ID:       uid,
		Name:     req.Name,
		Email:    req.Email,
		Relation: req.Relation,
		FamilyID: familyID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the pair against the identity service and loads the
// profile. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	res, err := s.verifier.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, res.UID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// credential exists but the profile row is gone; treat it the
			// same as a bad credential so nothing is leaked
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	return &domain.LoginResult{
		User:         user,
		IDToken:      res.IDToken,
		RefreshToken: res.RefreshToken,
	}, nil
}

// ChangePassword verifies the current password with the identity service
// before rotating the credential.
func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := s.verifier.SignInWithPassword(ctx, user.Email, current); err != nil {
		return err
	}

	if err := s.identity.UpdatePassword(ctx, userID, next); err != nil {
		return err
	}

	return s.users.TouchUpdated(ctx, userID)
}

// DeleteAccount removes all relational rows in one transaction, then the
// document-store docs in one batch, then the identity credential last. If
// the credential delete fails after the stores committed, the user's data is
// gone but the login remains; that is logged and surfaced, not compensated.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.DeleteCascade(ctx, userID); err != nil {
		return err
	}
	if err := s.cache.DeleteUserDocs(ctx, userID); err != nil {
		return err
	}

	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		logging.NewLogger(ctx).LogError("delete_account", err,
			logging.Fields{"userId": userID, "state": "data removed, credential remains"})
		return fmt.Errorf("credential delete after data removal: %w", err)
	}
	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies the edits to the authoritative row, then refreshes
// the cache doc.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
