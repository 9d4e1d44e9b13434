package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/verbatim-app/verbatim/internal/crypto"
	"github.com/verbatim-app/verbatim/internal/errs"
	"github.com/verbatim-app/verbatim/internal/idgen"
	"github.com/verbatim-app/verbatim/internal/model"
	"github.com/verbatim-app/verbatim/internal/repository"
	"github.com/verbatim-app/verbatim/internal/throttle"
)

// IdentityService registers accounts and verifies credentials. It is the one
// write path that does not pass through the enforcer: user creation is an
// identity-issuance concern, not an operation on owned data. Token issuance
// stays with the external auth collaborator.
type IdentityService struct {
	store    repository.Store
	ids      idgen.Generator
	throttle throttle.Throttle // nil disables sign-in throttling
}

// NewIdentityService constructs IdentityService with required dependencies.
func NewIdentityService(store repository.Store, ids idgen.Generator, th throttle.Throttle) *IdentityService {
	return &IdentityService{store: store, ids: ids, throttle: th}
}

// dummy credential hashed when the email is unknown, to keep that path as
// slow as a real verification
var (
	dummySalt = make([]byte, 16)
	dummyHash = make([]byte, 32)
)

// Register creates a new user with a hashed credential. A concurrent duplicate
// email loses with errs.ErrAlreadyExists; at most one row ever exists.
func (s *IdentityService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email", errs.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password", errs.ErrValidation)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return nil, err
	}
	hash, salt, err := pkgcrypto.NewCredential(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:       id,
		Email:    email,
		PwdHash:  hash,
		SaltAuth: salt,
		Name:     name,
	}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		return tx.CreateUser(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a credential and returns the principal ID for the
// auth collaborator to wrap in a token. Wrong password and unknown email are
// both errs.ErrUnauthenticated so account existence does not leak. Repeated
// failures from one client place a temporary block surfaced as errs.ErrThrottled.
func (s *IdentityService) Authenticate(ctx context.Context, email, password, clientAddr string) (uuid.UUID, error) {
	clientHash := throttle.HashClient(clientAddr)
	if s.throttle != nil {
		ok, retryAfter, err := s.throttle.Allow(ctx, email, clientHash)
		if err != nil {
			return uuid.Nil, err
		}
		if !ok {
			return uuid.Nil, fmt.Errorf("%w: retry after %s", errs.ErrThrottled, retryAfter)
		}
	}

	var u *model.User
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		u, err = tx.GetUserByEmail(ctx, email)
		return err
	})
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		// infrastructure failure (conflict, timeout), not a credential failure:
		// surface it unchanged and leave the throttle counters alone
		return uuid.Nil, err
	}

	verified := false
	if err == nil {
		verified = pkgcrypto.VerifyCredential(password, u.SaltAuth, u.PwdHash)
	} else {
		// pay the same hashing cost for an unknown email so response timing
		// does not reveal account existence
		pkgcrypto.VerifyCredential(password, dummySalt, dummyHash)
	}
	if !verified {
		if s.throttle != nil {
			// recording failure is best effort; the denial stands either way
			_, _, _ = s.throttle.Failure(ctx, email, clientHash)
		}
		return uuid.Nil, errs.ErrUnauthenticated
	}
	if s.throttle != nil {
		if err := s.throttle.Success(ctx, email, clientHash); err != nil {
			return uuid.Nil, err
		}
	}
	return u.ID, nil
}
