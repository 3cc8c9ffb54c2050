package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is the single failure for a signin attempt against an
// unknown email or a wrong password. Callers cannot tell the two apart.
var ErrBadCredentials = errors.New("incorrect email or password")

// Service manages the account lifecycle.
type Service struct {
	repo Repository
	cost int
}

// NewService creates a user service hashing passwords at the given bcrypt cost.
func NewService(repo Repository, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = 10
	}
	return &Service{repo: repo, cost: bcryptCost}
}

// RegisterInput carries a validated signup payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	About    string
	Avatar   string
}

// Register hashes the password and creates the account, applying profile
// defaults for omitted optional fields. The plaintext is never stored.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		About:        in.About,
		Avatar:       in.Avatar,
	}
	if u.Name == "" {
		u.Name = DefaultName
	}
	if u.About == "" {
		u.About = DefaultAbout
	}
	if u.Avatar == "" {
		u.Avatar = DefaultAvatar
	}

	return s.repo.Create(ctx, u)
}

// Authenticate verifies the email/password pair. A missing account and a
// mismatched password both yield ErrBadCredentials; only storage failures
// surface as anything else.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrBadCredentials
		}
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return User{}, ErrBadCredentials
	}

	return u, nil
}

// Get fetches a single user by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all registered users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}

// UpdateProfile changes the name and about fields of an account.
func (s *Service) UpdateProfile(ctx context.Context, id, name, about string) (User, error) {
	return s.repo.Update(ctx, id, Update{Name: &name, About: &about})
}

// UpdateAvatar changes the avatar link of an account.
func (s *Service) UpdateAvatar(ctx context.Context, id, avatar string) (User, error) {
	return s.repo.Update(ctx, id, Update{Avatar: &avatar})
}
