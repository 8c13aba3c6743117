package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/EmpoweredVote/DoseRight/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

const (
	msgSignupFailed       = "An error occurred during signup"
	msgLoginFailed        = "An error occurred during login"
	msgCredentialsMissing = "Username and password are required"
	msgInvalidCredentials = "Invalid username or password"
	msgUserExists         = "Username or email already exists"
)

type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Validate returns every problem with the input, in display order.
func (in SignupInput) Validate() []string {
	var errs []string
	if in.Username == "" {
		errs = append(errs, "Username is required")
	}
	if in.Email == "" {
		errs = append(errs, "Email is required")
	}
	if in.Password == "" {
		errs = append(errs, "Password is required")
	}
	if in.Password != in.ConfirmPassword {
		errs = append(errs, "Passwords do not match")
	}
	if len(in.Password) < minPasswordLen {
		errs = append(errs, "Password must be at least 6 characters")
	}
	if len(in.Password) > maxPasswordBytes {
		errs = append(errs, "Password must be at most 72 bytes")
	}
	return errs
}

func (in SignupInput) trimmed() SignupInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	return in
}

// Service implements signup and login on top of a Store.
type Service struct {
	store *Store
	cost  int
}

func NewService(store *Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost}
}

// Signup creates a user. Validation and conflicts come back as
// *utils.ClientInputError.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	in = in.trimmed()
	if errs := in.Validate(); len(errs) > 0 {
		return User{}, &utils.ClientInputError{Status: http.StatusBadRequest, Errors: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}

	email := in.Email
	u := User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        &email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
	}
	if err := s.store.Create(ctx, &u); err != nil {
		if errors.Is(err, ErrUserExists) {
			return User{}, &utils.ClientInputError{Status: http.StatusConflict, Errors: []string{msgUserExists}}
		}
		return User{}, err
	}
	return u, nil
}

// Authenticate checks a username and password pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, utils.BadRequest(msgCredentialsMissing)
	}

	u, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, invalidCredentials()
	}
	if err != nil {
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, invalidCredentials()
	}
	return u, nil
}

func invalidCredentials() error {
	return &utils.ClientInputError{Status: http.StatusUnauthorized, Message: msgInvalidCredentials}
}
