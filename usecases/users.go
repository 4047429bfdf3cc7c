package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Jataveda/Agriconnect/entities"
	"github.com/Jataveda/Agriconnect/repositories"
)

// PlaceholderToken is returned on every successful login. Nothing validates it.
const PlaceholderToken = "mock-jwt-token"

type RegisterInput struct {
	Username string            `json:"username"`
	Password string            `json:"password"`
	Email    string            `json:"email"`
	UserType entities.UserType `json:"userType"`
	Name     string            `json:"name"`
	FarmerID *string           `json:"farmerId"`
	FarmName *string           `json:"farmName"`
	FarmSize *int              `json:"farmSize"`
	Phone    *string           `json:"phone"`
	Address  *string           `json:"address"`
	City     *string           `json:"city"`
	State    *string           `json:"state"`
	ZipCode  *string           `json:"zipCode"`
}

type UserUseCase struct {
	UserRepo  repositories.UserRepository
	Passwords PasswordHasher
}

func NewUserUseCase(userRepo repositories.UserRepository, passwords PasswordHasher) *UserUseCase {
	if passwords == nil {
		passwords = PlaintextHasher{}
	}
	return &UserUseCase{UserRepo: userRepo, Passwords: passwords}
}

// Register creates an account. Username and email are claimed atomically by
// the repository, so of two racing registrations only one succeeds.
func (uc *UserUseCase) Register(ctx context.Context, in RegisterInput) (*entities.User, error) {
	// Identifiers are stored verbatim; login compares them exactly.
	switch {
	case strings.TrimSpace(in.Username) == "":
		return nil, invalid("username is required")
	case in.Password == "":
		return nil, invalid("password is required")
	case strings.TrimSpace(in.Email) == "":
		return nil, invalid("email is required")
	case strings.TrimSpace(in.Name) == "":
		return nil, invalid("name is required")
	case !in.UserType.Valid():
		return nil, invalid("userType must be farmer or customer")
	}
	if in.FarmSize != nil && *in.FarmSize < 0 {
		return nil, invalid("farmSize must not be negative")
	}

	stored, err := uc.Passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username: in.Username,
		Password: stored,
		Email:    in.Email,
		UserType: in.UserType,
		Name:     in.Name,
		FarmerID: in.FarmerID,
		FarmName: in.FarmName,
		FarmSize: in.FarmSize,
		Phone:    in.Phone,
		Address:  in.Address,
		City:     in.City,
		State:    in.State,
		ZipCode:  in.ZipCode,
	}
	err = uc.UserRepo.Create(ctx, user)
	switch {
	case errors.Is(err, repositories.ErrDuplicateUsername):
		return nil, invalid("Username already exists")
	case errors.Is(err, repositories.ErrDuplicateEmail):
		return nil, invalid("Email already exists")
	case err != nil:
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "User")
	}
	return user, nil
}

// GetAllUsers retrieves all users
func (uc *UserUseCase) GetAllUsers(ctx context.Context) ([]entities.User, error) {
	return uc.UserRepo.GetAll(ctx)
}

// UpdateProfile updates only the fields present in patch
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name must not be empty")
	}
	if patch.FarmSize != nil && *patch.FarmSize < 0 {
		return nil, invalid("farmSize must not be negative")
	}
	user, err := uc.UserRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, lookupErr(err, "User")
	}
	return user, nil
}

// Login resolves identifier as a username, then as an email when it looks
// like one, and checks the password against the stored value.
func (uc *UserUseCase) Login(ctx context.Context, identifier, password string) (*entities.User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := uc.UserRepo.GetByUsername(ctx, identifier)
	if errors.Is(err, repositories.ErrNotFound) && strings.Contains(identifier, "@") {
		user, err = uc.UserRepo.GetByEmail(ctx, identifier)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrAuth
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !uc.Passwords.Matches(user.Password, password) {
		return nil, ErrAuth
	}
	return user, nil
}

// lookupErr turns a repository miss into a NotFoundError for kind and wraps
// anything else.
func lookupErr(err error, kind string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound(kind)
	}
	return fmt.Errorf("%s lookup: %w", strings.ToLower(kind), err)
}
