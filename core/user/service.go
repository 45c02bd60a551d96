package user

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("a user with this email already exists")
)

// Credential is a seeded login.
type Credential struct {
	Email    string
	Name     string
	Role     string
	Password string
}

// SeedCredentials are the logins known to a fresh Directory.
var SeedCredentials = []Credential{
	{Email: "admin@example.com", Name: "Admin", Role: RoleAdmin, Password: "admin123"},
	{Email: "teacher@example.com", Name: "Teacher", Role: RoleTeacher, Password: "teacher123"},
	{Email: "student@example.com", Name: "Student", Role: RoleStudent, Password: "student123"},
}

// Directory is a fixed list of users checked locally; there is no session or token.
type Directory struct {
	mu    sync.RWMutex
	users map[string]User // by email
}

func NewDirectory() *Directory {
	return &Directory{users: make(map[string]User)}
}

// NewSeededDirectory returns a Directory holding SeedCredentials.
func NewSeededDirectory() (*Directory, error) {
	dir := NewDirectory()
	for _, cred := range SeedCredentials {
		if _, err := dir.Add(cred); err != nil {
			return nil, errors.Wrapf(err, "seeding %s", cred.Email)
		}
	}
	return dir, nil
}

// Add hashes the credential password and stores the user.
func (dir *Directory) Add(cred Credential) (User, error) {
	if _, err := Destination(cred.Role); err != nil {
		return User{}, core.NewValidationError(err, core.FieldError{Field: "role", Error: err.Error()})
	}
	usr := User{
		Email: core.CleanString(cred.Email, true /* lower */),
		Name:  cred.Name,
		Role:  cred.Role,
	}
	if err := usr.SetPassword(cred.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	dir.mu.Lock()
	defer dir.mu.Unlock()
	if _, ok := dir.users[usr.Email]; ok {
		return User{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	dir.users[usr.Email] = usr
	return usr, nil
}

// Authenticate returns the user matching email and password.
func (dir *Directory) Authenticate(email, password string) (User, error) {
	dir.mu.RLock()
	usr, ok := dir.users[core.CleanString(email, true /* lower */)]
	dir.mu.RUnlock()

	if !ok || usr.CheckPassword(password) != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

// Login authenticates the user and returns their landing page.
func (dir *Directory) Login(email, password string) (User, string, error) {
	usr, err := dir.Authenticate(email, password)
	if err != nil {
		return User{}, "", err
	}
	dest, err := Destination(usr.Role)
	if err != nil {
		return User{}, "", err
	}
	return usr, dest, nil
}
