package user

import (
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var (
	Roles = []string{RoleAdmin, RoleTeacher, RoleStudent}

	// landing page of each role
	destinations = map[string]string{
		RoleAdmin:   "/admin",
		RoleTeacher: "/home",
		RoleStudent: "/dashboard",
	}

	ErrInvalidRole = errors.New("invalid role")
)

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/"

type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash []byte `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// Destination returns the landing page of role.
func Destination(role string) (string, error) {
	if dest, ok := destinations[role]; ok {
		return dest, nil
	}
	return "", errors.Wrapf(ErrInvalidRole, "%q", role)
}

// Guard decides whether a user with role may open a page restricted to allowed roles
// (no restriction when allowed is empty). When not, it returns where to send the user instead:
// the landing page of their role, or the login page for an unknown or empty role.
func Guard(role string, allowed ...string) (redirect string, ok bool) {
	if role == "" {
		return LoginPath, false
	}
	if len(allowed) == 0 {
		return "", true
	}
	for _, r := range allowed {
		if r == role {
			return "", true
		}
	}
	if dest, err := Destination(role); err == nil {
		return dest, false
	}
	return LoginPath, false
}
