package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. A user owns zero or more tasks and
// may hold multiple concurrent session tokens, one per signed-in client.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, held only between decode and hashing
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Age            int       `json:"age"`
	Avatar         []byte    `json:"-"` // Normalized PNG bytes; served via the avatar endpoint
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User from registration input. The name is trimmed and
// the email is normalized (trimmed, lower-cased). The plaintext password is
// validated but not hashed; the caller hashes it before storage.
// Returns an error if validation fails.
func NewUser(name, email, password string, age int) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail returns the canonical storage form of an email address:
// surrounding whitespace removed and all characters lower-cased. Uniqueness
// checks always run against this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns the first field error encountered.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Age < 0 {
		return ErrNegativeAge
	}

	// During creation and password changes a plaintext password is present
	// and must meet the password rules. Otherwise the user must already
	// carry a hash (the case for records loaded from the store). A user
	// with neither never received a password at all.
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	if u.Password != "" {
		if err := ValidatePassword(u.Password); err != nil {
			return err
		}
	}

	return nil
}

// ValidatePassword checks the password rules applied at registration and on
// password change: minimum 7 characters, maximum 72 (the bcrypt input
// limit), and the password must not contain the substring "password" in any
// casing.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 7 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return ErrPasswordForbidden
	}
	return nil
}

// validEmailFormat performs basic validation of email format: a single @
// with a non-empty local part and a domain containing an interior dot.
func validEmailFormat(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if strings.Contains(domain, "@") {
		return false
	}

	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// UserUpdate holds a parsed partial update for a user profile. Only fields
// in the allow-list {name, email, password, age} can be populated; a nil
// pointer means the field was not part of the request.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// userUpdatableFields is the PATCH /users/me allow-list.
var userUpdatableFields = map[string]struct{}{
	"name":     {},
	"email":    {},
	"password": {},
	"age":      {},
}

// ParseUserUpdate converts a decoded JSON object into a UserUpdate,
// enforcing the update allow-list. If the request names any field outside
// the allow-list the whole update is rejected with a DisallowedFieldsError
// listing every offending field; nothing is applied.
func ParseUserUpdate(fields map[string]json.RawMessage) (*UserUpdate, error) {
	var disallowed []string
	for name := range fields {
		if _, ok := userUpdatableFields[name]; !ok {
			disallowed = append(disallowed, name)
		}
	}
	if len(disallowed) > 0 {
		return nil, &DisallowedFieldsError{Fields: disallowed}
	}

	update := &UserUpdate{}
	for name, raw := range fields {
		var err error
		switch name {
		case "name":
			err = json.Unmarshal(raw, &update.Name)
		case "email":
			err = json.Unmarshal(raw, &update.Email)
		case "password":
			err = json.Unmarshal(raw, &update.Password)
		case "age":
			err = json.Unmarshal(raw, &update.Age)
		}
		if err != nil {
			return nil, ErrValidation
		}
	}

	return update, nil
}

// IsEmpty reports whether the update carries no fields at all.
func (up *UserUpdate) IsEmpty() bool {
	return up.Name == nil && up.Email == nil && up.Password == nil && up.Age == nil
}

// Apply copies the populated fields of the update onto the user, normalizing
// the email and stamping UpdatedAt. A changed password is placed in the
// plaintext Password field; the caller re-hashes before persisting. The
// merged user is validated as a whole so a bad field leaves the caller's
// copy untouched only if it checks the returned error before persisting.
func (u *User) Apply(up *UserUpdate) error {
	if up.Name != nil {
		u.Name = strings.TrimSpace(*up.Name)
	}
	if up.Email != nil {
		u.Email = NormalizeEmail(*up.Email)
	}
	if up.Password != nil {
		// Validate the plaintext here: an empty string would otherwise slip
		// past Validate, which treats an empty Password as a stored record.
		if err := ValidatePassword(*up.Password); err != nil {
			return err
		}
		u.Password = *up.Password
	}
	if up.Age != nil {
		u.Age = *up.Age
	}
	u.UpdatedAt = time.Now().UTC()

	return u.Validate()
}
