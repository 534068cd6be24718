// File: internal/data/users.go
package data

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

// Roles a user can hold.
const (
	RoleUser  = "usuario"
	RoleAdmin = "admin"
)

// Password represents a hashed password.
type Password struct {
	hash      []byte
	plaintext *string
}

// User is an account together with its passenger profile. JSON keys follow
// the profile form so a GET can be edited and sent back as is.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"correo"`
	Password       Password  `json:"-"`
	Role           string    `json:"rol"`
	DocumentType   string    `json:"tipoDocumento"`
	DocumentNumber string    `json:"numeroDocumento"`
	FirstName      string    `json:"primerNombre"`
	MiddleName     string    `json:"segundoNombre"`
	LastName       string    `json:"primerApellido"`
	SecondLastName string    `json:"segundoApellido"`
	Phone          string    `json:"numeroCelular"`
	BirthDate      string    `json:"fechaNacimiento"`
	IsActive       bool      `json:"activo"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

// UserModel wraps a sql.DB connection pool.
type UserModel struct {
	DB *sql.DB
}

var AnonymousUser = &User{}

type UserFilter struct {
	Filter Filter
	Name   string
	Email  string
	Role   string
}

// ----------------------------------------------------------------------
//
//	Methods
//
// ----------------------------------------------------------------------

// Set hashes a plaintext password and stores it in the Password struct.
func (p *Password) Set(plaintextPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.plaintext = &plaintextPassword
	p.hash = hashedPassword
	return nil
}

// Matches reports whether plaintextPassword matches the stored hash.
func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plaintextPassword))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName joins every non-empty name part.
func (u *User) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName, u.SecondLastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Profile returns the passenger data checked before booking.
func (u *User) Profile() *validator.Profile {
	return &validator.Profile{
		DocumentNumber: u.DocumentNumber,
		Name:           u.FullName(),
		Email:          u.Email,
		Phone:          u.Phone,
		BirthDate:      u.BirthDate,
	}
}

// HasCompleteProfile checks the profile against the user's own document
// type, falling back to the default when none was stored.
func (u *User) HasCompleteProfile() bool {
	return validator.HasCompleteProfile(u.Profile(), u.documentType())
}

// MissingProfileFields lists what keeps the profile from being complete.
func (u *User) MissingProfileFields() []string {
	return validator.MissingProfileFields(u.Profile(), u.documentType())
}

func (u *User) documentType() string {
	if u.DocumentType == "" {
		return validator.DefaultDocumentType
	}
	return u.DocumentType
}

// ValidateUser checks the invariants the database relies on. Form-level
// rules live in the schemas package.
func ValidateUser(v *validator.Validator, user *User) {
	v.Check(validator.IsValidEmail(user.Email), "correo", "debe ser un correo válido")
	v.Check(len(user.Email) <= 254, "correo", "no debe superar 254 caracteres")
	if user.Password.plaintext != nil {
		v.Check(len(*user.Password.plaintext) <= 72, "contrasena", "no debe superar 72 bytes")
	}
	v.Check(v.Permitted(user.Role, RoleUser, RoleAdmin), "rol", "rol no permitido")
}

// ----------------------------------------------------------------------
//
//	Database interaction methods
//
// ----------------------------------------------------------------------

const userColumns = `id, email, password_hash, role, document_type, document_number,
	first_name, middle_name, last_name, second_last_name, phone,
	COALESCE(to_char(birth_date, 'YYYY-MM-DD'), ''), is_active, created_at, updated_at, version`

func scanUser(row interface{ Scan(...any) error }, user *User, extra ...any) error {
	dest := append(extra,
		&user.ID,
		&user.Email,
		&user.Password.hash,
		&user.Role,
		&user.DocumentType,
		&user.DocumentNumber,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.SecondLastName,
		&user.Phone,
		&user.BirthDate,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Version,
	)
	return row.Scan(dest...)
}

// Insert adds a new user to the database.
func (m *UserModel) Insert(user *User) error {
	query := `
		INSERT INTO users (email, password_hash, role, document_type, document_number,
			first_name, middle_name, last_name, second_last_name, phone, birth_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, '')::date, $12)
		RETURNING id, created_at, updated_at, version`

	ctx, cancel := getContext()
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query,
		user.Email,
		user.Password.hash,
		user.Role,
		user.documentType(),
		user.DocumentNumber,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.SecondLastName,
		user.Phone,
		user.BirthDate,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Version)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// Update writes every column of user, guarded by its version.
func (m *UserModel) Update(user *User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, role = $3, document_type = $4, document_number = $5,
			first_name = $6, middle_name = $7, last_name = $8, second_last_name = $9, phone = $10,
			birth_date = NULLIF($11, '')::date, is_active = $12, updated_at = NOW(), version = version + 1
		WHERE id = $13 AND version = $14
		RETURNING updated_at, version`

	ctx, cancel := getContext()
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query,
		user.Email,
		user.Password.hash,
		user.Role,
		user.documentType(),
		user.DocumentNumber,
		user.FirstName,
		user.MiddleName,
		user.LastName,
		user.SecondLastName,
		user.Phone,
		user.BirthDate,
		user.IsActive,
		user.ID,
		user.Version,
	).Scan(&user.UpdatedAt, &user.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case pgCode(err) == pgUniqueViolation:
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

// GetByID retrieves a user by its ID.
func (m *UserModel) GetByID(id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, cancel := getContext()
	defer cancel()

	user := &User{}
	if err := scanUser(m.DB.QueryRowContext(ctx, query, id), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by its email. The comparison is case
// insensitive.
func (m *UserModel) GetByEmail(email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	ctx, cancel := getContext()
	defer cancel()

	user := &User{}
	if err := scanUser(m.DB.QueryRowContext(ctx, query, email), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the active user owning email and password.
// Unknown emails and wrong passwords both yield ErrInvalidCredential.
func (m *UserModel) Authenticate(email, password string) (*User, error) {
	user, err := m.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	ok, err := user.Password.Matches(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredential
	}
	if !user.IsActive {
		return nil, ErrAccountNotActive
	}
	return user, nil
}

// GetAll retrieves a page of users matching filter.
func (m *UserModel) GetAll(filter UserFilter) ([]*User, MetaData, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), %s
		FROM users
		WHERE (first_name || ' ' || last_name ILIKE '%%' || $1 || '%%')
		  AND (email ILIKE '%%' || $2 || '%%')
		  AND (role = COALESCE(NULLIF($3, ''), role))
		ORDER BY %s %s, id ASC
		LIMIT $4 OFFSET $5`, userColumns, filter.Filter.SortColumn(), filter.Filter.SortDirection())

	ctx, cancel := getContext()
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query,
		filter.Name,
		filter.Email,
		filter.Role,
		filter.Filter.Limit(),
		filter.Filter.Offset(),
	)
	if err != nil {
		return nil, MetaData{}, err
	}
	defer rows.Close()

	users := []*User{}
	totalRecords := int64(0)

	for rows.Next() {
		user := &User{}
		if err := scanUser(rows, user, &totalRecords); err != nil {
			return nil, MetaData{}, err
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, MetaData{}, err
	}

	return users, CalculateMetaData(totalRecords, filter.Filter.Page, filter.Filter.PageSize), nil
}

// GetForToken retrieves the owner of an unexpired token.
func (m *UserModel) GetForToken(tokenScope, tokenPlaintext string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = (
			SELECT user_id FROM tokens
			WHERE scope = $1 AND hash = $2 AND expires_at > $3
		)`

	tokenHash := sha256.Sum256([]byte(tokenPlaintext))

	ctx, cancel := getContext()
	defer cancel()

	user := &User{}
	if err := scanUser(m.DB.QueryRowContext(ctx, query, tokenScope, tokenHash[:], time.Now()), user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return user, nil
}
