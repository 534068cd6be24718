// File: internal/data/tokens.go
package data

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"time"

	"github.com/Pedro-J-Kukul/vuelosapi/internal/validator"
)

// ----------------------------------------------------------------------
//
//	Definitions
//
// ----------------------------------------------------------------------

// ScopeAuthentication is the only scope issued: bearer tokens for the API.
const ScopeAuthentication = "authentication"

// AuthenticationTTL is how long a login token stays valid.
const AuthenticationTTL = 24 * time.Hour

// Token is an opaque bearer token. Only its SHA-256 hash is stored.
type Token struct {
	Plaintext string    `json:"token"`
	Hash      []byte    `json:"-"`
	UserID    int64     `json:"-"`
	ExpiresAt time.Time `json:"expiry"`
	Scope     string    `json:"-"`
}

// TokenModel wraps a sql.DB connection pool.
type TokenModel struct {
	DB *sql.DB
}

// ----------------------------------------------------------------------
//
//	Methods
//
// ----------------------------------------------------------------------

func generateToken(userID int64, ttl time.Duration, scope string) (*Token, error) {
	token := &Token{
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
		Scope:     scope,
	}

	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, err
	}
	token.Plaintext = base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	hash := sha256.Sum256([]byte(token.Plaintext))
	token.Hash = hash[:]

	return token, nil
}

// ValidateTokenPlaintext checks the shape of a bearer token before it is
// looked up.
func ValidateTokenPlaintext(v *validator.Validator, plaintext string) {
	v.Check(plaintext != "", "token", "debe proporcionarse")
	v.Check(len(plaintext) == 26, "token", "debe tener 26 caracteres")
}

// ----------------------------------------------------------------------
//
//	Database Operations
//
// ----------------------------------------------------------------------

// New creates a token, stores its hash and returns it with the plaintext.
func (m *TokenModel) New(userID int64, ttl time.Duration, scope string) (*Token, error) {
	token, err := generateToken(userID, ttl, scope)
	if err != nil {
		return nil, err
	}
	if err = m.Insert(token); err != nil {
		return nil, err
	}
	return token, nil
}

// Insert stores token.
func (m *TokenModel) Insert(token *Token) error {
	query := `
		INSERT INTO tokens (hash, user_id, expires_at, scope)
		VALUES ($1, $2, $3, $4)`

	ctx, cancel := getContext()
	defer cancel()

	_, err := m.DB.ExecContext(ctx, query, token.Hash, token.UserID, token.ExpiresAt, token.Scope)
	return err
}

// DeleteAllForUser revokes every token of scope held by userID.
func (m *TokenModel) DeleteAllForUser(scope string, userID int64) error {
	query := `
		DELETE FROM tokens
		WHERE scope = $1 AND user_id = $2`

	ctx, cancel := getContext()
	defer cancel()

	_, err := m.DB.ExecContext(ctx, query, scope, userID)
	return err
}

// DeleteExpired removes tokens past their expiry and reports how many went.
func (m *TokenModel) DeleteExpired() (int64, error) {
	ctx, cancel := getContext()
	defer cancel()

	res, err := m.DB.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
