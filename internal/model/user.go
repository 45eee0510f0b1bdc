package model

import "time"

// User is the identity record backing a login, stored in the `users`
// table.  It is distinct from the Customer profile: deleting a profile
// leaves the users row in place, so an identity may outlive its
// customer row.  Back-office rights live on the customer row, not here.
//
// Fields:
//  ID           – uuid primary key, shared with customers.id.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           string    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user; only the SHA-256 hash of the raw
// token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    string     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
