package model

import "time"

// Operator roles.  Both may edit content; only admins may delete artists.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// Operator represents an authenticated dashboard user as stored in the
// `operators` table.  The authenticated operator is carried explicitly
// through request handling; there is no package-level session state.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique login email.
//  PasswordHash – bcrypt hash; never serialized.
//  FullName     – optional display name.
//  Role         – ADMIN or EDITOR.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Operator struct {
	ID           string    `json:"id"`       // operators.id
	Email        string    `json:"email"`    // operators.email
	PasswordHash string    `json:"-"`        // operators.password_hash
	FullName     *string   `json:"fullName"` // operators.full_name
	Role         string    `json:"role"`     // operators.role
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the operator holds the ADMIN role.
func (o *Operator) IsAdmin() bool { return o != nil && o.Role == RoleAdmin }
