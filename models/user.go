package models

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser    = "user"
	RoleOfficer = "officer"
	RoleAdmin   = "admin"
)

// User represents a registered account. Password holds the bcrypt hash and
// is never serialized to JSON.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Username      string             `bson:"username" json:"username"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Password      string             `bson:"password" json:"-"`
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"`
	Role          string             `bson:"role" json:"role"`
	CreatedAt     primitive.DateTime `bson:"createdAt" json:"createdAt"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress"`
	Role          string `json:"role"`
}

// Public returns the public view of u
func (u User) Public() UserResponse {
	return UserResponse{
		ID:            u.ID.Hex(),
		Name:          u.Name,
		Username:      u.Username,
		WalletAddress: u.WalletAddress,
		Role:          u.Role,
	}
}

var walletAddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// ValidWalletAddress reports whether addr looks like an Ethereum address.
// The zero address is allowed as an admin placeholder.
func ValidWalletAddress(addr string) bool {
	return addr == "0x0000000000000000000000000000000000000000" || walletAddressRe.MatchString(addr)
}
