// Package api carries the cross-cutting HTTP concerns: the JWT identity
// layer, wallet-signature verification, auth middleware and request helpers.
package api

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/crimechain/report-api/models"
)

// TokenTTL is how long an issued token stays valid
const TokenTTL = 24 * time.Hour

// NonceTTL bounds how long a wallet login nonce can be redeemed
const NonceTTL = 5 * time.Minute

var (
	// ErrInvalidToken covers expired, malformed and badly signed tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSignature means the wallet signature did not recover to the claimed address
	ErrInvalidSignature = errors.New("invalid wallet signature")
	// ErrNonceExpired means the login nonce is unknown or past its TTL
	ErrNonceExpired = errors.New("nonce expired or unknown")
)

// Identity is the authenticated caller, extracted from a verified token
type Identity struct {
	UserID        string
	Role          string
	WalletAddress string
}

// Admin reports whether the identity carries the admin role
func (i Identity) Admin() bool {
	return i.Role == models.RoleAdmin
}

// Claims is the JWT payload. Password logins and wallet logins both end up
// here; there is one identity shape regardless of how the caller proved
// who they are.
type Claims struct {
	UserID        string `json:"userId"`
	Role          string `json:"role"`
	WalletAddress string `json:"walletAddress,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies identity tokens
type Issuer struct {
	secret []byte
}

// NewIssuer creates an Issuer with the given HMAC secret
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret)}
}

// IssueToken mints a signed token for the user
func (i *Issuer) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:        user.ID.Hex(),
		Role:          user.Role,
		WalletAddress: user.WalletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseToken verifies the signature and expiry and returns the identity
func (i *Issuer) ParseToken(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{
		UserID:        claims.UserID,
		Role:          claims.Role,
		WalletAddress: claims.WalletAddress,
	}, nil
}

// NonceStore issues single-use login nonces per wallet address. Nonces are
// kept in memory; a restart simply forces clients to request a fresh one.
type NonceStore struct {
	mu     sync.Mutex
	nonces map[string]nonceEntry
}

type nonceEntry struct {
	nonce   string
	expires time.Time
}

// NewNonceStore creates an empty nonce store
func NewNonceStore() *NonceStore {
	return &NonceStore{nonces: map[string]nonceEntry{}}
}

// Issue creates a fresh nonce for the address, replacing any previous one
func (s *NonceStore) Issue(address string) string {
	nonce := fmt.Sprintf("Sign this message to log in: %s", uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nonces[strings.ToLower(address)] = nonceEntry{nonce: nonce, expires: time.Now().Add(NonceTTL)}
	return nonce
}

// Consume returns the live nonce for the address and removes it. Each nonce
// can be redeemed at most once.
func (s *NonceStore) Consume(address string) (string, error) {
	key := strings.ToLower(address)
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.nonces[key]
	if !ok || time.Now().After(entry.expires) {
		delete(s.nonces, key)
		return "", ErrNonceExpired
	}
	delete(s.nonces, key)
	return entry.nonce, nil
}

// VerifyWalletSignature checks that signature is a personal_sign of message
// by the claimed address.
func VerifyWalletSignature(address, message, signature string) error {
	sig := common.FromHex(signature)
	if len(sig) != crypto.SignatureLength {
		return ErrInvalidSignature
	}
	// personal_sign produces a recovery id of 27 or 28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return ErrInvalidSignature
	}
	recovered := crypto.PubkeyToAddress(*pubKey)
	if recovered != common.HexToAddress(address) {
		return ErrInvalidSignature
	}
	return nil
}
