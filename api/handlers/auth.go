package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/crimechain/report-api/api"
	"github.com/crimechain/report-api/config"
	"github.com/crimechain/report-api/databases"
	"github.com/crimechain/report-api/models"
)

// Auth handles registration and both login flows. Password logins and
// wallet-signature logins produce the same token shape.
type Auth struct {
	DB     databases.UserDatabase
	Issuer *api.Issuer
	Nonces *api.NonceStore
}

type registerRequest struct {
	Name          string `json:"name"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	WalletAddress string `json:"walletAddress"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type walletNonceRequest struct {
	WalletAddress string `json:"walletAddress"`
}

type walletLoginRequest struct {
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature"`
}

// RegisterHandler creates a new account with a bcrypt-hashed password
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		config.ErrorStatus("missing required fields", http.StatusBadRequest, w, errors.New("username, email and password are required"))
		return
	}
	if req.WalletAddress != "" && !models.ValidWalletAddress(req.WalletAddress) {
		config.ErrorStatus("invalid wallet address", http.StatusBadRequest, w, fmt.Errorf("%q is not a valid address", req.WalletAddress))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := a.DB.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"email": req.Email},
		{"username": req.Username},
	}})
	if err != nil {
		config.ErrorStatus("failed to check existing users", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("user already exists", http.StatusConflict, w, errors.New("email or username already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		Username:      req.Username,
		Email:         req.Email,
		Password:      string(hash),
		WalletAddress: req.WalletAddress,
		Role:          models.RoleUser,
		CreatedAt:     primitive.NewDateTimeFromTime(time.Now()),
	}
	if _, err := a.DB.InsertOne(ctx, user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	a.respondWithToken(w, &user, http.StatusCreated)
}

// LoginHandler authenticates with email and password
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{"email": req.Email})
	if err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, errors.New("unknown email or wrong password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, errors.New("unknown email or wrong password"))
		return
	}

	a.respondWithToken(w, user, http.StatusOK)
}

// WalletNonceHandler issues a single-use nonce for a wallet login
func (a Auth) WalletNonceHandler(w http.ResponseWriter, r *http.Request) {
	var req walletNonceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidWalletAddress(req.WalletAddress) {
		config.ErrorStatus("invalid wallet address", http.StatusBadRequest, w, fmt.Errorf("%q is not a valid address", req.WalletAddress))
		return
	}

	nonce := a.Nonces.Issue(req.WalletAddress)
	b, err := json.Marshal(models.NonceResponse{Nonce: nonce})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// WalletLoginHandler verifies a signed nonce and issues a token. An unknown
// wallet gets a fresh account on the fly.
func (a Auth) WalletLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req walletLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidWalletAddress(req.WalletAddress) {
		config.ErrorStatus("invalid wallet address", http.StatusBadRequest, w, fmt.Errorf("%q is not a valid address", req.WalletAddress))
		return
	}

	nonce, err := a.Nonces.Consume(req.WalletAddress)
	if err != nil {
		config.ErrorStatus("nonce expired", http.StatusUnauthorized, w, err)
		return
	}
	if err := api.VerifyWalletSignature(req.WalletAddress, nonce, req.Signature); err != nil {
		config.ErrorStatus("signature verification failed", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := a.DB.FindOne(ctx, bson.M{"walletAddress": bson.M{
		"$regex":   "^" + req.WalletAddress + "$",
		"$options": "i",
	}})
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to look up wallet", http.StatusInternalServerError, w, err)
			return
		}
		created := models.User{
			ID:            primitive.NewObjectID(),
			Name:          shortAddress(req.WalletAddress),
			Username:      strings.ToLower(req.WalletAddress),
			WalletAddress: req.WalletAddress,
			Role:          models.RoleUser,
			CreatedAt:     primitive.NewDateTimeFromTime(time.Now()),
		}
		if _, err := a.DB.InsertOne(ctx, created); err != nil {
			config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
			return
		}
		zap.S().Infow("created account for new wallet", "walletAddress", req.WalletAddress)
		user = &created
	}

	a.respondWithToken(w, user, http.StatusOK)
}

func (a Auth) respondWithToken(w http.ResponseWriter, user *models.User, status int) {
	token, err := a.Issuer.IssueToken(user)
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}
	b, err := json.Marshal(models.AuthResponse{Token: token, User: user.Public()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}

func shortAddress(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
