package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"crop-advisor-be/internal/dto"
	"crop-advisor-be/internal/pkg/logger"
)

const defaultIdentityBaseURL = "https://identitytoolkit.googleapis.com/v1"

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)

	// DemoMode reports whether the external identity provider is configured.
	DemoMode() bool
}

type authService struct {
	firebaseKey string
	baseURL     string
	jwtSecret   string
	tokenTTL    time.Duration
	client      *http.Client
	logger      logger.ILogger

	// Demo-mode account store: email -> demoAccount. Only populated when no
	// identity provider is configured; lost on restart by design.
	demoMu       sync.Mutex
	demoAccounts map[string]demoAccount
}

type demoAccount struct {
	uid          string
	passwordHash []byte
}

func NewAuthService(firebaseKey, baseURL, jwtSecret string, tokenTTLHours int, log logger.ILogger) IAuthService {
	if baseURL == "" {
		baseURL = defaultIdentityBaseURL
	}
	return &authService{
		firebaseKey: firebaseKey,
		baseURL:     baseURL,
		jwtSecret:   jwtSecret,
		tokenTTL:    time.Duration(tokenTTLHours) * time.Hour,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger:       log,
		demoAccounts: make(map[string]demoAccount),
	}
}

func (s *authService) DemoMode() bool {
	return s.firebaseKey == ""
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.DemoMode() {
		return s.demoLogin(req)
	}

	result, err := s.identityRequest(ctx, "accounts:signInWithPassword", req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(result.LocalId, req.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:   token,
		UserId:  result.LocalId,
		Email:   req.Email,
		Message: "Login successful",
	}, nil
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if s.DemoMode() {
		return s.demoSignup(req)
	}

	result, err := s.identityRequest(ctx, "accounts:signUp", req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(result.LocalId, req.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:   token,
		UserId:  result.LocalId,
		Email:   req.Email,
		Message: "Account created successfully",
	}, nil
}

// --- Demo mode ---

func (s *authService) demoLogin(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	s.demoMu.Lock()
	defer s.demoMu.Unlock()

	account, known := s.demoAccounts[req.Email]
	if known {
		if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(req.Password)); err != nil {
			return nil, errors.New("Invalid email or password")
		}
	} else {
		// Any email works in demo mode; register it on the fly so repeated
		// logins keep the same uid.
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		account = demoAccount{uid: "demo-" + uuid.NewString(), passwordHash: hash}
		s.demoAccounts[req.Email] = account
	}

	token, err := s.issueToken(account.uid, req.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:   token,
		UserId:  account.uid,
		Email:   req.Email,
		Message: "Logged in (Demo mode - identity provider not configured. To enable real auth, add Firebase credentials)",
	}, nil
}

func (s *authService) demoSignup(req *dto.SignupRequest) (*dto.AuthResponse, error) {
	s.demoMu.Lock()
	defer s.demoMu.Unlock()

	if _, exists := s.demoAccounts[req.Email]; exists {
		return nil, errors.New("An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := demoAccount{uid: "demo-" + uuid.NewString(), passwordHash: hash}
	s.demoAccounts[req.Email] = account

	token, err := s.issueToken(account.uid, req.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:   token,
		UserId:  account.uid,
		Email:   req.Email,
		Message: "Account created (Demo mode - identity provider not configured. To enable real auth, add Firebase credentials)",
	}, nil
}

// --- External identity provider ---

type identityResult struct {
	LocalId string `json:"localId"`
	Email   string `json:"email"`
}

type identityError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *authService) identityRequest(ctx context.Context, endpoint, email, password string) (*identityResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?key=%s", s.baseURL, endpoint, s.firebaseKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		var idErr identityError
		_ = json.Unmarshal(body, &idErr)
		return nil, errors.New(mapIdentityError(idErr.Error.Message))
	}

	var result identityResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("malformed identity response: %w", err)
	}

	return &result, nil
}

// mapIdentityError converts provider error codes into the user-facing
// messages the UI shows.
func mapIdentityError(code string) string {
	switch {
	case strings.Contains(code, "INVALID_PASSWORD"), strings.Contains(code, "INVALID_EMAIL"),
		strings.Contains(code, "INVALID_LOGIN_CREDENTIALS"):
		return "Invalid email or password"
	case strings.Contains(code, "EMAIL_NOT_FOUND"):
		return "No account found with this email"
	case strings.Contains(code, "EMAIL_EXISTS"):
		return "An account with this email already exists"
	case strings.Contains(code, "WEAK_PASSWORD"):
		return "Password is too weak. Use at least 6 characters"
	case code == "":
		return "Authentication failed"
	default:
		return "Authentication failed: " + code
	}
}

func (s *authService) issueToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
