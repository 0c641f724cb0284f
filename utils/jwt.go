package utils

import (
	"crypto/rsa"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

// Realm public key for verifying Keycloak-issued tokens (RS256). Loaded
// lazily from KEYCLOAK_REALM_PUBLIC_KEY (PEM).
var (
	realmKey     *rsa.PublicKey
	realmKeyErr  error
	realmKeyOnce sync.Once
)

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback, overridden by .env in any real deployment.
		secret = "AccelConnectDevSecret"
	}
	JWTSecret = []byte(secret)
}

// PortalClaims carries the identity the rest of the gateway works with,
// whether the token came from Keycloak or from a local service account.
type PortalClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a local HS256 token for a service account.
func GenerateToken(userID, username, role string) (string, error) {
	claims := &PortalClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "accelconnect-gateway",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// ParseLocalToken validates a gateway-issued HS256 token.
func ParseLocalToken(tokenString string) (*PortalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PortalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*PortalClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// keycloakClaims is the subset of a Keycloak access token the gateway
// cares about.
type keycloakClaims struct {
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
	jwt.RegisteredClaims
}

// ParseKeycloakToken verifies an RS256 token against the realm public key
// and maps it onto PortalClaims. The subject becomes the user id; the
// portal role is "admin" when the realm grants it, "user" otherwise.
func ParseKeycloakToken(tokenString string) (*PortalClaims, error) {
	key, err := loadRealmKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &keycloakClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	kc, ok := token.Claims.(*keycloakClaims)
	if !ok || kc.Subject == "" {
		return nil, errors.New("invalid token claims")
	}

	role := "user"
	for _, r := range kc.RealmAccess.Roles {
		if r == "admin" {
			role = "admin"
			break
		}
	}

	return &PortalClaims{
		UserID:           kc.Subject,
		Username:         kc.PreferredUsername,
		Role:             role,
		RegisteredClaims: kc.RegisteredClaims,
	}, nil
}

func loadRealmKey() (*rsa.PublicKey, error) {
	realmKeyOnce.Do(func() {
		pem := os.Getenv("KEYCLOAK_REALM_PUBLIC_KEY")
		if pem == "" {
			realmKeyErr = errors.New("keycloak realm public key not configured")
			return
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			realmKeyErr = err
			return
		}
		realmKey = key
	})
	if realmKeyErr != nil {
		return nil, realmKeyErr
	}
	return realmKey, nil
}
