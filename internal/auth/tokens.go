package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MaryEddythe/Lustrea/internal/models"
)

const TokenTTL = 24 * time.Hour

// Claims is what the middleware extracts from a verified token.
type Claims struct {
	AdminID uint
	Role    string
	TokenID string
}

// TokenStore issues HS256 bearer tokens and keeps an allowlist of live
// token ids in Redis, so a login or logout can revoke everything issued
// before it. A token is only valid while its id is still in the list.
type TokenStore struct {
	rdb    *redis.Client
	secret []byte
}

func NewTokenStore(rdb *redis.Client, secret string) *TokenStore {
	return &TokenStore{rdb: rdb, secret: []byte(secret)}
}

func tokenKey(jti string) string {
	return "admin_token:" + jti
}

func adminKey(adminID uint) string {
	return fmt.Sprintf("admin_tokens:%d", adminID)
}

// Issue creates a token for the admin and allowlists its id.
func (s *TokenStore) Issue(ctx context.Context, admin *models.Admin) (string, error) {
	jti := uuid.NewString()

	claims := jwt.MapClaims{
		"sub":  admin.ID,
		"role": admin.Role,
		"jti":  jti,
		"exp":  time.Now().Add(TokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, tokenKey(jti), admin.ID, TokenTTL)
	pipe.SAdd(ctx, adminKey(admin.ID), jti)
	pipe.Expire(ctx, adminKey(admin.ID), TokenTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}

	return signed, nil
}

// RevokeAll drops every live token for the admin. Called on login so a
// fresh login invalidates anything issued before it.
func (s *TokenStore) RevokeAll(ctx context.Context, adminID uint) error {
	jtis, err := s.rdb.SMembers(ctx, adminKey(adminID)).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, tokenKey(jti))
	}
	keys = append(keys, adminKey(adminID))

	return s.rdb.Del(ctx, keys...).Err()
}

// Revoke drops a single token (logout, refresh rotation).
func (s *TokenStore) Revoke(ctx context.Context, adminID uint, jti string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, tokenKey(jti))
	pipe.SRem(ctx, adminKey(adminID), jti)
	_, err := pipe.Exec(ctx)
	return err
}

// Validate parses the signed token and checks the id is still allowlisted.
func (s *TokenStore) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, ok1 := claims["sub"].(float64)
	jti, ok2 := claims["jti"].(string)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("invalid token payload")
	}

	n, err := s.rdb.Exists(ctx, tokenKey(jti)).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("token revoked")
	}

	return &Claims{
		AdminID: uint(sub),
		Role:    role,
		TokenID: jti,
	}, nil
}
