package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielgao20/product-catalog/models"
)

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}

func TestIssueAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admin := models.AdminUser{ID: 12, Email: "admin@example.com", Role: "admin"}
	tokenString, err := IssueAdminToken(admin)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "admin@example.com", claims["email"])
	require.Equal(t, "admin", claims["role"])
	require.EqualValues(t, 12, claims["id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))
}

func TestIssueAdminTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tokenString, err := IssueAdminToken(models.AdminUser{ID: 1})
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	require.Error(t, err)
}
