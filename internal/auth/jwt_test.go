package auth

import (
	"testing"

	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Perform token generation and verify the generated token to ensure VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)

	refreshToken, accessToken, err := jwtService.GenerateRefreshAndAccessToken(JWTPayload{
		ID:    "id1234",
		Email: "test@gmail.com",
		Role:  constant.UserRoleAdmin,
	})
	require.NoError(t, err)

	refreshClaims, err := jwtService.VerifyJwtToken(*refreshToken)
	require.NoError(t, err)
	assert.Equal(t, constant.JWT_TYPE_REFRESH, refreshClaims.Type)
	assert.Equal(t, "id1234", refreshClaims.User.ID)

	accessClaims, err := jwtService.VerifyJwtToken(*accessToken)
	require.NoError(t, err)
	assert.Equal(t, constant.JWT_TYPE_ACCESS, accessClaims.Type)
	assert.Equal(t, constant.UserRoleAdmin, accessClaims.User.Role)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	issuer := NewJwt(config.AuthConfig{JWT_SECRET: "secret-a"}, nil)
	verifier := NewJwt(config.AuthConfig{JWT_SECRET: "secret-b"}, nil)

	_, accessToken, err := issuer.GenerateRefreshAndAccessToken(JWTPayload{ID: "u1"})
	require.NoError(t, err)

	_, err = verifier.VerifyJwtToken(*accessToken)
	assert.Error(t, err)

	_, err = verifier.VerifyJwtToken("not-a-token")
	assert.Error(t, err)
}
