package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/usecase"
	"github.com/iho/splitnest/internal/usecase/mocks"
)

type stubCredentials map[string]string

func (s stubCredentials) Lookup(username string) (domain.Credential, bool) {
	password, ok := s[username]
	if !ok {
		return domain.Credential{}, false
	}
	return domain.Credential{Username: username, Password: password}, true
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	creds := stubCredentials{
		"alice": "plain-secret",
		"bob":   string(hash),
	}

	tests := []struct {
		name     string
		username string
		password string
		result   string
		err      error
	}{
		{name: "plain password", username: "alice", password: "plain-secret", result: usecase.AuthResultSuccess},
		{name: "bcrypt password", username: "bob", password: "hashed-secret", result: usecase.AuthResultSuccess},
		{name: "trims username", username: " alice ", password: "plain-secret", result: usecase.AuthResultSuccess},
		{name: "unknown user", username: "carol", password: "x", result: usecase.AuthResultUnknownUser, err: domain.ErrUnknownUser},
		{name: "wrong plain password", username: "alice", password: "nope", result: usecase.AuthResultInvalidPassword, err: domain.ErrInvalidPassword},
		{name: "wrong bcrypt password", username: "bob", password: "nope", result: usecase.AuthResultInvalidPassword, err: domain.ErrInvalidPassword},
		{name: "hash is not a password", username: "bob", password: string(hash), result: usecase.AuthResultInvalidPassword, err: domain.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			metrics := mocks.NewMockMetricsRecorder(ctrl)
			metrics.EXPECT().AuthAttempt(tt.result)

			uc := usecase.NewAuthUseCase(creds, mocks.NewMockTokenIssuer(ctrl), metrics)
			user, err := uc.Authenticate(context.Background(), tt.username, tt.password)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.Username)
		})
	}
}

func TestAuthUseCase_Login(t *testing.T) {
	ctrl := gomock.NewController(t)

	tokens := mocks.NewMockTokenIssuer(ctrl)
	tokens.EXPECT().Generate(&domain.User{Username: "alice"}).Return("signed.jwt.token", nil)

	uc := usecase.NewAuthUseCase(stubCredentials{"alice": "pw"}, tokens, mocks.NopMetrics{})

	token, err := uc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", token)
}

func TestAuthUseCase_LoginFailures(t *testing.T) {
	ctrl := gomock.NewController(t)

	tokens := mocks.NewMockTokenIssuer(ctrl)
	uc := usecase.NewAuthUseCase(stubCredentials{"alice": "pw"}, tokens, mocks.NopMetrics{})

	_, err := uc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	tokens.EXPECT().Generate(gomock.Any()).Return("", errors.New("signing failed"))
	_, err = uc.Login(context.Background(), "alice", "pw")
	assert.ErrorContains(t, err, "signing failed")
}

func TestIsPasswordHash(t *testing.T) {
	assert.True(t, usecase.IsPasswordHash("$2a$10$abcdefghijklmnopqrstuv"))
	assert.False(t, usecase.IsPasswordHash("hunter2"))
}
