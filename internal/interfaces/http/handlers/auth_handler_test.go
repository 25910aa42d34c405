package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galewarning/treetracker-wallet-api/internal/domain/entities"
	domainerrors "github.com/galewarning/treetracker-wallet-api/internal/domain/errors"
	"github.com/galewarning/treetracker-wallet-api/internal/usecases"
	"github.com/galewarning/treetracker-wallet-api/pkg/jwt"
	"github.com/galewarning/treetracker-wallet-api/pkg/redis"
)

type authServiceStub struct {
	loginFn func(ctx context.Context, walletName, password string) (*usecases.LoginOutput, error)
}

func (s authServiceStub) Login(ctx context.Context, walletName, password string) (*usecases.LoginOutput, error) {
	return s.loginFn(ctx, walletName, password)
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	walletID := uuid.New()

	service := authServiceStub{
		loginFn: func(_ context.Context, walletName, password string) (*usecases.LoginOutput, error) {
			if walletName != "treefund" || password != "correct-horse" {
				return nil, domainerrors.Unauthorized("invalid wallet or password")
			}
			return &usecases.LoginOutput{
				Wallet: &entities.Wallet{ID: walletID, Name: "treefund"},
				Tokens: &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			}, nil
		},
	}

	h := NewAuthHandler(service, nil)
	r := gin.New()
	r.POST("/auth", h.Login)

	// success
	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader([]byte(`{"wallet":"treefund","password":"correct-horse"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), walletID.String())
	assert.Contains(t, w.Body.String(), `"token":"access"`)

	// wrong password
	req = httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader([]byte(`{"wallet":"treefund","password":"nope"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// missing fields
	req = httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader([]byte(`{"wallet":"treefund"}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginWritesSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv, err := miniredis.Run()
	require.NoError(t, err)
	defer srv.Close()
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))

	store, err := redis.NewSessionStore("0000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)

	walletID := uuid.New()
	service := authServiceStub{
		loginFn: func(_ context.Context, _, _ string) (*usecases.LoginOutput, error) {
			return &usecases.LoginOutput{
				Wallet: &entities.Wallet{ID: walletID, Name: "treefund"},
				Tokens: &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			}, nil
		},
	}

	h := NewAuthHandler(service, store)
	r := gin.New()
	r.POST("/auth", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader([]byte(`{"wallet":"treefund","password":"pw"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	session, err := store.GetSession(context.Background(), walletID.String())
	require.NoError(t, err)
	assert.Equal(t, walletID.String(), session.WalletID)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "refresh", session.RefreshToken)
}
