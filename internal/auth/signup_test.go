package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupSuccess(t *testing.T) {
	var got SignupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewSignupClient(srv.URL)
	err := client.Signup(context.Background(), SignupRequest{
		Email:    "user@example.com",
		Password: "secret123",
		ID:       "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.Email)
	assert.Equal(t, "user-1", got.ID)
}

func TestSignupErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "json error field",
			status:  http.StatusBadRequest,
			body:    `{"error":"email уже занят"}`,
			wantErr: "email уже занят",
		},
		{
			name:    "json message field",
			status:  http.StatusBadRequest,
			body:    `{"message":"некорректный email"}`,
			wantErr: "некорректный email",
		},
		{
			name:    "plain text body",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantErr: "boom",
		},
		{
			name:    "empty body",
			status:  http.StatusInternalServerError,
			body:    "",
			wantErr: "ошибка сервера",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewSignupClient(srv.URL).Signup(context.Background(), SignupRequest{})
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		id       string
		password string
		confirm  string
		wantErr  string
	}{
		{
			name:     "valid",
			email:    "user@example.com",
			id:       "user-1",
			password: "secret123",
			confirm:  "secret123",
		},
		{
			name:     "empty email",
			id:       "user-1",
			password: "secret123",
			confirm:  "secret123",
			wantErr:  "email не заполнен",
		},
		{
			name:     "empty id",
			email:    "user@example.com",
			password: "secret123",
			confirm:  "secret123",
			wantErr:  "идентификатор не заполнен",
		},
		{
			name:     "password too short",
			email:    "user@example.com",
			id:       "user-1",
			password: "1234567",
			confirm:  "1234567",
			wantErr:  "пароль должен быть от 8 до 16 символов",
		},
		{
			name:     "password too long",
			email:    "user@example.com",
			id:       "user-1",
			password: "12345678901234567",
			confirm:  "12345678901234567",
			wantErr:  "пароль должен быть от 8 до 16 символов",
		},
		{
			name:     "confirm mismatch",
			email:    "user@example.com",
			id:       "user-1",
			password: "secret123",
			confirm:  "secret124",
			wantErr:  "пароли не совпадают",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignup(tt.email, tt.id, tt.password, tt.confirm)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
