package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SignupRequest — тело запроса функции регистрации
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ID       string `json:"id"`
}

// SignupClient вызывает внешнюю HTTP-функцию регистрации
type SignupClient struct {
	url    string
	client *http.Client
}

func NewSignupClient(url string) *SignupClient {
	return &SignupClient{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Signup отправляет запрос регистрации. Любой не-2xx статус — отказ,
// текст ошибки сервера передается наверх как есть.
func (c *SignupClient) Signup(ctx context.Context, req SignupRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("запрос регистрации не прошел: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	text, _ := io.ReadAll(resp.Body)
	return errors.New(errorMessage(text))
}

// errorMessage достает сообщение из тела ошибки. Тело может оказаться
// не-JSON — тогда берем сырой текст, разбор не прерывает поток.
func errorMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Message != "" {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = "ошибка сервера"
	}
	return msg
}

// ValidateSignup повторяет проверки формы регистрации: обязательные поля,
// длина пароля 8–16 символов, совпадение подтверждения
func ValidateSignup(email, id, password, confirm string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email не заполнен")
	}
	if strings.TrimSpace(id) == "" {
		return errors.New("идентификатор не заполнен")
	}
	if n := len(password); n < 8 || n > 16 {
		return errors.New("пароль должен быть от 8 до 16 символов")
	}
	if password != confirm {
		return errors.New("пароли не совпадают")
	}
	return nil
}
