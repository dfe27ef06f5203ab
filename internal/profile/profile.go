// Package profile хранит локальные данные профиля: отображаемое имя и
// монеты. Это не серверные данные — простые строковые слоты на диске,
// читаются при обращении и переписываются при каждом изменении.
package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// тот же ключ, что и в веб-версии
const usernameKey = "mypage.username"

const coinsKey = "mypage.coins"

type Store struct {
	d *diskv.Diskv
}

func NewStore(basePath string) *Store {
	flatTransform := func(s string) []string { return []string{} }
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}
}

// DisplayName возвращает сохраненное имя или пустую строку
func (s *Store) DisplayName(userID string) string {
	v, err := s.d.Read(usernameKey + "." + userID)
	if err != nil {
		return ""
	}
	return string(v)
}

// SetDisplayName переписывает имя. Пустое имя не сохраняется.
func (s *Store) SetDisplayName(userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("имя не заполнено")
	}
	return s.d.Write(usernameKey+"."+userID, []byte(name))
}

// Coins возвращает счетчик монет пользователя
func (s *Store) Coins(userID string) int {
	v, err := s.d.Read(coinsKey + "." + userID)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0
	}
	return n
}

// AddCoins увеличивает счетчик и возвращает новое значение
func (s *Store) AddCoins(userID string, delta int) (int, error) {
	n := s.Coins(userID) + delta
	if n < 0 {
		n = 0
	}
	if err := s.d.Write(coinsKey+"."+userID, []byte(strconv.Itoa(n))); err != nil {
		return 0, err
	}
	return n, nil
}
