// Package store держит клиентские кэши категорий и задач, синхронизируемые
// с удаленным источником. Кэш меняется только пушами активной подписки:
// после успешной мутации список обновится на следующем пуше, локально
// ничего не дописывается.
package store

import (
	"errors"
	"fmt"
)

// State — состояние привязанной к сессии подписки
type State int

const (
	StateUnauthenticated State = iota // сессии нет, кэш пуст
	StateLoading                      // сессия есть, первый пуш еще не пришел
	StateSynced                       // кэш отражает последний пуш
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSynced:
		return "synced"
	default:
		return "unauthenticated"
	}
}

// ErrUnauthenticated возвращается мутирующими вызовами без активной сессии
var ErrUnauthenticated = errors.New("требуется вход в систему")

// ErrLockedCategory возвращается при попытке удалить системную категорию
var ErrLockedCategory = errors.New("системную категорию нельзя удалить")

// ValidationError — отсутствие или пустое значение обязательного поля.
// Поднимается на границе стора до какого-либо обращения к серверу.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
