package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repeat — тег повторения задачи. Хранится как есть и не разворачивается
// в отдельные вхождения: попадание задачи в день определяется только
// интервалом start_date..end_date.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// ParseRepeat нормализует значение тега, неизвестные значения считаются "none"
func ParseRepeat(raw string) Repeat {
	switch Repeat(strings.TrimSpace(strings.ToLower(raw))) {
	case RepeatDaily:
		return RepeatDaily
	case RepeatWeekly:
		return RepeatWeekly
	case RepeatMonthly:
		return RepeatMonthly
	default:
		return RepeatNone
	}
}

type Todo struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"` // старые записи без category_id
	Color        string    `json:"color,omitempty"`         // цвет, зашитый в саму запись (legacy)
	StartDate    string    `json:"start_date"`              // ключ дня YYYY-MM-DD
	EndDate      string    `json:"end_date"`
	Repeat       Repeat    `json:"repeat"`
	IsPublic     bool      `json:"is_public"`
	Memo         string    `json:"memo"`
	Done         bool      `json:"done"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// GenerateID генерирует новый UUID для задачи, если он еще не установлен
func (t *Todo) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// TodoFilter ограничивает выборку задач. Ключи дат сравниваются как строки,
// формат фиксированный. Пустое поле — без ограничения.
type TodoFilter struct {
	FromKey    string // задачи, чей интервал задевает день >= FromKey
	ToKey      string // ... и начинается не позже ToKey
	CategoryID string
}

// UnmarshalJSON приводит расхлябанную схему старых записей к одному
// каноническому виду: isPublic/public/is_public, строковые булевы значения,
// camelCase-варианты ключей. Декодируем один раз на границе, дальше по коду
// форма не перепроверяется.
func (t *Todo) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            string          `json:"id"`
		UserID        string          `json:"user_id"`
		UserIDAlt     string          `json:"uid"`
		Title         string          `json:"title"`
		CategoryID    string          `json:"category_id"`
		CategoryIDAlt string          `json:"categoryId"`
		CategoryName  string          `json:"category_name"`
		CategoryAlt   string          `json:"categoryName"`
		Color         string          `json:"color"`
		StartDate     string          `json:"start_date"`
		StartDateAlt  string          `json:"startDate"`
		EndDate       string          `json:"end_date"`
		EndDateAlt    string          `json:"endDate"`
		Repeat        string          `json:"repeat"`
		IsPublic      json.RawMessage `json:"is_public"`
		IsPublicAlt   json.RawMessage `json:"isPublic"`
		Public        json.RawMessage `json:"public"`
		Memo          string          `json:"memo"`
		Done          json.RawMessage `json:"done"`
		CreatedAt     time.Time       `json:"created_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.ID = raw.ID
	t.UserID = firstNonEmpty(raw.UserID, raw.UserIDAlt)
	t.Title = raw.Title
	t.CategoryID = firstNonEmpty(raw.CategoryID, raw.CategoryIDAlt)
	t.CategoryName = firstNonEmpty(raw.CategoryName, raw.CategoryAlt)
	t.Color = raw.Color
	t.StartDate = firstNonEmpty(raw.StartDate, raw.StartDateAlt)
	t.EndDate = firstNonEmpty(raw.EndDate, raw.EndDateAlt)
	t.Repeat = ParseRepeat(raw.Repeat)
	// отсутствие флага публичности трактуем как "открыто"
	t.IsPublic = looseBool(firstRaw(raw.IsPublic, raw.IsPublicAlt, raw.Public), true)
	t.Memo = raw.Memo
	t.Done = looseBool(raw.Done, false)
	t.CreatedAt = raw.CreatedAt
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstRaw(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if len(v) > 0 && !bytes.Equal(v, []byte("null")) {
			return v
		}
	}
	return nil
}

// looseBool принимает bool и строки "true"/"false"
func looseBool(raw json.RawMessage, def bool) bool {
	if len(raw) == 0 {
		return def
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s == "true"
	}
	return def
}
