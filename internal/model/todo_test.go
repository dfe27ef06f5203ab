package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepeat(t *testing.T) {
	tests := []struct {
		raw  string
		want Repeat
	}{
		{raw: "daily", want: RepeatDaily},
		{raw: "weekly", want: RepeatWeekly},
		{raw: "monthly", want: RepeatMonthly},
		{raw: "none", want: RepeatNone},
		{raw: "  Daily ", want: RepeatDaily},
		{raw: "", want: RepeatNone},
		{raw: "every-full-moon", want: RepeatNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRepeat(tt.raw), "raw=%q", tt.raw)
	}
}

func TestTodoUnmarshalCanonical(t *testing.T) {
	data := []byte(`{
		"id": "t1",
		"user_id": "u1",
		"title": "Отчет",
		"category_id": "c1",
		"start_date": "2024-03-01",
		"end_date": "2024-03-01",
		"repeat": "weekly",
		"is_public": false,
		"memo": "до обеда",
		"done": true
	}`)

	var todo Todo
	require.NoError(t, json.Unmarshal(data, &todo))

	assert.Equal(t, "t1", todo.ID)
	assert.Equal(t, "u1", todo.UserID)
	assert.Equal(t, "Отчет", todo.Title)
	assert.Equal(t, "c1", todo.CategoryID)
	assert.Equal(t, "2024-03-01", todo.StartDate)
	assert.Equal(t, "2024-03-01", todo.EndDate)
	assert.Equal(t, RepeatWeekly, todo.Repeat)
	assert.False(t, todo.IsPublic)
	assert.Equal(t, "до обеда", todo.Memo)
	assert.True(t, todo.Done)
}

// Старые записи приходят в разнобой: camelCase-ключи, строковые булевы,
// альтернативные имена полей. Все формы должны сходиться к одной структуре.
func TestTodoUnmarshalLooseSchema(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantPublic bool
		wantDone   bool
	}{
		{
			name:       "isPublic as bool",
			data:       `{"title":"a","isPublic":false}`,
			wantPublic: false,
		},
		{
			name:       "public as string true",
			data:       `{"title":"a","public":"true"}`,
			wantPublic: true,
		},
		{
			name:       "public as string false",
			data:       `{"title":"a","public":"false"}`,
			wantPublic: false,
		},
		{
			name:       "missing flag defaults to public",
			data:       `{"title":"a"}`,
			wantPublic: true,
		},
		{
			name:       "null flag defaults to public",
			data:       `{"title":"a","is_public":null}`,
			wantPublic: true,
		},
		{
			name:       "garbage flag falls back to default",
			data:       `{"title":"a","is_public":42}`,
			wantPublic: true,
		},
		{
			name:       "done as string",
			data:       `{"title":"a","done":"true"}`,
			wantPublic: true,
			wantDone:   true,
		},
		{
			name:       "missing done defaults to false",
			data:       `{"title":"a"}`,
			wantPublic: true,
			wantDone:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var todo Todo
			require.NoError(t, json.Unmarshal([]byte(tt.data), &todo))
			assert.Equal(t, tt.wantPublic, todo.IsPublic)
			assert.Equal(t, tt.wantDone, todo.Done)
		})
	}
}

func TestTodoUnmarshalAlternateKeys(t *testing.T) {
	data := []byte(`{
		"uid": "u1",
		"title": "a",
		"categoryId": "c1",
		"categoryName": "Работа",
		"startDate": "2024-03-01",
		"endDate": "2024-03-05",
		"repeat": "unknown-tag"
	}`)

	var todo Todo
	require.NoError(t, json.Unmarshal(data, &todo))

	assert.Equal(t, "u1", todo.UserID)
	assert.Equal(t, "c1", todo.CategoryID)
	assert.Equal(t, "Работа", todo.CategoryName)
	assert.Equal(t, "2024-03-01", todo.StartDate)
	assert.Equal(t, "2024-03-05", todo.EndDate)
	assert.Equal(t, RepeatNone, todo.Repeat)
}

func TestTodoUnmarshalCanonicalWinsOverAlternate(t *testing.T) {
	data := []byte(`{"title":"a","category_id":"canon","categoryId":"alt"}`)

	var todo Todo
	require.NoError(t, json.Unmarshal(data, &todo))
	assert.Equal(t, "canon", todo.CategoryID)
}

func TestGenerateID(t *testing.T) {
	var todo Todo
	todo.GenerateID()
	require.NotEmpty(t, todo.ID)

	id := todo.ID
	todo.GenerateID()
	assert.Equal(t, id, todo.ID, "существующий id не перезаписывается")
}
