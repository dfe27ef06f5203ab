package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "valid key", key: "2024-02-29", wantErr: false},
		{name: "valid first day", key: "2024-01-01", wantErr: false},
		{name: "missing leading zeros", key: "2024-2-9", wantErr: true},
		{name: "wrong separator", key: "2024/02/09", wantErr: true},
		{name: "not a date", key: "9999-99-99", wantErr: true},
		{name: "nonexistent day", key: "2023-02-29", wantErr: true},
		{name: "empty", key: "", wantErr: true},
		{name: "trailing garbage", key: "2024-02-09x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, FormatKey(parsed))
		})
	}
}

func TestSanitizeKey(t *testing.T) {
	fallback := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-02-29", SanitizeKey("2024-02-29", fallback))
	assert.Equal(t, "2024-03-15", SanitizeKey("oops", fallback))
	assert.Equal(t, "2024-03-15", SanitizeKey("", fallback))
}

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		key   string
		want  bool
	}{
		{name: "inside range", start: "2024-03-01", end: "2024-03-10", key: "2024-03-05", want: true},
		{name: "start is inclusive", start: "2024-03-01", end: "2024-03-10", key: "2024-03-01", want: true},
		{name: "end is inclusive", start: "2024-03-01", end: "2024-03-10", key: "2024-03-10", want: true},
		{name: "day before", start: "2024-03-01", end: "2024-03-10", key: "2024-02-29", want: false},
		{name: "day after", start: "2024-03-01", end: "2024-03-10", key: "2024-03-11", want: false},
		{name: "single day range", start: "2024-03-01", end: "2024-03-01", key: "2024-03-01", want: true},
		{name: "range across year", start: "2023-12-30", end: "2024-01-02", key: "2024-01-01", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.start, tt.end, tt.key))
		})
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Январь", MonthName(0))
	assert.Equal(t, "Декабрь", MonthName(11))
	// навигация уходит за границы года, имя должно оставаться корректным
	assert.Equal(t, "Декабрь", MonthName(-1))
	assert.Equal(t, "Январь", MonthName(12))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "01.09.2026, вторник", DisplayDate("2026-09-01"))
	assert.Equal(t, "29.02.2024, четверг", DisplayDate("2024-02-29"))
	// битый ключ возвращается как есть
	assert.Equal(t, "не дата", DisplayDate("не дата"))
}
