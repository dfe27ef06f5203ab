package calendar

import (
	"fmt"
	"regexp"
	"time"
)

// KeyLayout — канонический формат ключа дня. Формат фиксированной ширины
// с ведущими нулями, поэтому строковое сравнение ключей совпадает с
// хронологическим.
const KeyLayout = "2006-01-02"

var keyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// FormatKey форматирует момент времени в ключ дня
func FormatKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey разбирает ключ дня в полночь UTC
func ParseKey(key string) (time.Time, error) {
	if !keyPattern.MatchString(key) {
		return time.Time{}, fmt.Errorf("некорректный ключ дня: %q", key)
	}
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректный ключ дня: %q", key)
	}
	return t, nil
}

// SanitizeKey проверяет ключ из внешнего источника (параметр команды,
// callback-данные) и подменяет его резервным днем, если формат не совпал
func SanitizeKey(raw string, fallback time.Time) string {
	if _, err := ParseKey(raw); err != nil {
		return FormatKey(fallback)
	}
	return raw
}

// Contains сообщает, попадает ли день key в интервал [start, end] включительно
func Contains(start, end, key string) bool {
	return start <= key && key <= end
}

// Today — ключ сегодняшнего дня в локальном времени
func Today() string {
	return FormatKey(time.Now())
}

var monthNames = []string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// MonthName — название месяца (месяц с нуля)
func MonthName(month0 int) string {
	return monthNames[((month0%12)+12)%12]
}

var weekdayNames = []string{
	"воскресенье", "понедельник", "вторник", "среда",
	"четверг", "пятница", "суббота",
}

// DisplayDate — ключ дня в виде «01.09.2026, понедельник».
// Битый ключ возвращается как есть: функция используется при отрисовке.
func DisplayDate(key string) string {
	t, err := ParseKey(key)
	if err != nil {
		return key
	}
	return t.Format("02.01.2006") + ", " + weekdayNames[int(t.Weekday())]
}
