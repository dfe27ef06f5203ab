package model

import "strings"

// FallbackColor используется, когда категорию задачи не удалось определить
const FallbackColor = "#8ED080"

// ResolveCategory ищет категорию задачи: сначала по id, затем по имени
// (без пробелов по краям). Данные могут быть рассинхронизированы с сервером,
// поэтому промах — штатная ситуация, а не ошибка.
func ResolveCategory(t Todo, categories []Category) (Category, bool) {
	if t.CategoryID != "" {
		for _, c := range categories {
			if c.ID == t.CategoryID {
				return c, true
			}
		}
	}
	if name := strings.TrimSpace(t.CategoryName); name != "" {
		for _, c := range categories {
			if c.Name == name {
				return c, true
			}
		}
	}
	return Category{}, false
}

// ItemColor возвращает цвет задачи для отображения. Функция тотальная:
// вызывается при отрисовке и не должна падать на битых записях.
func ItemColor(t Todo, categories []Category) string {
	if c, ok := ResolveCategory(t, categories); ok && c.Color != "" {
		return c.Color
	}
	if t.Color != "" {
		return t.Color
	}
	return FallbackColor
}
