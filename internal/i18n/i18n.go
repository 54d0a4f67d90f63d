// Package i18n translates the tray menu and notification strings.
package i18n

import (
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

var (
	lang     = "en"
	langLock sync.RWMutex
)

var translations = map[string]map[string]string{
	"Start": {
		"ru": "Старт",
	},
	"Pause": {
		"ru": "Пауза",
	},
	"Reset": {
		"ru": "Сброс",
	},
	"Quit": {
		"ru": "Выход",
	},
	"Work duration: %s": {
		"ru": "Длительность работы: %s",
	},
	"Adjust duration…": {
		"ru": "Изменить длительность…",
	},
	"Notification sound:": {
		"ru": "Звук уведомления:",
	},
	"Off": {
		"ru": "Выкл",
	},
	"Work session ended": {
		"ru": "Рабочая сессия завершена",
	},
	"Time to take a break or start again.": {
		"ru": "Пора отдохнуть или начать заново.",
	},
	"Pomodoro Settings": {
		"ru": "Настройки помодоро",
	},
	"Break duration: %d min": {
		"ru": "Длительность перерыва: %d мин",
	},
	"Changes save automatically.": {
		"ru": "Изменения сохраняются автоматически.",
	},
	"Start next session": {
		"ru": "Начать следующую сессию",
	},
	"Dismiss": {
		"ru": "Закрыть",
	},
	"min": {
		"ru": "мин",
	},
	"h": {
		"ru": "ч",
	},
	"m": {
		"ru": "м",
	},
}

// Detect picks the UI language. A non-empty override wins, otherwise the
// first system locale is used. Unsupported languages fall back to English.
func Detect(override string) string {
	if forced := strings.TrimSpace(override); forced != "" {
		SetLang(forced)
		return GetLang()
	}

	userLocales, err := locale.GetLocales()
	if err != nil || len(userLocales) == 0 {
		SetLang("en")
		return GetLang()
	}

	SetLang(userLocales[0])
	return GetLang()
}

// SetLang sets the active language from a locale tag such as "ru_RU" or "en-US".
func SetLang(tag string) {
	normalized := normalize(tag)
	langLock.Lock()
	lang = normalized
	langLock.Unlock()
}

// GetLang returns the active language code.
func GetLang() string {
	langLock.RLock()
	defer langLock.RUnlock()
	return lang
}

// T translates key into the active language, returning key when no
// translation exists.
func T(key string) string {
	current := GetLang()
	if translated, ok := translations[key][current]; ok {
		return translated
	}
	return key
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch {
	case strings.HasPrefix(tag, "ru"):
		return "ru"
	default:
		return "en"
	}
}
