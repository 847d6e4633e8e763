package domain

// DarkModeKey - ключ, под которым хранится флаг темной темы.
const DarkModeKey = "darkMode"

const (
	darkModeBodyClass = "dark-mode"
	iconMoon          = "fa-moon"
	iconSun           = "fa-sun"
)

type Theme struct {
	Dark bool
}

// ThemeFromStored интерпретирует сохраненное значение: темная тема только для "true".
func ThemeFromStored(value string, ok bool) Theme {
	return Theme{Dark: ok && value == "true"}
}

func (t Theme) Toggle() Theme {
	return Theme{Dark: !t.Dark}
}

// StoredValue - значение для хранилища предпочтений.
func (t Theme) StoredValue() string {
	if t.Dark {
		return "true"
	}
	return "false"
}

func (t Theme) BodyClass() string {
	if t.Dark {
		return darkModeBodyClass
	}
	return ""
}

func (t Theme) Icon() string {
	if t.Dark {
		return iconSun
	}
	return iconMoon
}
