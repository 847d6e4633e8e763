package port

// PreferenceStore - хранилище пользовательских настроек (аналог localStorage).
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key, value string)
}
