package models

// Mode — стратегия выпуска токена
type Mode string

const (
	// ModeFat: класс и объект целиком внутри токена.
	ModeFat Mode = "fat"
	// ModeObject: только объект, класс заведён заранее.
	ModeObject Mode = "object"
	// ModeSkinny: ссылка на заранее заведённый объект.
	ModeSkinny Mode = "skinny"
)
