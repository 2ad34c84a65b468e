package domain

import "time"

// Session representa um operador autenticado no bot.
// Existe no máximo uma sessão por user_id; um novo login sobrescreve a anterior.
type Session struct {
	UserID       int64
	Username     string
	LoginTime    time.Time
	LastActivity time.Time
}
