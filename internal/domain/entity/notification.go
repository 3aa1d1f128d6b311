package entity

import "time"

// Tipos de notificación.
const (
	NotificationLogin   = "login"
	NotificationWarning = "warning"
	NotificationInfo    = "info"
)

// Notification aviso mostrado en la cabecera del panel.
type Notification struct {
	Kind      string
	Title     string
	Message   string
	UserName  string // vacío si no aplica
	CreatedAt time.Time
}
