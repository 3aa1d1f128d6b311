package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// SessionResponse sesión actual del Workspace.
type SessionResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse salida de login: el client token (usable como Bearer) y la sesión.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// MeResponse estado de gating y sesión.
type MeResponse struct {
	State   string           `json:"state"`
	Pending bool             `json:"pending"`
	Session *SessionResponse `json:"session,omitempty"`
}

// NotificationResponse aviso de la cabecera.
type NotificationResponse struct {
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	UserName  string    `json:"user_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
