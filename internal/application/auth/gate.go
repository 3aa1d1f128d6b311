package auth

import (
	"path"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

// Superficies relevantes para el gating.
const (
	LoginPath   = "/login"
	DefaultPath = "/"
)

// Decide aplica la máquina de gating: sin sesión fuera del login → login; con sesión en el
// login → superficie por defecto. En Loading nunca redirige.
func Decide(state entity.SessionState, location string) (target string, redirect bool) {
	onLogin := IsLoginSurface(location)
	switch state {
	case entity.StateUnauthenticated:
		if !onLogin {
			return LoginPath, true
		}
	case entity.StateAuthenticated:
		if onLogin {
			return DefaultPath, true
		}
	}
	return "", false
}

// IsLoginSurface informa si la ruta es la superficie de login.
func IsLoginSurface(location string) bool {
	if location == "" {
		return false
	}
	return path.Clean("/"+location) == LoginPath
}
