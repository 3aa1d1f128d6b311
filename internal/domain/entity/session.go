package entity

// Roles válidos para Session.
const (
	RoleAdmin = "admin"
)

// Nombre fijo del usuario demo.
const DemoUserName = "Admin User"

// Session identidad autenticada de un Workspace. Se persiste como JSON en el slot clave/valor.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// SessionState estados de la máquina de gating.
type SessionState int

const (
	StateLoading SessionState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
