package models

// Roles as the backend encodes them in the session token.
const (
	RolAdmin   = "admin"
	RolCocina  = "cocina"
	RolReparto = "reparto"
	RolCliente = "cliente"
)

// Usuario is the identity the backend returns on login: readable client-side
// for routing and display only. The backend re-checks the role on every call.
type Usuario struct {
	ID     int    `json:"id"`
	Rol    string `json:"rol"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
}

type Empleado struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Rol      string `json:"rol"`
	ZonaID   *int   `json:"zona_id,omitempty"`
	Activo   bool   `json:"activo"`
}

type Cliente struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	ZonaID    *int   `json:"zona_id,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Nombre    string `json:"nombre" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Telefono  string `json:"telefono" binding:"required"`
	Direccion string `json:"direccion" binding:"required"`
	ZonaID    *int   `json:"zona_id,omitempty"`
}

// LoginResponse is the backend's auth payload: an opaque bearer token plus the
// user record the console keeps in the session cookie.
type LoginResponse struct {
	Token   string  `json:"token"`
	Usuario Usuario `json:"usuario"`
}
