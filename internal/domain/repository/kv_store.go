package repository

import "context"

// KeyValueStore define el puerto de persistencia clave/valor donde vive el slot de sesión.
// Get devuelve ok=false (sin error) cuando la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
