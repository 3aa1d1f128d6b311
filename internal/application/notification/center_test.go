package notification

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/domain/entity"
)

func TestCenter_MasRecientePrimero(t *testing.T) {
	c := NewCenter(0)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	c.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Second) }

	c.Push(entity.NotificationLogin, "Inicio de sesión exitoso", "Ingresaste al panel de administración.", "Admin User")
	c.Push(entity.NotificationWarning, "Autenticación requerida", "Iniciá sesión para acceder a esta página.", "")

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Autenticación requerida", list[0].Title)
	assert.Equal(t, "Admin User", list[1].UserName)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
}

func TestCenter_Acotado(t *testing.T) {
	c := NewCenter(3)

	for i := 0; i < 5; i++ {
		c.Push(entity.NotificationInfo, fmt.Sprintf("aviso %d", i), "", "")
	}

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "aviso 4", list[0].Title)
	assert.Equal(t, "aviso 2", list[2].Title)
}

func TestCenter_ListEsCopiaYClearVacia(t *testing.T) {
	c := NewCenter(DefaultCapacity)
	c.Push(entity.NotificationInfo, "a", "", "")

	list := c.List()
	list[0].Title = "mutado"
	assert.Equal(t, "a", c.List()[0].Title)

	c.Clear()
	assert.Empty(t, c.List())
}
