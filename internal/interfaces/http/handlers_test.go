package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/application/panel"
	pkgjwt "github.com/jhoicas/catalog-admin/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Login / logout (páginas)
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginForm_CredencialesInvalidasNoCreaSesion(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.anonymousCookie(t)

	resp := env.do(t, formRequest(http.MethodPost, "/login", url.Values{
		"email":    {testEmail},
		"password": {"12345"},
	}, cookie))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Email o contraseña inválidos")

	resp = env.do(t, pageRequest("/", cookie))
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginForm_ExitoPersisteSesion(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, pageRequest("/", cookie))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Admin User")
	assert.Contains(t, body, "Inicio de sesión exitoso")
}

func TestLogoutForm_VuelveAlLoginYBloqueaPaginas(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, formRequest(http.MethodPost, "/logout", url.Values{}, cookie))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = env.do(t, pageRequest("/categories", cookie))
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestSesion_SobreviveReinicioDelRegistro(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	// Un registro vacío equivale a un reinicio del proceso: el slot persiste.
	env.registry.Close()
	resp := env.do(t, pageRequest("/", cookie))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Bienvenido de nuevo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Páginas de categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_MuestraTotales(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	body := readBody(t, env.do(t, pageRequest("/", cookie)))

	totals := env.store.Totals()
	assert.Equal(t, 5, totals.Categories)
	assert.Contains(t, body, "<dd>5</dd>")
	assert.Contains(t, body, "<dd>26</dd>")
}

func TestCategoriesPage_RenderizaGrilla(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, pageRequest("/categories", cookie))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	for _, name := range []string{"Electrónica", "Ropa", "Hogar y Cocina", "Deportes", "Libros"} {
		assert.Contains(t, body, name)
	}
	assert.Contains(t, body, `<span class="badge">5</span>`)
	assert.NotContains(t, body, "<dialog")
}

func TestCategoriesPage_ModalPorQuery(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	body := readBody(t, env.do(t, pageRequest("/categories?modal=add", cookie)))
	assert.Contains(t, body, `aria-label="Agregar categoría"`)
	assert.Contains(t, body, `<form method="post" action="/categories">`)

	body = readBody(t, env.do(t, pageRequest("/categories?modal=edit&id=1", cookie)))
	assert.Contains(t, body, `action="/categories/1/edit"`)

	body = readBody(t, env.do(t, pageRequest("/categories?modal=delete&id=2", cookie)))
	assert.Contains(t, body, "¿Eliminar la categoría «Ropa»?")
}

func TestCategoriesPage_ModalDeCategoriaInexistentePublicaError(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	body := readBody(t, env.do(t, pageRequest("/categories?modal=edit&id=no-existe", cookie)))

	assert.NotContains(t, body, "<dialog")
	assert.Contains(t, body, "categoría no encontrada")
}

func TestOpen_TarjetaNavegaAlDetalle(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, pageRequest("/categories/3/open?from=card", cookie))

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/categories/3", resp.Header.Get("Location"))
}

func TestOpen_ControlesNoNavegan(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, pageRequest("/categories/3/open?from=edit", cookie))
	assert.Equal(t, "/categories?id=3&modal=edit", resp.Header.Get("Location"))

	resp = env.do(t, pageRequest("/categories/3/open?from=delete", cookie))
	assert.Equal(t, "/categories?id=3&modal=delete", resp.Header.Get("Location"))
}

func TestDetail_MuestraCategoria(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, pageRequest("/categories/5", cookie))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "<h2>Libros</h2>")
}

func TestDetail_InexistenteVuelveALaGrilla(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, pageRequest("/categories/no-existe", cookie))

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/categories", resp.Header.Get("Location"))
	body := readBody(t, env.do(t, pageRequest("/categories", cookie)))
	assert.Contains(t, body, "categoría no encontrada")
}

func TestCreateForm_AgregaYMuestraFeedback(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	resp := env.do(t, formRequest(http.MethodPost, "/categories", url.Values{"name": {"  Juguetes  "}}, cookie))
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	body := readBody(t, env.do(t, pageRequest("/categories", cookie)))
	assert.Contains(t, body, "Juguetes")
	assert.Contains(t, body, panel.MsgAdded)
	assert.Equal(t, 6, env.store.Len())
}

func TestCreateForm_NombreVacioPublicaError(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	env.do(t, formRequest(http.MethodPost, "/categories", url.Values{"name": {"   "}}, cookie))

	body := readBody(t, env.do(t, pageRequest("/categories", cookie)))
	assert.Contains(t, body, "el nombre de la categoría no puede estar vacío")
	assert.Equal(t, 5, env.store.Len())
}

func TestEditForm_Renombra(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	env.do(t, formRequest(http.MethodPost, "/categories/2/edit", url.Values{"name": {"Indumentaria"}}, cookie))

	assert.Equal(t, "Indumentaria", env.store.Get("2").Name)
	assert.Contains(t, readBody(t, env.do(t, pageRequest("/categories", cookie))), panel.MsgUpdated)
}

func TestDeleteForm_Elimina(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)

	env.do(t, formRequest(http.MethodPost, "/categories/4/delete", url.Values{}, cookie))

	assert.Nil(t, env.store.Get("4"))
	assert.Contains(t, readBody(t, env.do(t, pageRequest("/categories", cookie))), "Categoría «Deportes» eliminada correctamente")
}

// malformedRequest POST con un cuerpo JSON truncado.
func malformedRequest(target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	return req
}

func TestCreateForm_CuerpoIlegiblePublicaError(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)
	req := malformedRequest("/categories", cookie)

	resp := env.do(t, req)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/categories", resp.Header.Get("Location"))
	body := readBody(t, env.do(t, pageRequest("/categories", cookie)))
	assert.Contains(t, body, "No se pudo leer el formulario")
	assert.NotContains(t, body, "el nombre de la categoría no puede estar vacío")
	assert.Equal(t, 5, env.store.Len())
}

func TestEditForm_CuerpoIlegibleNoRenombra(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.loginPage(t)
	req := malformedRequest("/categories/2/edit", cookie)

	env.do(t, req)

	assert.Equal(t, "Ropa", env.store.Get("2").Name)
	assert.Contains(t, readBody(t, env.do(t, pageRequest("/categories", cookie))), "No se pudo leer el formulario")
}

// fiberConfigs ejecuta el caso con y sin Immutable: los valores que cruzan al dominio deben
// sobrevivir a la reutilización del buffer del request en ambos casos.
var fiberConfigs = []struct {
	name string
	cfg  fiber.Config
}{
	{"immutable", fiber.Config{Immutable: true}},
	{"mutable", fiber.Config{}},
}

// churn envía requests de formulario que reutilizan los buffers de fasthttp.
func churn(t *testing.T, env *testEnv, cookie *http.Cookie, value string) {
	t.Helper()
	for i := 0; i < 20; i++ {
		env.do(t, formRequest(http.MethodPost, "/categories/no-existe/edit", url.Values{"name": {value}}, cookie))
	}
}

func TestCreateForm_NombreEstableTrasOtrosRequests(t *testing.T) {
	for _, tc := range fiberConfigs {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnvWith(t, tc.cfg)
			cookie := env.loginPage(t)
			env.do(t, formRequest(http.MethodPost, "/categories", url.Values{"name": {"Juguetes"}}, cookie))
			list := env.store.List()
			require.Len(t, list, 6)
			id := list[5].ID

			churn(t, env, cookie, "XXXXXXXX")

			assert.Equal(t, "Juguetes", env.store.Get(id).Name)
		})
	}
}

func TestEditForm_NombreEstableTrasOtrosRequests(t *testing.T) {
	for _, tc := range fiberConfigs {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnvWith(t, tc.cfg)
			cookie := env.loginPage(t)
			env.do(t, formRequest(http.MethodPost, "/categories/2/edit", url.Values{"name": {"Indumentaria"}}, cookie))

			churn(t, env, cookie, "XXXXXXXXXXXX")

			assert.Equal(t, "Indumentaria", env.store.Get("2").Name)
		})
	}
}

func TestLoginForm_EmailEstableTrasOtrosRequests(t *testing.T) {
	for _, tc := range fiberConfigs {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnvWith(t, tc.cfg)
			cookie := env.loginPage(t)

			churn(t, env, cookie, strings.Repeat("z", 40))

			clientID, err := pkgjwt.Parse(testJWTSecret, cookie.Value)
			require.NoError(t, err)
			session := env.registry.Get(context.Background(), clientID).Session.Current()
			require.NotNil(t, session)
			assert.Equal(t, testEmail, session.Email)
		})
	}
}

func TestMutaciones_SinSesionNoTocanElCatalogo(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.anonymousCookie(t)

	resp := env.do(t, formRequest(http.MethodPost, "/categories/1/delete", url.Values{}, cookie))

	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.NotNil(t, env.store.Get("1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON
// ──────────────────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestAPILogin_CredencialesInvalidas401(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, bearerRequest(http.MethodPost, "/api/auth/login", "",
		jsonBody(t, dto.LoginRequest{Email: "", Password: "secreto123"})))

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp).Code)
}

func TestAPIMe_ConSesion(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodGet, "/api/auth/me", tok, nil))

	var me dto.MeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "authenticated", me.State)
	require.NotNil(t, me.Session)
	assert.Equal(t, testEmail, me.Session.Email)
	assert.Equal(t, "Admin User", me.Session.Name)
	assert.Equal(t, "admin", me.Session.Role)
}

func TestAPILogout_BorraSesion(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodPost, "/api/auth/logout", tok, nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, bearerRequest(http.MethodGet, "/api/categories", tok, nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPICategories_ListaEnOrden(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodGet, "/api/categories", tok, nil))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CategoryListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 5)
	assert.Equal(t, "Electrónica", out.Items[0].Name)
	assert.Equal(t, "Libros", out.Items[4].Name)
	assert.Equal(t, 5, out.Totals.Categories)
}

func TestAPICategories_CrearDevuelveFeedback(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodPost, "/api/categories", tok,
		jsonBody(t, dto.CreateCategoryRequest{Name: "Mascotas"})))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CategoryMutationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, panel.MsgAdded, out.Feedback.Message)
	assert.Equal(t, "success", out.Feedback.Kind)
	require.NotNil(t, out.Category)
	assert.Equal(t, "Mascotas", out.Category.Name)
	assert.Zero(t, out.Category.Products)
	assert.NotEmpty(t, out.Category.ID)
}

func TestAPICategories_NombreVacio400(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodPost, "/api/categories", tok,
		jsonBody(t, dto.CreateCategoryRequest{Name: " \t "})))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	require.NotNil(t, out.Feedback)
	assert.Equal(t, "error", out.Feedback.Kind)
	assert.Equal(t, 5, env.store.Len())
}

func TestAPICategories_GetInexistente404(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodGet, "/api/categories/nope", tok, nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPICategories_ActualizarInexistente404(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodPut, "/api/categories/nope", tok,
		jsonBody(t, dto.UpdateCategoryRequest{Name: "X"})))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "categoría no encontrada", decodeError(t, resp).Message)
}

func TestAPICategories_EliminarInexistenteMantieneColeccion(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodDelete, "/api/categories/nope", tok, nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	out := decodeError(t, resp)
	require.NotNil(t, out.Feedback)
	assert.Equal(t, panel.MsgDeleteFailed, out.Feedback.Message)
	assert.Equal(t, 5, env.store.Len())
}

func TestAPICategories_Eliminar(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodDelete, "/api/categories/1", tok, nil))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CategoryMutationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Categoría «Electrónica» eliminada correctamente", out.Feedback.Message)
	assert.Equal(t, 4, env.store.Len())
}

func TestAPINotifications_ListaYLimpia(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodGet, "/api/notifications", tok, nil))
	var list []dto.NotificationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Inicio de sesión exitoso", list[0].Title)
	assert.Equal(t, "Admin User", list[0].UserName)

	resp = env.do(t, bearerRequest(http.MethodDelete, "/api/notifications", tok, nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestExportXML_ETagYNoModificado(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodGet, "/api/categories/export.xml", tok, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)
	body := readBody(t, resp)
	assert.Contains(t, body, `<categories count="5"`)
	assert.Contains(t, body, ">Hogar y Cocina</category>")

	req := bearerRequest(http.MethodGet, "/api/categories/export.xml", tok, nil)
	req.Header.Set("If-None-Match", etag)
	resp = env.do(t, req)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestExportXML_ETagCambiaConElCatalogo(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	first := env.do(t, bearerRequest(http.MethodGet, "/api/categories/export.xml", tok, nil)).Header.Get("ETag")
	_, err := env.store.Add("Jardín")
	require.NoError(t, err)
	second := env.do(t, bearerRequest(http.MethodGet, "/api/categories/export.xml", tok, nil)).Header.Get("ETag")

	assert.NotEqual(t, first, second)
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t)
	tok := env.loginAPI(t)

	resp := env.do(t, bearerRequest(http.MethodGet, "/api/categories/export.pdf", tok, nil))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
}
