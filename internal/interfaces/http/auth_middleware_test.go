package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/stock-ledger/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "company-1"
	testIssuer    = "stock-ledger-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware y un
// handler dummy que devuelve el Actor si pasa el middleware.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			actor, ok := apphttp.ActorFrom(c)
			return c.JSON(fiber.Map{
				"ok":         ok,
				"user_id":    actor.UserID,
				"company_id": actor.CompanyID,
			})
		},
	)
	return app
}

func bearer(t *testing.T, companyID string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, companyID, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Caso 1: token válido → pasa y el Actor lleva usuario y empresa.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	resp := doRequest(t, buildTestApp(), bearer(t, testCompanyID, testExpMin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
}

// Caso 2: sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Caso 3: formato distinto de "Bearer <token>" → 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	resp := doRequest(t, buildTestApp(), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 4: firma con otro secreto → 401.
func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, testCompanyID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token expirado → 401.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	resp := doRequest(t, buildTestApp(), bearer(t, testCompanyID, -5))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: token sin empresa → 401; el ledger siempre opera dentro de una empresa.
func TestAuthMiddleware_TokenSinEmpresa(t *testing.T) {
	resp := doRequest(t, buildTestApp(), bearer(t, "", testExpMin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}
