package i18n

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New()
	require.NoError(t, err)
	return tr
}

func TestLocalizer_FallbackToEnglish(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Server is up and running", tr.Localizer().T("server_running"))
	assert.Equal(t, "Server is up and running", tr.Localizer("fr").T("server_running"))
}

func TestLocalizer_Arabic(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "الخادم يعمل", tr.Localizer("ar").T("server_running"))
	assert.Equal(t, "الخادم يعمل", tr.Localizer("ar-SA,ar;q=0.9,en;q=0.8").T("server_running"))
}

func TestLocalizer_Interpolation(t *testing.T) {
	tr := newTranslator(t)

	got := tr.Localizer("en").T("welcome_message", Args{"name": "Alice"})
	assert.Equal(t, "Welcome back, Alice!", got)
}

func TestLocalizer_UnknownKey(t *testing.T) {
	tr := newTranslator(t)
	assert.Equal(t, "no_such_key", tr.Localizer("en").T("no_such_key"))
}

func TestMiddleware_QueryBeatsHeader(t *testing.T) {
	tr := newTranslator(t)

	app := fiber.New()
	app.Use(Middleware(tr))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(FromCtx(c).T("server_running"))
	})

	req := httptest.NewRequest("GET", "/?lng=ar", nil)
	req.Header.Set("Accept-Language", "en")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "الخادم يعمل", string(body))
}
