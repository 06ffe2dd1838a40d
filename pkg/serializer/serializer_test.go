package serializer_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Astemirdum/library-lending/pkg/serializer"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookID int     `json:"bookId"`
	ISBN   *string `json:"isbn"`
}

func TestJSONSerializer(t *testing.T) {
	t.Parallel()
	e := echo.New()
	e.JSONSerializer = serializer.JSONSerializer{}

	t.Run("serialize", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", http.NoBody), w)
		require.NoError(t, c.JSON(http.StatusOK, payload{BookID: 7}))
		require.Equal(t, `{"bookId":7,"isbn":null}`, strings.Trim(w.Body.String(), "\n"))
	})

	t.Run("deserialize", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bookId":3,"isbn":"439023"}`))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(r, httptest.NewRecorder())
		var p payload
		require.NoError(t, c.Bind(&p))
		require.Equal(t, 3, p.BookID)
		require.Equal(t, "439023", *p.ISBN)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"bookId":`))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := e.NewContext(r, httptest.NewRecorder())
		var p payload
		err := c.Bind(&p)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}
