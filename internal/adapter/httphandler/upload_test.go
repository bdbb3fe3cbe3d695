package httphandler_test

import (
	"database/sql/driver"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/niksmo/product-service/internal/adapter/httphandler"
	"github.com/niksmo/product-service/internal/adapter/storage"
	"github.com/niksmo/product-service/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedName matches any non-empty string argument and keeps it.
type capturedName struct {
	value string
}

func (c *capturedName) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == "" {
		return false
	}
	c.value = s
	return true
}

func TestUploadedPhotoIsServed(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	photoDir, err := storage.NewPhotoDir(t.TempDir())
	require.NoError(t, err)

	svc := service.New(storage.NewProductsRepository(db), photoDir, nil)
	router := httphandler.NewRouter(
		httphandler.RouterConfig{PhotoURLPath: "/photo", PhotoDir: photoDir.Dir()},
		svc,
		new(MockHealthChecker),
	)
	do := func(r *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	photoName := new(capturedName)
	sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO product")).
		WithArgs("Widget", "5", "9.99", photoName).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	r := multipartRequest(t, http.MethodPost, "/createProduct",
		map[string]string{"name": "Widget", "quantity": "5", "price": "9.99"},
		&formFile{"photo", "widget.png", "png-bytes"})
	w := do(r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"data": {"id": 1}}`, w.Body.String())
	require.True(t, strings.HasSuffix(photoName.value, "-widget.png"))

	sqlMock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, quantity, price, photo FROM product",
	)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "quantity", "price", "photo"}).
			AddRow(int64(1), "Widget", "5", "9.99", photoName.value),
	)

	w = do(httptest.NewRequest(http.MethodGet, "/getProduct", nil))
	require.Equal(t, http.StatusOK, w.Code)
	products := decodeBody(t, w)["products"].([]any)
	require.Len(t, products, 1)
	listed := products[0].(map[string]any)["photo"].(string)
	assert.Equal(t, photoName.value, listed)

	w = do(httptest.NewRequest(http.MethodGet, "/photo/"+listed, nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
