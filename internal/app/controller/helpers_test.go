package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/printcraft-backend/config"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/app/service"
	"github.com/ikkim/printcraft-backend/internal/db"
	"github.com/ikkim/printcraft-backend/internal/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID uint = 11

type fakeUploader struct {
	err error
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	_, _ = io.Copy(io.Discard, body)
	return "https://cdn.test/" + key, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

type testEnv struct {
	db         *gorm.DB
	components *service.Components
	uploader   *fakeUploader
	router     *gin.Engine
	product    *model.Product
	variant    *model.ProductVariant
	image      *model.Attachment
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	uploader := &fakeUploader{}
	components := service.NewComponents(service.Dependencies{
		DB:       testDB,
		Uploader: uploader,
		Media: config.MediaConfig{
			MaxUploadBytes:      1 << 20,
			AllowedContentTypes: []string{"image/png", "image/jpeg"},
			Folder:              "designs",
		},
	})

	product := &model.Product{
		Name:          "Classic Tee",
		Customizable:  true,
		StockQuantity: 10,
		Variants:      []model.ProductVariant{{Name: "size", Value: "M", StockQuantity: 4}},
	}
	require.NoError(t, components.Products.CreateProduct(product))

	img := &model.Attachment{
		StorageKey:  "designs/a.png",
		URL:         "https://cdn.test/designs/a.png",
		ContentType: "image/png",
	}
	require.NoError(t, testDB.Create(img).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return &testEnv{
		db:         testDB,
		components: components,
		uploader:   uploader,
		router:     router,
		product:    product,
		variant:    &product.Variants[0],
		image:      img,
	}
}

// asUser stands in for the auth middleware.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, middleware.RoleCustomer)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (e *testEnv) setArea(t *testing.T, variantID *uint, x, y, w, h float64) {
	t.Helper()
	_, err := e.components.PrintAreas.Set(context.Background(), e.product.ID, variantID, "", model.PrintAreaInput{
		X: &x, Y: &y, W: &w, H: &h,
	})
	require.NoError(t, err)
}
