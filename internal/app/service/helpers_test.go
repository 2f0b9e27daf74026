package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/ikkim/printcraft-backend/config"
	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testUserID uint = 7

var testMediaConfig = config.MediaConfig{
	MaxUploadBytes:      1 << 20,
	AllowedContentTypes: []string{"image/jpeg", "image/png", "image/gif"},
	Folder:              "designs",
}

// memoryUploader stands in for S3.
type memoryUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newMemoryUploader() *memoryUploader {
	return &memoryUploader{objects: map[string][]byte{}}
}

func (u *memoryUploader) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (u *memoryUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

// stubMedia resolves attachments from a map; err, when set, is returned for every id.
type stubMedia struct {
	attachments map[uint]*model.Attachment
	err         error
	calls       int
}

func (m *stubMedia) Resolve(ctx context.Context, id uint) (*model.Attachment, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.attachments[id]
	if !ok {
		return nil, ErrAttachmentNotFound
	}
	return a, nil
}

func newStubMedia() *stubMedia {
	return &stubMedia{attachments: map[uint]*model.Attachment{
		1: {ID: 1, ContentType: "image/png"},
		2: {ID: 2, ContentType: "image/jpeg"},
		3: {ID: 3, ContentType: "application/pdf"},
	}}
}

type fixture struct {
	db         *gorm.DB
	components *Components
	uploader   *memoryUploader
	product    *model.Product
	variant    *model.ProductVariant
	image      *model.Attachment
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	uploader := newMemoryUploader()
	components := NewComponents(Dependencies{
		DB:       testDB,
		Uploader: uploader,
		Media:    testMediaConfig,
	})

	product := &model.Product{
		Name:          "Classic Tee",
		Customizable:  true,
		StockQuantity: 10,
		Variants: []model.ProductVariant{
			{Name: "size", Value: "L", StockQuantity: 5},
		},
	}
	require.NoError(t, components.Products.CreateProduct(product))

	img := &model.Attachment{
		StorageKey:  "designs/fixture.png",
		URL:         "https://cdn.test/designs/fixture.png",
		Filename:    "fixture.png",
		ContentType: "image/png",
		Width:       400,
		Height:      400,
	}
	require.NoError(t, testDB.Create(img).Error)

	return &fixture{
		db:         testDB,
		components: components,
		uploader:   uploader,
		product:    product,
		variant:    &product.Variants[0],
		image:      img,
	}
}

func (f *fixture) setArea(t *testing.T, variantID *uint, x, y, w, h float64) {
	t.Helper()
	_, err := f.components.PrintAreas.Set(context.Background(), f.product.ID, variantID, "", model.PrintAreaInput{
		X: &x, Y: &y, W: &w, H: &h,
	})
	require.NoError(t, err)
}

// submission decodes a JSON design the way the HTTP layer does.
func submission(t *testing.T, raw string) *model.DesignSubmission {
	t.Helper()
	var sub model.DesignSubmission
	require.NoError(t, json.Unmarshal([]byte(raw), &sub))
	return &sub
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func designCode(t *testing.T, err error) string {
	t.Helper()
	de, ok := AsDesignError(err)
	require.True(t, ok, "expected a design error, got %v", err)
	return de.Code
}

var errBoom = errors.New("boom")

func uintPtr(v uint) *uint { return &v }
