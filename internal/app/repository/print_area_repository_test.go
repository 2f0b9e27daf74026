package repository

import (
	"testing"

	"github.com/ikkim/printcraft-backend/internal/app/model"
	"github.com/ikkim/printcraft-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPrintAreaTest(t *testing.T) (*gorm.DB, PrintAreaRepository, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	product := &model.Product{Name: "Poster", Customizable: true}
	require.NoError(t, testDB.Create(product).Error)

	return testDB, NewPrintAreaRepository(testDB), product
}

func TestPrintAreaRepository_FindForScopeEmpty(t *testing.T) {
	testDB, repo, product := setupPrintAreaTest(t)
	defer db.CleanupTestDB(testDB)

	area, err := repo.FindForScope(product.ID, 0)
	assert.NoError(t, err)
	assert.Nil(t, area)
}

func TestPrintAreaRepository_UpsertOverwrites(t *testing.T) {
	testDB, repo, product := setupPrintAreaTest(t)
	defer db.CleanupTestDB(testDB)

	first := &model.PrintArea{ProductID: product.ID, X: 0.1, Y: 0.1, W: 0.5, H: 0.5}
	require.NoError(t, repo.Upsert(first))
	assert.Equal(t, model.DefaultPrintAreaName, first.Name)

	second := &model.PrintArea{ProductID: product.ID, X: 0.2, Y: 0.2, W: 0.6, H: 0.6}
	require.NoError(t, repo.Upsert(second))
	assert.Equal(t, first.ID, second.ID)

	areas, err := repo.FindByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, 0.6, areas[0].W)
}

func TestPrintAreaRepository_ScopesAreSeparate(t *testing.T) {
	testDB, repo, product := setupPrintAreaTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Upsert(&model.PrintArea{ProductID: product.ID, W: 1, H: 1}))
	require.NoError(t, repo.Upsert(&model.PrintArea{ProductID: product.ID, VariantID: 5, X: 0.3, Y: 0.3, W: 0.4, H: 0.4}))

	productArea, err := repo.FindForScope(product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, productArea.W)

	variantArea, err := repo.FindForScope(product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0.4, variantArea.W)

	missing, err := repo.FindForScope(product.ID, 6)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPrintAreaRepository_FirstInsertedNameWins(t *testing.T) {
	testDB, repo, product := setupPrintAreaTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Upsert(&model.PrintArea{ProductID: product.ID, Name: "front", X: 0.1, W: 0.5, H: 0.5}))
	require.NoError(t, repo.Upsert(&model.PrintArea{ProductID: product.ID, Name: "back", X: 0.3, W: 0.5, H: 0.5}))

	area, err := repo.FindForScope(product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "front", area.Name)
}
