package productcontroller

import (
	"fmt"
	"testing"
	"time"

	"github.com/peterdinis/Wheel-Verse/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.CartLine{},
	))
	return db
}

// seedCatalog inserts products with strictly increasing creation times so
// "featured" order is deterministic in assertions.
func seedCatalog(t *testing.T, db *gorm.DB) (mountain, road *models.Category) {
	t.Helper()

	mountain = &models.Category{Name: "Mountain"}
	road = &models.Category{Name: "Road"}
	require.NoError(t, db.Create(mountain).Error)
	require.NoError(t, db.Create(road).Error)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{Name: "Alpine Explorer", Description: "Trail-ready hardtail", Price: 1299, CategoryID: &mountain.ID},
		{Name: "City Cruiser", Description: "Relaxed urban ride", Price: 699},
		{Name: "Road Phantom", Description: "Lightweight racer", Price: 1499, CategoryID: &road.ID},
		{Name: "Summit Pro", Description: "Full-suspension alpine machine", Price: 1899, CategoryID: &mountain.ID},
		{Name: "Gravel Scout", Description: "Mixed-surface all-rounder", Price: 1299, CategoryID: &road.ID},
	}
	for i := range products {
		products[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return mountain, road
}

func names(items []models.Product) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Name
	}
	return out
}

func TestListProducts_NoFilter(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	res, err := ListProducts(db, ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, defaultPageSize, res.PageSize)
	assert.Equal(t,
		[]string{"Alpine Explorer", "City Cruiser", "Road Phantom", "Summit Pro", "Gravel Scout"},
		names(res.Items), "featured keeps creation order")
}

func TestListProducts_SearchCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	res, err := ListProducts(db, ListFilter{Search: "ALPINE"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	assert.Equal(t, []string{"Alpine Explorer", "Summit Pro"}, names(res.Items),
		"matches name and description")
}

func TestListProducts_CategoryFilter(t *testing.T) {
	db := openTestDB(t)
	mountain, _ := seedCatalog(t, db)

	res, err := ListProducts(db, ListFilter{CategoryID: mountain.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)
	assert.Equal(t, []string{"Alpine Explorer", "Summit Pro"}, names(res.Items))

	// "all" disables the filter entirely.
	res, err = ListProducts(db, ListFilter{CategoryID: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Total)
}

func TestListProducts_PriceBoundsInclusive(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	min, max := 699.0, 1299.0
	res, err := ListProducts(db, ListFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	assert.Equal(t, []string{"Alpine Explorer", "City Cruiser", "Gravel Scout"}, names(res.Items))
}

func TestListProducts_ReversedBoundsYieldEmpty(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	min, max := 100.0, 50.0
	res, err := ListProducts(db, ListFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Total)
	assert.Empty(t, res.Items)
}

func TestListProducts_PastTheEndPage(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	res, err := ListProducts(db, ListFilter{Search: "phantom", Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total, "total reflects the filter, not the page")
	assert.Empty(t, res.Items)
	assert.Equal(t, 2, res.Page)
}

func TestListProducts_PriceSortWithStableTieBreak(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	res, err := ListProducts(db, ListFilter{Sort: "price-asc"})
	require.NoError(t, err)
	// Alpine Explorer and Gravel Scout tie at 1299; creation order decides.
	assert.Equal(t,
		[]string{"City Cruiser", "Alpine Explorer", "Gravel Scout", "Road Phantom", "Summit Pro"},
		names(res.Items))

	res, err = ListProducts(db, ListFilter{Sort: "price-desc"})
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Summit Pro", "Road Phantom", "Alpine Explorer", "Gravel Scout", "City Cruiser"},
		names(res.Items))
}

func TestListProducts_UnknownSortFallsBackToFeatured(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	featured, err := ListProducts(db, ListFilter{})
	require.NoError(t, err)
	unknown, err := ListProducts(db, ListFilter{Sort: "rating-desc"})
	require.NoError(t, err)

	assert.Equal(t, names(featured.Items), names(unknown.Items))
}

func TestListProducts_StablePagination(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	var all []string
	for page := 1; page <= 3; page++ {
		res, err := ListProducts(db, ListFilter{Sort: "price-asc", Page: page, PageSize: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 5, res.Total)
		all = append(all, names(res.Items)...)

		// The same request returns the same slice.
		again, err := ListProducts(db, ListFilter{Sort: "price-asc", Page: page, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, names(res.Items), names(again.Items))
	}
	assert.Equal(t,
		[]string{"City Cruiser", "Alpine Explorer", "Gravel Scout", "Road Phantom", "Summit Pro"},
		all, "pages tile the full ordering without overlap or gaps")
}

func TestListProducts_PageSizeClamped(t *testing.T) {
	db := openTestDB(t)
	seedCatalog(t, db)

	res, err := ListProducts(db, ListFilter{PageSize: 10_000})
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, res.PageSize)

	res, err = ListProducts(db, ListFilter{Page: -4, PageSize: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, defaultPageSize, res.PageSize)
}
