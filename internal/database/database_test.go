package database_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/database"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/testhelpers"
)

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)

	var categories, ingredients int64
	require.NoError(t, db.Model(&model.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&model.Ingredient{}).Count(&ingredients).Error)
	assert.EqualValues(t, len(database.DefaultCategories), categories)
	assert.EqualValues(t, len(database.DefaultIngredients), ingredients)

	res, err := database.SeedReferenceData(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, database.SeedResult{}, res)
}

func TestIngredientNameIsUniqueIgnoringCase(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)

	err := db.Create(&model.Ingredient{Name: "PASTA", Unit: "g"}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestCategoryDeleteRestricted(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	user := testhelpers.CreateUser(t, db, "alice")
	dinner := testhelpers.Category(t, db, "Dinner")

	recipe := model.Recipe{
		UserID:       user.ID,
		Title:        "Pasta Bake",
		Instructions: "Bake",
		Servings:     2,
		CategoryID:   dinner.ID,
	}
	require.NoError(t, db.Omit("Category", "User", "Ingredients").Create(&recipe).Error)

	err := db.Delete(&model.Category{}, "id = ?", dinner.ID).Error
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	assert.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestRunSQLMigrationsAppliesOnce(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	fsys := fstest.MapFS{
		"0001_widgets.sql": {Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY)")},
		"README.md":        {Data: []byte("ignored")},
	}

	require.NoError(t, database.RunSQLMigrations(db, fsys))
	require.NoError(t, database.RunSQLMigrations(db, fsys))

	var applied int64
	require.NoError(t, db.Table("migrations").Count(&applied).Error)
	assert.EqualValues(t, 1, applied)
	assert.True(t, db.Migrator().HasTable("widgets"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
	assert.True(t, database.IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, database.IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, database.IsUniqueViolation(&pq.Error{Code: "23503"}))
}
