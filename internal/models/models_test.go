package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productselector/internal/models"
)

func TestDifficultyLevel_JSON(t *testing.T) {
	var recipe models.Recipe
	err := json.Unmarshal([]byte(`{"name":"Soup","difficultyLevel":"MEDIUM"}`), &recipe)
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyMedium, recipe.DifficultyLevel)

	err = json.Unmarshal([]byte(`{"name":"Soup","difficultyLevel":"IMPOSSIBLE"}`), &recipe)
	assert.Error(t, err)
}

func TestAccessLevel_ScanAndValue(t *testing.T) {
	var level models.AccessLevel
	require.NoError(t, level.Scan([]byte("ADMIN")))
	assert.Equal(t, models.AccessLevelAdmin, level)

	assert.Error(t, level.Scan("ROOT"))
	assert.Error(t, level.Scan(42))

	_, err := models.AccessLevel("ROOT").Value()
	assert.Error(t, err)

	v, err := models.AccessLevelSuperAdmin.Value()
	require.NoError(t, err)
	assert.Equal(t, "SUPER_ADMIN", v)
}

func TestDate(t *testing.T) {
	var user models.User
	err := json.Unmarshal([]byte(`{"email":"a@b.c","birthDate":"1990-05-17","registrationDate":null}`), &user)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(1990, time.May, 17), user.BirthDate)
	assert.True(t, user.RegistrationDate.IsZero())

	out, err := json.Marshal(user.BirthDate)
	require.NoError(t, err)
	assert.Equal(t, `"1990-05-17"`, string(out))

	var d models.Date
	require.NoError(t, d.Scan("2024-02-29 00:00:00+00:00"))
	assert.Equal(t, "2024-02-29", d.String())
	require.NoError(t, d.Scan(time.Date(2020, time.January, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2020-01-02", d.String())
	assert.Error(t, d.Scan("yesterday"))

	err = json.Unmarshal([]byte(`{"birthDate":"17.05.1990"}`), &user)
	assert.Error(t, err)
}

func TestUser_BeforeSaveDefaults(t *testing.T) {
	user := &models.User{Email: "a@b.c", Password: "secret"}
	require.NoError(t, user.BeforeSave(nil))

	assert.Equal(t, models.Today(), user.BirthDate)
	assert.Equal(t, models.Today(), user.RegistrationDate)
	assert.Equal(t, models.AccessLevelUser, user.AccessLevel)

	supplied := &models.User{
		BirthDate:        models.NewDate(1985, time.March, 1),
		RegistrationDate: models.NewDate(2020, time.June, 30),
		AccessLevel:      models.AccessLevelAdmin,
	}
	require.NoError(t, supplied.BeforeSave(nil))
	assert.Equal(t, models.NewDate(1985, time.March, 1), supplied.BirthDate)
	assert.Equal(t, models.NewDate(2020, time.June, 30), supplied.RegistrationDate)
	assert.Equal(t, models.AccessLevelAdmin, supplied.AccessLevel)
}

func TestRelationIDs(t *testing.T) {
	product := models.Product{Recipes: []models.Recipe{{ID: 3}, {ID: 5}}}
	assert.Equal(t, []int64{3, 5}, product.RecipeIDs())

	recipe := models.Recipe{}
	assert.Empty(t, recipe.ProductIDs())
}
