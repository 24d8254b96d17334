package store_test

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/recipevault/recipevault/internal/models"
	"github.com/recipevault/recipevault/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")

	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = gdb.AutoMigrate(&models.User{}, &models.Recipe{}, &models.Tag{}, &models.Ingredient{})
	if err != nil {
		t.Fatalf("migrating: %v", err)
	}

	return gdb
}

func createOwner(t *testing.T, gdb *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x"}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}

	return user
}

func TestTagGetOrCreateResolvesToOneRow(t *testing.T) {
	gdb := newTestDB(t)
	owner := createOwner(t, gdb, "user@example.com")
	tags := store.NewTagStore(gdb)

	first, err := tags.GetOrCreate(owner.ID, "Vegan")
	if err != nil {
		t.Fatalf("first GetOrCreate: %v", err)
	}

	second, err := tags.GetOrCreate(owner.ID, "Vegan")
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("ids differ: %d vs %d", first.ID, second.ID)
	}

	var count int64

	if err := gdb.Model(&models.Tag{}).Where("user_id = ?", owner.ID).Count(&count).Error; err != nil {
		t.Fatalf("counting tags: %v", err)
	}

	if count != 1 {
		t.Errorf("tag rows = %d, want 1", count)
	}
}

func TestTagGetOrCreateScopedToOwner(t *testing.T) {
	gdb := newTestDB(t)
	alice := createOwner(t, gdb, "alice@example.com")
	bob := createOwner(t, gdb, "bob@example.com")
	tags := store.NewTagStore(gdb)

	aliceTag, err := tags.GetOrCreate(alice.ID, "Vegan")
	if err != nil {
		t.Fatalf("GetOrCreate for alice: %v", err)
	}

	bobTag, err := tags.GetOrCreate(bob.ID, "Vegan")
	if err != nil {
		t.Fatalf("GetOrCreate for bob: %v", err)
	}

	// Same name, different owners, distinct rows.
	if aliceTag.ID == bobTag.ID {
		t.Error("tag shared across owners")
	}
}

func TestTagDeleteFreesName(t *testing.T) {
	gdb := newTestDB(t)
	owner := createOwner(t, gdb, "user@example.com")
	tags := store.NewTagStore(gdb)

	tag, err := tags.GetOrCreate(owner.ID, "Dinner")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if err := tags.Delete(owner.ID, tag.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	recreated, err := tags.GetOrCreate(owner.ID, "Dinner")
	if err != nil {
		t.Fatalf("GetOrCreate after delete: %v", err)
	}

	if recreated.ID == 0 {
		t.Error("recreated tag has no id")
	}

	listed, err := tags.ListByOwner(owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}

	if len(listed) != 1 {
		t.Errorf("rows = %d, want 1", len(listed))
	}
}

func TestIngredientDeleteFreesName(t *testing.T) {
	gdb := newTestDB(t)
	owner := createOwner(t, gdb, "user@example.com")
	ingredients := store.NewIngredientStore(gdb)

	ingredient, err := ingredients.GetOrCreate(owner.ID, "Salt")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if err := ingredients.Delete(owner.ID, ingredient.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := ingredients.GetOrCreate(owner.ID, "Salt"); err != nil {
		t.Fatalf("GetOrCreate after delete: %v", err)
	}
}

func TestRecipeCreateDeduplicatesPayloadNames(t *testing.T) {
	gdb := newTestDB(t)
	owner := createOwner(t, gdb, "user@example.com")
	recipes := store.NewRecipeStore(gdb)

	recipe := models.Recipe{
		Title:       "Sample title",
		TimeMinutes: 5,
		Price:       decimal.NewFromFloat(5.25),
		UserID:      owner.ID,
	}

	err := recipes.Create(&recipe, []string{"Vegan", "Vegan"}, []string{"Salt", "Salt"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	loaded, err := recipes.GetByOwner(owner.ID, recipe.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}

	if len(loaded.Tags) != 1 {
		t.Errorf("tags = %d, want 1", len(loaded.Tags))
	}

	if len(loaded.Ingredients) != 1 {
		t.Errorf("ingredients = %d, want 1", len(loaded.Ingredients))
	}
}

func TestRecipeUpdateListSemantics(t *testing.T) {
	gdb := newTestDB(t)
	owner := createOwner(t, gdb, "user@example.com")
	recipes := store.NewRecipeStore(gdb)

	recipe := models.Recipe{
		Title:       "Sample title",
		TimeMinutes: 5,
		Price:       decimal.NewFromFloat(5.25),
		UserID:      owner.ID,
	}

	if err := recipes.Create(&recipe, []string{"Tag1", "Tag2"}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Nil list leaves the set untouched.
	if err := recipes.Update(&recipe, nil, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := recipes.GetByOwner(owner.ID, recipe.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}

	if len(loaded.Tags) != 2 {
		t.Fatalf("tags after nil update = %d, want 2", len(loaded.Tags))
	}

	// Replacing with a different set reuses nothing it should not.
	replacement := []string{"Tag3"}

	if err := recipes.Update(&loaded, &replacement, nil); err != nil {
		t.Fatalf("Update replace: %v", err)
	}

	loaded, err = recipes.GetByOwner(owner.ID, recipe.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}

	if len(loaded.Tags) != 1 || loaded.Tags[0].Name != "Tag3" {
		t.Fatalf("tags after replace = %+v, want [Tag3]", loaded.Tags)
	}

	// Empty list clears the set.
	empty := []string{}

	if err := recipes.Update(&loaded, &empty, nil); err != nil {
		t.Fatalf("Update clear: %v", err)
	}

	loaded, err = recipes.GetByOwner(owner.ID, recipe.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}

	if len(loaded.Tags) != 0 {
		t.Errorf("tags after clear = %d, want 0", len(loaded.Tags))
	}
}

func TestRecipeGetByOwnerMasksForeignRecipes(t *testing.T) {
	gdb := newTestDB(t)
	alice := createOwner(t, gdb, "alice@example.com")
	bob := createOwner(t, gdb, "bob@example.com")
	recipes := store.NewRecipeStore(gdb)

	recipe := models.Recipe{
		Title:       "Sample title",
		TimeMinutes: 5,
		Price:       decimal.NewFromFloat(5.25),
		UserID:      alice.ID,
	}

	if err := recipes.Create(&recipe, nil, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := recipes.GetByOwner(bob.ID, recipe.ID)

	if err != gorm.ErrRecordNotFound {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}

	if err := recipes.Delete(bob.ID, recipe.ID); err != gorm.ErrRecordNotFound {
		t.Errorf("Delete err = %v, want gorm.ErrRecordNotFound", err)
	}

	// Record untouched by the failed delete.
	if _, err := recipes.GetByOwner(alice.ID, recipe.ID); err != nil {
		t.Errorf("recipe should still exist: %v", err)
	}
}
