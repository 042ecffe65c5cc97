package authuser

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.Role{}, &models.Tenant{}, &models.AuthUser{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedUsers inserts test data into the database.
func seedUsers(t *testing.T, db *gorm.DB, users []models.AuthUser) {
	t.Helper()
	for _, user := range users {
		err := db.Create(&user).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGetByUserID(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		userID        string
		seedData      []models.AuthUser
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			userID:        "u1",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty user id",
			dbParam:       db,
			userID:        "",
			expectedError: ErrUserIDEmpty,
		},
		{
			name:          "user not found",
			dbParam:       db,
			userID:        "nonexistent",
			expectedError: ErrUserNotFound,
		},
		{
			name:    "successful get",
			dbParam: db,
			userID:  "u1",
			seedData: []models.AuthUser{
				{UserID: "u1", Email: "alice@example.com", UserName: "alice"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM auth_users")
			}

			if tc.seedData != nil {
				seedUsers(t, tc.dbParam, tc.seedData)
			}

			user, err := GetByUserID(tc.dbParam, tc.userID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tc.userID, user.UserID)
			}
		})
	}
}

func TestGetByEmail(t *testing.T) {
	db := setupTestDB(t)
	seedUsers(t, db, []models.AuthUser{
		{UserID: "u1", Email: "alice@example.com", UserName: "alice"},
	})

	_, err := GetByEmail(nil, "alice@example.com")
	require.ErrorIs(t, err, ErrDBNil)

	_, err = GetByEmail(db, "")
	require.ErrorIs(t, err, ErrEmailEmpty)

	_, err = GetByEmail(db, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)

	user, err := GetByEmail(db, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
}

func TestGetAllLoadsRelations(t *testing.T) {
	db := setupTestDB(t)

	viewer := models.Role{Name: "viewer"}
	require.NoError(t, db.Create(&viewer).Error)

	acme := models.Tenant{Name: "acme", DataKey: "acme."}
	require.NoError(t, db.Create(&acme).Error)

	seedUsers(t, db, []models.AuthUser{
		{UserID: "u2", Email: "bob@example.com"},
		{UserID: "u1", Email: "alice@example.com", Roles: []models.Role{viewer}, TenantID: &acme.ID},
	})

	users, err := GetAll(db)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Ordered by user id, with roles and tenant eagerly loaded.
	assert.Equal(t, "u1", users[0].UserID)
	assert.Equal(t, []string{"viewer"}, users[0].RoleNames())
	assert.Equal(t, "acme", users[0].TenantName())
	assert.Equal(t, "u2", users[1].UserID)
	assert.Empty(t, users[1].RoleNames())
	assert.Equal(t, "", users[1].TenantName())
}

func TestGetAllByTenantDataKey(t *testing.T) {
	db := setupTestDB(t)

	acme := models.Tenant{Name: "acme", DataKey: "acme."}
	require.NoError(t, db.Create(&acme).Error)

	acmeEU := models.Tenant{Name: "acme-eu", DataKey: "acme.eu.", ParentID: &acme.ID}
	require.NoError(t, db.Create(&acmeEU).Error)

	globex := models.Tenant{Name: "globex", DataKey: "globex."}
	require.NoError(t, db.Create(&globex).Error)

	seedUsers(t, db, []models.AuthUser{
		{UserID: "u1", Email: "alice@example.com", TenantID: &acme.ID},
		{UserID: "u2", Email: "bob@example.com", TenantID: &acmeEU.ID},
		{UserID: "u3", Email: "carol@example.com", TenantID: &globex.ID},
		{UserID: "u4", Email: "dan@example.com"},
	})

	// The prefix scopes the query to the tenant and its descendants.
	users, err := GetAllByTenantDataKey(db, "acme.")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].UserID)
	assert.Equal(t, "u2", users[1].UserID)

	// A deeper prefix narrows further.
	users, err = GetAllByTenantDataKey(db, "acme.eu.")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].UserID)

	// An empty prefix behaves like GetAll, including tenant-less users.
	users, err = GetAllByTenantDataKey(db, "")
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestGetAllByTenantDataKeyEscapesWildcards(t *testing.T) {
	db := setupTestDB(t)

	acme := models.Tenant{Name: "acme", DataKey: "acme."}
	require.NoError(t, db.Create(&acme).Error)

	odd := models.Tenant{Name: "odd", DataKey: "a_me."}
	require.NoError(t, db.Create(&odd).Error)

	seedUsers(t, db, []models.AuthUser{
		{UserID: "u1", Email: "alice@example.com", TenantID: &acme.ID},
		{UserID: "u2", Email: "bob@example.com", TenantID: &odd.ID},
	})

	// "_" in the prefix is a literal character, not a single-char wildcard.
	users, err := GetAllByTenantDataKey(db, "a_me.")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].UserID)

	// "%" matches nothing unless a data key literally starts with it.
	users, err = GetAllByTenantDataKey(db, "%")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	require.ErrorIs(t, Create(nil, &models.AuthUser{UserID: "u1"}), ErrDBNil)
	require.ErrorIs(t, Create(db, nil), ErrUserIDEmpty)
	require.ErrorIs(t, Create(db, &models.AuthUser{}), ErrUserIDEmpty)

	viewer := models.Role{Name: "viewer"}
	require.NoError(t, db.Create(&viewer).Error)

	err := Create(db, &models.AuthUser{
		UserID: "u1",
		Email:  "alice@example.com",
		Roles:  []models.Role{viewer},
	})
	require.NoError(t, err)

	user, err := GetByUserID(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer"}, user.RoleNames())

	// The email uniqueness constraint surfaces as a translated duplicate error.
	err = Create(db, &models.AuthUser{UserID: "u2", Email: "alice@example.com"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSaveDoesNotTouchRoles(t *testing.T) {
	db := setupTestDB(t)

	viewer := models.Role{Name: "viewer"}
	require.NoError(t, db.Create(&viewer).Error)

	seedUsers(t, db, []models.AuthUser{
		{UserID: "u1", Email: "alice@example.com", UserName: "alice", Roles: []models.Role{viewer}},
	})

	user, err := GetByUserID(db, "u1")
	require.NoError(t, err)

	user.UserName = "alice.renamed"
	user.Roles = nil
	require.NoError(t, Save(db, user))

	stored, err := GetByUserID(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice.renamed", stored.UserName)
	assert.Equal(t, []string{"viewer"}, stored.RoleNames())
}

func TestReplaceRoles(t *testing.T) {
	db := setupTestDB(t)

	viewer := models.Role{Name: "viewer"}
	admin := models.Role{Name: "admin"}
	require.NoError(t, db.Create(&viewer).Error)
	require.NoError(t, db.Create(&admin).Error)

	seedUsers(t, db, []models.AuthUser{
		{UserID: "u1", Email: "alice@example.com", Roles: []models.Role{viewer}},
	})

	user, err := GetByUserID(db, "u1")
	require.NoError(t, err)

	require.NoError(t, ReplaceRoles(db, user, []models.Role{admin}))

	// The in-memory user is kept in sync with the store.
	assert.Equal(t, []string{"admin"}, user.RoleNames())

	stored, err := GetByUserID(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, stored.RoleNames())

	// Replacing with an empty set clears all assignments.
	require.NoError(t, ReplaceRoles(db, user, nil))

	stored, err = GetByUserID(db, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored.RoleNames())
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	viewer := models.Role{Name: "viewer"}
	require.NoError(t, db.Create(&viewer).Error)

	seedUsers(t, db, []models.AuthUser{
		{UserID: "u1", Email: "alice@example.com", Roles: []models.Role{viewer}},
	})

	require.ErrorIs(t, Delete(nil, "u1"), ErrDBNil)
	require.ErrorIs(t, Delete(db, ""), ErrUserIDEmpty)
	require.ErrorIs(t, Delete(db, "nonexistent"), ErrUserNotFound)

	require.NoError(t, Delete(db, "u1"))

	_, err := GetByUserID(db, "u1")
	require.ErrorIs(t, err, ErrUserNotFound)

	// The join rows are removed, the role itself survives.
	var joinRows int64
	require.NoError(t, db.Table("user_to_roles").Count(&joinRows).Error)
	assert.Zero(t, joinRows)

	var roleCount int64
	require.NoError(t, db.Model(&models.Role{}).Count(&roleCount).Error)
	assert.EqualValues(t, 1, roleCount)
}
