package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/coursehub/internal/client/storage"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newUserData(t *testing.T, c *fakeClient) *UserDataService {
	t.Helper()
	carts := NewCartIDs(metadata.NewSQLiteRepository(setupDB(t)))
	return NewUserDataService(c, carts, logging.Discard())
}

func TestUserDataLoad_AllSucceed(t *testing.T) {
	c := &fakeClient{
		CartListFn: func(cartID string) ([]models.CartItem, error) {
			assert.Equal(t, "cart_4", cartID)
			return []models.CartItem{{ID: 1}, {ID: 2}}, nil
		},
		ProfileFn: func(id int64) (*models.Profile, error) {
			return &models.Profile{User: id, FullName: "Ann"}, nil
		},
		WishlistFn: func(int64) ([]models.WishlistItem, error) {
			return []models.WishlistItem{{ID: 9}}, nil
		},
	}
	s := newUserData(t, c)

	d, err := s.Load(context.Background(), &models.Identity{UserID: 4})
	require.NoError(t, err)
	assert.Equal(t, 2, d.CartCount())
	assert.Equal(t, "Ann", d.Profile.FullName)
	assert.Len(t, d.Wishlist, 1)
	assert.Equal(t, d, s.Snapshot())
}

func TestUserDataLoad_OneFailureDoesNotBlockOthers(t *testing.T) {
	failing := errors.New("boom")
	tests := []struct {
		name  string
		setup func(c *fakeClient)
		check func(t *testing.T, d UserData)
	}{
		{
			name:  "cart fails",
			setup: func(c *fakeClient) { c.CartListFn = func(string) ([]models.CartItem, error) { return nil, failing } },
			check: func(t *testing.T, d UserData) {
				assert.Zero(t, d.CartCount())
				assert.NotNil(t, d.Profile)
				assert.Len(t, d.Wishlist, 1)
			},
		},
		{
			name:  "profile fails",
			setup: func(c *fakeClient) { c.ProfileFn = func(int64) (*models.Profile, error) { return nil, failing } },
			check: func(t *testing.T, d UserData) {
				assert.Equal(t, 1, d.CartCount())
				assert.Nil(t, d.Profile)
				assert.Len(t, d.Wishlist, 1)
			},
		},
		{
			name:  "wishlist fails",
			setup: func(c *fakeClient) { c.WishlistFn = func(int64) ([]models.WishlistItem, error) { return nil, failing } },
			check: func(t *testing.T, d UserData) {
				assert.Equal(t, 1, d.CartCount())
				assert.NotNil(t, d.Profile)
				assert.Empty(t, d.Wishlist)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeClient{
				CartListFn: func(string) ([]models.CartItem, error) { return []models.CartItem{{ID: 1}}, nil },
				ProfileFn:  func(int64) (*models.Profile, error) { return &models.Profile{FullName: "Ann"}, nil },
				WishlistFn: func(int64) ([]models.WishlistItem, error) { return []models.WishlistItem{{ID: 1}}, nil },
			}
			tt.setup(c)
			s := newUserData(t, c)

			d, err := s.Load(context.Background(), &models.Identity{UserID: 1})
			require.ErrorIs(t, err, failing)
			tt.check(t, d)
			assert.Equal(t, 1, c.Calls("CartList"))
			assert.Equal(t, 1, c.Calls("Profile"))
			assert.Equal(t, 1, c.Calls("Wishlist"))
		})
	}
}

func TestUserDataLoad_FailureKeepsPreviousValue(t *testing.T) {
	c := &fakeClient{
		WishlistFn: func(int64) ([]models.WishlistItem, error) { return []models.WishlistItem{{ID: 1}, {ID: 2}}, nil },
	}
	s := newUserData(t, c)
	user := &models.Identity{UserID: 1}

	_, err := s.Load(context.Background(), user)
	require.NoError(t, err)

	c.WishlistFn = func(int64) ([]models.WishlistItem, error) { return nil, errors.New("down") }
	d, err := s.Load(context.Background(), user)
	require.Error(t, err)
	assert.Len(t, d.Wishlist, 2)
}

func TestUserDataLoad_AnonymousFetchesOnlyCart(t *testing.T) {
	var cartID string
	c := &fakeClient{CartListFn: func(id string) ([]models.CartItem, error) { cartID = id; return nil, nil }}
	s := newUserData(t, c)

	_, err := s.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, cartID, 6)
	assert.Zero(t, c.Calls("Profile"))
	assert.Zero(t, c.Calls("Wishlist"))
}

func TestUserDataReset(t *testing.T) {
	c := &fakeClient{CartListFn: func(string) ([]models.CartItem, error) { return []models.CartItem{{ID: 1}}, nil }}
	s := newUserData(t, c)
	_, err := s.Load(context.Background(), &models.Identity{UserID: 1})
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, UserData{}, s.Snapshot())
}
