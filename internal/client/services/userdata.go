package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

// UserData is the user-scoped data shown across the front end.
type UserData struct {
	Cart     []models.CartItem
	Profile  *models.Profile
	Wishlist []models.WishlistItem
}

// CartCount is the number of items in the cart.
func (d UserData) CartCount() int {
	return len(d.Cart)
}

// UserDataService loads and caches UserData.
type UserDataService struct {
	client api.Client
	carts  *CartIDs
	log    logging.Logger

	mu   sync.RWMutex
	data UserData
}

func NewUserDataService(client api.Client, carts *CartIDs, log logging.Logger) *UserDataService {
	return &UserDataService{client: client, carts: carts, log: log.With("component", "userdata")}
}

// Load fetches cart, profile and wishlist concurrently. Each fetch that
// succeeds replaces its part of the snapshot; a failed one is logged and
// leaves the previous value in place without affecting the others. Profile
// and wishlist are only fetched for a signed-in user. The returned error is
// the first failure, if any.
func (s *UserDataService) Load(ctx context.Context, user *models.Identity) (UserData, error) {
	var g errgroup.Group

	g.Go(func() error {
		cartID, err := s.carts.CartID(ctx, user)
		if err != nil {
			s.log.Warn(ctx, "cart id unavailable", "error", err)
			return err
		}
		items, err := s.client.CartList(ctx, cartID)
		if err != nil {
			s.log.Warn(ctx, "failed to load cart", "cart_id", cartID, "error", err)
			return err
		}
		s.update(func(d *UserData) { d.Cart = items })
		return nil
	})

	if user != nil {
		g.Go(func() error {
			p, err := s.client.Profile(ctx, user.UserID)
			if err != nil {
				s.log.Warn(ctx, "failed to load profile", "user_id", user.UserID, "error", err)
				return err
			}
			s.update(func(d *UserData) { d.Profile = p })
			return nil
		})

		g.Go(func() error {
			items, err := s.client.Wishlist(ctx, user.UserID)
			if err != nil {
				s.log.Warn(ctx, "failed to load wishlist", "user_id", user.UserID, "error", err)
				return err
			}
			s.update(func(d *UserData) { d.Wishlist = items })
			return nil
		})
	}

	err := g.Wait()
	return s.Snapshot(), err
}

// Snapshot returns the cached data.
func (s *UserDataService) Snapshot() UserData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Reset drops the cached data, e.g. after logout.
func (s *UserDataService) Reset() {
	s.update(func(d *UserData) { *d = UserData{} })
}

func (s *UserDataService) update(fn func(*UserData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}
