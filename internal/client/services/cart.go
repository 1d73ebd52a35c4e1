package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/coursehub/internal/client/models"
	"github.com/dmitrijs2005/coursehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/coursehub/internal/common"
)

const anonymousCartKey = "anonymous_cart_id"

// CartIDs resolves the cart identifier of the current user.
type CartIDs struct {
	meta metadata.Repository
}

func NewCartIDs(meta metadata.Repository) *CartIDs {
	return &CartIDs{meta: meta}
}

// CartID returns "cart_<user_id>" for a signed-in user. Anonymous users get
// a random six-digit id that is generated once and then reused.
func (c *CartIDs) CartID(ctx context.Context, user *models.Identity) (string, error) {
	if user != nil && user.UserID > 0 {
		return "cart_" + strconv.FormatInt(user.UserID, 10), nil
	}

	existing, err := c.meta.Get(ctx, anonymousCartKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", fmt.Errorf("load cart id: %w", err)
	}

	id, err := common.MakeRandDigits(6)
	if err != nil {
		return "", fmt.Errorf("generate cart id: %w", err)
	}
	id, err = c.meta.SetIfAbsent(ctx, anonymousCartKey, id)
	if err != nil {
		return "", fmt.Errorf("save cart id: %w", err)
	}
	return id, nil
}
