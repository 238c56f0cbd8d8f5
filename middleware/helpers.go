package middleware

import (
	"context"
	"errors"

	"github.com/Surabhi11/fantasy-cricket/models"
)

var ErrNoUserInContext = errors.New("no authenticated user in context")

// UserFromContext returns the user placed on the context by Authenticate.
func UserFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}

// UserIDFromContext is a convenience for handlers that only need the id.
func UserIDFromContext(ctx context.Context) (int, error) {
	user, err := UserFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
