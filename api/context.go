package api

import (
	"context"
	"errors"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated user's id to the context
func ctxWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated user's id from the context
func ctxGetUserID(ctx context.Context) (int64, error) {
	ctxValue := ctx.Value(userIDKey)
	if ctxValue == nil {
		return 0, errors.New("user id not found in context")
	}
	userID, ok := ctxValue.(int64)
	if !ok {
		return 0, errors.New("user id is not of type `int64`")
	}
	return userID, nil
}
