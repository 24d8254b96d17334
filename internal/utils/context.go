package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/recipevault/recipevault/internal/types"
)

// GetCurrentUser reads the identity the auth middleware put on the context.
func GetCurrentUser(ctx *gin.Context) (types.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return types.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	user, ok := value.(types.AuthenticatedUser)

	if !ok {
		return types.AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return user, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
