package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-ledger/pkg/web"
)

// UserIDKey is the gin context key holding the acting user's id.
const UserIDKey = "acting_user_id"

// ErrMissingIdentity indicates a request without a valid X-User-ID header.
var ErrMissingIdentity = errors.New("missing or invalid X-User-ID header")

// Identity resolves the acting user from the X-User-ID header set by
// the upstream authentication gateway. The ledger engine never looks up
// an ambient current user; handlers pass this id to services explicitly.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		l := zerolog.Ctx(c.Request.Context())

		userID, err := uuid.Parse(c.Request.Header.Get("X-User-ID"))
		if err != nil {
			l.Info().Err(err).Send()
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrMissingIdentity))

			return
		}

		c.Set(UserIDKey, userID)

		c.Next()
	}
}

// UserID returns the acting user's id stored by Identity.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(UserIDKey).(uuid.UUID)
}
