package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// operatorKey stores the id of whoever issued the request, used for audit fields only.
const operatorKey = contextKey("operatorID")

// OperatorHeader names the header the admin front-end fills with the operator id.
const OperatorHeader = "X-Operator-ID"

// DefaultOperator is recorded when a request carries no operator id.
const DefaultOperator = "backoffice"

// OperatorMiddleware copies the operator id into the request context.
// It does not authenticate anything.
func OperatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := c.GetHeader(OperatorHeader)
		if operator == "" {
			operator = DefaultOperator
		}
		ctx := context.WithValue(c.Request.Context(), operatorKey, operator)
		ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("operator", operator)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetOperatorFromCtx returns the operator id stored by OperatorMiddleware, or DefaultOperator.
func GetOperatorFromCtx(ctx context.Context) string {
	if operator, ok := ctx.Value(operatorKey).(string); ok && operator != "" {
		return operator
	}
	return DefaultOperator
}
