package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	auth "github.com/Lexv0lk/vending-machine/internal/auth/domain"
	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	store "github.com/Lexv0lk/vending-machine/internal/store/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// handleBindingError answers a request whose body could not be bound, naming every failed field rule.
func handleBindingError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		rule := fieldErr.Tag()
		if fieldErr.Param() != "" {
			rule += "=" + fieldErr.Param()
		}
		details = append(details, fmt.Sprintf("%s must satisfy %s, got %v", fieldErr.Field(), rule, fieldErr.Value()))
	}

	c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body: " + strings.Join(details, "; ")})
}

func handleDomainError(c *gin.Context, err error, logger logging.Logger) {
	var tooMany *auth.TooManyAttemptsError

	switch {
	case errors.Is(err, &store.InvalidArgumentsError{}),
		errors.Is(err, &store.InvalidDenominationError{}),
		errors.Is(err, &store.InvalidCostError{}),
		errors.Is(err, &store.InvalidQuantityError{}):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, &auth.SessionInvalidError{}),
		errors.Is(err, &auth.CredentialsMismatchError{}):
		c.JSON(http.StatusUnauthorized, gin.H{"errors": err.Error()})
	case errors.Is(err, &store.RoleViolationError{}),
		errors.Is(err, &store.NotOwnerError{}),
		errors.Is(err, &store.ForbiddenError{}):
		c.JSON(http.StatusForbidden, gin.H{"errors": err.Error()})
	case errors.Is(err, &store.NotFoundError{}):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	case errors.Is(err, &store.AlreadyExistsError{}),
		errors.Is(err, &store.InsufficientStockError{}),
		errors.Is(err, &store.InsufficientFundsError{}):
		c.JSON(http.StatusConflict, gin.H{"errors": err.Error()})
	case errors.As(err, &tooMany):
		seconds := int(math.Ceil(tooMany.RetryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(max(seconds, 1)))
		c.JSON(http.StatusTooManyRequests, gin.H{"errors": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}
