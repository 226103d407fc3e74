package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/presentation/http/dto/response"
	"github.com/sangkips/receipt-api/internal/presentation/http/middleware"
	"github.com/sangkips/receipt-api/pkg/apperror"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report json field names
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes the body into obj. On failure it writes a 422 response
// and returns false.
func bindJSON(c *gin.Context, obj interface{}) bool {
	useJSONFieldNames()

	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
		response.ValidationError(c, fieldErrors)
		return false
	}

	response.ValidationError(c, []apperror.FieldError{{Field: "body", Message: err.Error()}})
	return false
}

// fieldPath drops the Go struct name from a validator namespace,
// "CreateReceiptRequest.products[0].price" becomes "products[0].price".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	id := middleware.UserIDFromContext(c)
	return id, id != uuid.Nil
}

// parseUUIDParam reads a uuid path parameter. Malformed ids are reported
// as not found, the same as ids that do not exist.
func parseUUIDParam(c *gin.Context, name string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}
