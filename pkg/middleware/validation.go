package middleware

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/wms-platform/yard-service/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func customValidators() map[string]validator.Func {
	return map[string]validator.Func{
		"dock_id":     validateDockID,
		"spot_id":     validateSpotID,
		"truck_id":    validateTruckID,
		"barcode":     validateBarcode,
		"location_id": validateLocationID,
		"safe_string": validateSafeString,
	}
}

// InitValidator initializes the validator with custom validators
func InitValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		for tag, fn := range customValidators() {
			_ = validate.RegisterValidation(tag, fn)
		}

		// Use JSON tag names for error messages
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			return name
		})

		// Set as Gin's default validator
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			for tag, fn := range customValidators() {
				_ = v.RegisterValidation(tag, fn)
			}

			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return fld.Name
				}
				return name
			})
		}
	})

	return validate
}

// GetValidator returns the singleton validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		return InitValidator()
	}
	return validate
}

// Custom validators

var (
	dockIDRegex     = regexp.MustCompile(`^DOCK-[A-Z0-9]{2,10}$`)
	spotIDRegex     = regexp.MustCompile(`^YARD-[A-Z0-9]{2,10}$`)
	truckIDRegex    = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{3,19}$`)
	barcodeRegex    = regexp.MustCompile(`^[A-Za-z0-9-]{4,50}$`)
	locationRegex   = regexp.MustCompile(`^[A-Z]{1,2}-\d{2}-\d{2}-[A-Z0-9]+$`)
	safeStringRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,!?@#$%&*()+=:;'"<>\/\[\]{}|\\~\x60]+$`)
)

func validateDockID(fl validator.FieldLevel) bool {
	return dockIDRegex.MatchString(fl.Field().String())
}

func validateSpotID(fl validator.FieldLevel) bool {
	return spotIDRegex.MatchString(fl.Field().String())
}

func validateTruckID(fl validator.FieldLevel) bool {
	return truckIDRegex.MatchString(fl.Field().String())
}

func validateBarcode(fl validator.FieldLevel) bool {
	return barcodeRegex.MatchString(fl.Field().String())
}

func validateLocationID(fl validator.FieldLevel) bool {
	return locationRegex.MatchString(fl.Field().String())
}

func validateSafeString(fl validator.FieldLevel) bool {
	return safeStringRegex.MatchString(fl.Field().String())
}

// ValidationErrorFormatter formats validation errors into a map
func ValidationErrorFormatter(err error) map[string]string {
	fields := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			fields[field] = formatValidationError(e)
		}
	}

	return fields
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "uuid":
		return "must be a valid UUID"
	case "dock_id":
		return "must be a valid dock ID (format: DOCK-xx)"
	case "spot_id":
		return "must be a valid yard spot ID (format: YARD-xx)"
	case "truck_id":
		return "must be a valid truck ID (4-20 uppercase alphanumeric characters)"
	case "barcode":
		return "must be a valid barcode (4-50 alphanumeric characters)"
	case "location_id":
		return "must be a valid location ID (format: A-01-02-B1)"
	case "safe_string":
		return "contains invalid characters"
	case "oneof":
		return "must be one of: " + e.Param()
	case "datetime":
		return "must be a valid timestamp (" + e.Param() + ")"
	default:
		return "is invalid"
	}
}

// BindAndValidate binds request body and validates it
func BindAndValidate(c *gin.Context, obj interface{}) *errors.AppError {
	if err := c.ShouldBindJSON(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := ValidationErrorFormatter(validationErrors)
			return errors.ErrValidation("validation failed").WithDetails(fields)
		}
		return errors.ErrBadRequest("invalid request body: " + err.Error())
	}
	return nil
}

// ValidateStruct validates a struct using the validator
func ValidateStruct(obj interface{}) *errors.AppError {
	v := GetValidator()
	if err := v.Struct(obj); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			fields := ValidationErrorFormatter(validationErrors)
			return errors.ErrValidation("validation failed").WithDetails(fields)
		}
		return errors.ErrBadRequest("validation failed: " + err.Error())
	}
	return nil
}

// SanitizeString removes potentially dangerous characters from a string
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")

	// Trim whitespace
	s = strings.TrimSpace(s)

	return s
}

// InputSanitizer middleware sanitizes string inputs
func InputSanitizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Sanitize query parameters
		query := c.Request.URL.Query()
		for key, values := range query {
			for i, v := range values {
				values[i] = SanitizeString(v)
			}
			query[key] = values
		}
		c.Request.URL.RawQuery = query.Encode()

		c.Next()
	}
}

// ContentType middleware ensures proper content type for POST/PUT/PATCH
func ContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "POST" || c.Request.Method == "PUT" || c.Request.Method == "PATCH" {
			contentType := c.GetHeader("Content-Type")
			if contentType == "" || !strings.HasPrefix(contentType, "application/json") {
				// Allow empty body for some endpoints
				if c.Request.ContentLength > 0 {
					AbortWithAppError(c, &errors.AppError{
						Code:       "INVALID_CONTENT_TYPE",
						Message:    "Content-Type must be application/json",
						HTTPStatus: 415,
					})
					return
				}
			}
		}
		c.Next()
	}
}
