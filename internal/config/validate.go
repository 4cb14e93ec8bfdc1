package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// referenceTime is a fixed date whose formatting differs from any layout text.
var referenceTime = time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)

// yamlErrorPattern matches yaml.v3 messages such as
// "yaml: line 5: could not find expected ':'" and
// "yaml: line 4: column 2: mapping values are not allowed".
var yamlErrorPattern = regexp.MustCompile(`^yaml: line (\d+):(?: column (\d+):)?\s*(.*)$`)

// ValidationError is a config problem tied to a file and, when known, a
// position in it or the offending key.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// configValidator reports fields by their config key and knows the
// timelayout tag used by date_format.
var configValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("koanf")
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("timelayout", func(fl validator.FieldLevel) bool {
		return isTimeLayout(fl.Field().String())
	})
	return v
})

// ValidateYAMLSyntax checks the YAML syntax of the file at filePath.
// A missing or blank file is valid; defaults apply.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	switch {
	case os.IsNotExist(err):
		return nil
	case os.IsPermission(err):
		return &ValidationError{FilePath: filePath, Message: "permission denied"}
	case err != nil:
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return ValidateYAMLSyntaxFromBytes(data, filePath)
}

// ValidateYAMLSyntaxFromBytes checks YAML data read from filePath.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: strings.Join(typeErr.Errors, "; ")}
	}

	line, column, msg := parseYAMLError(err.Error())
	return &ValidationError{FilePath: filePath, Line: line, Column: column, Message: msg}
}

// ValidateConfigValues checks the loaded values against the struct's
// validate tags and returns the first failure.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			FilePath: filePath,
			Field:    fieldName(fe),
			Message:  describeFieldError(fe),
		}
	}
	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// isTimeLayout reports whether layout contains at least one reference-time
// element, so formatting a date changes it.
func isTimeLayout(layout string) bool {
	return referenceTime.Format(layout) != layout
}

// parseYAMLError splits a yaml.v3 error into its position and message.
// Messages without a position come back unchanged with line 0. A line
// without a column reports column 1.
func parseYAMLError(errMsg string) (line, column int, msg string) {
	m := yamlErrorPattern.FindStringSubmatch(errMsg)
	if m == nil {
		return 0, 0, errMsg
	}

	line, _ = strconv.Atoi(m[1])
	column = 1
	if m[2] != "" {
		column, _ = strconv.Atoi(m[2])
	}
	return line, column, m[3]
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL (e.g., https://github.com/owner/repo)"
	case "timelayout":
		return fmt.Sprintf("%q is not a Go time layout (example: 2006-01-02)", fe.Value())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

// fieldName returns the config key of a failed field, falling back to the
// snake_case Go field name for fields without a koanf tag.
func fieldName(fe validator.FieldError) string {
	if name := fe.Field(); name != fe.StructField() {
		return name
	}
	return toSnakeCase(fe.StructField())
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
