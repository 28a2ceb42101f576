// Package validate provides struct-tag validation for request DTOs.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gte=N               number >= N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//
// Example:
//
//	type Input struct {
//	    Name  string `json:"name"  validate:"required,min=2,max=100"`
//	    Email string `json:"email" validate:"required,email"`
//	    Role  string `json:"role"  validate:"nullable,in=CUSTOMER,ADMIN"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)

		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		rules := splitRules(tag)

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break // first failing rule per field
			}
		}
	}

	return errs
}

// HasErrors reports whether errs contains any validation failure.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

// ─── Rule evaluation ──────────────────────────────────────────────────────────

func applyRule(rule, name string, value reflect.Value) string {
	key, param := rule, ""
	if idx := strings.IndexByte(rule, '='); idx > 0 {
		key, param = rule[:idx], rule[idx+1:]
	}

	switch key {
	case "required":
		if isEmpty(value) {
			return fmt.Sprintf("The %s field is required.", name)
		}
	case "email":
		if s, ok := asString(value); !ok || !emailRe.MatchString(s) {
			return fmt.Sprintf("The %s field must be a valid email address.", name)
		}
	case "numeric":
		if _, ok := asNumber(value); !ok {
			return fmt.Sprintf("The %s field must be a number.", name)
		}
	case "integer":
		n, ok := asNumber(value)
		if !ok || n != float64(int64(n)) {
			return fmt.Sprintf("The %s field must be an integer.", name)
		}
	case "min":
		return compareRule(name, value, param, func(got, want float64) bool { return got >= want },
			"The %s field must be at least %s.")
	case "max":
		return compareRule(name, value, param, func(got, want float64) bool { return got <= want },
			"The %s field must not exceed %s.")
	case "gte":
		return numberRule(name, value, param, func(got, want float64) bool { return got >= want },
			"The %s field must be greater than or equal to %s.")
	case "lte":
		return numberRule(name, value, param, func(got, want float64) bool { return got <= want },
			"The %s field must be less than or equal to %s.")
	case "in":
		allowed := strings.Split(param, ",")
		s := fmt.Sprintf("%v", value.Interface())
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return fmt.Sprintf("The %s field must be one of: %s.", name, param)
	}

	return ""
}

// compareRule applies min/max: char length for strings, value for numbers.
func compareRule(name string, value reflect.Value, param string, cmp func(got, want float64) bool, msg string) string {
	want, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}

	if s, ok := asString(value); ok {
		if !cmp(float64(len([]rune(s))), want) {
			return fmt.Sprintf(msg, name, param)
		}
		return ""
	}

	return numberRule(name, value, param, cmp, msg)
}

func numberRule(name string, value reflect.Value, param string, cmp func(got, want float64) bool, msg string) string {
	want, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return ""
	}
	got, ok := asNumber(value)
	if !ok || !cmp(got, want) {
		return fmt.Sprintf(msg, name, param)
	}
	return ""
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func splitRules(tag string) []string {
	parts := strings.Split(tag, ",")
	rules := make([]string, 0, len(parts))
	// Re-join "in=a,b,c" style params split apart by the comma split.
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(rules) > 0 && strings.HasPrefix(rules[len(rules)-1], "in=") && !strings.ContainsRune(p, '=') && !isRuleName(p) {
			rules[len(rules)-1] += "," + p
			continue
		}
		rules = append(rules, p)
	}
	return rules
}

func isRuleName(s string) bool {
	switch s {
	case "required", "nullable", "email", "numeric", "integer":
		return true
	}
	return false
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return tag
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

func asString(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

func asNumber(v reflect.Value) (float64, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		f, err := strconv.ParseFloat(v.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
