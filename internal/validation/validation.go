// Package validation decodifica y valida cuerpos JSON contra schemas con tags de
// go-playground/validator. Reporta todas las violaciones en una sola pasada y
// descarta los campos no reconocidos.
package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"secure-petstore/internal/platform/apperr"
)

const (
	MaxBodyBytes = 1 << 20 // 1MB

	failedMessage = "Validation failed"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonName(f)
	})
	return v
}

// keyCounter lo implementan schemas que exigen un mínimo de campos presentes.
type keyCounter interface {
	MinKeys() int
}

// Decode lee el body de r y devuelve T validado, o un apperr de kind Validation
// con una entrada {field, message} por cada violación.
func Decode[T any](r *http.Request) (T, error) {
	var out T

	raw, err := readObject(r.Body)
	if err != nil {
		return out, apperr.Validation(failedMessage, []apperr.FieldError{{
			Field:   "body",
			Message: "Request body must be a valid JSON object",
		}})
	}

	rv := reflect.ValueOf(&out).Elem()
	rt := rv.Type()

	present := 0
	typeErrs := map[string]string{}

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := jsonName(f)
		v, ok := raw[name]
		if !ok || f.Type.Kind() != reflect.Ptr {
			continue
		}
		present++

		switch f.Type.Elem().Kind() {
		case reflect.String:
			s, ok := v.(string)
			if !ok {
				typeErrs[name] = fmt.Sprintf(`"%s" must be a string`, name)
				continue
			}
			if f.Tag.Get("norm") == "trim" {
				s = strings.TrimSpace(s)
			}
			rv.Field(i).Set(reflect.ValueOf(&s))
		case reflect.Int:
			n, msg := coerceInt(name, v)
			if msg != "" {
				typeErrs[name] = msg
				continue
			}
			rv.Field(i).Set(reflect.ValueOf(&n))
		}
	}

	var fields []apperr.FieldError

	if kc, ok := any(out).(keyCounter); ok && present < kc.MinKeys() {
		fields = append(fields, apperr.FieldError{
			Field:   "value",
			Message: fmt.Sprintf(`"value" must have at least %d key`, kc.MinKeys()),
		})
	}

	byField := map[string][]string{}
	if err := validate.Struct(out); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return out, apperr.Internal(err)
		}
		for _, fe := range verrs {
			name := fe.Field()
			if _, bad := typeErrs[name]; bad {
				// el valor no se pudo convertir; "is required" sería engañoso
				continue
			}
			byField[name] = append(byField[name], message(fe))
		}
	}

	// Mismo orden que los campos del schema.
	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		if msg, ok := typeErrs[name]; ok {
			fields = append(fields, apperr.FieldError{Field: name, Message: msg})
		}
		for _, msg := range byField[name] {
			fields = append(fields, apperr.FieldError{Field: name, Message: msg})
		}
	}

	if len(fields) > 0 {
		return out, apperr.Validation(failedMessage, fields)
	}
	return out, nil
}

func readObject(body io.Reader) (map[string]any, error) {
	if body == nil {
		return map[string]any{}, nil
	}
	b, err := io.ReadAll(io.LimitReader(body, MaxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		// body "null"
		return nil, fmt.Errorf("body must be an object")
	}
	return raw, nil
}

// coerceInt acepta números enteros y strings numéricas (como hacía el validador original).
func coerceInt(name string, v any) (int, string) {
	var s string
	switch x := v.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	default:
		return 0, fmt.Sprintf(`"%s" must be a number`, name)
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Sprintf(`"%s" must be a safe number`, name)
		}
		return int(n), ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Sprintf(`"%s" must be a number`, name)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Sprintf(`"%s" must be an integer`, name)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Sprintf(`"%s" must be a safe number`, name)
	}
	return int(f), ""
}

func message(fe validator.FieldError) string {
	name := fe.Field()

	if fe.Tag() != "required" {
		if s, ok := fe.Value().(string); ok && s == "" {
			return fmt.Sprintf(`"%s" is not allowed to be empty`, name)
		}
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(`"%s" is required`, name)
	case "min":
		return fmt.Sprintf(`"%s" length must be at least %s characters long`, name, fe.Param())
	case "max":
		return fmt.Sprintf(`"%s" length must be less than or equal to %s characters long`, name, fe.Param())
	case "gte":
		return fmt.Sprintf(`"%s" must be greater than or equal to %s`, name, fe.Param())
	case "lte":
		return fmt.Sprintf(`"%s" must be less than or equal to %s`, name, fe.Param())
	case "email":
		return fmt.Sprintf(`"%s" must be a valid email`, name)
	case "alphanum":
		return fmt.Sprintf(`"%s" must only contain alpha-numeric characters`, name)
	default:
		return fmt.Sprintf(`"%s" failed on the '%s' rule`, name, fe.Tag())
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
