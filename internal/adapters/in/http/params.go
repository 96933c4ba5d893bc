package http

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const defaultLimit = 10

func pathString(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	raw, err := pathString(c, name)
	if err != nil {
		return kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// queryParam binds an optional form-style query parameter into dest, which must
// be a pointer to a pointer so that absence stays nil.
func queryParam(c echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func queryLimit(c echo.Context) (int, error) {
	var limit *int
	if err := queryParam(c, "limit", &limit); err != nil {
		return 0, err
	}
	if limit == nil {
		return defaultLimit, nil
	}
	return *limit, nil
}

func queryString(c echo.Context, name string) (string, error) {
	var value *string
	if err := queryParam(c, name, &value); err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}
