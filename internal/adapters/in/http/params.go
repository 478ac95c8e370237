package http

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathString(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &value)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	value, err := pathString(c, name)
	if err != nil {
		return kernel.UUID{}, err
	}
	return parseUUID(name, value)
}

func queryStrings(c echo.Context, name string) ([]string, error) {
	var values []string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &values); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return values, nil
}

func parseUUID(name, value string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseUUIDs(name string, values []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(values))
	for _, v := range values {
		id, err := parseUUID(name, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseAmounts keeps a missing list nil so the allocation runs in
// auto-distribute mode.
func parseAmounts(values []string) ([]kernel.Money, error) {
	if values == nil {
		return nil, nil
	}
	amounts := make([]kernel.Money, 0, len(values))
	for _, v := range values {
		m, err := kernel.MoneyFromString(v)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, m)
	}
	return amounts, nil
}
