package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// intQueryParam parses an integer query parameter. A missing value or a parse
// failure yields 0, which QueryFilter.Clean later replaces with the default;
// bad paging input is never an error.
func intQueryParam(ctx echo.Context, name string) int {
	n, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
