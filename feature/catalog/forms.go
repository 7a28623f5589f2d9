package catalog

import (
	"fmt"

	"movies-app/core/reconcile"
	"movies-app/core/utils"

	"github.com/gofiber/fiber/v2"
)

// SelectionField is the repeated form field carrying the checked related ids.
const SelectionField = "selectedOptions"

// FormValues returns every value submitted for key in a urlencoded or
// multipart form. It returns nil when the key is absent, which callers treat
// as "clear all links".
func FormValues(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals, ok := form.Value[key]; ok {
			return append([]string{}, vals...)
		}
		return nil
	}

	raw := c.Request().PostArgs().PeekMulti(key)
	if len(raw) == 0 {
		return nil
	}
	vals := make([]string, 0, len(raw))
	for _, v := range raw {
		vals = append(vals, string(v))
	}
	return vals
}

// Selection parses the selectedOptions field of the submitted form.
func Selection(c *fiber.Ctx) ([]int, error) {
	return reconcile.ParseSelection(FormValues(c, SelectionField))
}

// PathID parses the :id route parameter.
func PathID(c *fiber.Ctx) (int, error) {
	id, err := utils.ParseID(c.Params("id"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return id, nil
}
