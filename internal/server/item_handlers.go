package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/itemservice/internal/apierror"
	"github.com/mdouchement/itemservice/internal/logger"
	"github.com/mdouchement/itemservice/internal/server/serializer"
	"github.com/mdouchement/itemservice/internal/server/service"
	"github.com/sirupsen/logrus"
)

// item contains all item handlers.
type item struct {
	service *service.ItemService
	log     *logrus.Logger
}

///// List
////
//

// List returns the items matching the optional search term, paginated with limit and offset.
func (h *item) List(c echo.Context) error {
	params := service.NewListParams()
	params.UserAgent = c.Request().UserAgent()

	err := echo.QueryParamsBinder(c).
		Int("limit", &params.Limit).
		Int("offset", &params.Offset).
		String("search", &params.Search).
		BindError()
	if err != nil {
		return queryError(err)
	}

	h.log.WithField("user_agent", params.UserAgent).Infof("Getting items with limit=%d, offset=%d, search=%q", params.Limit, params.Offset, params.Search)

	items, err := h.service.List(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Items(items))
}

///// Show
////
//

// Show returns the item matching the path id.
func (h *item) Show(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	h.log.Infof("Getting item with ID: %d", id)

	item, err := h.service.Get(id)
	if err != nil {
		h.missed(err, "Item not found: %d", id)
		return err
	}

	return c.JSON(http.StatusOK, serializer.Item(item))
}

///// Create
////
//

// Create stores a new item.
func (h *item) Create(c echo.Context) error {
	var params service.ItemParams
	if err := c.Bind(&params); err != nil {
		return err
	}
	if err := c.Validate(&params); err != nil {
		return err
	}
	params.UserAgent = c.Request().UserAgent()

	h.log.WithField("user_agent", params.UserAgent).Infof("Creating new item: %s", params.Name)

	item, err := h.service.Create(params)
	if err != nil {
		return err
	}

	h.log.Infof("Created item with ID: %d", item.ID)
	logger.Dump(h.log, "Created item", item)

	return c.JSON(http.StatusCreated, serializer.Item(item))
}

///// Update
////
//

// Update replaces the name and the description of the item matching the path id.
func (h *item) Update(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	var params service.ItemParams
	if err = c.Bind(&params); err != nil {
		return err
	}
	if err = c.Validate(&params); err != nil {
		return err
	}
	params.UserAgent = c.Request().UserAgent()

	h.log.WithField("user_agent", params.UserAgent).Infof("Updating item with ID: %d", id)

	item, err := h.service.Update(id, params)
	if err != nil {
		h.missed(err, "Item not found for update: %d", id)
		return err
	}

	h.log.Infof("Updated item with ID: %d", id)
	logger.Dump(h.log, "Updated item", item)

	return c.JSON(http.StatusOK, serializer.Item(item))
}

///// Delete
////
//

// Delete removes the item matching the path id.
func (h *item) Delete(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return err
	}

	h.log.Infof("Deleting item with ID: %d", id)

	if err = h.service.Delete(id); err != nil {
		h.missed(err, "Item not found for deletion: %d", id)
		return err
	}

	h.log.Infof("Deleted item with ID: %d", id)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Item deleted successfully",
	})
}

func (h *item) missed(err error, format string, id int) {
	if apierror.StatusCode(err) == http.StatusNotFound {
		h.log.Warnf(format, id)
	}
}

func itemID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apierror.Validation(apierror.FieldError{
			Location: []string{"path", "id"},
			Message:  "value is not a valid integer",
			Type:     "type_error.integer",
		})
	}
	return id, nil
}

func queryError(err error) error {
	berr, ok := err.(*echo.BindingError)
	if !ok {
		return err
	}

	return apierror.Validation(apierror.FieldError{
		Location: []string{"query", berr.Field},
		Message:  "value is not a valid integer",
		Type:     "type_error.integer",
	})
}
