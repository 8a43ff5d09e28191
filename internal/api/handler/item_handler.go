package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inventrack/inventory-api/internal/api/metrics"
	"github.com/inventrack/inventory-api/internal/core/ports"
	"github.com/inventrack/inventory-api/internal/core/query"
)

// ItemHandler handles HTTP requests for inventory operations.
type ItemHandler struct {
	service ports.ItemService
	queries query.Builder
}

func NewItemHandler(service ports.ItemService, queries query.Builder) *ItemHandler {
	return &ItemHandler{service: service, queries: queries}
}

// List handles GET /items.
//
// @Summary      List items
// @Description  Filters are AND-ed; malformed filter values are ignored.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Case-insensitive name substring"
// @Param        category  query     string  false  "Case-insensitive category substring"
// @Param        minPrice  query     number  false  "Minimum price (inclusive)"
// @Param        maxPrice  query     number  false  "Maximum price (inclusive)"
// @Param        minQty    query     number  false  "Minimum quantity (inclusive)"
// @Param        maxQty    query     number  false  "Maximum quantity (inclusive)"
// @Param        sort      query     string  false  "name, price, quantity or createdAt"
// @Param        order     query     string  false  "asc or desc"
// @Param        page      query     int     false  "Page number, from 1"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  itemPageResponse
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	start := time.Now()
	q := h.queries.Build(query.FromValues(c.QueryParams()))

	page, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	metrics.ItemListDuration.Observe(time.Since(start).Seconds())
	metrics.ItemListResultSize.Observe(float64(len(page.Items)))

	return c.JSON(http.StatusOK, toItemPageResponse(page))
}

// Get handles GET /items/:id.
//
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  itemResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Create handles POST /items.
//
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      200   {object}  itemResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), principal, toItemInput(req))
	if err != nil {
		return err
	}
	metrics.ItemMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Update handles PUT /items/:id. Omitted fields are left unchanged.
//
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Item id"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  itemResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), toItemPatch(req))
	if err != nil {
		return err
	}
	metrics.ItemMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, toItemResponse(item))
}

// Delete handles DELETE /items/:id.
//
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  deleteItemResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}
	metrics.ItemMutationsTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, deleteItemResponse{Message: "item deleted", ID: id})
}
