package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
	"github.com/chaitanya039/sales-dashboard-backend/utils"
)

// SalesLister is what the listing endpoint needs from the service layer.
type SalesLister interface {
	GetSales(ctx context.Context, params query.Params) (*models.SalesPage, error)
}

// SalesHandler serves the sales listing.
type SalesHandler struct {
	sales SalesLister
}

func NewSalesHandler(sales SalesLister) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// paramsFromQuery copies the listing query string as-is. Coercion and
// defaults are applied by the query builders.
func paramsFromQuery(c *fiber.Ctx) query.Params {
	return query.Params{
		Region:        c.Query("region"),
		Gender:        c.Query("gender"),
		Category:      c.Query("category"),
		PaymentMethod: c.Query("paymentMethod"),
		AgeMin:        c.Query("ageMin"),
		AgeMax:        c.Query("ageMax"),
		StartDate:     c.Query("startDate"),
		EndDate:       c.Query("endDate"),
		Tags:          c.Query("tags"),
		Search:        c.Query("search"),
		Sort:          c.Query("sort"),
		Order:         c.Query("order"),
		Page:          c.Query("page"),
		Limit:         c.Query("limit"),
	}
}

// HandleGetSales lists sales matching the query string filters.
//
// GET /api/v1/sales?region=&gender=&category=&paymentMethod=&ageMin=&ageMax=
// &startDate=&endDate=&tags=&search=&sort=&order=&page=&limit=
func (h *SalesHandler) HandleGetSales(c *fiber.Ctx) error {
	params := paramsFromQuery(c)

	slog.Debug("📥 [SALES HANDLER] listing sales",
		"search", params.Search, "sort", params.Sort, "order", params.Order, "page", params.Page, "limit", params.Limit)

	page, err := h.sales.GetSales(c.UserContext(), params)
	if err != nil {
		return utils.Internal("Failed to retrieve sales", err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewApiResponse(fiber.StatusOK, page, ""))
}
