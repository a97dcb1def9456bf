package api

import (
	models "github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	domrepo "github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
	"github.com/Dotan-Peleh/currency-convertor/internal/usecase"
	xhttp "github.com/Dotan-Peleh/currency-convertor/pkg/http"
	xlogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PricesEchoHandler exposes the price matrix and a manual run trigger.
type PricesEchoHandler struct {
	logger    *xlogger.Logger
	converter *usecase.PriceConverter
	sink      domrepo.PriceSink
}

func NewPricesEchoHandler(logger *xlogger.Logger, converter *usecase.PriceConverter, sink domrepo.PriceSink) *PricesEchoHandler {
	return &PricesEchoHandler{logger: logger, converter: converter, sink: sink}
}

func (h *PricesEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/prices", h.Prices)
	g.GET("/prices/:country", h.PricesByCountry)
	g.POST("/refresh", h.Refresh)
	e.GET("/healthz", h.Health)
}

// Prices returns the latest matrix rows, optionally filtered by country/SKU.
func (h *PricesEchoHandler) Prices(c echo.Context) error {
	req := &models.PricesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.sink.Query(c.Request().Context(), req.Country, req.SKU, req.Limit)
	if err != nil {
		h.logger.Error("price matrix query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// PricesByCountry returns all rows for one storefront country.
func (h *PricesEchoHandler) PricesByCountry(c echo.Context) error {
	req := &models.PricesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	req.Country = c.Param("country")

	rows, err := h.sink.Query(c.Request().Context(), req.Country, req.SKU, req.Limit)
	if err != nil {
		h.logger.Error("price matrix query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if len(rows) == 0 {
		return xhttp.NotFoundResponse(c, "no prices for country "+req.Country)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Refresh runs a full conversion synchronously and reports the totals.
func (h *PricesEchoHandler) Refresh(c echo.Context) error {
	res, err := h.converter.RunOnce(c.Request().Context())
	if err != nil {
		h.logger.Error("manual refresh error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, models.RefreshResponse{
		Count:    len(res.Records),
		Adopted:  res.Adopted,
		Held:     res.Held,
		Skipped:  len(res.Skipped),
		RateDate: res.RateDate,
	})
}

// Health pings the sink so load balancers can see storage trouble.
func (h *PricesEchoHandler) Health(c echo.Context) error {
	if err := h.sink.Health(c.Request().Context()); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
