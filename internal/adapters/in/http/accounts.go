package http

import (
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/address"

	"github.com/labstack/echo/v4"
)

// ListSavedAddresses handles GET /api/account/addresses.
func (s *Server) ListSavedAddresses(c echo.Context) error {
	owner, err := identity(c, "")
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewListSavedAddressesQuery(owner)
	if err != nil {
		return s.writeError(c, err)
	}
	rows, err := s.h.ListSavedAddresses.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toSavedAddresses(rows))
}

// SaveAddress handles POST /api/account/addresses. Saving the same text
// again updates the existing entry.
func (s *Server) SaveAddress(c echo.Context) error {
	var req SavedAddressRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	owner, err := identity(c, "")
	if err != nil {
		return s.writeError(c, err)
	}

	details := address.Details{
		Label:     req.Label,
		Address:   req.Address,
		Entrance:  req.Entrance,
		Floor:     req.Floor,
		Apartment: req.Apartment,
		Intercom:  req.Intercom,
		Comment:   req.Comment,
	}
	cmd, err := commands.NewSaveAddressCommand(owner, details, req.Latitude, req.Longitude, req.IsDefault)
	if err != nil {
		return s.writeError(c, err)
	}
	saved, err := s.h.SaveAddress.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	d := saved.Details()
	resp := SavedAddressResponse{
		ID:        saved.ID(),
		Label:     d.Label,
		Address:   d.Address,
		Entrance:  d.Entrance,
		Floor:     d.Floor,
		Apartment: d.Apartment,
		Intercom:  d.Intercom,
		Comment:   d.Comment,
		IsDefault: saved.IsDefault(),
	}
	if p := saved.Point(); p != nil {
		lat, lon := p.Latitude(), p.Longitude()
		resp.Latitude, resp.Longitude = &lat, &lon
	}
	return c.JSON(http.StatusCreated, resp)
}

// DeleteSavedAddress handles DELETE /api/account/addresses/:id.
func (s *Server) DeleteSavedAddress(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}
	owner, err := identity(c, "")
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewDeleteSavedAddressCommand(owner, id)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.h.DeleteSavedAddress.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
