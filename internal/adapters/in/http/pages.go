package http

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/link"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

//go:embed templates/pages.html
var pageFS embed.FS

// page is what every link page renders. Body names one of the body
// templates in pages.html.
type page struct {
	Title   string
	Body    string
	Text    string
	OrderID int64
	Action  string
	Stars   string
	Scores  []scoreOption
}

type scoreOption struct {
	Value int
	Stars string
}

type pageRenderer struct {
	base *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{base: template.Must(template.ParseFS(pageFS, "templates/pages.html"))}
}

// Render draws the layout with data.Body as its body block.
func (r *pageRenderer) Render(w io.Writer, _ string, data any, _ echo.Context) error {
	p, ok := data.(page)
	if !ok {
		return errors.New("link pages render page values only")
	}
	t, err := r.base.Clone()
	if err != nil {
		return err
	}
	body := p.Body
	if body == "" {
		body = "message"
	}
	if _, err := t.New("body").Parse(`{{template "` + body + `" .}}`); err != nil {
		return err
	}
	return t.ExecuteTemplate(w, "layout", p)
}

func (s *Server) renderPage(c echo.Context, code int, p page) error {
	return c.Render(code, "layout", p)
}

// renderLinkError shows the same page for every bad link. Other failures get
// a generic page; invalid input is shown to the user.
func (s *Server) renderLinkError(c echo.Context, err error, hint string) error {
	if errors.Is(err, errs.ErrInvalidLink) {
		return s.renderPage(c, http.StatusBadRequest, page{Title: "Link is invalid or expired", Text: hint})
	}
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.Error("link page failed", "path", c.Path(), "error", err)
		return s.renderPage(c, code, page{Title: "Something went wrong", Text: "Please try again later."})
	}
	return s.renderPage(c, code, page{Title: "Could not save", Text: err.Error()})
}

func rateForm(orderID int64, rateURL string) page {
	scores := make([]scoreOption, 0, order.MaxRating)
	for i := order.MinRating; i <= order.MaxRating; i++ {
		scores = append(scores, scoreOption{Value: i, Stars: stars(i)})
	}
	return page{Body: "rate_form", OrderID: orderID, Action: rateURL, Scores: scores}
}

func stars(score int) string {
	out := ""
	for i := order.MinRating; i <= order.MaxRating; i++ {
		if i <= score {
			out += "⭐"
		} else {
			out += "☆"
		}
	}
	return out
}

func linkPath(action link.Action, token string) string {
	return "/api/orders/" + action.PathSegment() + "/" + token + "/"
}

// ConfirmReceiptPage handles GET /api/orders/confirm/:token.
func (s *Server) ConfirmReceiptPage(c echo.Context) error {
	const hint = "Open the order from a recent message."
	cmd, err := commands.NewConfirmReceiptCommand(c.Param("token"))
	if err != nil {
		return s.renderLinkError(c, errs.ErrInvalidLink, hint)
	}
	result, err := s.h.ConfirmReceipt.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.renderLinkError(c, err, hint)
	}

	p := rateForm(result.Order.ID(), linkPath(link.ActionRate, result.RateToken))
	p.Title = "Order #" + strconv.FormatInt(result.Order.ID(), 10) + " delivered 💐"
	return s.renderPage(c, http.StatusOK, p)
}

// CancelOrderPage handles GET /api/orders/cancel/:token. Without ?confirm=1
// it only asks for confirmation.
func (s *Server) CancelOrderPage(c echo.Context) error {
	const hint = "Open the order from your account."
	confirmed := c.QueryParam("confirm") == "1"
	cmd, err := commands.NewCancelOrderCommand(c.Param("token"), confirmed)
	if err != nil {
		return s.renderLinkError(c, errs.ErrInvalidLink, hint)
	}
	o, err := s.h.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.renderLinkError(c, err, hint)
	}

	id := strconv.FormatInt(o.ID(), 10)
	if !confirmed {
		return s.renderPage(c, http.StatusOK, page{
			Title:   "Confirm cancellation",
			Body:    "cancel_prompt",
			OrderID: o.ID(),
			Action:  linkPath(link.ActionCancel, cmd.Token()) + "?confirm=1",
		})
	}
	if o.Status() != order.StatusCanceled {
		return s.renderPage(c, http.StatusOK, page{
			Title: "Order #" + id + " can no longer be canceled",
			Text:  "It is already " + o.Status().String() + ".",
		})
	}
	return s.renderPage(c, http.StatusOK, page{
		Title: "Order #" + id + " canceled",
		Text:  "We hope to see you again soon to find the perfect bouquet ❤️.",
	})
}

// RateOrderPage handles GET and POST /api/orders/rate/:token.
func (s *Server) RateOrderPage(c echo.Context) error {
	const hint = "Open the order from a recent message to leave a review."
	token := c.Param("token")

	if c.Request().Method != http.MethodPost {
		query, err := queries.NewGetLinkedOrderQuery(link.ActionRate, token)
		if err != nil {
			return s.renderLinkError(c, errs.ErrInvalidLink, hint)
		}
		o, err := s.h.GetLinkedOrder.Handle(c.Request().Context(), query)
		if err != nil {
			return s.renderLinkError(c, err, hint)
		}
		p := rateForm(o.ID(), linkPath(link.ActionRate, token))
		p.Title = "Rate order #" + strconv.FormatInt(o.ID(), 10)
		return s.renderPage(c, http.StatusOK, p)
	}

	score := order.MaxRating
	if raw := c.FormValue("score"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return s.renderLinkError(c, errs.NewValueIsInvalidErrorWithCause("score", err), hint)
		}
		score = v
	}
	cmd, err := commands.NewRateOrderCommand(token, score, c.FormValue("comment"))
	if err != nil {
		return s.renderLinkError(c, errs.ErrInvalidLink, hint)
	}
	o, err := s.h.RateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.renderLinkError(c, err, hint)
	}

	r := o.Rating()
	return s.renderPage(c, http.StatusOK, page{Title: "Thank you for your review!", Body: "rated", Stars: stars(r.Score), Text: r.Comment})
}

// RepeatOrderPage handles GET /api/orders/repeat/:token.
func (s *Server) RepeatOrderPage(c echo.Context) error {
	const hint = "Repeat the order from your account."
	cmd, err := commands.NewRepeatOrderCommand(c.Param("token"))
	if err != nil {
		return s.renderLinkError(c, errs.ErrInvalidLink, hint)
	}
	o, err := s.h.RepeatOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.renderLinkError(c, err, hint)
	}
	return s.renderPage(c, http.StatusOK, page{
		Title: "Order #" + strconv.FormatInt(o.ID(), 10) + " created",
		Text:  "We are already putting your bouquet together 💐",
	})
}

// RequestCallbackPage handles GET /api/orders/call/:token.
func (s *Server) RequestCallbackPage(c echo.Context) error {
	const hint = "Request a call from your account."
	cmd, err := commands.NewRequestCallbackCommand(c.Param("token"))
	if err != nil {
		return s.renderLinkError(c, errs.ErrInvalidLink, hint)
	}
	if _, err := s.h.RequestCallback.Handle(c.Request().Context(), cmd); err != nil {
		return s.renderLinkError(c, err, hint)
	}
	return s.renderPage(c, http.StatusOK, page{Title: "We will call you back", Text: "An operator will contact you shortly."})
}

// ChangeAddressPage handles GET and POST /api/orders/change-address/:token.
func (s *Server) ChangeAddressPage(c echo.Context) error {
	const hint = "Change the address from your account."
	token := c.Param("token")

	if c.Request().Method != http.MethodPost {
		query, err := queries.NewGetLinkedOrderQuery(link.ActionAddress, token)
		if err != nil {
			return s.renderLinkError(c, errs.ErrInvalidLink, hint)
		}
		if _, err := s.h.GetLinkedOrder.Handle(c.Request().Context(), query); err != nil {
			return s.renderLinkError(c, err, hint)
		}
		return s.renderPage(c, http.StatusOK, page{Title: "Change delivery address", Body: "address_form"})
	}

	cmd, err := commands.NewRequestAddressChangeCommand(token, c.FormValue("address"), c.FormValue("comment"))
	if errors.Is(err, errs.ErrValueIsRequired) {
		return s.renderPage(c, http.StatusBadRequest, page{Title: "Address is required", Text: "Go back and fill in the form."})
	}
	if err != nil {
		return s.renderLinkError(c, errs.ErrInvalidLink, hint)
	}
	if _, err := s.h.RequestAddressChange.Handle(c.Request().Context(), cmd); err != nil {
		return s.renderLinkError(c, err, hint)
	}
	return s.renderPage(c, http.StatusOK, page{Title: "Request received", Text: "We will confirm the new address shortly."})
}

// DeliveryPhotoPage handles GET and POST /api/orders/photo/:token.
func (s *Server) DeliveryPhotoPage(c echo.Context) error {
	const hint = "Upload the photo from your account."
	token := c.Param("token")

	file, fileErr := c.FormFile("photo")
	if c.Request().Method != http.MethodPost || fileErr != nil {
		query, err := queries.NewGetLinkedOrderQuery(link.ActionPhoto, token)
		if err != nil {
			return s.renderLinkError(c, errs.ErrInvalidLink, hint)
		}
		if _, err := s.h.GetLinkedOrder.Handle(c.Request().Context(), query); err != nil {
			return s.renderLinkError(c, err, hint)
		}
		return s.renderPage(c, http.StatusOK, page{Title: "Delivery photo", Body: "photo_form"})
	}

	src, err := file.Open()
	if err != nil {
		return s.renderLinkError(c, err, hint)
	}
	defer src.Close()

	cmd, err := commands.NewUploadDeliveryPhotoCommand(token, file.Filename, src)
	if err != nil {
		return s.renderLinkError(c, errs.ErrInvalidLink, hint)
	}
	if _, err := s.h.UploadDeliveryPhoto.Handle(c.Request().Context(), cmd); err != nil {
		return s.renderLinkError(c, err, hint)
	}
	return s.renderPage(c, http.StatusOK, page{Title: "Photo received", Text: "Thank you! The customer will see the confirmation."})
}
