package handler

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/client"
	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const MsgUnexpected = "Something went wrong. You were not charged. We are working on this."

// redirectError tells the error handler where a browser should go after
// showing the message.
type redirectError struct {
	err error
	to  string
}

func (e *redirectError) Error() string { return e.err.Error() }
func (e *redirectError) Unwrap() error { return e.err }

func withRedirect(err error, to string) error {
	if err == nil {
		return nil
	}
	return &redirectError{err: err, to: to}
}

// ErrorHandler renders every error a handler returns as a dto.Response.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("uri", c.Request().RequestURI).
			Msg("unexpected error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		log.Error().Err(err).Msg("write error response")
	}
}

func errorResponse(err error) (int, dto.Response) {
	redirect := ""
	var re *redirectError
	if errors.As(err, &re) {
		redirect = re.to
	}

	var se *service.Error
	var ce *client.ChargeError
	var he *echo.HTTPError

	switch {
	case errors.As(err, &se):
		if se.Kind == service.KindNotFound {
			return http.StatusNotFound, dto.Response{Level: dto.LevelInfo, Message: se.Message, Redirect: redirect}
		}
		return http.StatusBadRequest, dto.Response{Level: dto.LevelWarning, Message: se.Message, Fields: se.Fields, Redirect: redirect}

	case errors.As(err, &ce):
		return http.StatusPaymentRequired, dto.Response{Level: dto.LevelWarning, Message: chargeMessage(ce), Redirect: "/"}

	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return he.Code, dto.Response{Level: dto.LevelError, Message: MsgUnexpected, Redirect: "/"}
		}
		return he.Code, dto.Response{Level: dto.LevelWarning, Message: fmt.Sprint(he.Message), Redirect: redirect}

	default:
		return http.StatusInternalServerError, dto.Response{Level: dto.LevelError, Message: MsgUnexpected, Redirect: "/"}
	}
}

func chargeMessage(ce *client.ChargeError) string {
	switch ce.Kind {
	case client.ChargeDeclined:
		if ce.Message != "" {
			return ce.Message
		}
		return "Your payment was declined."
	case client.ChargeRateLimited:
		return "Rate limit error"
	case client.ChargeInvalidRequest:
		return "Invalid parameters"
	case client.ChargeAuthFailure:
		return "Not authenticated"
	case client.ChargeNetworkError:
		return "Network error"
	default:
		return "Something went wrong. You were not charged. Please try again."
	}
}
