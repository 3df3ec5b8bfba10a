package handler

import (
	"errors"
	"net/http"

	"github.com/chicktrack-api/internal/application/otp"
	"github.com/chicktrack-api/internal/infrastructure/sms"
	"github.com/chicktrack-api/internal/pkg/validate"
)

type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler {
	return &OTPHandler{svc: svc}
}

// Send handles POST /otp/request.
func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.Issue(r.Context(), req.To)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidPhone):
			writeError(w, http.StatusBadRequest, "phone must be E.164, e.g. +254712345678")
		case errors.Is(err, sms.ErrUnconfigured):
			writeError(w, http.StatusInternalServerError, "no SMS provider configured")
		case errors.Is(err, otp.ErrDispatchFailed):
			writeError(w, http.StatusBadGateway, "could not send verification code, try again later")
		default:
			writeDomainError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"sent":       true,
		"ttlSeconds": res.TTLSeconds,
		"provider":   res.Provider,
	})
}

// Verify handles POST /otp/verify. All rejection causes share one message so
// the response does not reveal whether a code exists for the phone.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To   string `json:"to" validate:"required"`
		Code string `json:"code" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Verify(r.Context(), req.To, req.Code); err != nil {
		switch {
		case errors.Is(err, otp.ErrInvalidPhone):
			writeError(w, http.StatusBadRequest, "phone must be E.164, e.g. +254712345678")
		case errors.Is(err, otp.ErrNoPendingCode),
			errors.Is(err, otp.ErrCodeExpired),
			errors.Is(err, otp.ErrCodeMismatch):
			writeError(w, http.StatusBadRequest, "invalid or expired code")
		default:
			writeDomainError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"verified": true,
	})
}
