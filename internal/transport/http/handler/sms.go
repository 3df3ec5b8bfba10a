package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/chicktrack-api/internal/infrastructure/sms"
)

type SMSHandler struct {
	gateway sms.Gateway
}

func NewSMSHandler(gateway sms.Gateway) *SMSHandler {
	return &SMSHandler{gateway: gateway}
}

type sendSMSRequest struct {
	To      json.RawMessage `json:"to"`
	Message string          `json:"message"`
}

// recipients accepts "to" as either a single string or an array of strings.
func (req *sendSMSRequest) recipients() ([]string, error) {
	var one string
	if err := json.Unmarshal(req.To, &one); err == nil {
		if strings.TrimSpace(one) == "" {
			return nil, errors.New("to must not be empty")
		}
		return []string{one}, nil
	}
	var many []string
	if err := json.Unmarshal(req.To, &many); err == nil {
		if len(many) == 0 {
			return nil, errors.New("to must not be empty")
		}
		return many, nil
	}
	return nil, errors.New("to must be a string or an array of strings")
}

// Send handles POST /sms/send, a thin proxy over the provider gateway.
func (h *SMSHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendSMSRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	to, err := req.recipients()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.gateway.Send(r.Context(), to, req.Message)
	if err != nil {
		if errors.Is(err, sms.ErrUnconfigured) {
			writeError(w, http.StatusInternalServerError, "no SMS provider configured")
			return
		}
		writeError(w, http.StatusBadGateway, "SMS delivery failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "sent",
		"provider":  res.Provider,
		"simulated": res.Simulated,
	})
}
