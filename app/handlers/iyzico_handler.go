package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/oguzk/eticaret/app/services"
	"github.com/unrolled/render"
)

// IyzicoHandler exposes the gateway passthrough endpoints. Requests are
// validated here, forwarded to the gateway, and the gateway's response is
// returned verbatim so the storefront sees exactly what the gateway said.
type IyzicoHandler struct {
	client     services.IyzicoClient
	conversion *services.ConversionService
	validate   *validator.Validate
	render     *render.Render
}

func NewIyzicoHandler(client services.IyzicoClient, conversion *services.ConversionService, r *render.Render) *IyzicoHandler {
	return &IyzicoHandler{
		client:     client,
		conversion: conversion,
		validate:   validator.New(),
		render:     r,
	}
}

func (h *IyzicoHandler) badRequest(w http.ResponseWriter, details string) {
	h.render.JSON(w, http.StatusBadRequest, map[string]any{
		"error":   "Validation error",
		"details": details,
	})
}

func (h *IyzicoHandler) gatewayError(w http.ResponseWriter, err error) {
	log.Printf("IyzicoHandler: gateway call failed: %v", err)
	h.render.JSON(w, http.StatusBadGateway, map[string]any{
		"status": "error",
		"error":  err.Error(),
	})
}

// Init3DS starts a 3D Secure payment. On success the gateway response
// carries the ACS form the storefront must render.
func (h *IyzicoHandler) Init3DS(w http.ResponseWriter, r *http.Request) {
	var req services.Init3DSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	resp, err := h.client.Init3DS(r.Context(), req)
	if err != nil {
		h.gatewayError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, resp)
}

type auth3DSRequest struct {
	services.Auth3DSRequest
	CartID string `json:"cartId"`
}

// Auth3DS completes the 3D Secure payment after the bank callback. When the
// gateway confirms the charge and a cart id was supplied, the cart is
// converted to an order and the outcome is reported under "medusa".
func (h *IyzicoHandler) Auth3DS(w http.ResponseWriter, r *http.Request) {
	var req auth3DSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req.Auth3DSRequest); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	resp, err := h.client.Auth3DS(r.Context(), req.Auth3DSRequest)
	if err != nil {
		h.gatewayError(w, err)
		return
	}

	if !resp.Successful() {
		h.render.JSON(w, http.StatusOK, resp)
		return
	}

	// The storefront uses the cart id as the gateway conversation id, so
	// it doubles as the fallback when cartId is omitted.
	cartID := req.CartID
	if cartID == "" {
		cartID = req.ConversationID
	}

	result := h.conversion.ConvertCart(r.Context(), cartID, req.PaymentID)

	// Merge so the storefront gets the raw gateway fields plus our outcome.
	out := make(map[string]any, len(resp)+1)
	for k, v := range resp {
		out[k] = v
	}
	out["medusa"] = result
	h.render.JSON(w, http.StatusOK, out)
}

func (h *IyzicoHandler) BinCheck(w http.ResponseWriter, r *http.Request) {
	var req services.BinCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	resp, err := h.client.BinCheck(r.Context(), req)
	if err != nil {
		h.gatewayError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, resp)
}

func (h *IyzicoHandler) InitPWI(w http.ResponseWriter, r *http.Request) {
	var req services.InitPWIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	resp, err := h.client.InitPWI(r.Context(), req)
	if err != nil {
		h.gatewayError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, resp)
}

func (h *IyzicoHandler) RetrievePWI(w http.ResponseWriter, r *http.Request) {
	var req services.RetrievePWIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	resp, err := h.client.RetrievePWI(r.Context(), req)
	if err != nil {
		h.gatewayError(w, err)
		return
	}
	h.render.JSON(w, http.StatusOK, resp)
}
