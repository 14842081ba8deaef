package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

func (h *Handler) sendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "to, subject, and text are required")
		return
	}
	if h.email == nil {
		respondError(c, http.StatusInternalServerError, "upstream provider unavailable")
		return
	}

	if err := h.email.Send(c.Request.Context(), req.To, req.Subject, req.Text); err != nil {
		h.serviceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "email sent"})
}

type sendSMSRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *Handler) sendSMS(c *gin.Context) {
	var req sendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "to and message are required")
		return
	}
	if h.sms == nil {
		respondError(c, http.StatusInternalServerError, "upstream provider unavailable")
		return
	}

	sid, err := h.sms.Send(c.Request.Context(), req.To, req.Message)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "sms sent", "sid": sid})
}

type paymentIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required"`
	Currency string `json:"currency"`
}

func (h *Handler) createPaymentIntent(c *gin.Context) {
	var req paymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
		respondError(c, http.StatusBadRequest, "a positive amount is required")
		return
	}
	if h.payments == nil {
		respondError(c, http.StatusInternalServerError, "upstream provider unavailable")
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"id":           intent.ID,
		"clientSecret": intent.ClientSecret,
	})
}
