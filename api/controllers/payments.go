package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nmoussa/shopzone-backend/api/responses"
	"github.com/nmoussa/shopzone-backend/api/validators"
	"github.com/nmoussa/shopzone-backend/internal/payments"
	"github.com/nmoussa/shopzone-backend/pkg/enums"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
	"github.com/nmoussa/shopzone-backend/pkg/logger"
)

type createPaymentPayload struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
}

type updatePaymentPayload struct {
	Status string `json:"status" validate:"required"`
}

// PaymentsCreate opens the payment record for one of the user's orders.
func PaymentsCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createPaymentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		dto, err := svc.CreatePayment(ctx, userID, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// PaymentsGet returns a payment owned through its order.
func PaymentsGet(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		paymentID, err := pathUUID(r, "paymentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetPayment(ctx, userID, paymentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// PaymentsUpdateStatus writes a new payment status; nothing else is mutable.
func PaymentsUpdateStatus(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		paymentID, err := pathUUID(r, "paymentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updatePaymentPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParsePaymentStatus(payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
			return
		}

		dto, err := svc.UpdateStatus(ctx, userID, paymentID, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}
