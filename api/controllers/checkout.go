package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nmoussa/shopzone-backend/api/responses"
	"github.com/nmoussa/shopzone-backend/api/validators"
	"github.com/nmoussa/shopzone-backend/internal/checkout"
	pkgerrors "github.com/nmoussa/shopzone-backend/pkg/errors"
	"github.com/nmoussa/shopzone-backend/pkg/logger"
)

type checkoutPayload struct {
	BillingAddressID  string `json:"billing_address_id" validate:"required,uuid"`
	ShippingAddressID string `json:"shipping_address_id" validate:"required,uuid"`
}

// Checkout converts the acting user's cart into an order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		billingID, err := uuid.Parse(payload.BillingAddressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid billing address id"))
			return
		}
		shippingID, err := uuid.Parse(payload.ShippingAddressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping address id"))
			return
		}

		order, err := svc.CreateOrder(ctx, userID, checkout.CheckoutInput{
			BillingAddressID:  billingID,
			ShippingAddressID: shippingID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
