package controllers

import (
	"net/http"

	"github.com/nmoussa/shopzone-backend/api/responses"
	"github.com/nmoussa/shopzone-backend/api/validators"
	"github.com/nmoussa/shopzone-backend/internal/customers"
	"github.com/nmoussa/shopzone-backend/pkg/logger"
)

type profilePayload struct {
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

type createAddressPayload struct {
	HouseNo    string `json:"house_no" validate:"required,max=32"`
	Street     string `json:"street" validate:"required,max=128"`
	City       string `json:"city" validate:"required,max=64"`
	PostalCode string `json:"postal_code" validate:"required,max=16"`
	Country    string `json:"country" validate:"required,max=64"`
}

type updateAddressPayload struct {
	HouseNo    *string `json:"house_no" validate:"omitempty,max=32"`
	Street     *string `json:"street" validate:"omitempty,max=128"`
	City       *string `json:"city" validate:"omitempty,max=64"`
	PostalCode *string `json:"postal_code" validate:"omitempty,max=16"`
	Country    *string `json:"country" validate:"omitempty,max=64"`
}

// ProfileCreate opens the user's 1:1 customer profile.
func ProfileCreate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload profilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.CreateProfile(ctx, userID, customers.ProfileInput{
			Phone:    payload.Phone,
			ImageURL: payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ProfileGet returns the user's profile.
func ProfileGet(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetProfile(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// ProfileUpdate applies a partial update to the profile.
func ProfileUpdate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload profilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateProfile(ctx, userID, customers.ProfileInput{
			Phone:    payload.Phone,
			ImageURL: payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AddressCreate adds a postal address.
func AddressCreate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload createAddressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.CreateAddress(ctx, userID, customers.AddressInput{
			HouseNo:    payload.HouseNo,
			Street:     payload.Street,
			City:       payload.City,
			PostalCode: payload.PostalCode,
			Country:    payload.Country,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AddressList returns every address the user has on file.
func AddressList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dtos, err := svc.ListAddresses(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dtos)
	}
}

// AddressGet returns a single owned address.
func AddressGet(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addressID, err := pathUUID(r, "addressID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.GetAddress(ctx, userID, addressID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AddressUpdate applies a partial update to an owned address.
func AddressUpdate(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addressID, err := pathUUID(r, "addressID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateAddressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateAddress(ctx, userID, addressID, customers.UpdateAddressInput{
			HouseNo:    payload.HouseNo,
			Street:     payload.Street,
			City:       payload.City,
			PostalCode: payload.PostalCode,
			Country:    payload.Country,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// AddressDelete removes an address unless an order still references it.
func AddressDelete(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := actingUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addressID, err := pathUUID(r, "addressID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteAddress(ctx, userID, addressID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
