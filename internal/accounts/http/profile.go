package http

import (
	"encoding/json"
	"net/http"

	"github.com/parleychat/parley/internal/accounts/domain"
	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/parleychat/parley/pkg/httpx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService

	SecureCookies bool
}

func toProfileData(p domain.Profile) accountsdk.ProfileData {
	return accountsdk.ProfileData{
		ID:           p.ID,
		FullName:     p.FullName,
		Email:        p.Email,
		MobileNumber: p.MobileNumber,
		IsVerified:   p.IsVerified,
		Gender:       p.Gender,
		About:        p.About,
		ProfileImage: p.ProfileImage,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleMe godoc
//
//	@Summary		Get Profile Endpoint
//	@Description	Return the signed-in account's profile
//	@Tags			Profiles
//	@Produce		json
//	@Success		200	{object}	accountsdk.ProfileResponse	"success, message, data"
//	@Failure		401	{object}	accountsdk.Envelope			"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/me [get].
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.ProfileService.Get(ctx, accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Profile fetched", toProfileData(profile))
}

// HandleUpdate godoc
//
//	@Summary		Update Profile Endpoint
//	@Description	Patch the signed-in account's profile; absent fields are left untouched
//	@Tags			Profiles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.UpdateProfileRequest	true	"Fields to update"
//	@Success		200		{object}	accountsdk.ProfileResponse		"success, message, data"
//	@Failure		400		{object}	accountsdk.Envelope				"success, message"
//	@Failure		401		{object}	accountsdk.Envelope				"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/me [put].
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req accountsdk.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.ProfileService.Update(ctx, accountID, service.UpdateInput{
		FullName:     req.FullName,
		Gender:       req.Gender,
		About:        req.About,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Profile updated", toProfileData(profile))
}

// HandleList godoc
//
//	@Summary		List Profiles Endpoint
//	@Description	Return the profiles of all other verified members
//	@Tags			Profiles
//	@Produce		json
//	@Success		200	{object}	accountsdk.ProfileListResponse	"success, message, data"
//	@Failure		401	{object}	accountsdk.Envelope				"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/ [get].
func (h *ProfileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	profiles, err := h.ProfileService.List(ctx, accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	data := make([]accountsdk.ProfileData, 0, len(profiles))
	for _, p := range profiles {
		data = append(data, toProfileData(p))
	}
	httpx.WriteSuccess(w, http.StatusOK, "Profiles fetched", data)
}

// HandleDelete godoc
//
//	@Summary		Delete Account Endpoint
//	@Description	Permanently remove the signed-in account and clear its cookies
//	@Tags			Profiles
//	@Produce		json
//	@Success		200	{object}	accountsdk.Envelope	"success, message"
//	@Failure		401	{object}	accountsdk.Envelope	"success, message"
//	@Security		BearerAuth
//	@Router			/v1/accounts/me [delete].
func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.ProfileService.Delete(ctx, accountID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearTokenCookies(w, h.SecureCookies)
	httpx.WriteSuccess(w, http.StatusOK, "Account deleted", nil)
}
