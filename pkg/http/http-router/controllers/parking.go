package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lintang-b-s/parking-search/pkg/http/usecases"
	helper "github.com/lintang-b-s/parking-search/pkg/http/http-router/router-helper"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"

	"go.uber.org/zap"
)

type parkingAPI struct {
	parkingService ParkingService
	log            *zap.Logger
}

func New(parkingService ParkingService, log *zap.Logger) *parkingAPI {
	return &parkingAPI{
		parkingService: parkingService,
		log:            log,
	}

}

func (api *parkingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/recommend", api.recommend)
	group.POST("/nearest", api.nearest)
	group.POST("/snap", api.snap)
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// recommendRequest model info
//
//	@Description	request body for parking recommendations around an origin.
type recommendRequest struct {
	// pointers so a legitimate 0 coordinate is not mistaken for an omitted field
	Lat      *float64 `json:"lat" validate:"required,min=-90,max=90"`   // origin latitude.
	Lon      *float64 `json:"lon" validate:"required,min=-180,max=180"` // origin longitude.
	RadiusMi float64 `json:"radius_mi" validate:"omitempty,gt=0,lte=50"` // search radius in miles, server default when omitted.
	Alpha    float64 `json:"alpha" validate:"omitempty,gte=0"`          // distance decay weight, server default when omitted.
	Beta     float64 `json:"beta" validate:"omitempty,gte=0,lte=10"`    // distance decay exponent, server default when omitted.
	TopN     int     `json:"top_n" validate:"omitempty,min=1,max=100"`  // number of recommendations to return.
}

// recommendResponse model info
//
//	@Description	response body with the ranked parking candidates.
type recommendResponse struct {
	Origin usecases.Origin           `json:"origin"` // origin actually used, possibly snapped into the service area.
	Data   []usecases.Recommendation `json:"data"`   // candidates ordered by descending score.
}

// recommend godoc
// @Summary		recommend parking locations near the given origin, ranked by supply discounted by distance.
// @Description	recommend parking locations near the given origin, ranked by supply discounted by distance. Origins outside the service area snap to the closest known location first.
// @Tags			parking
// @ID recommend
// @Param			body	body	recommendRequest	true
// @Accept			application/json
// @Produce		application/json
// @Router			/api/recommend [post]
// @Success		200	{object}	recommendResponse
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *parkingAPI) recommend(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request recommendRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	origin, results, err := api.parkingService.Recommend(*request.Lat, *request.Lon,
		request.RadiusMi, request.Alpha, request.Beta, request.TopN)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"origin": origin, "data": results}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

type nearestRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

type nearestResponse struct {
	Data usecases.Recommendation `json:"data"`
}

// nearest godoc
// @Summary		nearest returns the single closest parking location to the given point.
// @Description	nearest returns the single closest parking location to the given point, with the distance in miles and feet.
// @Tags			parking
// @ID nearest
// @Param			body	body	nearestRequest	true
// @Accept			application/json
// @Produce		application/json
// @Router			/api/nearest [post]
// @Success		200	{object}	nearestResponse
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *parkingAPI) nearest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request nearestRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	result, err := api.parkingService.Nearest(*request.Lat, *request.Lon)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": result}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

type snapRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

type snapResponse struct {
	Data usecases.Origin `json:"data"`
}

// snap godoc
// @Summary		snap moves an origin outside the service area (or far from any parking) onto the closest known location.
// @Description	snap moves an origin outside the service area (or far from any parking) onto the closest known location. Points already in range are returned unchanged.
// @Tags			parking
// @ID snap
// @Param			body	body	snapRequest	true
// @Accept			application/json
// @Produce		application/json
// @Router			/api/snap [post]
// @Success		200	{object}	snapResponse
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *parkingAPI) snap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request snapRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	result, err := api.parkingService.Snap(*request.Lat, *request.Lon)
	if err != nil {
		api.domainErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": result}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
