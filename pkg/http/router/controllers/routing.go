package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/safewalk/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/route", api.computeRoute)
}

// computeRoute godoc
//
//	@Summary		compute a risk-weighted pedestrian route
//	@Description	returns the minimum-cost walking path between origin and destination under cost = distance * (1 + alpha*risk)
//	@Accept			json
//	@Produce		json
//	@Router			/route [post]
func (api *routingAPI) computeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request computeRouteRequest
		err     error
	)

	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
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

	if !validCoordinate(request.Origin[0], request.Origin[1]) {
		api.BadRequestResponse(w, r, errors.New("origin must be a valid [lat, lon] pair"))
		return
	}
	if !validCoordinate(request.Destination[0], request.Destination[1]) {
		api.BadRequestResponse(w, r, errors.New("destination must be a valid [lat, lon] pair"))
		return
	}

	alpha := api.routingService.DefaultAlpha()
	if request.Alpha != nil {
		alpha = *request.Alpha
	}

	plan, err := api.routingService.ComputeRoute(request.Origin[0], request.Origin[1],
		request.Destination[0], request.Destination[1], alpha)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewComputeRouteResponse(plan.Coordinates,
		plan.Polyline, plan.TotalDistance, plan.AverageSafety)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func validCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
