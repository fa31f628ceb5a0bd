package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListUsersParams are the query parameters of GET /api/users.
type ListUsersParams struct {
	Role     *string
	IsActive *bool
}

// ListParcelsParams are the query parameters of the own-parcel lists.
type ListParcelsParams struct {
	Status *string
}

// ListAllParcelsParams are the query parameters of GET /api/parcels/admin/all.
type ListAllParcelsParams struct {
	Status    *string
	Sender    *openapi_types.UUID
	Receiver  *openapi_types.UUID
	CreatedOn *openapi_types.Date
}

// ServerInterface represents all server handlers of api/openapi.json.
type ServerInterface interface {
	// (POST /api/auth/register)
	Register(ctx echo.Context) error
	// (POST /api/auth/login)
	Login(ctx echo.Context) error

	// (GET /api/users/profile)
	GetProfile(ctx echo.Context) error
	// (GET /api/users)
	ListUsers(ctx echo.Context, params ListUsersParams) error
	// (PATCH /api/users/toggle-status/{userId})
	ToggleUserStatus(ctx echo.Context, userID openapi_types.UUID) error

	// (POST /api/parcels)
	CreateParcel(ctx echo.Context) error
	// (GET /api/parcels/my-sent)
	ListSentParcels(ctx echo.Context, params ListParcelsParams) error
	// (GET /api/parcels/my-received)
	ListReceivedParcels(ctx echo.Context, params ListParcelsParams) error
	// (GET /api/parcels/track/{trackingId})
	TrackParcel(ctx echo.Context, trackingID string) error
	// (GET /api/parcels/admin/all)
	ListAllParcels(ctx echo.Context, params ListAllParcelsParams) error
	// (GET /api/parcels/{id})
	GetParcel(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /api/parcels/cancel/{id})
	CancelParcel(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /api/parcels/confirm-delivery/{id})
	ConfirmDelivery(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /api/parcels/admin/update-status/{id})
	UpdateParcelStatus(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) Register(ctx echo.Context) error {
	return w.Handler.Register(ctx)
}

func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

func (w *ServerInterfaceWrapper) GetProfile(ctx echo.Context) error {
	return w.Handler.GetProfile(ctx)
}

func (w *ServerInterfaceWrapper) ListUsers(ctx echo.Context) error {
	var params ListUsersParams

	if err := runtime.BindQueryParameter("form", true, false, "role", ctx.QueryParams(), &params.Role); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter role: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "isActive", ctx.QueryParams(), &params.IsActive); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter isActive: %s", err))
	}

	return w.Handler.ListUsers(ctx, params)
}

func (w *ServerInterfaceWrapper) ToggleUserStatus(ctx echo.Context) error {
	var userID openapi_types.UUID
	if err := bindPathUUID(ctx, "userId", &userID); err != nil {
		return err
	}
	return w.Handler.ToggleUserStatus(ctx, userID)
}

func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	return w.Handler.CreateParcel(ctx)
}

func (w *ServerInterfaceWrapper) ListSentParcels(ctx echo.Context) error {
	params, err := bindListParcelsParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListSentParcels(ctx, params)
}

func (w *ServerInterfaceWrapper) ListReceivedParcels(ctx echo.Context) error {
	params, err := bindListParcelsParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListReceivedParcels(ctx, params)
}

func (w *ServerInterfaceWrapper) TrackParcel(ctx echo.Context) error {
	var trackingID string
	err := runtime.BindStyledParameterWithOptions("simple", "trackingId", ctx.Param("trackingId"), &trackingID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter trackingId: %s", err))
	}
	return w.Handler.TrackParcel(ctx, trackingID)
}

func (w *ServerInterfaceWrapper) ListAllParcels(ctx echo.Context) error {
	var params ListAllParcelsParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "sender", query, &params.Sender); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sender: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "receiver", query, &params.Receiver); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter receiver: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "createdOn", query, &params.CreatedOn); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter createdOn: %s", err))
	}

	return w.Handler.ListAllParcels(ctx, params)
}

func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	var id openapi_types.UUID
	if err := bindPathUUID(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.GetParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) CancelParcel(ctx echo.Context) error {
	var id openapi_types.UUID
	if err := bindPathUUID(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.CancelParcel(ctx, id)
}

func (w *ServerInterfaceWrapper) ConfirmDelivery(ctx echo.Context) error {
	var id openapi_types.UUID
	if err := bindPathUUID(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.ConfirmDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateParcelStatus(ctx echo.Context) error {
	var id openapi_types.UUID
	if err := bindPathUUID(ctx, "id", &id); err != nil {
		return err
	}
	return w.Handler.UpdateParcelStatus(ctx, id)
}

func bindPathUUID(ctx echo.Context, name string, dest *openapi_types.UUID) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindListParcelsParams(ctx echo.Context) (ListParcelsParams, error) {
	var params ListParcelsParams
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return params, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every API route to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/auth/register", w.Register)
	router.POST("/api/auth/login", w.Login)

	router.GET("/api/users/profile", w.GetProfile)
	router.GET("/api/users", w.ListUsers)
	router.PATCH("/api/users/toggle-status/:userId", w.ToggleUserStatus)

	router.POST("/api/parcels", w.CreateParcel)
	router.GET("/api/parcels/my-sent", w.ListSentParcels)
	router.GET("/api/parcels/my-received", w.ListReceivedParcels)
	router.GET("/api/parcels/track/:trackingId", w.TrackParcel)
	router.GET("/api/parcels/admin/all", w.ListAllParcels)
	router.GET("/api/parcels/:id", w.GetParcel)
	router.PATCH("/api/parcels/cancel/:id", w.CancelParcel)
	router.PATCH("/api/parcels/confirm-delivery/:id", w.ConfirmDelivery)
	router.PATCH("/api/parcels/admin/update-status/:id", w.UpdateParcelStatus)
}
