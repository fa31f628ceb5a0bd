package http

import (
	"context"
	"net/http"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandler executes a command without producing a result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler executes a request and returns its result.
type QueryHandler[Q any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ParcelLister serves the three parcel lists.
type ParcelLister interface {
	HandleSent(ctx context.Context, query queries.ListSentParcelsQuery) ([]queries.ParcelView, error)
	HandleReceived(ctx context.Context, query queries.ListReceivedParcelsQuery) ([]queries.ParcelView, error)
	HandleAll(ctx context.Context, query queries.ListAllParcelsQuery) ([]queries.ParcelView, error)
}

// PrincipalInvalidator drops a cached account after its state changed.
type PrincipalInvalidator interface {
	Invalidate(id kernel.UUID)
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Command handlers
	RegisterUser     CommandHandler[commands.RegisterUserCommand]
	CreateParcel     CommandHandler[commands.CreateParcelCommand]
	CancelParcel     CommandHandler[commands.CancelParcelCommand]
	ConfirmDelivery  CommandHandler[commands.ConfirmDeliveryCommand]
	SetParcelStatus  CommandHandler[commands.SetParcelStatusCommand]
	ToggleUserStatus QueryHandler[commands.ToggleUserStatusCommand, commands.ToggleUserStatusResult]

	// Query handlers
	Login       QueryHandler[queries.LoginQuery, queries.LoginResult]
	GetProfile  QueryHandler[queries.GetProfileQuery, queries.UserView]
	ListUsers   QueryHandler[queries.ListUsersQuery, []queries.UserView]
	GetParcel   QueryHandler[queries.GetParcelQuery, queries.ParcelView]
	TrackParcel QueryHandler[queries.TrackParcelQuery, queries.ParcelView]
	ListParcels ParcelLister
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	accounts PrincipalInvalidator
	metrics  *Metrics
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a server. accounts may be nil when no principal cache is used.
func NewServer(handlers Handlers, accounts PrincipalInvalidator, metrics *Metrics) *Server {
	return &Server{handlers: handlers, accounts: accounts, metrics: metrics}
}

// Register handles POST /api/auth/register.
func (s *Server) Register(ctx echo.Context) error {
	var req RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(userID, req.Name, req.Email, req.Password, req.Role, req.Phone, req.Address)
	if err != nil {
		return err
	}
	if err = s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return err
	}
	principal, err := user.NewPrincipal(userID, role, req.Address)
	if err != nil {
		return err
	}
	query, err := queries.NewGetProfileQuery(principal)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, UserEnvelope{Success: true, User: toUser(view)})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	query, err := queries.NewLoginQuery(req.Email, req.Password)
	if err != nil {
		return err
	}
	result, err := s.handlers.Login.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, LoginResponse{
		Success:   true,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      toUser(result.User),
	})
}

// GetProfile handles GET /api/users/profile.
func (s *Server) GetProfile(ctx echo.Context) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetProfileQuery(principal)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, UserEnvelope{Success: true, User: toUser(view)})
}

// ListUsers handles GET /api/users.
func (s *Server) ListUsers(ctx echo.Context, params ListUsersParams) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}

	var role, isActive string
	if params.Role != nil {
		role = *params.Role
	}
	if params.IsActive != nil {
		if *params.IsActive {
			isActive = "true"
		} else {
			isActive = "false"
		}
	}

	query, err := queries.NewListUsersQuery(principal, role, isActive)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListUsers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, UserList{Success: true, Users: toUsers(views)})
}

// ToggleUserStatus handles PATCH /api/users/toggle-status/{userId}.
func (s *Server) ToggleUserStatus(ctx echo.Context, userID openapi_types.UUID) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}
	id, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewToggleUserStatusCommand(principal, id)
	if err != nil {
		return err
	}
	result, err := s.handlers.ToggleUserStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if s.accounts != nil {
		s.accounts.Invalidate(id)
	}

	message := "User unblocked successfully"
	if !result.IsActive {
		message = "User blocked successfully"
	}

	return ctx.JSON(http.StatusOK, ToggleStatusResponse{
		Success: true,
		Message: message,
		User: ToggledUser{
			ID:       result.ID.String(),
			Name:     result.Name,
			IsActive: result.IsActive,
		},
	})
}

// CreateParcel handles POST /api/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}

	var req CreateParcelRequest
	if err = ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(parcelID, principal,
		req.ReceiverEmail, req.ReceiverAddress, req.ParcelType, req.Weight, req.Description)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusCreated, principal, parcelID, "Parcel created successfully")
}

// ListSentParcels handles GET /api/parcels/my-sent.
func (s *Server) ListSentParcels(ctx echo.Context, params ListParcelsParams) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListSentParcelsQuery(principal, deref(params.Status))
	if err != nil {
		return err
	}
	views, err := s.handlers.ListParcels.HandleSent(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ParcelList{Success: true, Parcels: toParcels(views)})
}

// ListReceivedParcels handles GET /api/parcels/my-received.
func (s *Server) ListReceivedParcels(ctx echo.Context, params ListParcelsParams) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListReceivedParcelsQuery(principal, deref(params.Status))
	if err != nil {
		return err
	}
	views, err := s.handlers.ListParcels.HandleReceived(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ParcelList{Success: true, Parcels: toParcels(views)})
}

// TrackParcel handles GET /api/parcels/track/{trackingId}.
func (s *Server) TrackParcel(ctx echo.Context, trackingID string) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewTrackParcelQuery(principal, trackingID)
	if err != nil {
		return err
	}
	view, err := s.handlers.TrackParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ParcelEnvelope{Success: true, Parcel: toParcel(view)})
}

// ListAllParcels handles GET /api/parcels/admin/all.
func (s *Server) ListAllParcels(ctx echo.Context, params ListAllParcelsParams) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}

	var sender, receiver string
	if params.Sender != nil {
		sender = params.Sender.String()
	}
	if params.Receiver != nil {
		receiver = params.Receiver.String()
	}
	var createdOn *time.Time
	if params.CreatedOn != nil {
		day := params.CreatedOn.Time
		createdOn = &day
	}

	query, err := queries.NewListAllParcelsQuery(principal, deref(params.Status), sender, receiver, createdOn)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListParcels.HandleAll(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ParcelList{Success: true, Parcels: toParcels(views)})
}

// GetParcel handles GET /api/parcels/{id}.
func (s *Server) GetParcel(ctx echo.Context, id openapi_types.UUID) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}
	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, principal, parcelID, "")
}

// CancelParcel handles PATCH /api/parcels/cancel/{id}.
func (s *Server) CancelParcel(ctx echo.Context, id openapi_types.UUID) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}
	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelParcelCommand(principal, parcelID)
	if err != nil {
		return err
	}
	if err = s.handlers.CancelParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, principal, parcelID, "Parcel cancelled successfully")
}

// ConfirmDelivery handles PATCH /api/parcels/confirm-delivery/{id}.
func (s *Server) ConfirmDelivery(ctx echo.Context, id openapi_types.UUID) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}
	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmDeliveryCommand(principal, parcelID)
	if err != nil {
		return err
	}
	if err = s.handlers.ConfirmDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, principal, parcelID, "Delivery confirmed successfully")
}

// UpdateParcelStatus handles PATCH /api/parcels/admin/update-status/{id}.
func (s *Server) UpdateParcelStatus(ctx echo.Context, id openapi_types.UUID) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return err
	}
	parcelID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewSetParcelStatusCommand(principal, parcelID,
		req.Status, req.Location, req.Note, req.ExpectedDeliveryDate)
	if err != nil {
		return err
	}
	if err = s.handlers.SetParcelStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondWithParcel(ctx, http.StatusOK, principal, parcelID, "Parcel status updated successfully")
}

// respondWithParcel reloads the parcel as principal sees it. A non-empty
// message marks the response as the outcome of a status change.
func (s *Server) respondWithParcel(
	ctx echo.Context,
	status int,
	principal user.Principal,
	parcelID kernel.UUID,
	message string,
) error {
	query, err := queries.NewGetParcelQuery(principal, parcelID)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	if message != "" && s.metrics != nil {
		s.metrics.ObserveTransition(view.CurrentStatus)
	}

	return ctx.JSON(status, ParcelEnvelope{Success: true, Message: message, Parcel: toParcel(view)})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
