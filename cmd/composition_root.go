package cmd

import (
	"context"
	"fmt"
	"log/slog"

	apihttp "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/identity"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	hasher     identity.BcryptHasher
	tokens     *identity.JWT
	accounts   *identity.PrincipalCache
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	clock := kernel.SystemClock{}

	tokens, err := identity.NewJWT(config.JWTSecret, config.JWTTTL, clock)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("configure tokens: %w", err)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	accounts := identity.NewPrincipalCache(config.UserCacheSize, config.UserCacheTTL,
		identity.AccountLoaderFunc(func(ctx context.Context, id kernel.UUID) (identity.Account, error) {
			u, err := uowFactory.Create().UserRepository().Get(ctx, id)
			if err != nil {
				return identity.Account{}, err
			}
			return identity.Account{Principal: u.Principal(), IsActive: u.IsActive()}, nil
		}))

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		clock:      clock,
		hasher:     identity.NewBcryptHasher(bcrypt.DefaultCost),
		tokens:     tokens,
		accounts:   accounts,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory(), c.hasher, c.clock)
}

func (c *CompositionRoot) CreateToggleUserStatusCommandHandler() commands.ToggleUserStatusCommandHandler {
	return commands.NewToggleUserStatusCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, parcel.NewRandomTrackingIDGenerator(), c.clock,
		c.config.TrackingIDMaxAttempts)
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSetParcelStatusCommandHandler() commands.SetParcelStatusCommandHandler {
	return commands.NewSetParcelStatusCommandHandler(c.parcelUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateLoginQueryHandler() queries.LoginQueryHandler {
	return queries.NewLoginQueryHandler(c.gormDB, c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateGetProfileQueryHandler() queries.GetProfileQueryHandler {
	return queries.NewGetProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOverdueParcelsQueryHandler() queries.ListOverdueParcelsQueryHandler {
	return queries.NewListOverdueParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateListOverdueParcelsQueryHandler(), c.clock, c.config.OverdueJobSchedule, c.logger)
}

// CreateHTTPServer wires every handler into the echo router.
func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*echo.Echo, error) {
	metrics := apihttp.NewMetrics(prometheus.DefaultRegisterer)

	server := apihttp.NewServer(apihttp.Handlers{
		RegisterUser:     c.CreateRegisterUserCommandHandler(),
		CreateParcel:     c.CreateCreateParcelCommandHandler(),
		CancelParcel:     c.CreateCancelParcelCommandHandler(),
		ConfirmDelivery:  c.CreateConfirmDeliveryCommandHandler(),
		SetParcelStatus:  c.CreateSetParcelStatusCommandHandler(),
		ToggleUserStatus: c.CreateToggleUserStatusCommandHandler(),
		Login:            c.CreateLoginQueryHandler(),
		GetProfile:       c.CreateGetProfileQueryHandler(),
		ListUsers:        c.CreateListUsersQueryHandler(),
		GetParcel:        c.CreateGetParcelQueryHandler(),
		TrackParcel:      c.CreateTrackParcelQueryHandler(),
		ListParcels:      c.CreateListParcelsQueryHandler(),
	}, c.accounts, metrics)

	return apihttp.NewRouter(ctx, apihttp.RouterConfig{
		Server:       server,
		Tokens:       c.tokens,
		Accounts:     c.accounts,
		Metrics:      metrics,
		Gatherer:     prometheus.DefaultGatherer,
		Logger:       c.logger,
		AllowOrigins: c.config.CORSAllowOrigins,
	})
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
