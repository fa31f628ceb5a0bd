package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/pgtest"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite tests the GORM Unit of Work against a real
// PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	db      *gorm.DB
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB

	suite.Require().NoError(postgres_adapter.Migrate(suite.db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_logs, users").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ParcelRepository())
	suite.NotNil(uow1.UserRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction,
		"Rollback after commit should report no active transaction")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

// TestUnitOfWork_MultiRepositoryTransaction registers a receiver and creates a
// parcel for them in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.CreateGorm()

	receiver := createTestUser(suite, "bob@example.com", user.RoleReceiver)
	p := createTestParcel(suite, receiver.ID())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, receiver))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Len(uow.TrackedIDs(), 2)
	suite.True(uow.TrackedIDs()[0].IsEqual(receiver.ID()))
	suite.True(uow.TrackedIDs()[1].IsEqual(p.ID()))

	newUow := suite.factory.Create()
	loaded, err := newUow.ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(loaded.Receiver().IsEqual(receiver.ID()))

	_, err = newUow.UserRepository().Get(ctx, receiver.ID())
	suite.Require().NoError(err)
}

// TestUnitOfWork_TransactionRollback verifies rollback discards the parcel row
// together with its ledger.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()
	p := createTestParcel(suite, kernel.NewUUID())

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	_, err := uow.ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().ParcelRepository().Get(ctx, p.ID())
	suite.Require().Error(err, "Parcel should not exist after rollback")

	var logs int64
	suite.Require().NoError(suite.db.Table("parcel_status_logs").Count(&logs).Error)
	suite.Zero(logs)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	p1 := createTestParcel(suite, kernel.NewUUID())
	p2 := createTestParcel(suite, kernel.NewUUID())

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.ParcelRepository().Add(ctx, p1))
	suite.Require().NoError(uow2.ParcelRepository().Add(ctx, p2))

	_, err := uow1.ParcelRepository().Get(ctx, p2.ID())
	suite.Require().Error(err, "UOW1 should not see p2")

	_, err = uow2.ParcelRepository().Get(ctx, p1.ID())
	suite.Require().Error(err, "UOW2 should not see p1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.ParcelRepository().Get(ctx, p1.ID())
	suite.Require().NoError(err)

	_, err = newUow.ParcelRepository().Get(ctx, p2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	u := createTestUser(suite, "carol@example.com", user.RoleSender)

	suite.Require().NoError(uow.UserRepository().Add(ctx, u))

	_, err := suite.factory.Create().UserRepository().Get(ctx, u.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEnsureDatabase_CreatesMissingDatabase() {
	ctx := context.Background()
	host, err := suite.pg.Container.Host(ctx)
	suite.Require().NoError(err)
	port, err := suite.pg.Container.MappedPort(ctx, "5432/tcp")
	suite.Require().NoError(err)

	settings := postgres_adapter.ConnectionSettings{
		Host:     host,
		Port:     port.Port(),
		User:     "testuser",
		Password: "testpass",
		DBName:   "parceltrack_ensure",
		SSLMode:  "disable",
	}

	suite.Require().NoError(postgres_adapter.EnsureDatabase(ctx, settings))
	suite.Require().NoError(postgres_adapter.EnsureDatabase(ctx, settings), "second call is a no-op")

	var count int64
	suite.Require().NoError(suite.db.Raw(
		"SELECT COUNT(*) FROM pg_database WHERE datname = ?", "parceltrack_ensure").Scan(&count).Error)
	suite.Equal(int64(1), count)
}

var _ ports.UnitOfWorkFactory = (*postgres_adapter.GormUnitOfWorkFactory)(nil)

func createTestUser(suite *UnitOfWorkIntegrationTestSuite, email string, role user.Role) *user.User {
	e, err := user.NewEmail(email)
	suite.Require().NoError(err)
	u, err := user.NewUser(kernel.NewUUID(), e, "hash", role, user.Profile{Name: "Test"}, time.Now().UTC())
	suite.Require().NoError(err)
	return u
}

func createTestParcel(suite *UnitOfWorkIntegrationTestSuite, receiver kernel.UUID) *parcel.Parcel {
	w, _ := parcel.NewWeight(2)
	pt, _ := parcel.NewType("express")
	generator := parcel.NewRandomTrackingIDGenerator()
	now := time.Now().UTC()
	trackingID, err := generator.Generate(now)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(kernel.NewUUID(), trackingID, kernel.NewUUID(), receiver, parcel.Shipment{
		SenderAddress:   "1 Main St",
		ReceiverAddress: "2 Side St",
		Type:            pt,
		Weight:          w,
		Description:     "books",
	}, now)
	suite.Require().NoError(err)
	return p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
