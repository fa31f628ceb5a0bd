package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/pgtest"
	"parceltrack/internal/adapters/out/postgres/userrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// QueriesIntegrationTestSuite runs the read side against PostgreSQL with data
// written through the repositories.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	db      *gorm.DB
	parcels *parcelrepo.GormParcelRepository
	users   *userrepo.GormUserRepository

	alice *user.User // sender
	bob   *user.User // receiver
	carol *user.User // receiver
	admin *user.User
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB
	suite.Require().NoError(postgres_adapter.Migrate(suite.db))

	suite.parcels = parcelrepo.NewGormParcelRepository(suite.db, noopTracker{})
	suite.users = userrepo.NewGormUserRepository(suite.db, noopTracker{})
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_logs, users").Error
	suite.Require().NoError(err)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	suite.alice = suite.addUser("Alice", "alice@example.com", user.RoleSender, base)
	suite.bob = suite.addUser("Bob", "bob@example.com", user.RoleReceiver, base.Add(time.Minute))
	suite.carol = suite.addUser("Carol", "carol@example.com", user.RoleReceiver, base.Add(2*time.Minute))
	suite.admin = suite.addUser("Root", "root@example.com", user.RoleAdmin, base.Add(3*time.Minute))
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) addUser(name, email string, role user.Role, createdAt time.Time) *user.User {
	e, err := user.NewEmail(email)
	suite.Require().NoError(err)
	u, err := user.NewUser(kernel.NewUUID(), e, "hash:secret", role,
		user.Profile{Name: name, Phone: "555-" + name, Address: name + " Street"}, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.users.Add(context.Background(), u))
	return u
}

func (suite *QueriesIntegrationTestSuite) addParcel(receiver *user.User, createdAt time.Time) *parcel.Parcel {
	code, err := parcel.NewRandomTrackingIDGenerator().Generate(createdAt)
	suite.Require().NoError(err)
	w, _ := parcel.NewWeight(1)
	pt, _ := parcel.NewType("fragile")

	p, err := parcel.NewParcel(kernel.NewUUID(), code, suite.alice.ID(), receiver.ID(), parcel.Shipment{
		SenderAddress:   "Alice Street",
		ReceiverAddress: receiver.Address(),
		Type:            pt,
		Weight:          w,
		Description:     "box",
	}, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.parcels.Add(context.Background(), p))
	return p
}

// moveTo records an admin override and persists it.
func (suite *QueriesIntegrationTestSuite) moveTo(p *parcel.Parcel, status parcel.Status, at time.Time) {
	loaded, err := suite.parcels.Get(context.Background(), p.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.ForceSetStatus(suite.admin.ID(), status, at, "Hub", "moved"))
	suite.Require().NoError(suite.parcels.Update(context.Background(), loaded))
}

func (suite *QueriesIntegrationTestSuite) principal(u *user.User) user.Principal {
	return u.Principal()
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
