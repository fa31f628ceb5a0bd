package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/pgtest"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ParcelRepositoryIntegrationTestSuite verifies parcel persistence against a
// real PostgreSQL instance.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	db         *gorm.DB
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background(), &parcelrepo.ParcelDTO{}, &parcelrepo.StatusLogDTO{})
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels, parcel_status_logs").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = parcelrepo.NewGormParcelRepository(suite.db, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_PersistsParcelAndLedger() {
	ctx := context.Background()
	p := suite.newParcel("TRK-20250310-AAAAAA")

	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.assertCount(&parcelrepo.ParcelDTO{}, 1)
	suite.assertCount(&parcelrepo.StatusLogDTO{}, 1)
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", p.ID(), p)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingID_ReturnsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newParcel("TRK-20250310-AAAAAA")))

	err := suite.repository.Add(ctx, suite.newParcel("TRK-20250310-AAAAAA"))

	suite.Require().ErrorIs(err, ports.ErrTrackingIDConflict)
	suite.assertCount(&parcelrepo.ParcelDTO{}, 1)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_DuplicateID_IsNotTrackingIDConflict() {
	ctx := context.Background()
	id := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newParcelWithID(id, "TRK-20250310-AAAAAA")))

	err := suite.repository.Add(ctx, suite.newParcelWithID(id, "TRK-20250310-CCCCCC"))

	suite.Require().Error(err)
	suite.NotErrorIs(err, ports.ErrTrackingIDConflict)
	suite.assertCount(&parcelrepo.ParcelDTO{}, 1)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()
	p := suite.newParcel("TRK-20250310-BBBBBB")
	suite.Require().NoError(suite.repository.Add(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())

	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(p))
	suite.Equal(p.TrackingID(), loaded.TrackingID())
	suite.Equal(parcel.Fee(90), loaded.Fee())
	suite.Equal(parcel.StatusRequested, loaded.Status())
	suite.Equal("glassware", loaded.Shipment().Description)
	suite.Equal(0, loaded.Version())
	suite.Require().Len(loaded.History(), 1)
	suite.True(loaded.History()[0].UpdatedBy().IsEqual(p.Sender()))

	byCode, err := suite.repository.GetByTrackingID(ctx, p.TrackingID())
	suite.Require().NoError(err)
	suite.True(byCode.IsEqual(p))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	code, _ := parcel.TrackingIDFromString("TRK-20250310-ZZZZZZ")
	_, err = suite.repository.GetByTrackingID(ctx, code)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_AppendsLedgerAndBumpsVersion() {
	ctx := context.Background()
	p := suite.newParcel("TRK-20250310-CCCCCC")
	suite.Require().NoError(suite.repository.Add(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	admin := kernel.NewUUID()
	at := p.CreatedAt().Add(time.Hour)
	suite.Require().NoError(loaded.ForceSetStatus(admin, parcel.StatusInTransit, at, "Hub 3", "picked up"))
	suite.Require().NoError(loaded.SetExpectedDeliveryDate(at.Add(48 * time.Hour)))

	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(1, reloaded.Version())
	suite.Equal(parcel.StatusInTransit, reloaded.Status())
	suite.NotNil(reloaded.ExpectedDeliveryDate())
	history := reloaded.History()
	suite.Require().Len(history, 2)
	suite.Equal("Hub 3", history[1].Location())
	suite.Equal("picked up", history[1].Note())
	suite.True(history[1].UpdatedBy().IsEqual(admin))

	var status int
	suite.Require().NoError(suite.db.Model(&parcelrepo.ParcelDTO{}).
		Select("current_status").Where("id = ?", p.ID().Bytes()).Scan(&status).Error)
	suite.Equal(int(parcel.StatusInTransit), status)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionError() {
	ctx := context.Background()
	p := suite.newParcel("TRK-20250310-DDDDDD")
	suite.Require().NoError(suite.repository.Add(ctx, p))

	first, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)

	at := p.CreatedAt().Add(time.Minute)
	suite.Require().NoError(first.Cancel(p.Sender(), at))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ForceSetStatus(kernel.NewUUID(), parcel.StatusDispatched, at, "", ""))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.assertCount(&parcelrepo.StatusLogDTO{}, 2)

	reloaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusCancelled, reloaded.Status())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newParcel("TRK-20250310-EEEEEE"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) newParcel(code string) *parcel.Parcel {
	return suite.newParcelWithID(kernel.NewUUID(), code)
}

func (suite *ParcelRepositoryIntegrationTestSuite) newParcelWithID(id kernel.UUID, code string) *parcel.Parcel {
	trackingID, err := parcel.TrackingIDFromString(code)
	suite.Require().NoError(err)
	w, err := parcel.NewWeight(1)
	suite.Require().NoError(err)
	pt, err := parcel.NewType("fragile")
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(id, trackingID, kernel.NewUUID(), kernel.NewUUID(), parcel.Shipment{
		SenderAddress:   "1 Main St",
		ReceiverAddress: "2 Side St",
		Type:            pt,
		Weight:          w,
		Description:     "glassware",
	}, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return p
}

func (suite *ParcelRepositoryIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
