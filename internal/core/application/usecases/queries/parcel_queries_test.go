package queries_test

import (
	"context"
	"strings"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

var day = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func (suite *QueriesIntegrationTestSuite) TestGetParcel_PopulatesPartiesAndLedger() {
	p := suite.addParcel(suite.bob, day)
	suite.moveTo(p, parcel.StatusInTransit, day.Add(time.Hour))

	query, err := queries.NewGetParcelQuery(suite.principal(suite.alice), p.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetParcelQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(p.ID()))
	suite.Equal(p.TrackingID().String(), view.TrackingID)
	suite.Equal("Alice", view.Sender.Name)
	suite.Equal("alice@example.com", view.Sender.Email)
	suite.Equal("555-Bob", view.Receiver.Phone)
	suite.Equal(int64(90), view.Fee)
	suite.Equal(parcel.StatusInTransit, view.CurrentStatus)
	suite.Equal(day, view.CreatedAt)
	suite.Require().Len(view.StatusLogs, 2)
	suite.Equal(parcel.StatusRequested, view.StatusLogs[0].Status)
	suite.Equal("Alice", view.StatusLogs[0].UpdatedByName)
	suite.Equal(parcel.StatusInTransit, view.StatusLogs[1].Status)
	suite.Equal("Root", view.StatusLogs[1].UpdatedByName)
	suite.Equal("Hub", view.StatusLogs[1].Location)
}

func (suite *QueriesIntegrationTestSuite) TestGetParcel_Visibility() {
	p := suite.addParcel(suite.bob, day)
	handler := queries.NewGetParcelQueryHandler(suite.db)

	testCases := []struct {
		name      string
		principal user.Principal
		allowed   bool
	}{
		{"sender", suite.principal(suite.alice), true},
		{"receiver", suite.principal(suite.bob), true},
		{"admin", suite.principal(suite.admin), true},
		{"other receiver", suite.principal(suite.carol), false},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			query, err := queries.NewGetParcelQuery(tc.principal, p.ID())
			suite.Require().NoError(err)

			_, err = handler.Handle(context.Background(), query)

			if tc.allowed {
				suite.NoError(err)
			} else {
				suite.ErrorIs(err, errs.ErrForbidden)
			}
		})
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetParcel_NotFound() {
	query, err := queries.NewGetParcelQuery(suite.principal(suite.admin), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetParcelQueryHandler(suite.db).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestTrackParcel_AnyPrincipal() {
	p := suite.addParcel(suite.bob, day)

	query, err := queries.NewTrackParcelQuery(suite.principal(suite.carol), p.TrackingID().String())
	suite.Require().NoError(err)

	view, err := queries.NewTrackParcelQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(p.ID()))
	suite.Len(view.StatusLogs, 1)
}

func (suite *QueriesIntegrationTestSuite) TestTrackParcel_UnknownCode() {
	query, err := queries.NewTrackParcelQuery(suite.principal(suite.bob), "TRK-20250310-ZZZZZZ")
	suite.Require().NoError(err)

	_, err = queries.NewTrackParcelQueryHandler(suite.db).Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestTrackParcel_MalformedCodeIsNotFound() {
	p := suite.addParcel(suite.bob, day)

	for _, code := range []string{"not-a-code", "TRK-2025-ABC123", strings.ToLower(p.TrackingID().String())} {
		query, err := queries.NewTrackParcelQuery(suite.principal(suite.bob), code)
		suite.Require().NoError(err)

		_, err = queries.NewTrackParcelQueryHandler(suite.db).Handle(context.Background(), query)

		suite.ErrorIs(err, errs.ErrObjectNotFound, code)
		suite.NotErrorIs(err, errs.ErrValueIsInvalid, code)
	}
}

func (suite *QueriesIntegrationTestSuite) TestListSent_NewestFirstWithStatusFilter() {
	older := suite.addParcel(suite.bob, day)
	newer := suite.addParcel(suite.carol, day.Add(time.Hour))
	suite.moveTo(older, parcel.StatusApproved, day.Add(2*time.Hour))
	handler := queries.NewListParcelsQueryHandler(suite.db)

	query, err := queries.NewListSentParcelsQuery(suite.principal(suite.alice), "")
	suite.Require().NoError(err)
	all, err := handler.HandleSent(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.True(all[0].ID.IsEqual(newer.ID()))
	suite.True(all[1].ID.IsEqual(older.ID()))
	suite.Len(all[1].StatusLogs, 2)

	query, err = queries.NewListSentParcelsQuery(suite.principal(suite.alice), "approved")
	suite.Require().NoError(err)
	approved, err := handler.HandleSent(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(approved, 1)
	suite.True(approved[0].ID.IsEqual(older.ID()))
}

func (suite *QueriesIntegrationTestSuite) TestListSent_RequiresSenderRole() {
	query, err := queries.NewListSentParcelsQuery(suite.principal(suite.bob), "")
	suite.Require().NoError(err)

	_, err = queries.NewListParcelsQueryHandler(suite.db).HandleSent(context.Background(), query)

	suite.ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueriesIntegrationTestSuite) TestListSent_RejectsUnknownStatus() {
	_, err := queries.NewListSentParcelsQuery(suite.principal(suite.alice), "lost")

	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *QueriesIntegrationTestSuite) TestListReceived_OnlyOwnParcels() {
	mine := suite.addParcel(suite.bob, day)
	suite.addParcel(suite.carol, day)

	query, err := queries.NewListReceivedParcelsQuery(suite.principal(suite.bob), "")
	suite.Require().NoError(err)

	list, err := queries.NewListParcelsQueryHandler(suite.db).HandleReceived(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(list, 1)
	suite.True(list[0].ID.IsEqual(mine.ID()))
	suite.Equal("Alice", list[0].Sender.Name)
}

func (suite *QueriesIntegrationTestSuite) TestListReceived_EmptyList() {
	query, err := queries.NewListReceivedParcelsQuery(suite.principal(suite.carol), "delivered")
	suite.Require().NoError(err)

	list, err := queries.NewListParcelsQueryHandler(suite.db).HandleReceived(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(list)
	suite.Empty(list)
}

func (suite *QueriesIntegrationTestSuite) TestListAll_Filters() {
	p1 := suite.addParcel(suite.bob, day)
	p2 := suite.addParcel(suite.carol, day.Add(24*time.Hour))
	suite.moveTo(p2, parcel.StatusDispatched, day.Add(25*time.Hour))
	handler := queries.NewListParcelsQueryHandler(suite.db)
	admin := suite.principal(suite.admin)
	nextDay := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		status    string
		sender    string
		receiver  string
		createdOn *time.Time
		expected  []kernel.UUID
	}{
		{"no filter", "", "", "", nil, []kernel.UUID{p2.ID(), p1.ID()}},
		{"status", "dispatched", "", "", nil, []kernel.UUID{p2.ID()}},
		{"sender", "", suite.alice.ID().String(), "", nil, []kernel.UUID{p2.ID(), p1.ID()}},
		{"receiver", "", "", suite.bob.ID().String(), nil, []kernel.UUID{p1.ID()}},
		{"created on", "", "", "", &nextDay, []kernel.UUID{p2.ID()}},
		{"no match", "returned", "", "", nil, []kernel.UUID{}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			query, err := queries.NewListAllParcelsQuery(admin, tc.status, tc.sender, tc.receiver, tc.createdOn)
			suite.Require().NoError(err)

			list, err := handler.HandleAll(context.Background(), query)

			suite.Require().NoError(err)
			suite.Require().Len(list, len(tc.expected))
			for i, id := range tc.expected {
				suite.True(list[i].ID.IsEqual(id))
			}
		})
	}
}

func (suite *QueriesIntegrationTestSuite) TestListAll_RequiresAdmin() {
	query, err := queries.NewListAllParcelsQuery(suite.principal(suite.alice), "", "", "", nil)
	suite.Require().NoError(err)

	_, err = queries.NewListParcelsQueryHandler(suite.db).HandleAll(context.Background(), query)
	suite.ErrorIs(err, errs.ErrForbidden)

	_, err = queries.NewListAllParcelsQuery(suite.principal(suite.admin), "", "nope", "", nil)
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *QueriesIntegrationTestSuite) TestListOverdue() {
	late := suite.addParcel(suite.bob, day)
	onTime := suite.addParcel(suite.bob, day)
	delivered := suite.addParcel(suite.carol, day)

	for _, tc := range []struct {
		p      *parcel.Parcel
		status parcel.Status
		due    time.Time
	}{
		{late, parcel.StatusInTransit, day.Add(24 * time.Hour)},
		{onTime, parcel.StatusInTransit, day.Add(5 * 24 * time.Hour)},
		{delivered, parcel.StatusDelivered, day.Add(24 * time.Hour)},
	} {
		loaded, err := suite.parcels.Get(context.Background(), tc.p.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(loaded.ForceSetStatus(suite.admin.ID(), tc.status, day.Add(time.Hour), "", ""))
		suite.Require().NoError(loaded.SetExpectedDeliveryDate(tc.due))
		suite.Require().NoError(suite.parcels.Update(context.Background(), loaded))
	}

	query, err := queries.NewListOverdueParcelsQuery(day.Add(3 * 24 * time.Hour))
	suite.Require().NoError(err)

	overdue, err := queries.NewListOverdueParcelsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(overdue, 1)
	suite.True(overdue[0].ID.IsEqual(late.ID()))
	suite.Equal(parcel.StatusInTransit, overdue[0].Status)
}
