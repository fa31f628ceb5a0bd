package queries_test

import (
	"context"
	"strings"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

// prefixHasher treats "hash:<pw>" as the hash of pw.
type prefixHasher struct{}

func (prefixHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }

func (prefixHasher) Compare(hash, pw string) error {
	if strings.TrimPrefix(hash, "hash:") != pw {
		return errs.ErrInvalidCredentials
	}
	return nil
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(principal user.Principal) (string, time.Time, error) {
	args := m.Called(principal)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (suite *QueriesIntegrationTestSuite) TestLogin_IssuesTokenForPrincipal() {
	expiresAt := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	issuer := new(MockTokenIssuer)
	issuer.On("Issue", suite.alice.Principal()).Return("signed", expiresAt, nil).Once()

	query, err := queries.NewLoginQuery(" Alice@Example.com ", "secret")
	suite.Require().NoError(err)

	result, err := queries.NewLoginQueryHandler(suite.db, prefixHasher{}, issuer).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("signed", result.Token)
	suite.Equal(expiresAt, result.ExpiresAt)
	suite.Equal("Alice", result.User.Name)
	suite.Equal(user.RoleSender, result.User.Role)
	issuer.AssertExpectations(suite.T())
}

func (suite *QueriesIntegrationTestSuite) TestLogin_Rejections() {
	u, err := suite.users.Get(context.Background(), suite.carol.ID())
	suite.Require().NoError(err)
	u.ToggleActive()
	suite.Require().NoError(suite.users.Update(context.Background(), u))

	testCases := []struct {
		name     string
		email    string
		password string
		expected error
	}{
		{"unknown email", "nobody@example.com", "secret", errs.ErrInvalidCredentials},
		{"wrong password", "alice@example.com", "guess", errs.ErrInvalidCredentials},
		{"blocked account", "carol@example.com", "secret", errs.ErrForbidden},
	}

	handler := queries.NewLoginQueryHandler(suite.db, prefixHasher{}, new(MockTokenIssuer))
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			query, err := queries.NewLoginQuery(tc.email, tc.password)
			suite.Require().NoError(err)

			_, err = handler.Handle(context.Background(), query)

			suite.ErrorIs(err, tc.expected)
		})
	}
}

func (suite *QueriesIntegrationTestSuite) TestNewLoginQuery_Validation() {
	_, err := queries.NewLoginQuery("not-an-email", "")

	suite.ErrorIs(err, errs.ErrValueIsInvalid)
	suite.ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *QueriesIntegrationTestSuite) TestGetProfile() {
	query, err := queries.NewGetProfileQuery(suite.principal(suite.bob))
	suite.Require().NoError(err)

	view, err := queries.NewGetProfileQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(view.ID.IsEqual(suite.bob.ID()))
	suite.Equal("bob@example.com", view.Email)
	suite.Equal("Bob Street", view.Address)
	suite.True(view.IsActive)
}

func (suite *QueriesIntegrationTestSuite) TestListUsers_Filters() {
	u, err := suite.users.Get(context.Background(), suite.carol.ID())
	suite.Require().NoError(err)
	u.ToggleActive()
	suite.Require().NoError(suite.users.Update(context.Background(), u))

	handler := queries.NewListUsersQueryHandler(suite.db)
	admin := suite.principal(suite.admin)

	testCases := []struct {
		name     string
		role     string
		isActive string
		expected []string
	}{
		{"all newest first", "", "", []string{"Root", "Carol", "Bob", "Alice"}},
		{"receivers", "receiver", "", []string{"Carol", "Bob"}},
		{"active receivers", "receiver", "true", []string{"Bob"}},
		{"blocked", "", "false", []string{"Carol"}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			query, err := queries.NewListUsersQuery(admin, tc.role, tc.isActive)
			suite.Require().NoError(err)

			list, err := handler.Handle(context.Background(), query)

			suite.Require().NoError(err)
			names := make([]string, 0, len(list))
			for _, v := range list {
				names = append(names, v.Name)
			}
			suite.Equal(tc.expected, names)
		})
	}
}

func (suite *QueriesIntegrationTestSuite) TestListUsers_RequiresAdmin() {
	query, err := queries.NewListUsersQuery(suite.principal(suite.alice), "", "")
	suite.Require().NoError(err)

	_, err = queries.NewListUsersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrForbidden)

	_, err = queries.NewListUsersQuery(suite.principal(suite.admin), "courier", "maybe")
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}
