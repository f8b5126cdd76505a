package postgres_test

import (
	"time"

	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/postgres"
)

func (suite *DBTestSuite) TestActivityStoreCRUD() {
	ctx := suite.T().Context()
	store := postgres.NewActivityStore(suite.db)

	// Arrange
	a := suite.seedAccount("crud@example.com")
	rec := activity("1", ridewitus.Biking, time.Now())
	rec.AccountID = a.ID

	// Act
	err := store.Create(ctx, &rec)

	// Assert
	suite.Require().Nil(err)
	suite.Require().ErrorIs(store.Create(ctx, &rec), ridewitus.ErrExists)

	// Act
	cost := 12.5
	rec.Distance = 42
	rec.MaintenanceCost = &cost
	err = store.Update(ctx, &rec)

	// Assert
	suite.Require().Nil(err)
	actual, err := store.Get(ctx, a.ID, "1")
	suite.Require().Nil(err)
	suite.Require().Equal(42.0, actual.Distance)
	suite.Require().Equal(12.5, actual.Cost())

	// Act
	err = store.Delete(ctx, a.ID, "1")

	// Assert
	suite.Require().Nil(err)
	suite.Require().ErrorIs(store.Delete(ctx, a.ID, "1"), ridewitus.ErrNotFound)
	suite.Require().Nil(store.Clear(ctx, a.ID))
}

func (suite *DBTestSuite) TestActivityStoreIsolatesAccounts() {
	ctx := suite.T().Context()
	store := postgres.NewActivityStore(suite.db)

	// Arrange
	owner := suite.seedAccount("owner@example.com")
	other := suite.seedAccount("other@example.com")
	rec := activity("shared-id", ridewitus.Running, time.Now())
	rec.AccountID = owner.ID
	suite.Require().Nil(store.Create(ctx, &rec))

	// Act
	_, err := store.Get(ctx, other.ID, "shared-id")

	// Assert
	suite.Require().ErrorIs(err, ridewitus.ErrNotFound)
	suite.Require().ErrorIs(store.Delete(ctx, other.ID, "shared-id"), ridewitus.ErrNotFound)

	// Act
	same := activity("shared-id", ridewitus.Walking, time.Now())
	same.AccountID = other.ID
	err = store.Create(ctx, &same)

	// Assert
	suite.Require().Nil(err)
}

func (suite *DBTestSuite) TestActivityStoreList() {
	ctx := suite.T().Context()
	store := postgres.NewActivityStore(suite.db)
	now := time.Now()

	// Arrange
	a := suite.seedAccount("list@example.com")
	_, err := store.ReplaceAll(ctx, a.ID, []ridewitus.Activity{
		activity("old", ridewitus.Walking, now.AddDate(0, 0, -30)),
		activity("mid", ridewitus.Driving, now.AddDate(0, 0, -3)),
		activity("new", ridewitus.Walking, now),
	})
	suite.Require().Nil(err)

	for _, tc := range []struct {
		name     string
		types    []ridewitus.ActivityType
		since    time.Time
		expected []string
	}{
		{"all", nil, time.Time{}, []string{"new", "mid", "old"}},
		{"by-type", []ridewitus.ActivityType{ridewitus.Walking}, time.Time{}, []string{"new", "old"}},
		{"since", nil, now.AddDate(0, 0, -7), []string{"new", "mid"}},
		{"both", []ridewitus.ActivityType{ridewitus.Driving}, now.AddDate(0, 0, -7), []string{"mid"}},
	} {
		suite.Run(tc.name, func() {
			// Act
			actual, err := store.List(ctx, a.ID, tc.types, tc.since)

			// Assert
			suite.Require().Nil(err)
			ids := make([]string, 0, len(actual))
			for _, r := range actual {
				ids = append(ids, r.ID)
			}
			suite.Require().Equal(tc.expected, ids)
		})
	}
}

func (suite *DBTestSuite) TestActivityStoreImport() {
	ctx := suite.T().Context()
	store := postgres.NewActivityStore(suite.db)
	now := time.Now()

	// Arrange
	a := suite.seedAccount("import@example.com")
	n, err := store.ReplaceAll(ctx, a.ID, []ridewitus.Activity{
		activity("1", ridewitus.Walking, now),
		activity("2", ridewitus.Walking, now),
	})
	suite.Require().Nil(err)
	suite.Require().Equal(2, n)

	// Act
	n, err = store.InsertMissing(ctx, a.ID, []ridewitus.Activity{
		activity("2", ridewitus.Running, now),
		activity("3", ridewitus.Running, now),
	})

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(1, n)
	kept, err := store.Get(ctx, a.ID, "2")
	suite.Require().Nil(err)
	suite.Require().Equal(ridewitus.Walking, kept.Type)

	// Act
	n, err = store.ReplaceAll(ctx, a.ID, []ridewitus.Activity{activity("9", ridewitus.Biking, now)})

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(1, n)
	actual, err := store.List(ctx, a.ID, nil, time.Time{})
	suite.Require().Nil(err)
	suite.Require().Len(actual, 1)
	suite.Require().Equal("9", actual[0].ID)
}
