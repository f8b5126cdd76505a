package postgres_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/postgres"
)

func (suite *DBTestSuite) TestAccountStore() {
	ctx := suite.T().Context()
	store := postgres.NewAccountStore(suite.db)

	// Arrange
	a := suite.seedAccount("rider@example.com")

	// Act
	byID, err := store.ByID(ctx, a.ID)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(a.Email, byID.Email)
	suite.Require().True(byID.Exists())

	// Act
	byEmail, err := store.ByEmail(ctx, a.Email)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Equal(a.ID, byEmail.ID)

	// Act
	_, err = store.ByEmail(ctx, "nobody@example.com")

	// Assert
	suite.Require().ErrorIs(err, ridewitus.ErrNotFound)

	// Act
	dupe := a
	dupe.ID = uuid.New()
	err = store.Create(ctx, &dupe)

	// Assert
	suite.Require().ErrorIs(err, ridewitus.ErrExists)
}

func (suite *DBTestSuite) TestAccountStoreEmailTaken() {
	ctx := suite.T().Context()
	store := postgres.NewAccountStore(suite.db)

	// Arrange
	a := suite.seedAccount("taken@example.com")

	// Act + Assert
	taken, err := store.EmailTaken(ctx, a.Email, uuid.Nil)
	suite.Require().Nil(err)
	suite.Require().True(taken)

	taken, err = store.EmailTaken(ctx, a.Email, a.ID)
	suite.Require().Nil(err)
	suite.Require().False(taken)
}

func (suite *DBTestSuite) TestAccountStoreUpdate() {
	ctx := suite.T().Context()
	store := postgres.NewAccountStore(suite.db)

	// Arrange
	a := suite.seedAccount("before@example.com")
	other := suite.seedAccount("other@example.com")
	ref := "cus_123"

	// Act
	a.Email = "after@example.com"
	a.SubscriptionStatus = ridewitus.SubscriptionAnnual
	a.BillingRef = &ref
	a.PreferredUnit = ridewitus.Kilometers
	err := store.Update(ctx, &a)

	// Assert
	suite.Require().Nil(err)
	actual, err := store.ByID(ctx, a.ID)
	suite.Require().Nil(err)
	suite.Require().Equal("after@example.com", actual.Email)
	suite.Require().Equal(ridewitus.SubscriptionAnnual, actual.SubscriptionStatus)
	suite.Require().Equal(ridewitus.Kilometers, actual.PreferredUnit)
	suite.Require().NotNil(actual.BillingRef)
	suite.Require().Equal(ref, *actual.BillingRef)

	// Act
	a.Email = other.Email
	err = store.Update(ctx, &a)

	// Assert
	suite.Require().ErrorIs(err, ridewitus.ErrExists)
}

func (suite *DBTestSuite) TestAccountStoreDelete() {
	ctx := suite.T().Context()
	store := postgres.NewAccountStore(suite.db)
	activities := postgres.NewActivityStore(suite.db)

	// Arrange
	a := suite.seedAccount("gone@example.com")
	rec := activity("1", ridewitus.Walking, time.Now())
	rec.AccountID = a.ID
	suite.Require().Nil(activities.Create(ctx, &rec))

	// Act
	err := store.Delete(ctx, a.ID)

	// Assert
	suite.Require().Nil(err)
	_, err = store.ByID(ctx, a.ID)
	suite.Require().ErrorIs(err, ridewitus.ErrNotFound)
	_, err = activities.Get(ctx, a.ID, "1")
	suite.Require().ErrorIs(err, ridewitus.ErrNotFound)

	// Act
	err = store.Delete(ctx, a.ID)

	// Assert
	suite.Require().ErrorIs(err, ridewitus.ErrNotFound)
}

func (suite *DBTestSuite) TestAccountStoreList() {
	ctx := suite.T().Context()
	store := postgres.NewAccountStore(suite.db)

	// Arrange
	suite.seedAccount("first@example.com")
	suite.seedAccount("second@example.com")

	// Act
	actual, err := store.List(ctx)

	// Assert
	suite.Require().Nil(err)
	suite.Require().Len(actual, 2)
}

func (suite *DBTestSuite) TestAccountStoreSetBillingRef() {
	ctx := suite.T().Context()
	store := postgres.NewAccountStore(suite.db)

	// Arrange
	a := suite.seedAccount("billing@example.com")

	// Act
	err := store.SetBillingRef(ctx, a.ID, "cus_abc")

	// Assert
	suite.Require().Nil(err)
	actual, err := store.ByID(ctx, a.ID)
	suite.Require().Nil(err)
	suite.Require().True(actual.HasBillingRef())
	suite.Require().ErrorIs(store.SetBillingRef(ctx, uuid.New(), "cus_abc"), ridewitus.ErrNotFound)
}
