package postgres_test

import (
	"github.com/xy-planning-network/ridewitus"
	"github.com/xy-planning-network/ridewitus/postgres"
)

func (suite *DBTestSuite) TestPricingStore() {
	ctx := suite.T().Context()
	store := postgres.NewPricingStore(suite.db)
	ref := "price_123"

	// Arrange
	tiers := []ridewitus.PricingTier{
		{ID: "monthly", Name: "Monthly", Price: 4.99, Interval: ridewitus.Monthly, PriceRef: &ref, Position: 1},
		{ID: "free", Name: "Free", Interval: ridewitus.Monthly, Features: []string{"Local tracking"}},
	}

	// Act
	err := store.ReplaceAll(ctx, tiers)

	// Assert
	suite.Require().Nil(err)
	count, err := store.Count(ctx)
	suite.Require().Nil(err)
	suite.Require().EqualValues(2, count)

	actual, err := store.List(ctx)
	suite.Require().Nil(err)
	suite.Require().Equal("free", actual[0].ID)
	suite.Require().Equal([]string{"Local tracking"}, []string(actual[0].Features))

	// Act
	err = store.ReplaceAll(ctx, tiers[1:])

	// Assert
	suite.Require().Nil(err)
	_, err = store.Get(ctx, "monthly")
	suite.Require().ErrorIs(err, ridewitus.ErrNotFound)
}
