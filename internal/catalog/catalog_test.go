package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
	catalog *catalog.Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	c, err := catalog.Load()
	s.Require().NoError(err)
	s.catalog = c
}

func (s *CatalogTestSuite) TestEmbeddedScenarios() {
	s.Equal([]string{
		"abyss", "asylum", "cursed_mansion", "dead_forest", "factory",
		"ghost_ship", "ghost_village", "mine", "prison", "research_hospital",
	}, s.catalog.ScenarioIDs())

	for _, id := range s.catalog.ScenarioIDs() {
		sc, err := s.catalog.Scenario(id)
		s.Require().NoError(err)
		s.NotEmpty(sc.Greeting, id)
		s.NotEmpty(sc.Rooms, id)
		s.NotEmpty(sc.Objectives, id)
		s.NotEmpty(sc.HiddenRules, id)
		s.GreaterOrEqual(sc.MaxFloors, sc.MinFloors, id)
	}
}

func (s *CatalogTestSuite) TestUnknownScenario() {
	_, err := s.catalog.Scenario("moon_base")
	s.True(errors.IsNotFound(err))
	s.Nil(s.catalog.Objectives("moon_base"))
}

func (s *CatalogTestSuite) TestBackgrounds() {
	bgs := s.catalog.Backgrounds()
	s.Require().NotEmpty(bgs)
	for _, bg := range bgs {
		s.NotEmpty(bg.Name)
		s.Positive(bg.Stats.HP)
		s.Positive(bg.Stats.Sanity)
	}
}

func (s *CatalogTestSuite) TestParseFallbacks() {
	c, err := catalog.Parse([]byte("- id: crypt\n  min_floors: 0\n"), []byte("[]"))
	s.Require().NoError(err)

	sc, err := c.Scenario("crypt")
	s.Require().NoError(err)
	s.Equal(1, sc.MinFloors)
	s.Equal(1, sc.MaxFloors)
	s.Equal("survivor", c.Backgrounds()[0].ID)

	_, err = catalog.Parse([]byte("{not a list"), nil)
	s.Error(err)
}

func (s *CatalogTestSuite) TestDisplayName() {
	s.Equal("Ghost Ship", catalog.DisplayName("ghost_ship"))
	s.Equal("Asylum", catalog.DisplayName("asylum"))

	sc, err := s.catalog.Scenario("research_hospital")
	s.Require().NoError(err)
	s.Equal("Research Hospital", sc.Name())
}
