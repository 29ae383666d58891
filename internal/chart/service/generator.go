package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/starloomhq/starloom/internal/chart/domain"
	"github.com/starloomhq/starloom/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Ephemeris domain.Ephemeris
}

type Generator struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	ephemeris domain.Ephemeris

	mu  sync.Mutex
	rng *rand.Rand
}

func New(p Params) domain.Generator {
	return &Generator{
		log:       p.Log.Named("chart.generator"),
		genID:     p.GenID,
		clock:     p.Clock,
		ephemeris: p.Ephemeris,
		rng:       rand.New(rand.NewSource(p.GenID.Generate().Int64())),
	}
}

func (g *Generator) Generate(ctx context.Context, subject domain.BirthSubject) (*domain.ChartPayload, error) {
	now := g.clock.Now(ctx)
	if err := subject.Validate(now); err != nil {
		return nil, err
	}

	payload := &domain.ChartPayload{
		ID:                 fmt.Sprintf("chart_%s", g.genID.Generate()),
		BirthData:          subject,
		PlanetaryPositions: g.ephemeris.Positions(subject.BirthDate, subject.Latitude, subject.Longitude),
		Houses:             g.houses(),
		Aspects:            aspects(),
		CalculatedAt:       now,
	}

	g.log.Debug("chart generated",
		zap.String("chart_id", payload.ID),
		zap.String("location", subject.Location))

	return payload, nil
}

// houses assigns the twelve cusps in zodiac order with a randomized degree.
func (g *Generator) houses() []domain.HouseCusp {
	g.mu.Lock()
	defer g.mu.Unlock()

	cusps := make([]domain.HouseCusp, 0, 12)
	for i := 1; i <= 12; i++ {
		cusps = append(cusps, domain.HouseCusp{
			House:  i,
			Sign:   domain.ZodiacSigns[(i-1)%12],
			Degree: float64(g.rng.Intn(30)),
		})
	}
	return cusps
}

func aspects() []domain.Aspect {
	return []domain.Aspect{
		{Planet1: domain.PlanetSun, Planet2: domain.PlanetMoon, Type: "Conjunction", Orb: 7},
		{Planet1: domain.PlanetVenus, Planet2: domain.PlanetMars, Type: "Trine", Orb: 3},
		{Planet1: domain.PlanetJupiter, Planet2: domain.PlanetSaturn, Type: "Square", Orb: 5},
	}
}
