// Package maps generates the floor plan of a game: a grid of rooms per floor
// with a stairwell linking each floor to the next
package maps

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
	"github.com/KirkDiggler/horror-bot/internal/engine"
	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const (
	minGridWidth  = 3
	maxGridWidth  = 5
	minGridHeight = 2
	maxGridHeight = 4

	// one in holeOdds grid cells is left empty
	holeOdds = 5
)

// Config holds the generator dependencies
type Config struct {
	Engine engine.Engine
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Engine == nil {
		return errors.InvalidArgument("engine is required")
	}
	return nil
}

// Generator builds maps from scenario definitions
type Generator struct {
	engine engine.Engine
}

// NewGenerator creates a map generator
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Generator{engine: cfg.Engine}, nil
}

// GenerateInput defines the map request
type GenerateInput struct {
	GameID   string
	Scenario *catalog.Scenario
}

// GenerateOutput returns locations in generation order; the first is the start
type GenerateOutput struct {
	Locations []*entities.Location
}

// Generate lays out every floor. Rooms cut off by holes are dropped so each
// floor stays connected.
func (g *Generator) Generate(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil || input.Scenario == nil {
		return nil, errors.InvalidArgument("scenario is required")
	}
	if input.GameID == "" {
		return nil, errors.InvalidArgument("game ID is required")
	}

	sc := input.Scenario
	floors, err := g.between(ctx, sc.MinFloors, sc.MaxFloors)
	if err != nil {
		return nil, err
	}

	names := newNamer(sc.Rooms)
	var (
		out       []*entities.Location
		stairDown *entities.Location
	)

	for floor := 1; floor <= floors; floor++ {
		nodes, err := g.floor(ctx, input.GameID, floor, names)
		if err != nil {
			return nil, err
		}

		if stairDown != nil {
			idx, err := g.engine.Pick(ctx, len(nodes))
			if err != nil {
				return nil, errors.Wrap(err, "failed to place stairwell")
			}
			link(stairDown, nodes[idx])
		}

		if floor < floors {
			idx, err := g.engine.Pick(ctx, len(nodes))
			if err != nil {
				return nil, errors.Wrap(err, "failed to place stairwell")
			}
			stairDown = nodes[idx]
		}

		out = append(out, nodes...)
	}

	out[0].Start = true

	return &GenerateOutput{Locations: out}, nil
}

// floor builds one connected grid. The top-left cell always exists.
func (g *Generator) floor(ctx context.Context, gameID string, floor int, names *namer) ([]*entities.Location, error) {
	width, err := g.between(ctx, minGridWidth, maxGridWidth)
	if err != nil {
		return nil, err
	}
	height, err := g.between(ctx, minGridHeight, maxGridHeight)
	if err != nil {
		return nil, err
	}

	grid := make([][]*entities.Location, height)
	for y := range grid {
		grid[y] = make([]*entities.Location, width)
		for x := range grid[y] {
			if x != 0 || y != 0 {
				roll, err := g.engine.Pick(ctx, holeOdds)
				if err != nil {
					return nil, errors.Wrap(err, "failed to roll room")
				}
				if roll == 0 {
					continue
				}
			}
			grid[y][x] = &entities.Location{
				ID:     fmt.Sprintf("f%d_r%d_%d", floor, y, x),
				GameID: gameID,
				Floor:  floor,
				Exits:  []string{},
			}
		}
	}

	for y := range grid {
		for x, node := range grid[y] {
			if node == nil {
				continue
			}
			if y > 0 && grid[y-1][x] != nil {
				link(node, grid[y-1][x])
			}
			if x > 0 && grid[y][x-1] != nil {
				link(node, grid[y][x-1])
			}
		}
	}

	reachable := reach(grid[0][0], grid)

	var nodes []*entities.Location
	for y := range grid {
		for _, node := range grid[y] {
			if node == nil || !reachable[node.ID] {
				continue
			}
			node.Name = names.next()
			nodes = append(nodes, node)
		}
	}

	return nodes, nil
}

// between returns a value in [lo, hi]
func (g *Generator) between(ctx context.Context, lo, hi int) (int, error) {
	if hi <= lo {
		return lo, nil
	}
	idx, err := g.engine.Pick(ctx, hi-lo+1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll size")
	}
	return lo + idx, nil
}

func link(a, b *entities.Location) {
	a.Exits = append(a.Exits, b.ID)
	b.Exits = append(b.Exits, a.ID)
}

func reach(start *entities.Location, grid [][]*entities.Location) map[string]bool {
	byID := make(map[string]*entities.Location)
	for y := range grid {
		for _, node := range grid[y] {
			if node != nil {
				byID[node.ID] = node
			}
		}
	}

	seen := map[string]bool{start.ID: true}
	queue := []*entities.Location{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, id := range cur.Exits {
			if next, ok := byID[id]; ok && !seen[id] {
				seen[id] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// namer hands out room names, numbering repeats
type namer struct {
	rooms []string
	used  map[string]int
	i     int
}

func newNamer(rooms []string) *namer {
	if len(rooms) == 0 {
		rooms = []string{"Room"}
	}
	return &namer{rooms: rooms, used: make(map[string]int)}
}

func (n *namer) next() string {
	base := n.rooms[n.i%len(n.rooms)]
	n.i++
	n.used[base]++
	if c := n.used[base]; c > 1 {
		return fmt.Sprintf("%s %d", base, c)
	}
	return base
}
