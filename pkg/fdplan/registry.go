package fdplan

// DriverName identifies one of the search algorithms a DriverRegistry
// can construct.
type DriverName string

const (
	DriverEHC     DriverName = "ehc"
	DriverLazyBFS DriverName = "lazy-bfs"
	DriverAStar   DriverName = "astar"
)

// OpenListName identifies one of the four open-list variants (spec
// §4.4) a DriverRegistry can build for a driver that takes one.
type OpenListName string

const (
	OpenListFIFO   OpenListName = "fifo"
	OpenListHeap   OpenListName = "heap"
	OpenListBucket OpenListName = "bucket"
	OpenListMap    OpenListName = "map"
)

// DriverFactory builds a Driver over the given problem, heuristic, and
// config. Registered by name so callers (and the config loader) can
// select an algorithm by string rather than importing every driver
// constructor directly.
type DriverFactory func(problem *Problem, heur Heuristic, open OpenList, cfg DriverConfig) Driver

// DriverRegistry maps algorithm and open-list names to constructors,
// the same discovery pattern the teacher corpus uses for its labeling
// and search strategies: a name-keyed map populated with built-ins at
// construction, open to further registrations.
type DriverRegistry struct {
	drivers   map[DriverName]DriverFactory
	openLists map[OpenListName]func(maxCost int) OpenList
}

// NewDriverRegistry returns a registry pre-populated with the three
// built-in drivers and four open-list variants.
func NewDriverRegistry() *DriverRegistry {
	r := &DriverRegistry{
		drivers:   make(map[DriverName]DriverFactory),
		openLists: make(map[OpenListName]func(maxCost int) OpenList),
	}

	r.RegisterDriver(DriverEHC, func(problem *Problem, heur Heuristic, _ OpenList, cfg DriverConfig) Driver {
		return NewEHCDriver(problem, heur, cfg)
	})
	r.RegisterDriver(DriverLazyBFS, func(problem *Problem, heur Heuristic, open OpenList, cfg DriverConfig) Driver {
		return NewLazyBFSDriver(problem, heur, open, cfg)
	})
	r.RegisterDriver(DriverAStar, func(problem *Problem, heur Heuristic, open OpenList, cfg DriverConfig) Driver {
		return NewAStarDriver(problem, heur, open, cfg)
	})

	r.RegisterOpenList(OpenListFIFO, func(int) OpenList { return NewFIFOList() })
	r.RegisterOpenList(OpenListHeap, func(int) OpenList { return NewHeapList() })
	r.RegisterOpenList(OpenListBucket, func(maxCost int) OpenList { return NewBucketList(maxCost) })
	r.RegisterOpenList(OpenListMap, func(int) OpenList { return NewMapList() })

	return r
}

// RegisterDriver adds or replaces a driver constructor.
func (r *DriverRegistry) RegisterDriver(name DriverName, factory DriverFactory) {
	r.drivers[name] = factory
}

// RegisterOpenList adds or replaces an open-list constructor.
func (r *DriverRegistry) RegisterOpenList(name OpenListName, factory func(maxCost int) OpenList) {
	r.openLists[name] = factory
}

// Drivers lists every registered driver name.
func (r *DriverRegistry) Drivers() []DriverName {
	out := make([]DriverName, 0, len(r.drivers))
	for name := range r.drivers {
		out = append(out, name)
	}
	return out
}

// Build constructs a driver by name, selecting its open list by
// openList (ignored by drivers that always use their own, like EHC's
// fixed FIFO list). maxCost only matters for the bucket variant.
func (r *DriverRegistry) Build(name DriverName, openList OpenListName, maxCost int, problem *Problem, heur Heuristic, cfg DriverConfig) (Driver, error) {
	factory, ok := r.drivers[name]
	if !ok {
		return nil, NewConfigError("fdplan: unknown driver %q", name)
	}

	olFactory, ok := r.openLists[openList]
	if !ok {
		return nil, NewConfigError("fdplan: unknown open list %q", openList)
	}

	return factory(problem, heur, olFactory(maxCost), cfg), nil
}

// SelectForProblem recommends a driver and open list based on a few
// coarse properties of the problem: variable count and operator
// count. This mirrors the teacher's StrategySelector — a heuristic
// pick a caller can override, not a guarantee of the fastest choice
// for any given instance.
func SelectForProblem(numVars, numOps int) (DriverName, OpenListName) {
	switch {
	case numOps > 5000:
		// Large grounded operator sets: EHC's restart discipline keeps
		// memory bounded better than best-first's unbounded open list.
		return DriverEHC, OpenListFIFO
	case numVars < 10:
		// Small state spaces: A* with a heap gives an optimal plan
		// cheaply.
		return DriverAStar, OpenListHeap
	default:
		return DriverLazyBFS, OpenListHeap
	}
}
