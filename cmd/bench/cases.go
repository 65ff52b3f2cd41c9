// README: Benchmark cases: network build, route symmetry, concurrent hails, rebalance, and an optional HTTP probe.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"

	"cabdispatch/internal/modules/fleet"
	"cabdispatch/internal/modules/location"
	"cabdispatch/internal/modules/pricing"
	"cabdispatch/internal/service"
	"cabdispatch/internal/types"
)

type Runner struct {
	cfg     Config
	httpc   *http.Client
	fake    faker.Faker
	rng     *rand.Rand
	d       *service.Dispatcher
	cities  []string
	drivers []types.ID
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(r *Runner, ctx context.Context) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
		fake:  faker.New(),
		rng:   rand.New(rand.NewSource(1)),
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		var res Result
		if ctx.Err() != nil {
			res = skip(tc.Name, "timeout")
		} else {
			res = tc.Run(r, ctx)
		}
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "build network and fleet", Run: (*Runner).buildCity},
		{Name: "route symmetry", Run: (*Runner).routeSymmetry},
		{Name: "concurrent hails", Run: (*Runner).concurrentHails},
		{Name: "rebalance all", Run: (*Runner).rebalanceAll},
		{Name: "http health", Run: (*Runner).httpHealth},
	}
}

func pass(name string, latency time.Duration, note string) Result {
	return Result{Name: name, Status: "PASS", Latency: latency, Note: note}
}

func fail(name string, note string) Result {
	return Result{Name: name, Status: "FAIL", Note: note}
}

func skip(name string, note string) Result {
	return Result{Name: name, Status: "SKIP", Note: note}
}

// ---------------------------------------------------------------------------
// Cases
// ---------------------------------------------------------------------------

func (r *Runner) buildCity(ctx context.Context) Result {
	const name = "build network and fleet"
	start := time.Now()

	d, err := service.NewDispatcher(service.Options{
		Rate:    pricing.DefaultRate(),
		Keep:    fleet.DefaultKeep,
		Chooser: fleet.NewRandomChooser(1),
	})
	if err != nil {
		return fail(name, err.Error())
	}
	r.d = d

	seen := make(map[string]bool)
	for attempt := 0; len(r.cities) < r.cfg.Locations; attempt++ {
		city := location.NormalizeName(r.fake.Address().City())
		if city == "" || seen[city] {
			city = fmt.Sprintf("%s-%d", city, attempt)
		}
		if seen[city] {
			continue
		}
		if _, err := d.AddLocation(city); err != nil {
			return fail(name, fmt.Sprintf("add %q: %v", city, err))
		}
		seen[city] = true
		r.cities = append(r.cities, city)
	}

	// Ring keeps the network connected; chords add shortcuts.
	for i := range r.cities {
		next := r.cities[(i+1)%len(r.cities)]
		if err := d.Connect(r.cities[i], next, float64(1+r.rng.Intn(9))); err != nil {
			return fail(name, err.Error())
		}
	}
	for i := 0; i < r.cfg.Roads; i++ {
		a, b := r.randomCity(), r.randomCity()
		if err := d.Connect(a, b, float64(1+r.rng.Intn(40))); err != nil {
			return fail(name, err.Error())
		}
	}

	for i := 0; i < r.cfg.Drivers; i++ {
		id := types.ID(fmt.Sprintf("drv-%04d", i))
		if err := d.OnboardDriver(id, r.fake.Person().Name()); err != nil {
			return fail(name, err.Error())
		}
		if _, err := d.RegisterVehicle(id, r.randomCity()); err != nil {
			return fail(name, err.Error())
		}
		r.drivers = append(r.drivers, id)
	}

	note := fmt.Sprintf("%d locations, %d roads, %d vehicles", len(r.cities), len(d.Roads()), len(r.drivers))
	return pass(name, time.Since(start), note)
}

func (r *Runner) routeSymmetry(ctx context.Context) Result {
	const name = "route symmetry"
	if r.d == nil {
		return skip(name, "no network")
	}
	const samples = 200
	start := time.Now()
	for i := 0; i < samples; i++ {
		a, b := r.randomCity(), r.randomCity()
		there, err := r.d.Route(ctx, a, b)
		if err != nil {
			return fail(name, fmt.Sprintf("%s -> %s: %v", a, b, err))
		}
		back, err := r.d.Route(ctx, b, a)
		if err != nil {
			return fail(name, fmt.Sprintf("%s -> %s: %v", b, a, err))
		}
		if there.Distance != back.Distance {
			return fail(name, fmt.Sprintf("%s <-> %s: %g vs %g", a, b, there.Distance, back.Distance))
		}
	}
	elapsed := time.Since(start)
	return pass(name, elapsed/time.Duration(2*samples), fmt.Sprintf("%d pairs, avg per route", samples))
}

// concurrentHails fires requests from several goroutines and checks that no
// vehicle is committed twice while its driver rests.
func (r *Runner) concurrentHails(ctx context.Context) Result {
	const name = "concurrent hails"
	if r.d == nil {
		return skip(name, "no network")
	}

	type job struct{ pickup, dropoff string }
	jobs := make(chan job)
	bar := progressbar.Default(int64(r.cfg.Hails), "hailing")

	var (
		mu         sync.Mutex
		booked     = make(map[int64]int)
		served     int
		turnedAway int
		failures   []error
		wg         sync.WaitGroup
	)

	start := time.Now()
	for w := 0; w < r.cfg.Concurrency; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			customer := types.ID(fmt.Sprintf("cust-%03d", w))
			for j := range jobs {
				ev, err := r.d.RequestRide(ctx, customer, j.pickup, j.dropoff)
				mu.Lock()
				switch {
				case err == nil:
					served++
					booked[ev.VehicleID]++
				case errors.Is(err, service.ErrNoCandidates):
					turnedAway++
				default:
					failures = append(failures, err)
				}
				mu.Unlock()
				_ = bar.Add(1)
			}
		}(w)
	}
	for i := 0; i < r.cfg.Hails; i++ {
		jobs <- job{pickup: r.randomCity(), dropoff: r.randomCity()}
	}
	close(jobs)
	wg.Wait()
	_ = bar.Finish()
	elapsed := time.Since(start)

	if len(failures) > 0 {
		return fail(name, fmt.Sprintf("%d errors, first: %v", len(failures), failures[0]))
	}
	for v, n := range booked {
		if n > 1 {
			return fail(name, fmt.Sprintf("vehicle %d booked %d times without rest clear", v, n))
		}
	}
	if served > len(r.drivers) {
		return fail(name, fmt.Sprintf("served %d rides with %d drivers", served, len(r.drivers)))
	}
	if got := r.d.FleetSummary().Rides; got != served {
		return fail(name, fmt.Sprintf("ledger has %d rides, hailers saw %d", got, served))
	}
	cleared := r.d.ClearAllRest()
	note := fmt.Sprintf("served=%d turned_away=%d cleared=%d", served, turnedAway, cleared)
	return pass(name, elapsed, note)
}

func (r *Runner) rebalanceAll(ctx context.Context) Result {
	const name = "rebalance all"
	if r.d == nil {
		return skip(name, "no network")
	}
	start := time.Now()
	moves, err := r.d.RebalanceAll()
	if err != nil {
		return fail(name, err.Error())
	}
	for _, m := range moves {
		if m.From == m.To {
			return fail(name, fmt.Sprintf("vehicle %d moved in place at %s", m.VehicleID, m.From))
		}
	}
	return pass(name, time.Since(start), fmt.Sprintf("%d moves", len(moves)))
}

func (r *Runner) httpHealth(ctx context.Context) Result {
	const name = "http health"
	if r.cfg.BaseURL == "" {
		return skip(name, "no base url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/health", nil)
	if err != nil {
		return fail(name, err.Error())
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return fail(name, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fail(name, fmt.Sprintf("status %d", resp.StatusCode))
	}
	return pass(name, time.Since(start), "")
}

func (r *Runner) randomCity() string {
	return r.cities[r.rng.Intn(len(r.cities))]
}
