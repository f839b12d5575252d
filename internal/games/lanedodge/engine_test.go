package lanedodge

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// quietConfig disables spawning and difficulty ramps so obstacles can be
// placed by hand and move by exact amounts.
func quietConfig() config.LaneDodgeConfig {
	cfg := config.DefaultLaneDodgeConfig()
	cfg.Spawn.BaseIntervalMs = 1e12
	cfg.Solo.Difficulty.Enabled = false
	cfg.Duo.Difficulty.Enabled = false
	return cfg
}

func newTestEngine(t *testing.T, cfg config.LaneDodgeConfig, mode Mode, rng Rand) *Engine {
	t.Helper()
	if rng == nil {
		rng = &scriptedRand{}
	}
	e, err := NewEngine(cfg, rng)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	if !e.SetMode(mode) {
		t.Fatalf("SetMode(%v) rejected on a stopped engine", mode)
	}
	e.Reset()
	return e
}

// place puts an obstacle directly into the field.
func place(e *Engine, o Obstacle) {
	e.spawner.obstacles = append(e.spawner.obstacles, o)
}

func TestNewEngineRejectsInvalidInput(t *testing.T) {
	cfg := config.DefaultLaneDodgeConfig()
	cfg.Field.Width = 0
	if _, err := NewEngine(cfg, &scriptedRand{}); err == nil {
		t.Error("expected error for invalid config")
	}
	if _, err := NewEngine(config.DefaultLaneDodgeConfig(), nil); err == nil {
		t.Error("expected error for nil random source")
	}
}

func TestInitialState(t *testing.T) {
	for _, mode := range []Mode{ModeSolo, ModeDuo} {
		t.Run(mode.String(), func(t *testing.T) {
			e := newTestEngine(t, config.DefaultLaneDodgeConfig(), mode, nil)
			snap := e.Snapshot()

			if snap.Running || snap.RoundEnded {
				t.Errorf("fresh engine must be idle, got running=%v ended=%v", snap.Running, snap.RoundEnded)
			}
			if snap.ElapsedMs != 0 || snap.SpeedMultiplier != 1 || snap.DifficultyMultiplier != 1 {
				t.Errorf("clock not at rest: %+v", e.State())
			}
			if snap.Mode != mode {
				t.Errorf("mode = %v, expected %v", snap.Mode, mode)
			}

			wantPlayers := 1
			if mode == ModeDuo {
				wantPlayers = 2
			}
			if len(snap.Players) != wantPlayers {
				t.Fatalf("players = %d, expected %d", len(snap.Players), wantPlayers)
			}
			for _, p := range snap.Players {
				if p.Lane != 1 {
					t.Errorf("player %v starts in lane %d, expected middle lane 1", p.ID, p.Lane)
				}
			}
			if len(snap.Timers) != wantPlayers {
				t.Errorf("timers = %d, expected one per group", len(snap.Timers))
			}
		})
	}
}

func TestAdvanceIdleWhenStopped(t *testing.T) {
	e := newTestEngine(t, config.DefaultLaneDodgeConfig(), ModeSolo, nil)

	if res := e.Advance(1000); res.Outcome != OutcomeIdle {
		t.Errorf("outcome = %v, expected idle", res.Outcome)
	}
	if e.State().ElapsedMs != 0 {
		t.Errorf("stopped engine must not accumulate time")
	}

	e.Start()
	e.Advance(0)
	e.Advance(500)
	e.Stop()
	if res := e.Advance(5000); res.Outcome != OutcomeIdle {
		t.Errorf("outcome after Stop = %v, expected idle", res.Outcome)
	}
	if e.State().ElapsedMs != 500 {
		t.Errorf("elapsed = %g, expected 500", e.State().ElapsedMs)
	}
}

func TestFirstAdvanceSeedsClock(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)
	e.Start()

	if res := e.Advance(123456); res.Outcome != OutcomeContinue {
		t.Fatalf("outcome = %v, expected continue", res.Outcome)
	}
	if e.State().ElapsedMs != 0 {
		t.Errorf("first advance must simulate zero time, got %g", e.State().ElapsedMs)
	}

	e.Advance(123476)
	if e.State().ElapsedMs != 20 {
		t.Errorf("elapsed = %g, expected 20", e.State().ElapsedMs)
	}
}

func TestNegativeDeltaClamped(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)
	e.Start()
	e.Advance(1000)
	e.Advance(1100)
	e.Advance(900) // clock went backwards

	if got := e.State().ElapsedMs; got != 100 {
		t.Errorf("elapsed = %g, expected 100", got)
	}

	e.Advance(950)
	if got := e.State().ElapsedMs; got != 150 {
		t.Errorf("elapsed = %g, expected 150 after resuming from the new timestamp", got)
	}
}

func TestMultipliersIndependentOfFrameSplit(t *testing.T) {
	cfg := quietConfig()
	cfg.Solo.Difficulty = config.DefaultLaneDodgeConfig().Solo.Difficulty

	even := newTestEngine(t, cfg, ModeSolo, nil)
	even.Start()
	even.Advance(0)
	for ts := 30; ts <= 30000; ts += 30 {
		even.Advance(float64(ts))
	}

	uneven := newTestEngine(t, cfg, ModeSolo, nil)
	uneven.Start()
	uneven.Advance(0)
	ts := 0
	steps := []int{7, 13, 250, 1, 64, 999}
	for i := 0; ts < 30000; i++ {
		ts = min(ts+steps[i%len(steps)], 30000)
		uneven.Advance(float64(ts))
	}

	a, b := even.State(), uneven.State()
	if !approx(a.ElapsedMs, 30000) || !approx(b.ElapsedMs, 30000) {
		t.Fatalf("elapsed = %g / %g, expected 30000", a.ElapsedMs, b.ElapsedMs)
	}

	curve := config.NewDifficultyCurve(cfg.Solo.Difficulty)
	wantSpeed := curve.SpeedMultiplier(30000)
	wantDiff := curve.DifficultyMultiplier(30000)

	for name, s := range map[string]State{"even": a, "uneven": b} {
		if !approx(s.SpeedMultiplier, wantSpeed) {
			t.Errorf("%s: speed = %g, expected %g", name, s.SpeedMultiplier, wantSpeed)
		}
		if !approx(s.DifficultyMultiplier, wantDiff) {
			t.Errorf("%s: difficulty = %g, expected %g", name, s.DifficultyMultiplier, wantDiff)
		}
	}
	if !approx(wantSpeed, 1+30000.0/18000) || !approx(wantDiff, 1+30000.0/12000) {
		t.Errorf("unexpected curve values %g / %g", wantSpeed, wantDiff)
	}
}

func TestMultipliersCapped(t *testing.T) {
	cfg := quietConfig()
	cfg.Solo.Difficulty = config.DefaultLaneDodgeConfig().Solo.Difficulty

	e := newTestEngine(t, cfg, ModeSolo, nil)
	e.Start()
	e.Advance(0)
	e.Advance(10 * 60 * 1000)

	s := e.State()
	if want := 1 + cfg.Solo.Difficulty.SpeedCap; s.SpeedMultiplier != want {
		t.Errorf("speed = %g, expected capped %g", s.SpeedMultiplier, want)
	}
	if want := 1 + cfg.Solo.Difficulty.DifficultyCap; s.DifficultyMultiplier != want {
		t.Errorf("difficulty = %g, expected capped %g", s.DifficultyMultiplier, want)
	}
}

func TestMovePlayerClamps(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		index int
		moves []Direction
		want  int
	}{
		{"solo left", ModeSolo, 0, []Direction{DirLeft}, 0},
		{"solo right", ModeSolo, 0, []Direction{DirRight}, 2},
		{"solo clamp left", ModeSolo, 0, []Direction{DirLeft, DirLeft, DirLeft, DirLeft}, 0},
		{"solo clamp right", ModeSolo, 0, []Direction{DirRight, DirRight, DirRight}, 2},
		{"solo back and forth", ModeSolo, 0, []Direction{DirLeft, DirRight, DirRight, DirLeft}, 1},
		{"duo p1 clamp left", ModeDuo, 0, []Direction{DirLeft, DirLeft, DirLeft}, 0},
		{"duo p2 clamp right", ModeDuo, 1, []Direction{DirRight, DirRight, DirRight}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, quietConfig(), tc.mode, nil)
			e.Start()
			for _, d := range tc.moves {
				if !e.MovePlayer(tc.index, d) {
					t.Fatalf("MovePlayer(%d, %v) rejected during a round", tc.index, d)
				}
			}
			if got := e.Snapshot().Players[tc.index].Lane; got != tc.want {
				t.Errorf("lane = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestMovePlayerRandomWalkStaysInLanes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, mode := range []Mode{ModeSolo, ModeDuo} {
		e := newTestEngine(t, quietConfig(), mode, nil)
		e.Start()
		players := len(e.Snapshot().Players)

		for i := 0; i < 1000; i++ {
			e.MovePlayer(rng.Intn(players), Direction(rng.Intn(2)))
			for _, p := range e.Snapshot().Players {
				if p.Lane < 0 || p.Lane > 2 {
					t.Fatalf("%v: player %v left the lanes: %d", mode, p.ID, p.Lane)
				}
			}
		}
	}
}

func TestMovePlayerDuoIndependent(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeDuo, nil)
	e.Start()

	e.MovePlayer(0, DirLeft)
	players := e.Snapshot().Players
	if players[0].Lane != 0 || players[1].Lane != 1 {
		t.Errorf("lanes = %d, %d; expected 0, 1", players[0].Lane, players[1].Lane)
	}
}

func TestMovePlayerRejected(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)

	if e.MovePlayer(0, DirLeft) {
		t.Error("move accepted before the round started")
	}

	e.Start()
	if e.MovePlayer(1, DirLeft) {
		t.Error("move accepted for a player that does not exist in solo")
	}
	if e.MovePlayer(-1, DirLeft) {
		t.Error("move accepted for a negative index")
	}
	if e.MovePlayer(0, Direction(9)) {
		t.Error("move accepted for an unknown direction")
	}
	if got := e.Snapshot().Players[0].Lane; got != 1 {
		t.Errorf("lane = %d, rejected moves must not change it", got)
	}
}

func TestSetModeOnlyBetweenRounds(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)

	e.Start()
	if e.SetMode(ModeDuo) {
		t.Error("SetMode accepted during a round")
	}
	e.Stop()

	if e.SetMode(Mode(7)) {
		t.Error("SetMode accepted an invalid mode")
	}
	if !e.SetMode(ModeDuo) {
		t.Fatal("SetMode rejected between rounds")
	}
	if e.State().Mode != ModeSolo {
		t.Error("mode must not change before Reset")
	}
	if e.NextMode() != ModeDuo {
		t.Errorf("NextMode = %v, expected DUO", e.NextMode())
	}

	e.Reset()
	if e.State().Mode != ModeDuo || len(e.Snapshot().Players) != 2 {
		t.Errorf("Reset did not apply DUO: mode %v, %d players", e.State().Mode, len(e.Snapshot().Players))
	}
}

func TestSoloCollisionScenario(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)
	layout := e.Layout()

	e.Start()
	e.Advance(0)
	if res := e.Advance(5000); res.Outcome != OutcomeContinue {
		t.Fatalf("outcome = %v, expected continue", res.Outcome)
	}

	// Size 40 falling at 100 units/s moves exactly 1 unit per 10ms.
	place(e, Obstacle{Group: GroupShared, Lane: 1, Size: 40, Y: layout.PlayerY - 42, Speed: 100})

	// Bottom edge one unit above the player band
	if res := e.Advance(5010); res.Outcome != OutcomeContinue {
		t.Fatalf("gap of one unit must not collide, got %v", res.Outcome)
	}
	// Bottom edge touching the player band
	if res := e.Advance(5020); res.Outcome != OutcomeContinue {
		t.Fatalf("touching edges must not collide, got %v", res.Outcome)
	}

	res := e.Advance(5030)
	if res.Outcome != OutcomeRoundEnded {
		t.Fatalf("overlap must end the round, got %v", res.Outcome)
	}
	if res.SurvivalSeconds != 5 {
		t.Errorf("survival = %d, expected 5", res.SurvivalSeconds)
	}
	if !reflect.DeepEqual(res.Crashed, []core.PlayerID{core.Player1}) {
		t.Errorf("crashed = %v, expected [P1]", res.Crashed)
	}

	snap := e.Snapshot()
	if snap.Running || !snap.RoundEnded {
		t.Errorf("round must be stopped and ended: running=%v ended=%v", snap.Running, snap.RoundEnded)
	}
	if len(snap.Obstacles) != 1 {
		t.Errorf("obstacles stay on screen after a crash, got %d", len(snap.Obstacles))
	}

	if res := e.Advance(6000); res.Outcome != OutcomeIdle {
		t.Errorf("advance after the crash = %v, expected idle", res.Outcome)
	}
	if e.MovePlayer(0, DirLeft) {
		t.Error("move accepted after the crash")
	}
}

func TestSurvivalSecondsFloors(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)
	layout := e.Layout()

	e.Start()
	e.Advance(0)
	e.Advance(2999)
	place(e, Obstacle{Group: GroupShared, Lane: 1, Size: 40, Y: layout.PlayerY})

	res := e.Advance(2999)
	if res.Outcome != OutcomeRoundEnded {
		t.Fatalf("outcome = %v, expected round ended", res.Outcome)
	}
	if res.SurvivalSeconds != 2 {
		t.Errorf("survival = %d, expected 2", res.SurvivalSeconds)
	}
}

func TestCollisionNeedsSameLane(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)
	layout := e.Layout()

	e.Start()
	e.Advance(0)
	place(e, Obstacle{Group: GroupShared, Lane: 0, Size: 54, Y: layout.PlayerY})

	if res := e.Advance(10); res.Outcome != OutcomeContinue {
		t.Fatalf("obstacle in another lane must not collide, got %v", res.Outcome)
	}

	e.MovePlayer(0, DirLeft)
	if res := e.Advance(20); res.Outcome != OutcomeRoundEnded {
		t.Errorf("moving into the obstacle must end the round, got %v", res.Outcome)
	}
}

func TestDuoSharedFate(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeDuo, nil)
	layout := e.Layout()

	e.Start()
	e.Advance(0)
	e.Advance(1500)
	e.MovePlayer(0, DirRight)
	place(e, Obstacle{Group: GroupRight, Lane: 1, Size: 40, Y: layout.PlayerY})

	res := e.Advance(1510)
	if res.Outcome != OutcomeRoundEnded {
		t.Fatalf("outcome = %v, expected round ended", res.Outcome)
	}
	if !reflect.DeepEqual(res.Crashed, []core.PlayerID{core.Player2}) {
		t.Errorf("crashed = %v, expected only P2", res.Crashed)
	}
	if res.SurvivalSeconds != 1 {
		t.Errorf("survival = %d, expected 1", res.SurvivalSeconds)
	}

	snap := e.Snapshot()
	if snap.Running {
		t.Error("round must stop for both players")
	}
	if snap.Players[0].Lane != 2 {
		t.Errorf("P1 lane = %d, expected it unchanged at 2", snap.Players[0].Lane)
	}
	if e.MovePlayer(0, DirLeft) || e.MovePlayer(1, DirLeft) {
		t.Error("no player may move after the shared crash")
	}
}

func TestDuoBothCrash(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeDuo, nil)
	layout := e.Layout()

	e.Start()
	e.Advance(0)
	place(e, Obstacle{Group: GroupLeft, Lane: 1, Size: 40, Y: layout.PlayerY})
	place(e, Obstacle{Group: GroupRight, Lane: 1, Size: 40, Y: layout.PlayerY})

	res := e.Advance(10)
	if !reflect.DeepEqual(res.Crashed, []core.PlayerID{core.Player1, core.Player2}) {
		t.Errorf("crashed = %v, expected both players", res.Crashed)
	}
}

func TestDuoObstacleOnlyHitsOwnGroup(t *testing.T) {
	cfg := quietConfig()
	// Both groups share the same lane centers so hitboxes overlap across groups
	cfg.Duo.Lanes = [][]float64{{0.25, 0.5, 0.75}, {0.25, 0.5, 0.75}}
	e := newTestEngine(t, cfg, ModeDuo, nil)
	layout := e.Layout()

	e.Start()
	e.Advance(0)
	place(e, Obstacle{Group: GroupLeft, Lane: 0, Size: 40, Y: layout.PlayerY})

	// P2 moves under the left-group obstacle; P1 stays clear in the middle
	e.MovePlayer(1, DirLeft)
	if res := e.Advance(10); res.Outcome != OutcomeContinue {
		t.Fatalf("outcome = %v, obstacle must only collide with its own group", res.Outcome)
	}

	e.MovePlayer(0, DirLeft)
	res := e.Advance(20)
	if !reflect.DeepEqual(res.Crashed, []core.PlayerID{core.Player1}) {
		t.Errorf("crashed = %v, expected only P1", res.Crashed)
	}
}

func TestResetAfterRoundEnd(t *testing.T) {
	e := newTestEngine(t, config.DefaultLaneDodgeConfig(), ModeDuo, rand.New(rand.NewSource(3)))
	layout := e.Layout()

	e.Start()
	e.Advance(0)
	for ts := 16; ts <= 2000; ts += 16 {
		e.Advance(float64(ts))
	}
	e.MovePlayer(0, DirLeft)
	e.MovePlayer(1, DirRight)
	place(e, Obstacle{Group: GroupRight, Lane: 2, Size: 40, Y: layout.PlayerY})
	if res := e.Advance(2016); res.Outcome != OutcomeRoundEnded {
		t.Fatalf("outcome = %v, expected round ended", res.Outcome)
	}

	e.Reset()
	snap := e.Snapshot()
	if snap.Running || snap.RoundEnded {
		t.Errorf("Reset must leave the engine stopped: running=%v ended=%v", snap.Running, snap.RoundEnded)
	}
	if snap.ElapsedMs != 0 || snap.SpeedMultiplier != 1 || snap.DifficultyMultiplier != 1 {
		t.Errorf("clock not reset: %+v", e.State())
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("obstacles = %d, expected none", len(snap.Obstacles))
	}
	for i, timer := range snap.Timers {
		if timer != 0 {
			t.Errorf("timer %d = %g, expected 0", i, timer)
		}
	}
	for _, p := range snap.Players {
		if p.Lane != 1 {
			t.Errorf("player %v lane = %d, expected middle lane", p.ID, p.Lane)
		}
	}
	if snap.SurvivalSeconds != 0 || len(snap.Crashed) != 0 {
		t.Errorf("round result not cleared: %d %v", snap.SurvivalSeconds, snap.Crashed)
	}
	if snap.Mode != ModeDuo {
		t.Errorf("mode = %v, Reset must keep DUO", snap.Mode)
	}
}

func TestRestartAfterCrash(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)
	layout := e.Layout()

	e.Start()
	e.Advance(100)
	place(e, Obstacle{Group: GroupShared, Lane: 1, Size: 40, Y: layout.PlayerY})
	e.Advance(200)

	e.Start()
	if !e.Running() {
		t.Fatal("Start after a crash must begin a new round")
	}
	if res := e.Advance(99999); res.Outcome != OutcomeContinue {
		t.Errorf("outcome = %v, expected continue", res.Outcome)
	}
	if e.State().ElapsedMs != 0 {
		t.Errorf("new round must start at zero, got %g", e.State().ElapsedMs)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(t, config.DefaultLaneDodgeConfig(), ModeDuo, rand.New(rand.NewSource(42)))
		e.Start()
		for frame := 0; frame <= 3000; frame++ {
			if e.Advance(float64(frame)*16).Outcome == OutcomeRoundEnded {
				break
			}
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different runs:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	e := newTestEngine(t, quietConfig(), ModeSolo, nil)
	e.Start()
	e.Advance(0)
	place(e, Obstacle{Group: GroupShared, Lane: 0, Size: 40, Y: 10})

	snap := e.Snapshot()
	snap.Obstacles[0].Y = 999
	snap.Players[0].Lane = 2

	again := e.Snapshot()
	if again.Obstacles[0].Y != 10 || again.Players[0].Lane != 1 {
		t.Error("mutating a snapshot changed the engine")
	}

	l := e.Layout()
	l.Groups[0].LaneX[0] = -1
	if e.Layout().Groups[0].LaneX[0] == -1 {
		t.Error("mutating a layout copy changed the engine")
	}
}
