package engine

import (
	"math"
	"testing"

	"arena-manager/internal/gamecfg"
)

func TestDrawRarityFrequencies(t *testing.T) {
	e := testEngine(t)
	rng := NewSeededRNG(42)

	const n = 200000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[e.DrawRarity(rng).Name]++
	}

	total := 0
	for _, r := range e.Config().Rarities {
		total += r.Weight
	}
	for _, r := range e.Config().Rarities {
		want := float64(r.Weight) / float64(total)
		got := float64(counts[r.Name]) / n
		if math.Abs(got-want) > 0.01 {
			t.Fatalf("%s frequency = %.4f, want %.4f ± 0.01", r.Name, got, want)
		}
	}
}

func TestOpenCaseJitterIsUnclamped(t *testing.T) {
	e := testEngine(t)
	cfg := *e.Config()
	cfg.Rarities = []gamecfg.RarityTier{{Name: "Legendary", Weight: 1, Aim: 99, Reaction: 99, Tactics: 99}}
	cfg.RarityWeightTotal = 1
	e = New(&cfg)

	rng := NewSeededRNG(9)
	sawOverflow := false
	for i := 0; i < 500; i++ {
		out := e.OpenCase(1, 500, rng)
		for _, v := range []int{out.Stats.Aim, out.Stats.Reaction, out.Stats.Tactics} {
			if v < 99-cfg.Case.Jitter || v > 99+cfg.Case.Jitter {
				t.Fatalf("stat %d outside jitter window of 99±%d", v, cfg.Case.Jitter)
			}
			if v > 100 {
				sawOverflow = true
			}
		}
	}
	if !sawOverflow {
		t.Fatal("expected case stats above 100; case draws must not clamp")
	}
}

func TestOpenCaseBuildsPlayer(t *testing.T) {
	e := testEngine(t)
	out := e.OpenCase(77, 500, NewSeededRNG(5))

	if out.CostPaid != 500 {
		t.Fatalf("CostPaid = %d, want 500", out.CostPaid)
	}
	if !out.Position.Valid() {
		t.Fatalf("position %q is not valid", out.Position)
	}
	p := out.Player
	if p.UserID != 77 || p.Rarity != out.Rarity || p.Position != out.Position {
		t.Fatalf("player %+v does not match outcome %+v", p, out)
	}
	if p.Aim != out.Stats.Aim || p.Reaction != out.Stats.Reaction || p.Tactics != out.Stats.Tactics {
		t.Fatalf("player stats %+v do not match %+v", p, out.Stats)
	}
	if p.Stamina != 100 || p.Morale != 80 {
		t.Fatalf("stamina/morale = %d/%d, want 100/80", p.Stamina, p.Morale)
	}
	if p.Nickname == "" {
		t.Fatal("expected a nickname")
	}
}

func TestStarterKitClampsAndCoversPositions(t *testing.T) {
	e := testEngine(t)
	cfg := *e.Config()
	cfg.Rarities = []gamecfg.RarityTier{
		{Name: "Scrub", Weight: 1, Aim: 32, Reaction: 32, Tactics: 32},
		{Name: "Ace", Weight: 1, Aim: 98, Reaction: 98, Tactics: 98},
	}
	cfg.RarityWeightTotal = 2
	e = New(&cfg)

	for seed := int64(0); seed < 300; seed++ {
		kit := e.StarterKit(1, NewSeededRNG(seed))
		if len(kit) != len(cfg.StarterKit.Positions) {
			t.Fatalf("kit size = %d, want %d", len(kit), len(cfg.StarterKit.Positions))
		}
		for i, p := range kit {
			if string(p.Position) != cfg.StarterKit.Positions[i] {
				t.Fatalf("slot %d position = %q, want %q", i, p.Position, cfg.StarterKit.Positions[i])
			}
			for _, v := range []int{p.Aim, p.Reaction, p.Tactics} {
				if v < 30 || v > 100 {
					t.Fatalf("seed %d: starter stat %d outside [30, 100]", seed, v)
				}
			}
			if p.Stamina != 100 || p.Morale != 80 {
				t.Fatalf("stamina/morale = %d/%d, want 100/80", p.Stamina, p.Morale)
			}
		}
	}
}

func TestRollAmbientSelectsDistinctTargets(t *testing.T) {
	e := testEngine(t)
	cfg := *e.Config()
	cfg.Ambient = gamecfg.AmbientConfig{
		Probability: 1,
		Events:      []gamecfg.AmbientEvent{{Name: "argument", Target: gamecfg.TargetRandom, Count: 2, Morale: -10}},
	}
	e = New(&cfg)
	roster := uniformRoster(5, 60, 100)

	for seed := int64(0); seed < 200; seed++ {
		roll, ok := e.RollAmbient(roster, NewSeededRNG(seed))
		if !ok {
			t.Fatalf("seed %d: event with probability 1 did not fire", seed)
		}
		if len(roll.PlayerIDs) != 2 || roll.PlayerIDs[0] == roll.PlayerIDs[1] {
			t.Fatalf("seed %d: targets %v, want 2 distinct", seed, roll.PlayerIDs)
		}
	}

	a, _ := e.RollAmbient(roster, NewSeededRNG(11))
	b, _ := e.RollAmbient(roster, NewSeededRNG(11))
	if a.PlayerIDs[0] != b.PlayerIDs[0] || a.PlayerIDs[1] != b.PlayerIDs[1] {
		t.Fatalf("same seed picked %v then %v", a.PlayerIDs, b.PlayerIDs)
	}
}

func TestRollAmbientAllAndNever(t *testing.T) {
	e := testEngine(t)
	roster := uniformRoster(5, 60, 100)

	cfg := *e.Config()
	cfg.Ambient = gamecfg.AmbientConfig{
		Probability: 1,
		Events:      []gamecfg.AmbientEvent{{Name: "pizza", Target: gamecfg.TargetAll, Morale: 5}},
	}
	roll, ok := New(&cfg).RollAmbient(roster, NewSeededRNG(1))
	if !ok || len(roll.PlayerIDs) != len(roster) {
		t.Fatalf("all-target roll = %+v, %v", roll, ok)
	}

	cfg.Ambient.Probability = 0
	if _, ok := New(&cfg).RollAmbient(roster, NewSeededRNG(1)); ok {
		t.Fatal("zero-probability ambient event fired")
	}
}

func TestRollStaminaLossRange(t *testing.T) {
	e := testEngine(t)
	rng := NewSeededRNG(2)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := e.RollStaminaLoss(rng)
		if v < 10 || v > 15 {
			t.Fatalf("stamina loss %d outside [10, 15]", v)
		}
		seen[v] = true
	}
	if len(seen) != 6 {
		t.Fatalf("saw %d distinct losses, want 6", len(seen))
	}
}

func TestSampleIndexesCapsAtRosterSize(t *testing.T) {
	got := sampleIndexes(3, 5, NewSeededRNG(1))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	seen := map[int]bool{}
	for _, i := range got {
		if seen[i] {
			t.Fatalf("duplicate index %d in %v", i, got)
		}
		seen[i] = true
	}
}
