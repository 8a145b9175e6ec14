package game

import (
	"errors"
	"testing"

	"topdownracer/geom"
	"topdownracer/track"
)

func TestRosterGhostDraw(t *testing.T) {
	ghost := GetRoster("snow", 0.1)
	if len(ghost) != 4 || !ghost[0].Ghost || ghost[0].ShouldAvoid {
		t.Fatalf("expected the ghost to replace the straight driver, got=%+v", ghost[0])
	}
	for _, e := range ghost[1:] {
		if !e.ShouldAvoid || e.Ghost {
			t.Fatalf("expected %s to avoid obstacles on snow", e.Name)
		}
	}

	if plain := GetRoster("snow", 0.5); plain[0].Ghost || !plain[0].ShouldAvoid {
		t.Fatalf("expected no ghost above the chance, got=%+v", plain[0])
	}
	if grass := GetRoster("grass", 0.1); grass[0].Ghost || grass[0].ShouldAvoid {
		t.Fatalf("expected the ghost only on snow, got=%+v", grass[0])
	}
}

func TestEffectKindByName(t *testing.T) {
	kind, err := EffectKindByName("oil_spill")
	if err != nil || kind != EffectOilSpill {
		t.Fatalf("expected oil_spill, got=%s err=%v", kind, err)
	}

	_, err = EffectKindByName("anvil")
	var cfgErr *track.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Name != "anvil" {
		t.Fatalf("expected a configuration error, got=%v", err)
	}
}

func TestKindsForLevel(t *testing.T) {
	cases := []struct {
		category   EffectCategory
		difficulty track.Difficulty
		want       int
	}{
		{CategoryObstacle, 1, 3},
		{CategoryObstacle, 2, 4},
		{CategoryObstacle, 3, 5},
		{CategoryPerk, 1, 2},
		{CategoryPerk, 3, 5},
		{CategorySurface, 3, 0},
	}
	for _, c := range cases {
		if got := KindsForLevel(c.category, c.difficulty); len(got) != c.want {
			t.Fatalf("expected %d kinds of category %d at difficulty %d, got=%v", c.want, c.category, c.difficulty, got)
		}
	}
}

func TestConfigForTrack(t *testing.T) {
	mask := geom.NewMask(300, 200, 4)
	tr := track.New("t", "grass", 1, nil, mask, nil, nil)
	cfg := DefaultConfig().ForTrack(tr)
	if cfg.WorldWidth != 1200 || cfg.WorldHeight != 800 {
		t.Fatalf("expected a 1200x800 world, got=%fx%f", cfg.WorldWidth, cfg.WorldHeight)
	}
	if cfg.CellCountX() != 10 || cfg.CellCountY() != 7 {
		t.Fatalf("expected 10x7 cells, got=%dx%d", cfg.CellCountX(), cfg.CellCountY())
	}
}

func TestVehicleConfigs(t *testing.T) {
	player := GetVehicleConfig(VehicleTypePlayer)
	if player.MaxSpeedForward != 240 || player.Width != 30 || player.Height != 14 {
		t.Fatalf("expected the player car caps, got=%+v", player)
	}
	if GetVehicleConfig(VehicleType(99)).Type != VehicleTypePlayer {
		t.Fatalf("expected unknown types to fall back to the player car")
	}
}
