package game

import (
	"topdownracer/track"
	"topdownracer/vec"
)

const (
	// Effects keep this far from the first checkpoint so the grid starts clean
	startClearance = 150.0
	// dropDistance scales the car's longer side to find the spot behind it
	dropDistance = 0.5
)

// PlacementCandidates are the track checkpoints effects may be placed on
func PlacementCandidates(path *track.TrackPath) []vec.Vec2D {
	if path == nil || path.Len() == 0 {
		return nil
	}
	start := path.Points[0].Point
	candidates := make([]vec.Vec2D, 0, path.Len())
	for _, cp := range path.Points {
		if vec.Distance(cp.Point, start) > startClearance {
			candidates = append(candidates, cp.Point)
		}
	}
	return candidates
}

// PickPlacement picks a random candidate that crowded rejects. When every
// candidate is crowded any candidate is used. Reports false without
// candidates.
func PickPlacement(rng *Rand, candidates []vec.Vec2D, crowded func(vec.Vec2D) bool) (vec.Vec2D, bool) {
	if len(candidates) == 0 {
		return vec.Zero, false
	}
	free := make([]vec.Vec2D, 0, len(candidates))
	for _, p := range candidates {
		if !crowded(p) {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return candidates[rng.Intn(len(candidates))], true
	}
	return free[rng.Intn(len(free))], true
}

// randomKind draws a kind of category available on the track difficulty
func (r *Race) randomKind(category EffectCategory) (EffectKind, bool) {
	kinds := KindsForLevel(category, r.Track.Difficulty)
	if len(kinds) == 0 {
		return 0, false
	}
	return kinds[r.rand.Intn(len(kinds))], true
}

// spawnEffect puts a new effect on the track and in the spatial index
func (r *Race) spawnEffect(kind EffectKind, pos vec.Vec2D) *EffectObject {
	r.nextID++
	e := NewEffectObject(r.nextID, kind, pos)
	r.Effects = append(r.Effects, e)
	r.Collisions.Insert(e)
	return e
}

// spawnRandom places a random effect of category on a free checkpoint
func (r *Race) spawnRandom(category EffectCategory) *EffectObject {
	kind, ok := r.randomKind(category)
	if !ok {
		return nil
	}
	pos, ok := PickPlacement(r.rand, r.candidates, r.Collisions.Crowded)
	if !ok {
		return nil
	}
	return r.spawnEffect(kind, pos)
}

// placeInitialEffects scatters obstacles and perks and lays the surface
// patches of the map
func (r *Race) placeInitialEffects() {
	obstacles := int(r.Track.Difficulty) * r.Config.ObstaclesPerDifficulty
	for i := 0; i < obstacles; i++ {
		r.spawnRandom(CategoryObstacle)
	}

	if points := r.Track.Path.Points; len(points) > 0 {
		switch r.Track.Map {
		case "snow":
			r.spawnEffect(EffectIce, points[len(points)/2].Point)
		case "gravel":
			r.spawnEffect(EffectGravel, points[len(points)/3].Point)
			r.spawnEffect(EffectGravel, points[2*len(points)/3].Point)
		}
	}

	for i := 0; i < r.Config.Perks; i++ {
		r.spawnRandom(CategoryPerk)
	}
	r.logger.Printf("placed %d effects on %s", len(r.Effects), r.Track.Name)
}

// DropObstacle leaves a random obstacle right behind b. The dropping car
// already overlaps it and is only affected once it drives back onto it.
func (r *Race) DropObstacle(b *Body) *EffectObject {
	kind, ok := r.randomKind(CategoryObstacle)
	if !ok {
		return nil
	}
	back := vec.FromAngle(max(b.Width, b.Height)*dropDistance, b.Angle)
	e := r.spawnEffect(kind, vec.Subtract(b.Position, back))
	e.colliding[b] = true
	r.logger.Printf("%s dropped %s", b.Name, kind)
	return e
}
