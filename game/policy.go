package game

import (
	"math"
	"time"

	"topdownracer/track"
	"topdownracer/vec"
)

// curvatureGain maps checkpoint curvature to the 0..1 cornering blend
const curvatureGain = 10.0

// Action is what a controller asks of its body for one tick. Rotation is in
// radians.
type Action struct {
	Accelerate        bool
	Brake             bool
	Rotation          float64
	AccelerationPower float64
	Horn              bool
}

// PolicyInput is the world as seen by an opponent for one decision
type PolicyInput struct {
	Position vec.Vec2D
	Angle    float64
	Force    vec.Vec2D
	Now      time.Duration
	Dt       float64

	// Player position and force; HasPlayer is false once the player is gone
	Player      vec.Vec2D
	PlayerForce vec.Vec2D
	HasPlayer   bool

	// Obstacles crossing the lookahead window and the mask to detour on
	Intersections []track.PathIntersection
	Navigator     track.Navigator
}

// Policy is the per opponent driving state
type Policy struct {
	Tier   PolicyTier
	Config PolicyTierConfig
	Path   *track.EnemyPath

	// AvoidObstacles enables detours around obstacles on the lookahead
	AvoidObstacles bool

	inRange   time.Duration
	attacking bool
	lastHorn  time.Duration
}

// NewPolicy creates the driving state of one opponent
func NewPolicy(tier PolicyTier, path *track.EnemyPath, avoid bool) *Policy {
	return &Policy{
		Tier:           tier,
		Config:         GetPolicyTierConfig(tier),
		Path:           path,
		AvoidObstacles: avoid,
		lastHorn:       -time.Hour,
	}
}

// Attacking reports whether the opponent is ramming the player
func (p *Policy) Attacking() bool {
	return p.attacking
}

// Decide maps the opponent's situation to an action and updates its lap
// progress. All tiers share this entry point and differ only in their
// configuration.
func Decide(p *Policy, progress *Progress, in PolicyInput) Action {
	var action Action
	cfg := p.Config

	threshold := cfg.Threshold

	if cfg.Attacks() && in.HasPlayer {
		distance := vec.Distance(in.Position, in.Player)
		if distance < cfg.AttackRange {
			p.inRange += time.Duration(in.Dt * float64(time.Second))
		} else {
			p.inRange = 0
		}
		p.attacking = p.inRange >= cfg.AttackDwell
		if distance < cfg.HornRange && in.Now-p.lastHorn >= cfg.HornCooldown {
			action.Horn = true
			p.lastHorn = in.Now
		}
	} else {
		p.inRange = 0
		p.attacking = false
	}
	if p.attacking {
		threshold = cfg.AttackThreshold
	}

	p.advanceGlobal(progress, in.Position, threshold, in.Now)
	p.advanceLookahead(in, threshold)

	target, hasTarget := p.Path.CurrentTarget()
	aim := target.Point
	if p.attacking {
		aim = PredictIntercept(in.Position, in.Player, in.PlayerForce, math.Max(vec.Length(in.Force), cfg.MaxSpeed))
	}
	if !hasTarget && !p.attacking {
		return action
	}

	bearing := vec.Angle(vec.Subtract(aim, in.Position))
	action.Rotation = vec.Clamp(vec.WrapAngle(bearing-in.Angle), -cfg.MaxRotation, cfg.MaxRotation)

	targetSpeed := TargetSpeed(cfg, target.Curvature)
	forward := vec.Dot(in.Force, vec.FromAngle(1, in.Angle))
	action.Accelerate = forward-targetSpeed < 0.01
	action.Brake = targetSpeed-forward < 0.01
	action.AccelerationPower = 1
	return action
}

// TargetSpeed blends between cornering and top speed by curvature
func TargetSpeed(cfg PolicyTierConfig, curvature float64) float64 {
	sharpness := math.Min(math.Abs(curvature*curvatureGain), 1)
	return cfg.CorneringSpeed + (cfg.MaxSpeed-cfg.CorneringSpeed)*(1-sharpness)
}

// advanceGlobal moves the lap progress counter over the lane checkpoints.
// NaN distances from degenerate geometry count as reached.
func (p *Policy) advanceGlobal(progress *Progress, pos vec.Vec2D, threshold float64, now time.Duration) {
	total := p.Path.Len()
	if total == 0 {
		return
	}
	visited := p.Path.VisitedCheckpoints
	d := p.Path.DistanceToPoint(pos, visited%total)
	if math.IsNaN(d) || d < threshold {
		visited++
	}
	if visited >= total {
		visited = 1
		progress.CompleteLap(now)
	}
	p.Path.VisitedCheckpoints = visited
}

func (p *Policy) advanceLookahead(in PolicyInput, threshold float64) {
	if p.AvoidObstacles && len(in.Intersections) > 0 {
		p.Path.AvoidObstacles(in.Intersections, in.Navigator)
	}
	if p.Path.DistanceToActualPoint(in.Position) < threshold {
		p.Path.Advance(1)
	}
}
