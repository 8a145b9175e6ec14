package game

import (
	"time"
)

const (
	steerStep     = 0.2
	steerCooldown = 0.02
	dropCooldown  = 3000 * time.Millisecond

	// Opponent action cooldowns in seconds
	rotateCooldown     = 0.04
	accelerateCooldown = 0.0
	brakeCooldown      = 0.02
)

// Player turns keyboard (or scripted) input into actions on its body
type Player struct {
	Body  *Body
	Input InputSource

	// BananaHits counts banana peels driven over; three end the race
	BananaHits int

	steerTimer float64
	lastDrop   time.Duration
}

// NewPlayer creates the player controller
func NewPlayer(body *Body, input InputSource) *Player {
	return &Player{Body: body, Input: input, lastDrop: -dropCooldown}
}

// Update reads the input and queues this tick's actions
func (p *Player) Update(r *Race, dt float64) {
	p.Input.Update()
	if p.Body.Progress.Finished {
		return
	}
	now := r.Now()
	b := p.Body

	if p.Input.Pressed(ControlAccelerate) {
		b.AccelerateForward()
	}
	if p.Input.Pressed(ControlBrake) {
		b.Brake()
	}

	p.steerTimer += dt
	steer := 0.0
	if p.Input.Pressed(ControlRight) {
		steer += steerStep
	}
	if p.Input.Pressed(ControlLeft) {
		steer -= steerStep
	}
	if steer != 0 {
		b.IsTurning = true
		if p.steerTimer >= steerCooldown {
			b.Steer(steer)
			p.steerTimer = 0
		}
	}

	if p.Input.JustPressed(ControlHorn) {
		r.cues.Play(CueHorn, b.Name)
	}
	if p.Input.JustPressed(ControlNitro) && b.ActivateNitro(now) {
		r.cues.Play(CueNitroOn, b.Name)
	}
	if p.Input.JustPressed(ControlDropObstacle) && now-p.lastDrop >= dropCooldown {
		if r.DropObstacle(b) != nil {
			p.lastDrop = now
		}
	}
}

// Opponent drives its body with a policy. Each kind of action has its own
// cooldown so the opponent does not act at full tick rate.
type Opponent struct {
	Body   *Body
	Policy *Policy

	// LastAction is the most recent decision, for debugging views
	LastAction Action

	rotateTimer     float64
	accelerateTimer float64
	brakeTimer      float64
}

// NewOpponent creates an opponent controller
func NewOpponent(body *Body, policy *Policy) *Opponent {
	return &Opponent{Body: body, Policy: policy}
}

// Update asks the policy for an action and applies it
func (o *Opponent) Update(r *Race, dt float64) {
	b := o.Body
	o.rotateTimer += dt
	o.accelerateTimer += dt
	o.brakeTimer += dt

	in := PolicyInput{
		Position: b.Position,
		Angle:    b.Angle,
		Force:    b.ActualForce,
		Now:      r.Now(),
		Dt:       dt,
	}
	if r.Player != nil && !r.Player.Body.Progress.Finished && !r.Player.Body.Invisible {
		in.Player = r.Player.Body.Position
		in.PlayerForce = r.Player.Body.ActualForce
		in.HasPlayer = true
	}
	if o.Policy.AvoidObstacles {
		in.Intersections = r.Collisions.PathIntersections(o.Policy.Path.ActualPath)
		in.Navigator = r.Collisions.Mask()
	}

	lap := b.Progress.Lap
	action := Decide(o.Policy, &b.Progress, in)
	o.LastAction = action
	if b.Progress.Lap != lap {
		r.logger.Printf("%s completed lap %d", b.Name, b.Progress.Lap)
	}

	if action.Rotation != 0 && o.rotateTimer >= rotateCooldown {
		b.Angle += action.Rotation
		o.rotateTimer = 0
	}
	if action.Accelerate && o.accelerateTimer >= accelerateCooldown {
		b.AccelerateForward()
		o.accelerateTimer = 0
	}
	if action.Brake && o.brakeTimer >= brakeCooldown {
		b.Brake()
		o.brakeTimer = 0
	}
	if action.Horn {
		r.cues.Play(CueHorn, b.Name)
	}

	if !b.Progress.Finished && b.Progress.Lap >= r.Config.Laps {
		b.Progress.Finish(r.Now())
		r.logger.Printf("%s finished in %v", b.Name, b.Progress.FinishTime)
	}
}
