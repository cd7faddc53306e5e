package owlrun

func (g *Game) resolveCollisions() {
	g.resolveObstacles()
	g.resolveProjectiles()
	g.resolvePickups()
	g.resolveStrikes()
}

func (g *Game) resolveObstacles() {
	p := g.player
	pb := p.Box()
	for _, o := range g.obstacles {
		if !o.Active || o.Touched {
			continue
		}
		b := o.Type.Behavior()
		if !o.Box().Intersects(pb) {
			continue
		}
		if b.Jumpable && p.Airborne() {
			continue
		}
		o.Touched = true
		g.hitObstacle(o, b)
	}
}

// hitObstacle applies the behavior table's response for one contact.
func (g *Game) hitObstacle(o *Obstacle, b Behavior) {
	p := g.player
	switch b.Effect {
	case EffectStun:
		g.stunPlayer(b.BaseStun, o.Type.String(), o.Lane)
	case EffectHostileStun:
		if o.Hostile {
			g.stunPlayer(b.BaseStun, o.Type.String(), o.Lane)
		}
	case EffectChoppable:
		if p.HasAxe {
			g.chop(o)
		} else {
			g.stunPlayer(b.BaseStun, o.Type.String(), o.Lane)
		}
	case EffectSteer, EffectSlow:
		p.Mods.Add(b.Mod, b.ModValue, b.ModDuration)
	case EffectCrack:
		if o.Cracked {
			return
		}
		o.Cracked = true
		g.emit(EventIceCrack, o.Lane, o.Type.String(), 0)
		g.stunPlayer(b.BaseStun, o.Type.String(), o.Lane)
		p.Mods.Add(b.Mod, b.ModValue, b.ModDuration)
	}
}

func (g *Game) stunPlayer(base float64, source string, lane int) {
	if !g.player.Stun(base) {
		return
	}
	g.prog.BreakStreak()
	g.emit(EventStun, lane, source, g.player.StunTimer)
}

// chop consumes the axe and removes the tree.
func (g *Game) chop(o *Obstacle) {
	o.Active = false
	g.player.HasAxe = false
	g.emit(EventChop, o.Lane, o.Type.String(), g.prog.AddBonus(g.cfg.Progression.ChopBonus))
	g.unlock(AchievementFirstChop)
}

func (g *Game) resolveProjectiles() {
	pb := g.player.Box()
	for _, pr := range g.projectiles {
		if !pr.Active || !pr.Box().Intersects(pb) {
			continue
		}
		pr.Active = false
		g.stunPlayer(g.cfg.Spawner.ProjectileStun, "projectile", g.player.Lane)
	}
}

// resolvePickups uses the expanded hitbox and ignores airborne state.
func (g *Game) resolvePickups() {
	pb := g.player.Box()
	pc := g.cfg.Pickups
	for _, pk := range g.pickups {
		if pk.State != PickupActive || !pk.HitBox(pc.HitboxMargin).Intersects(pb) {
			continue
		}
		pk.Collect(pc.CollectDuration)
		g.applyPickup(pk.Type)
		g.emit(EventPickup, pk.Lane, pk.Type.String(), g.prog.AddBonus(g.cfg.Progression.PickupBonus))
	}
}

func (g *Game) applyPickup(t PickupType) {
	p := g.player
	pc := g.cfg.Pickups
	switch t {
	case PickupAxe:
		p.HasAxe = true
	case PickupBurst:
		p.Burst(pc.BurstMultiplier)
		if g.owl.AddThreat(-pc.BurstThreatRelief) {
			g.endRun(ReasonThreat)
		}
	case PickupThermos:
		p.ReduceStuns(pc.ThermosFactor)
	case PickupLantern:
		p.Mods.Add(ModWarning, pc.LanternFactor, pc.LanternDuration)
	case PickupSnowglobe:
		p.Mods.Add(ModSpawnInterval, pc.SnowglobeFactor, pc.SnowglobeDuration)
	}
}

// resolveStrikes checks strikes still in their capture window against NPCs
// and the player. A strike line runs from the top of the track to the
// player's row, so only NPCs at or above that row can be taken.
func (g *Game) resolveStrikes() {
	playerY := g.cfg.Track.PlayerY
	for _, s := range g.owl.Strikes {
		if !g.owl.Capturing(s) {
			continue
		}
		for _, n := range g.npcs {
			if n.Y > playerY || !g.owl.OnLine(s, n.X) {
				continue
			}
			if n.Capture() {
				g.emit(EventCapture, n.Lane, "npc", 0)
			}
		}
		if g.owl.OnLine(s, g.player.X) {
			g.emit(EventCapture, s.Lane, "player", 0)
			g.endRun(ReasonStrike)
			return
		}
	}
}
