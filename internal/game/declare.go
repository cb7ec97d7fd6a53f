package game

import "time"

// openWindow marks a player vulnerable and schedules the catch-window timer.
// Callers must hold mu. The timer callback re-acquires the room lock, so a
// concurrent declare or catch and the expiry are linearized; a callback that
// lost the race sees a bumped generation and does nothing.
func (r *Room) openWindow(p *Player) {
	p.vulnerable = true
	p.catchGen++
	gen := p.catchGen
	id := p.ID
	p.catchTimer = r.clock.AfterFunc(r.window, func() {
		r.expireWindow(id, gen)
	})
	r.logger.Info("Catch window opened", "player", p.Name, "window", r.window)
}

// resolveWindow closes a player's catch window, if open, cancelling the
// pending timer. Callers must hold mu.
func (r *Room) resolveWindow(p *Player) {
	if p.catchTimer != nil {
		p.catchTimer.Stop()
		p.catchTimer = nil
	}
	p.catchGen++
	p.vulnerable = false
}

// expireWindow is the timer callback: the window elapsed with no declare and
// no catch, so the vulnerability clears with no penalty.
func (r *Room) expireWindow(playerID string, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.findPlayer(playerID)
	if p == nil || !p.vulnerable || p.catchGen != gen {
		// The window was already resolved by a declare, a catch or the
		// player leaving; this fire is stale.
		return
	}

	p.vulnerable = false
	p.catchTimer = nil
	r.logger.Info("Catch window expired", "player", p.Name)
	r.bus.Publish(WindowExpiredEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		PlayerID:  p.ID,
		Snapshot:  r.snapshot(),
	})
}

// Declare is the safety call for an imminent or current one-card hand. It is
// valid while holding two cards (protecting the play that drops to one) or
// one card (closing an open window). With more than two cards it is a no-op:
// protection must be re-earned for the specific drop-to-one event.
func (r *Room) Declare(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseInProgress {
		return ErrGameNotInProgress
	}
	p := r.findPlayer(actorID)
	if p == nil {
		return ErrUnknownPlayer
	}

	if len(p.Hand) > 2 {
		return nil
	}

	safe := p.vulnerable
	if p.vulnerable {
		r.resolveWindow(p)
	}
	p.declared = true

	r.logger.Info("Player declared", "player", p.Name, "safe", safe)
	r.bus.Publish(DeclaredEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		PlayerID:  p.ID,
		Safe:      safe,
		Snapshot:  r.snapshot(),
	})
	return nil
}

// Catch penalizes a vulnerable player before their window closes. The target
// draws two cards and the window resolves. A catch against a player who is
// not vulnerable fails with ErrCatchTooLate and changes nothing; that is the
// designed outcome of losing the race, not an engine fault.
func (r *Room) Catch(actorID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseInProgress {
		return ErrGameNotInProgress
	}
	actor := r.findPlayer(actorID)
	if actor == nil {
		return ErrUnknownPlayer
	}
	if actorID == targetID {
		return ErrSelfCatch
	}
	target := r.findPlayer(targetID)
	if target == nil {
		return ErrUnknownPlayer
	}
	if !target.vulnerable {
		return ErrCatchTooLate
	}

	r.resolveWindow(target)
	cards := r.deck.Draw(catchPenalty)
	target.Hand = append(target.Hand, cards...)

	r.logger.Info("Player caught", "catcher", actor.Name, "target", target.Name, "penalty", len(cards))

	snap := r.snapshot()
	r.bus.Publish(CaughtEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		CatcherID: actor.ID,
		TargetID:  target.ID,
		Penalty:   len(cards),
		Snapshot:  snap,
	})
	r.bus.Publish(CardsDrawnEvent{
		baseEvent: baseEvent{timestamp: time.Now()},
		PlayerID:  target.ID,
		Cards:     cards,
		Hand:      target.handCopy(),
		Count:     len(cards),
		Reason:    DrawReasonPenalty,
		Snapshot:  snap,
	})
	return nil
}
