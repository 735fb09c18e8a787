// Package client is the game-side counterpart of the score protocol: it
// holds the session secret in memory only, timestamps local events, and
// computes the two signatures the server checks. It is an explicit context
// object owned by the caller — nothing here is global.
package client

import (
	"errors"
	"time"

	"snakeServer/crypto"
	"snakeServer/game"
)

// maxPendingEvents bounds the buffer for events recorded before session
// credentials arrive. Older events are dropped first on overflow.
const maxPendingEvents = 32

var (
	ErrNoSession      = errors.New("client: no active session")
	ErrInvalidMove    = errors.New("client: invalid move direction")
	ErrAlreadyStarted = errors.New("client: session already started")
)

type pendingEvent struct {
	at        time.Time
	direction game.Direction
	food      bool
	golden    bool
}

// Controller accumulates gameplay events for one session and produces the
// signed end-of-game and score-submission requests. It is not safe for
// concurrent use; the UI event loop is expected to be its single caller.
type Controller struct {
	sessionID string
	secret    string
	seed      uint32

	begun     bool
	startedAt time.Time

	events  []game.MoveEvent
	foods   []game.FoodEvent
	pending []pendingEvent

	// now is the local clock; replaceable in tests.
	now func() time.Time
}

func NewController() *Controller {
	return &Controller{now: time.Now}
}

// Begin installs the credentials returned by the start-session call and
// replays any events buffered while the request was in flight. Events that
// predate the session start are clamped to t=0.
func (c *Controller) Begin(creds *game.SessionCredentials) error {
	if c.begun {
		return ErrAlreadyStarted
	}
	c.sessionID = creds.SessionID
	c.secret = creds.Secret
	c.seed = creds.Seed
	c.begun = true
	c.startedAt = c.now()
	if len(c.pending) > 0 && c.pending[0].at.Before(c.startedAt) {
		c.startedAt = c.pending[0].at
	}

	for _, p := range c.pending {
		t := p.at.Sub(c.startedAt).Milliseconds()
		if t < 0 {
			t = 0
		}
		if p.food {
			c.foods = append(c.foods, game.FoodEvent{T: t, IsGolden: p.golden})
		} else {
			c.events = append(c.events, game.MoveEvent{T: t, Direction: p.direction})
		}
	}
	c.pending = nil
	return nil
}

// Seed returns the server-issued seed for deterministic food placement.
func (c *Controller) Seed() uint32 {
	return c.seed
}

// RecordMove appends a direction change timestamped off the local clock.
func (c *Controller) RecordMove(direction game.Direction) error {
	if !game.ValidDirection(direction) {
		return ErrInvalidMove
	}
	if !c.begun {
		c.buffer(pendingEvent{at: c.now(), direction: direction})
		return nil
	}
	c.events = append(c.events, game.MoveEvent{
		T:         c.elapsedMs(),
		Direction: direction,
	})
	return nil
}

// RecordFood appends a food consumption event.
func (c *Controller) RecordFood(golden bool) {
	if !c.begun {
		c.buffer(pendingEvent{at: c.now(), food: true, golden: golden})
		return
	}
	c.foods = append(c.foods, game.FoodEvent{
		T:        c.elapsedMs(),
		IsGolden: golden,
	})
}

// Score is the running score implied by the recorded food events.
func (c *Controller) Score() int {
	return game.ComputeScore(c.foods)
}

// EndGameRequest assembles and signs the end-of-game submission.
func (c *Controller) EndGameRequest() (*game.EndGameRequest, error) {
	if !c.begun {
		return nil, ErrNoSession
	}

	finalScore := c.Score()
	durationMs := c.elapsedMs()

	payload := game.EndGamePayload(c.sessionID, finalScore, c.events, c.foods, durationMs)
	signature, err := crypto.SignPayload(c.secret, payload)
	if err != nil {
		return nil, err
	}

	return &game.EndGameRequest{
		SessionID:  c.sessionID,
		Signature:  signature,
		FinalScore: finalScore,
		Events:     c.events,
		Foods:      c.foods,
		DurationMs: durationMs,
	}, nil
}

// SubmitRequest assembles and signs the name/score submission for the
// server-validated score.
func (c *Controller) SubmitRequest(name string, validatedScore int) (*game.SubmitRequest, error) {
	if !c.begun {
		return nil, ErrNoSession
	}

	timestamp := c.now().UnixMilli()
	payload := game.SubmitPayload(c.sessionID, name, validatedScore, timestamp)
	signature, err := crypto.SignPayload(c.secret, payload)
	if err != nil {
		return nil, err
	}

	return &game.SubmitRequest{
		SessionID: c.sessionID,
		Name:      name,
		Score:     validatedScore,
		Timestamp: timestamp,
		Signature: signature,
	}, nil
}

func (c *Controller) buffer(e pendingEvent) {
	if len(c.pending) == maxPendingEvents {
		copy(c.pending, c.pending[1:])
		c.pending = c.pending[:maxPendingEvents-1]
	}
	c.pending = append(c.pending, e)
}

func (c *Controller) elapsedMs() int64 {
	return c.now().Sub(c.startedAt).Milliseconds()
}
