package storage

import (
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"

	"github.com/Miniuss/DokuGen/puzzle"
)

// A Session tracks a player's progress through the solution of
// one generated grid.  Behind the scenes, we persist every prior
// step the player has taken, so they can go back (undo) prior
// moves.  The solution itself is stored as a grid entry and only
// referenced by id.
type Session struct {
	// these elements are persisted as part of the session
	SID        string // session ID
	SolutionId string // id of the stored solution grid
	Pokes      int    // number of holes the grid started with
	Step       int    // current step
	Created    string // RFC3339 time when the session was created
	Saved      string // RFC3339 time when the session was last saved

	// these elements are persisted in the steps, serialized as JSON
	Solution *puzzle.Grid `redis:"-"` // the full solution
	Puzzle   *puzzle.Grid `redis:"-"` // the player's grid at the current step
}

// NewSession makes an empty session with a fresh unique id.  Use
// Lookup to attach an existing id instead.
func NewSession() *Session {
	return &Session{SID: uuid.NewString()}
}

/*

session manipulation

*/

// Start generates a new solved grid of the given box size, pokes
// the requested number of holes in it, and resets the session to
// solve the result.  The error return covers bad arguments;
// storage failures panic as everywhere in this package.
func (session *Session) Start(size, pokes int, rng *rand.Rand) error {
	solution, err := puzzle.Generate(size, rng)
	if err != nil {
		return err
	}
	working, err := puzzle.Poke(solution, pokes, rng)
	if err != nil {
		return err
	}
	session.Solution, session.Puzzle = solution, working
	session.SolutionId = SaveGrid(solution)
	session.Pokes = pokes

	// reset the cached session and its step list
	now := time.Now().Format(time.RFC3339)
	if session.Created == "" {
		session.Created = now
	}
	session.Saved = now
	session.Step = 1
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("DEL", session.stepsKey())
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of session %q after reset: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to a fresh size-%d grid with %d holes.", session.SID, size, pokes)
	return nil
}

// AddMove applies a move to the session's grid and, if it was
// legal, records the resulting state as a new step.
func (session *Session) AddMove(sym puzzle.Symbol, col, row int) error {
	if err := session.Puzzle.SetCell(sym, col, row, false); err != nil {
		return err
	}

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step++
	bytes := session.marshalStep()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("RPUSH", session.stepsKey(), bytes)
		if err != nil {
			log.Printf("Redis error on save of %s step %d: %v", session.SID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Added session %v step %d.", session.SID, session.Step)
	return nil
}

// RemoveMove removes the last move and restores the prior step's
// grid.  Removing from the starting grid is a no-op.
func (session *Session) RemoveMove() {
	if session.Step <= 1 {
		// nothing to do
		return
	}

	// load the prior grid from the cache
	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step--
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, -2)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on remove to %s step %d: %v", session.SID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.Printf("Reverted session %v to step %d.", session.SID, session.Step)
}

// Lookup: fill in the session from the cache, if its id has saved
// state.  Returns whether it was found; a found session comes
// back with its solution and current grid loaded.
func (session *Session) Lookup() (found bool) {
	body := func(tx redis.Conn) error {
		vals, err := redis.Values(tx.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Printf("Redis error on parse of saved session %q: %v", session.SID, err)
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Printf("Redis error on lookup of session %q: %v", session.SID, err)
			return err
		}
		log.Printf("No saved state for session %q", session.SID)
		return nil
	}
	rdExecute(body)
	if found {
		session.Solution = LoadGrid(session.SolutionId)
		session.LoadStep()
	}
	return
}

// LoadStep: load the current grid from the saved step list.
func (session *Session) LoadStep() {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on load of %s step %d: %v", session.SID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
}

// Solved reports whether the session's grid has reached the
// solution.
func (session *Session) Solved() bool {
	return session.Puzzle != nil && session.Puzzle.Equal(session.Solution)
}

/*

serialization of grid state into and out of the cache

*/

// marshalStep - get JSON for the current step's grid
func (session *Session) marshalStep() []byte {
	bytes, err := json.Marshal(session.Puzzle.Summary())
	if err != nil {
		log.Printf("Failed to marshal summary of %s step %d as JSON: %v",
			session.SID, session.Step, err)
		panic(err)
	}
	return bytes
}

// unmarshalStep - restore the grid for a saved step
func (session *Session) unmarshalStep(bytes []byte) {
	var summary *puzzle.Summary
	err := json.Unmarshal(bytes, &summary)
	if err != nil {
		log.Printf("Failed to unmarshal saved JSON of %s step %d: %v",
			session.SID, session.Step, err)
		panic(err)
	}
	session.Puzzle, err = puzzle.FromSummary(summary)
	if err != nil {
		log.Printf("Failed to create grid for %s step %d (%+v): %v",
			session.SID, session.Step, *summary, err)
		panic(err)
	}
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return keyPrefix + ":SID:" + session.SID
}

// stepsKey - returns the key for the session's step list
func (session *Session) stepsKey() string {
	return session.key() + ":Steps"
}
