package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/Miniuss/DokuGen/puzzle"
)

/*

grid entries

*/

// A gridEntry represents the stored form of a solved or starting
// grid.  It is JSON serializable so it can go into the cache as
// well as the database.
type gridEntry struct {
	GridId  string // content signature of the cells
	BoxSize int32
	Cells   string
}

// SaveGrid stores a grid, returning its id.  Grid ids are content
// signatures, so saving the same grid twice is a no-op that
// returns the same id.
func SaveGrid(g *puzzle.Grid) string {
	summary := g.Summary()
	ge := &gridEntry{
		GridId:  gridSignature(summary.Cells),
		BoxSize: int32(summary.BoxSize),
		Cells:   summary.Cells,
	}
	ge.databaseInsert()
	ge.cacheInsert()
	return ge.GridId
}

// LoadGrid reconstructs a stored grid from its id.  Panics if
// there is no such stored grid, because ids only come from
// SaveGrid.
func LoadGrid(id string) *puzzle.Grid {
	return loadGridEntry(id).makeGrid()
}

// gridSignature: compute the content signature used as a grid id.
func gridSignature(cells string) string {
	sum := sha256.Sum256([]byte(cells))
	return hex.EncodeToString(sum[:16])
}

// loadGridEntry first checks the cache, then the database, to
// find the grid's entry.  If it loads from the database, it
// caches the result.  Panics if there is no such stored entry.
func loadGridEntry(id string) *gridEntry {
	ge := &gridEntry{GridId: id}
	if ge.cacheLoad() {
		return ge
	}
	// cache miss, load from database and save to cache
	ge.databaseLoad()
	ge.cacheInsert()
	return ge
}

// makeGrid: make the grid described in a grid entry
func (ge *gridEntry) makeGrid() *puzzle.Grid {
	g, e := puzzle.FromSummary(&puzzle.Summary{
		BoxSize: int(ge.BoxSize),
		Cells:   ge.Cells,
	})
	if e != nil {
		panic(fmt.Errorf("Failed to create grid %q: %v", ge.GridId, e))
	}
	return g
}

// key: compute the cache key for a gridEntry.
func (ge *gridEntry) key() string {
	return keyPrefix + ":GID:" + ge.GridId
}

// cacheLoad: load an already cached grid entry.  Returns whether
// the entry was found in the cache.
func (ge *gridEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", ge.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading gridEntry %q: %v", ge.GridId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sge *gridEntry
	err := json.Unmarshal(bytes, &sge)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal gridEntry %q: %v", ge.GridId, err))
	}
	if sge.GridId != ge.GridId {
		panic(fmt.Errorf("Cached gridEntry (id: %q) found for grid %q!",
			sge.GridId, ge.GridId))
	}
	*ge = *sge
	return true
}

// databaseLoad: load a grid entry from the database.  Panics if
// there is no saved entry with the given id.
func (ge *gridEntry) databaseLoad() {
	body := func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx(),
			"SELECT boxSize, cells FROM grids WHERE gridId = $1", ge.GridId)
		if err := row.Scan(&ge.BoxSize, &ge.Cells); err != nil {
			return fmt.Errorf("Failure looking up grid %q: %v", ge.GridId, err)
		}
		return nil
	}
	pgExecute(body)
}

// cacheInsert: insert a grid entry into the cache.  Replaces any
// existing entry with the same id.
func (ge *gridEntry) cacheInsert() {
	bytes, e := json.Marshal(ge)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal gridEntry %q: %v", ge.GridId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", ge.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving grid entry %q: %v", ge.GridId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseInsert: insert a grid entry into the database.  Because
// ids are content signatures, an entry that's already saved is
// left alone.
func (ge *gridEntry) databaseInsert() {
	body := func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx(),
			"INSERT INTO grids (gridId, boxSize, cells, created) "+
				"VALUES ($1, $2, $3, $4) ON CONFLICT (gridId) DO NOTHING",
			ge.GridId, ge.BoxSize, ge.Cells, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving grid entry %q: %v", ge.GridId, err)
		}
		return
	}
	pgExecute(body)
}
