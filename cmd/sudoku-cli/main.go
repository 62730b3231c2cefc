// Command-line client for generating and playing puzzles
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/Miniuss/DokuGen/puzzle"
	"github.com/Miniuss/DokuGen/storage"
)

// defaults for sessions that arrive without a grid
const (
	defaultBoxSize = 3
	defaultHoles   = 40
)

func main() {
	// establish storage connections
	cacheId, databaseId, err := storage.Connect()
	if err != nil {
		log.Printf("Storage failure on startup: %v", err)
		shutdown(startupFailureShutdown)
	}
	log.Printf("Connected to cache at %q and database at %q", cacheId, databaseId)
	defer storage.Close()

	// catch signals
	shutdownOnSignal()

	// serve
	if err := listener(os.Stdout, os.Stdin); err != nil {
		log.Printf("CLI failure: %v", err)
		shutdown(listenerFailureShutdown)
	}
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(out *os.File, in *os.File) error {
	// if we are on a terminal, we do prompting
	prompt := false
	if stat, _ := out.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
		prompt = true
	}

	input := make([]byte, 4096)
	for {
		if prompt {
			fmt.Fprintf(out, "sudoku> ")
		}
		n, err := in.Read(input)
		switch err {
		case nil:
			r := &request{inline: strings.Trim(string(input[:n]), " \t\r\n")}
			args := strings.Split(r.inline, " ")
			r.command = strings.ToLower(args[0])
			switch r.command {
			case "":
				continue
			case "quit":
				fallthrough
			case "exit":
				return nil
			}
			// symbols are case-sensitive, so arguments keep their case
			for _, arg := range args[1:] {
				if len(arg) > 0 {
					r.args = append(r.args, arg)
				}
			}
			dispatchCommand(out, r)
		case io.EOF:
			// ignore any input before the EOF
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		default:
			if prompt {
				fmt.Fprintf(out, " (read error)\n")
			}
			return err
		}
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(*storage.Session, *os.File, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"back", "", "go back one move", backHandler},
		{"move", "symbol colxrow", "place a symbol, e.g. 'move 5 3x4'", moveHandler},
		{"new", "[boxSize [holes]]", "start a fresh grid", newHandler},
		{"session", "[sessionID]", "get/set session info", summaryHandler},
		{"show", "", "show the current grid", showHandler},
		{"solution", "", "give up and show the solution", solutionHandler},
		{"summary", "", "show current session summary", summaryHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(w *os.File, r *request) {
	defer func() {
		if err := recover(); err != nil {
			errorHandler(err, w, r)
		}
	}()

	session := sessionSelect(w, r)
	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w, r)
	} else {
		ci.handler(session, w, r)
	}
}

/*

request handlers

*/

func newHandler(session *storage.Session, w *os.File, r *request) {
	size, holes := defaultBoxSize, -1
	var err error
	if len(r.args) > 2 {
		usageHandler(fmt.Sprintf("%s takes at most two arguments", r.command), w, r)
		return
	}
	if len(r.args) > 0 {
		if size, err = strconv.Atoi(r.args[0]); err != nil {
			usageHandler(fmt.Sprintf("%s box size (%s) must be a number", r.command, r.args[0]), w, r)
			return
		}
	}
	if len(r.args) > 1 {
		if holes, err = strconv.Atoi(r.args[1]); err != nil {
			usageHandler(fmt.Sprintf("%s hole count (%s) must be a number", r.command, r.args[1]), w, r)
			return
		}
	}
	if holes < 0 {
		// scale the default with the grid area
		holes = defaultHoles * (size * size * size * size) / 81
	}
	if err := session.Start(size, holes, nil); err != nil {
		fmt.Fprintf(w, "Couldn't start a new grid: %v\n", err)
		return
	}
	showHandler(session, w, r)
}

func moveHandler(session *storage.Session, w *os.File, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w, r)
		return
	}
	sym, err := puzzle.ParseSymbol(r.args[0])
	if err != nil {
		fmt.Fprintf(w, "Move failed: %v\n", err)
		return
	}
	col, row, err := parsePosition(r.args[1])
	if err != nil {
		usageHandler(fmt.Sprintf("%s position (%s) %v", r.command, r.args[1], err), w, r)
		return
	}
	current, err := session.Puzzle.Cell(col, row)
	if err != nil {
		fmt.Fprintf(w, "Move failed: %v\n", err)
		return
	}
	if current != puzzle.Empty {
		fmt.Fprintf(w, "Cell %dx%d is already filled.\n", col, row)
		return
	}
	// only moves that match the solution are accepted
	want, err := session.Solution.Cell(col, row)
	if err != nil {
		fmt.Fprintf(w, "Move failed: %v\n", err)
		return
	}
	if sym != want {
		fmt.Fprintf(w, "Illegal move! Try again!\n")
		return
	}
	if err := session.AddMove(sym, col, row); err != nil {
		fmt.Fprintf(w, "Move failed: %v\n", err)
		return
	}
	showHandler(session, w, r)
	if session.Solved() {
		fmt.Fprintf(w, "You solved it! Congratulations!\n")
	}
}

func backHandler(session *storage.Session, w *os.File, r *request) {
	session.RemoveMove()
	showHandler(session, w, r)
}

func showHandler(session *storage.Session, w *os.File, r *request) {
	fmt.Fprintf(w, "%s", session.Puzzle.Render())
}

func solutionHandler(session *storage.Session, w *os.File, r *request) {
	fmt.Fprintf(w, "%s", session.Solution.Render())
}

func summaryHandler(session *storage.Session, w *os.File, r *request) {
	fmt.Fprintf(w, "Session %q solving grid %q (%d holes) on move %d\n",
		session.SID, session.SolutionId, session.Pokes, session.Step)
	fmt.Fprintf(w, "Box size: %d; Side length: %d; ",
		session.Puzzle.Size(), session.Puzzle.SideLength())
	empty := session.Puzzle.EmptyCount()
	filled := session.Puzzle.SideLength()*session.Puzzle.SideLength() - empty
	fmt.Fprintf(w, "Filled cells: %d; Empty cells: %d\n", filled, empty)
}

func usageHandler(msg string, w *os.File, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-15s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func errorHandler(err interface{}, w *os.File, r *request) {
	fmt.Fprintf(w, "Something went wrong executing %q: %v\n", r.inline, err)
	log.Printf("Panic executing %q: %v\n", r.inline, err)
}

// parsePosition parses a colxrow position like "3x4".
func parsePosition(arg string) (col, row int, err error) {
	parts := strings.SplitN(strings.ToLower(arg), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("must be <column>x<row>")
	}
	if col, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("column (%s) is not a number", parts[0])
	}
	if row, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("row (%s) is not a number", parts[1])
	}
	return col, row, nil
}

/*

session handling

*/

// cookie for the command line
var defaultCookie string

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
func getCookie(w *os.File, r *request) string {
	// look to see if the user is specifying a cookie
	if r.command == "session" && len(r.args) > 0 {
		defaultCookie = r.args[0]
	}

	// look for an existing session cookie
	if len(defaultCookie) != 0 {
		return defaultCookie
	}

	// no session cookie: start a new session with a new ID
	sid := storage.NewSession().SID
	log.Printf("No session cookie found, created new session ID %q", sid)
	defaultCookie = sid
	return sid
}

// sessionSelect: find or create the session for the current command.
func sessionSelect(w *os.File, r *request) *storage.Session {
	id := getCookie(w, r)
	session := &storage.Session{SID: id}
	// load session from storage if possible, otherwise hand the
	// player a default grid
	if session.Lookup() {
		log.Printf("Found session %v, grid %q, on move %d.",
			session.SID, session.SolutionId, session.Step)
	} else if r.command != "new" {
		if err := session.Start(defaultBoxSize, defaultHoles, nil); err != nil {
			panic(err)
		}
	}
	return session
}

/*

coordinate shutdown across goroutines and top-level listener

*/

type shutdownCause int

const (
	unknownShutdown = iota
	startupFailureShutdown
	caughtSignalShutdown
	listenerFailureShutdown
)

// shutdown: process exit with logging.
func shutdown(reason shutdownCause) {
	storage.Close()

	// log reason for shutdown and exit
	switch reason {
	case unknownShutdown:
		log.Fatal("Exiting: normal shutdown.")
	case startupFailureShutdown:
		log.Fatal("Exiting: initialization failure.")
	case caughtSignalShutdown:
		log.Fatal("Exiting: caught signal.")
	case listenerFailureShutdown:
		log.Fatal("Exiting: command listener failed.")
	default:
		log.Fatal("Exiting: unknown cause.")
	}
}

// shutdownOnSignal: catch signals and exit.
func shutdownOnSignal() {
	// based on example in os.signal godoc
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	go func() {
		s := <-c
		log.Printf("Received OS-level signal: %v", s)
		shutdown(caughtSignalShutdown)
	}()
}
