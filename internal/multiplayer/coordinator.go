package multiplayer

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
)

// CodeAlphabet is the set of characters room codes are drawn from.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Lobby is a room waiting for its match to start.
type Lobby struct {
	Code      string
	GameID    string
	Host      SessionHandle
	Opponent  string // Empty until the opponent has joined
	Joining   bool   // Host is the session that typed the code
	CreatedAt time.Time

	timer *time.Timer
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	JoinDelay     time.Duration // Created room: wait for the opponent to arrive
	StartDelay    time.Duration // Created room: opponent present, wait before starting
	ConnectDelay  time.Duration // Joined room: wait before starting
	LobbyTimeout  time.Duration // How long before an unjoined lobby expires
	CleanupPeriod time.Duration // How often to clean up expired lobbies
	TickRate      int           // Game tick rate (Hz)
	CodeLength    int
	ScreenW       int
	ScreenH       int
}

// DefaultCoordinatorConfig returns the lobby timings players expect.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		JoinDelay:     4 * time.Second,
		StartDelay:    2 * time.Second,
		ConnectDelay:  1500 * time.Millisecond,
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
		TickRate:      60,
		CodeLength:    4,
		ScreenW:       80,
		ScreenH:       24,
	}
}

// GameFactory creates game instances for matches.
type GameFactory func(gameID string, cfg core.RuntimeConfig) (OnlineGame, error)

// MatchResultSaver is an interface for saving match results.
// This allows the coordinator to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID        string
	GameID         string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	WinnerSession  string
	EndReason      string
	DurationSecs   int
}

// Coordinator runs simulated online rooms: it hands out room codes, fakes
// the remote opponent's arrival on a timer and starts an OnlineMatch for
// the local session.
type Coordinator struct {
	config      CoordinatorConfig
	gameFactory GameFactory
	resultSaver MatchResultSaver // Optional, can be nil
	logger      *log.Logger

	mu      sync.Mutex
	lobbies map[string]*Lobby
	matches map[MatchID]*OnlineMatch

	sessionLobby map[SessionID]string
	sessionMatch map[SessionID]MatchID

	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory) *Coordinator {
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 4
	}
	return &Coordinator{
		config:       cfg,
		gameFactory:  factory,
		logger:       log.Default().WithPrefix("lobby"),
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		done:         make(chan struct{}),
		now:          time.Now,
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger replaces the coordinator's logger.
func (c *Coordinator) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Start begins background cleanup of expired lobbies.
func (c *Coordinator) Start() {
	if c.config.CleanupPeriod > 0 {
		go c.cleanupLoop()
	}
}

// Stop cancels pending lobbies and running matches.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		defer c.mu.Unlock()
		for code, lobby := range c.lobbies {
			if lobby.timer != nil {
				lobby.timer.Stop()
			}
			delete(c.lobbies, code)
		}
		for _, m := range c.matches {
			m.Stop()
		}
	})
}

func (c *Coordinator) stopped() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// CreateLobby opens a room hosted by session and returns its code.
// The opponent joins after JoinDelay and the match starts StartDelay later.
func (c *Coordinator) CreateLobby(session SessionHandle, gameID string) (string, error) {
	if c.stopped() {
		return "", ErrStopped
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkFree(session.ID()); err != nil {
		return "", err
	}

	code := c.generateUniqueCode()
	lobby := &Lobby{
		Code:      code,
		GameID:    gameID,
		Host:      session,
		CreatedAt: c.now(),
	}
	lobby.timer = time.AfterFunc(c.config.JoinDelay, func() { c.opponentJoined(code) })

	c.lobbies[code] = lobby
	c.sessionLobby[session.ID()] = code

	session.Send(LobbyCreatedEvent{Code: code, GameID: gameID})
	c.logger.Info("lobby created", "code", code, "session", session.ID(), "game", gameID)
	return code, nil
}

// JoinLobby connects session to the room with the given code. Codes are
// case-insensitive. The match starts after ConnectDelay.
func (c *Coordinator) JoinLobby(session SessionHandle, gameID, code string) error {
	if c.stopped() {
		return ErrStopped
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ErrEmptyCode
	}
	if !c.validCode(code) {
		return fmt.Errorf("%w: %q", ErrLobbyNotFound, code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkFree(session.ID()); err != nil {
		return err
	}
	if lobby, ok := c.lobbies[code]; ok {
		if lobby.Host.ID() == session.ID() {
			return ErrOwnLobby
		}
		return ErrLobbyFull
	}

	lobby := &Lobby{
		Code:      code,
		GameID:    gameID,
		Host:      session,
		Opponent:  "Host " + code,
		Joining:   true,
		CreatedAt: c.now(),
	}
	lobby.timer = time.AfterFunc(c.config.ConnectDelay, func() { c.startMatch(code) })

	c.lobbies[code] = lobby
	c.sessionLobby[session.ID()] = code
	c.logger.Info("joining lobby", "code", code, "session", session.ID())
	return nil
}

func (c *Coordinator) checkFree(id SessionID) error {
	if _, ok := c.sessionLobby[id]; ok {
		return ErrAlreadyInLobby
	}
	if _, ok := c.sessionMatch[id]; ok {
		return ErrAlreadyInLobby
	}
	return nil
}

func (c *Coordinator) validCode(code string) bool {
	if len(code) != c.config.CodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(CodeAlphabet, r) {
			return false
		}
	}
	return true
}

func (c *Coordinator) opponentJoined(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, ok := c.lobbies[code]
	if !ok || lobby.Opponent != "" {
		return
	}
	lobby.Opponent = "Guest " + code
	lobby.Host.Send(LobbyJoinedEvent{Code: code, Side: Player1, Opponent: lobby.Opponent})
	lobby.timer = time.AfterFunc(c.config.StartDelay, func() { c.startMatch(code) })
	c.logger.Debug("opponent joined", "code", code)
}

func (c *Coordinator) startMatch(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, ok := c.lobbies[code]
	if !ok || c.stopped() {
		return
	}
	delete(c.lobbies, code)
	hostID := lobby.Host.ID()
	delete(c.sessionLobby, hostID)

	cfg := core.RuntimeConfig{
		ScreenW:  c.config.ScreenW,
		ScreenH:  c.config.ScreenH,
		TickRate: c.config.TickRate,
		Seed:     c.now().UnixNano(),
	}
	game, err := c.gameFactory(lobby.GameID, cfg)
	if err != nil {
		c.logger.Error("cannot create game", "code", code, "game", lobby.GameID, "err", err)
		lobby.Host.Send(LobbyErrorEvent{Message: "Failed to create game"})
		return
	}

	matchID := MatchID(fmt.Sprintf("match-%s-%d", code, cfg.Seed))
	match := NewOnlineMatch(matchID, code, lobby.GameID, game, lobby.Host, c.config.TickRate)
	c.matches[matchID] = match
	c.sessionMatch[hostID] = matchID

	opponent := lobby.Opponent
	lobby.Host.Send(MatchStartedEvent{
		MatchID:  matchID,
		Side:     Player1,
		Code:     code,
		Opponent: opponent,
	})
	c.logger.Info("match started", "match", matchID, "opponent", opponent)

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(match, opponent, result)
	})
}

func (c *Coordinator) handleMatchEnded(match *OnlineMatch, opponent string, result MatchResult) {
	c.mu.Lock()
	delete(c.matches, match.ID())
	delete(c.sessionMatch, match.Session().ID())
	c.mu.Unlock()

	c.logger.Info("match ended",
		"match", match.ID(),
		"reason", result.Reason,
		"winner", result.Winner,
		"score1", result.Score1,
		"score2", result.Score2,
	)

	if c.resultSaver != nil {
		winner := ""
		switch result.Winner {
		case Player1:
			winner = string(match.Session().ID())
		case Player2:
			winner = opponent
		}
		tickRate := max(1, c.config.TickRate)
		data := MatchResultData{
			MatchID:        string(match.ID()),
			GameID:         match.GameID(),
			Player1Session: string(match.Session().ID()),
			Player2Session: opponent,
			Score1:         result.Score1,
			Score2:         result.Score2,
			WinnerSession:  winner,
			EndReason:      result.Reason.String(),
			DurationSecs:   int(result.Ticks / uint64(tickRate)), //nolint:gosec // tickRate is clamped positive
		}
		if err := c.resultSaver.SaveMatchResult(data); err != nil {
			c.logger.Warn("cannot save match result", "match", match.ID(), "err", err)
		}
	}

	match.Session().Send(MatchEndedEvent{
		MatchID: match.ID(),
		Reason:  result.Reason,
		Winner:  result.Winner,
		Score1:  result.Score1,
		Score2:  result.Score2,
	})
}

// CancelLobby abandons the session's pending room.
func (c *Coordinator) CancelLobby(session SessionHandle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	code, ok := c.sessionLobby[session.ID()]
	if !ok {
		return ErrLobbyNotFound
	}
	if lobby, ok := c.lobbies[code]; ok && lobby.timer != nil {
		lobby.timer.Stop()
	}
	delete(c.lobbies, code)
	delete(c.sessionLobby, session.ID())
	c.logger.Info("lobby cancelled", "code", code, "session", session.ID())
	return nil
}

// SendInput forwards the session's input to its running match.
func (c *Coordinator) SendInput(session SessionHandle, in core.InputFrame) {
	c.mu.Lock()
	matchID, ok := c.sessionMatch[session.ID()]
	match := c.matches[matchID]
	c.mu.Unlock()

	if ok && match != nil {
		match.SendInput(in)
	}
}

// LeaveMatch forfeits the session's running match.
func (c *Coordinator) LeaveMatch(session SessionHandle) {
	c.mu.Lock()
	matchID, ok := c.sessionMatch[session.ID()]
	match := c.matches[matchID]
	c.mu.Unlock()

	if ok && match != nil {
		match.PlayerDisconnected()
	}
}

// SessionDisconnected cleans up after a session that went away.
func (c *Coordinator) SessionDisconnected(session SessionHandle) {
	_ = c.CancelLobby(session) //nolint:errcheck // not being in a lobby is fine
	c.LeaveMatch(session)
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies()
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for code, lobby := range c.lobbies {
		if lobby.Opponent == "" && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			if lobby.timer != nil {
				lobby.timer.Stop()
			}
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
			c.logger.Info("lobby expired", "code", code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode(c.config.CodeLength)
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode draws n characters from CodeAlphabet.
func generateJoinCode(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		seed := time.Now().UnixNano()
		for i := range b {
			b[i] = byte(seed >> (8 * i))
		}
	}
	for i := range b {
		b[i] = CodeAlphabet[int(b[i])%len(CodeAlphabet)]
	}
	return string(b)
}

// GetLobby returns a pending lobby by code.
func (c *Coordinator) GetLobby(code string) (*Lobby, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// LobbyCount returns the number of pending lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matches)
}
