package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/roomchess-backend/internal/chess"
	"github.com/benbeisheim/roomchess-backend/internal/setup"
	"github.com/benbeisheim/roomchess-backend/internal/ws"
	"github.com/rs/zerolog"
)

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusPlaying   Status = "playing"
	StatusOver      Status = "over"
	StatusAbandoned Status = "abandoned"
)

// The Room owns one position and relays everything that happens to it
// between its two players. It is the only place turns are advanced.
type Room struct {
	ID        int
	mu        sync.Mutex
	status    Status
	white     *Player
	black     *Player
	validator *chess.Validator
	winner    chess.Color
	lastMove  *SimpleMove
	store     SnapshotStore
	log       zerolog.Logger
}

type RoomState struct {
	RoomID   int            `json:"roomId"`
	Status   Status         `json:"status"`
	Players  []ClientPlayer `json:"players"`
	Encoding string         `json:"encoding"`
	Turn     chess.Color    `json:"turn"`
	Winner   chess.Color    `json:"winner,omitempty"`
	LastMove *SimpleMove    `json:"lastMove"`
	Tally    *Tally         `json:"tally,omitempty"`
}

// NewRoom returns an empty room. store may be nil.
func NewRoom(id int, store SnapshotStore, log zerolog.Logger) *Room {
	return &Room{
		ID:        id,
		status:    StatusWaiting,
		validator: chess.NewEmptyValidator(),
		store:     store,
		log:       log.With().Int("room", id).Logger(),
	}
}

// Join seats a player. The first player plays white, the second black;
// the game starts as soon as both seats are taken.
func (r *Room) Join(p Player) (chess.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.player(p.ID) != nil {
		return "", ErrAlreadyJoined
	}
	if r.white != nil && r.black != nil {
		if p.Conn != nil {
			r.send(&p, ws.MessageTypeFull, RoomEvent{RoomID: r.ID})
		}
		return "", ErrRoomFull
	}
	if err := setup.Validate(p.Arrangement); err != nil {
		return "", err
	}

	seat := &p
	if r.white == nil {
		p.Color = chess.White
		r.white = seat
	} else {
		p.Color = chess.Black
		r.black = seat
	}
	r.log.Info().Str("player", p.ID).Str("color", string(p.Color)).Msg("player joined")

	r.send(seat, ws.MessageTypePlayer, PlayerEvent{
		PlayerID: p.ID,
		Players:  r.playerCount(),
		Color:    p.Color,
		RoomID:   r.ID,
	})

	if r.white != nil && r.black != nil {
		if err := r.start(); err != nil {
			return "", err
		}
	}
	return p.Color, nil
}

func (r *Room) start() error {
	encoding, err := setup.Compose(r.white.Arrangement, r.black.Arrangement)
	if err != nil {
		return err
	}
	if err := r.validator.Load(encoding, chess.White); err != nil {
		return fmt.Errorf("load start position: %w", err)
	}
	r.status = StatusPlaying
	r.winner = ""
	r.lastMove = nil
	r.log.Info().Str("encoding", encoding).Msg("game started")

	r.broadcast(ws.MessageTypePlay, RoomEvent{RoomID: r.ID})
	r.broadcastPosition()
	r.save()
	return nil
}

// Move validates and applies a move for playerID, then hands the turn to
// the opponent.
func (r *Room) Move(playerID, from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusPlaying {
		return ErrNotPlaying
	}
	p := r.player(playerID)
	if p == nil {
		return ErrNotInRoom
	}
	if p.Color != r.validator.Turn() {
		return ErrNotYourTurn
	}
	if !r.validator.Move(from, to) {
		return fmt.Errorf("%w: %s%s", ErrIllegalMove, from, to)
	}
	r.promote(to)
	r.validator.PassTurn()
	r.lastMove = &SimpleMove{From: from, To: to}
	r.log.Debug().Str("player", playerID).Str("from", from).Str("to", to).Msg("move applied")

	if opponent := r.opponent(p); opponent != nil {
		r.send(opponent, ws.MessageTypeMove, MoveEvent{From: from, To: to, RoomID: r.ID})
	}
	r.broadcastPosition()

	if !HasKing(r.validator.Board(), p.Color.Opponent()) {
		r.status = StatusOver
		r.winner = p.Color
		r.log.Info().Str("winner", string(p.Color)).Msg("game over")
		r.broadcast(ws.MessageTypeGameOver, GameOverEvent{RoomID: r.ID, Winner: p.Color})
	}
	r.save()
	return nil
}

// promote turns a pawn that reached the far rank into a queen.
func (r *Room) promote(to string) {
	sq, err := chess.ParseSquare(to)
	if err != nil {
		return
	}
	board := r.validator.Board()
	piece := board.At(sq)
	if piece.Type != chess.Pawn {
		return
	}
	if (piece.Color == chess.White && sq.Row != 0) || (piece.Color == chess.Black && sq.Row != 7) {
		return
	}
	board.Set(sq, chess.Piece{Type: chess.Queen, Color: piece.Color})
	if err := r.validator.Load(chess.Encode(board), r.validator.Turn()); err != nil {
		r.log.Error().Err(err).Msg("promotion reload failed")
	}
}

// Moves lists the highlight targets for square. It is empty unless it is
// playerID's turn.
func (r *Room) Moves(playerID, square string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusPlaying {
		return nil, ErrNotPlaying
	}
	p := r.player(playerID)
	if p == nil {
		return nil, ErrNotInRoom
	}
	if p.Color != r.validator.Turn() {
		return []string{}, nil
	}
	moves := r.validator.Moves(square)
	if moves == nil {
		moves = []string{}
	}
	return moves, nil
}

// Leave removes playerID. As in a two-seat room nothing can continue
// without both players, the room is reset and the opponent notified.
func (r *Room) Leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.player(playerID)
	if p == nil {
		return
	}
	r.log.Info().Str("player", playerID).Msg("player left")

	if opponent := r.opponent(p); opponent != nil {
		r.send(opponent, ws.MessageTypeDisconnected, RoomEvent{RoomID: r.ID})
	}
	if r.status == StatusPlaying {
		r.status = StatusAbandoned
		r.save()
	}

	r.white = nil
	r.black = nil
	r.validator.Clear()
	r.status = StatusWaiting
	r.winner = ""
	r.lastMove = nil
}

func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := RoomState{
		RoomID:   r.ID,
		Status:   r.status,
		Players:  make([]ClientPlayer, 0, 2),
		Encoding: r.validator.Encoding(),
		Winner:   r.winner,
		LastMove: r.lastMove,
	}
	for _, p := range []*Player{r.white, r.black} {
		if p != nil {
			state.Players = append(state.Players, ClientPlayer{ID: p.ID, Color: p.Color})
		}
	}
	if r.validator.Loaded() {
		state.Turn = r.validator.Turn()
		tally := NewTally(r.validator.Board())
		state.Tally = &tally
	}
	return state
}

// PlayerCount is the number of occupied seats.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerCount()
}

func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Room) playerCount() int {
	n := 0
	if r.white != nil {
		n++
	}
	if r.black != nil {
		n++
	}
	return n
}

func (r *Room) player(playerID string) *Player {
	if r.white != nil && r.white.ID == playerID {
		return r.white
	}
	if r.black != nil && r.black.ID == playerID {
		return r.black
	}
	return nil
}

func (r *Room) opponent(p *Player) *Player {
	if p == r.white {
		return r.black
	}
	return r.white
}

func (r *Room) broadcastPosition() {
	r.broadcast(ws.MessageTypePosition, PositionEvent{
		RoomID:   r.ID,
		Encoding: r.validator.Encoding(),
		Turn:     r.validator.Turn(),
	})
	r.broadcast(ws.MessageTypePieceCount, PieceCountEvent{
		RoomID: r.ID,
		Tally:  NewTally(r.validator.Board()),
	})
}

func (r *Room) broadcast(t ws.MessageType, payload interface{}) {
	for _, p := range []*Player{r.white, r.black} {
		if p != nil {
			r.send(p, t, payload)
		}
	}
}

// send writes a message to one player. Write failures are logged and
// otherwise ignored; the read loop notices the dead connection and leaves.
func (r *Room) send(p *Player, t ws.MessageType, payload interface{}) {
	if p.Conn == nil {
		return
	}
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		r.log.Error().Err(err).Str("type", string(t)).Msg("failed to marshal message")
		return
	}
	if err := p.Conn.WriteJSON(msg); err != nil {
		r.log.Warn().Err(err).Str("player", p.ID).Str("type", string(t)).Msg("failed to send message")
	}
}

func (r *Room) save() {
	if r.store == nil {
		return
	}
	snap := Snapshot{
		RoomID:    r.ID,
		Encoding:  r.validator.Encoding(),
		Turn:      r.validator.Turn(),
		Status:    r.status,
		Winner:    r.winner,
		LastMove:  r.lastMove,
		UpdatedAt: time.Now(),
	}
	if err := r.store.Save(snap); err != nil {
		r.log.Error().Err(err).Msg("failed to save snapshot")
	}
}
