package status

import "strings"

// Backend vocabulary. This is the canonical set persisted in the orders
// table and accepted by the status-update endpoints.
const (
	Draft      = "draft"
	Pending    = "pending"
	Preparing  = "preparing"
	Mounting   = "mounting"
	Delivering = "delivering"
	Finished   = "finished"
	Cancelled  = "cancelled"
	Canceled   = "canceled" // legacy spelling kept as a synonym of Cancelled
)

// Board vocabulary, as shown on the order board columns.
const (
	BoardReceived  = "recebido"
	BoardPreparing = "preparo"
	BoardReady     = "pronto"
	BoardOnTheWay  = "caminho"
	BoardFinished  = "finalizado"
	BoardCancelled = "cancelado"
)

var allowed = map[string]bool{
	Draft:      true,
	Pending:    true,
	Preparing:  true,
	Mounting:   true,
	Delivering: true,
	Finished:   true,
	Cancelled:  true,
	Canceled:   true,
}

// IsAllowed reports whether s is a persistable backend status.
func IsAllowed(s string) bool { return allowed[s] }

var boardToBackend = map[string]string{
	BoardReceived:  Pending,
	BoardPreparing: Preparing,
	BoardReady:     Mounting,
	BoardOnTheWay:  Delivering,
	BoardFinished:  Finished,
	BoardCancelled: Cancelled,
}

var backendToBoard = map[string]string{
	Pending:    BoardReceived,
	Preparing:  BoardPreparing,
	Mounting:   BoardReady,
	Delivering: BoardOnTheWay,
	Finished:   BoardFinished,
	Cancelled:  BoardCancelled,
	Canceled:   BoardCancelled,
}

// ToBackend translates a board status token into the backend vocabulary.
// Tokens already in backend form pass through unchanged; anything unknown
// falls back to Pending.
func ToBackend(token string) string {
	if allowed[token] {
		return token
	}
	if b, ok := boardToBackend[token]; ok {
		return b
	}
	return Pending
}

// ToBoard translates a backend status token into the board vocabulary.
// Unknown tokens mentioning a cancellation land on the cancelled column,
// everything else on the first one.
func ToBoard(token string) string {
	if f, ok := backendToBoard[token]; ok {
		return f
	}
	if strings.Contains(token, "cancel") {
		return BoardCancelled
	}
	return BoardReceived
}

// boardFlow is the forward chain driven by the board's advance action.
var boardFlow = []string{BoardReceived, BoardPreparing, BoardReady, BoardOnTheWay, BoardFinished}

// IsTerminal reports whether a board status offers no further actions.
func IsTerminal(board string) bool {
	return board == BoardFinished || board == BoardCancelled
}

// Advance returns the next board status along the flow. It returns false
// when the status is terminal; anything past the defined chain clamps at
// the finished column.
func Advance(board string) (string, bool) {
	if IsTerminal(board) {
		return board, false
	}
	for i, s := range boardFlow {
		if s == board {
			if i+1 >= len(boardFlow) {
				return BoardFinished, true
			}
			return boardFlow[i+1], true
		}
	}
	return BoardFinished, true
}

// Regress returns the previous board status along the flow. It returns
// false from the first column and from terminal statuses.
func Regress(board string) (string, bool) {
	if IsTerminal(board) {
		return board, false
	}
	for i, s := range boardFlow {
		if s == board {
			if i == 0 {
				return board, false
			}
			return boardFlow[i-1], true
		}
	}
	return board, false
}

// CanCancel reports whether the cancel side-exit is available.
func CanCancel(board string) bool { return !IsTerminal(board) }
