package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)

	Analyze(w http.ResponseWriter, r *http.Request)
}

type gameService interface {
	CreateGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
	MakeTurn(ctx context.Context, id string, action *entity.Action) (*entity.Game, error)
}

type searcher interface {
	BestMove(board entity.Board) (*entity.Action, error)
	Evaluate(board entity.Board) ([]minimax.ScoredAction, error)
}

type handlers struct {
	logger      *slog.Logger
	gameService gameService
	searcher    searcher
}

func NewHandlers(logger *slog.Logger, gameService gameService, searcher searcher) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameService: gameService,
		searcher:    searcher,
	}
}

type createGameRequest struct {
	Mark entity.Mark `json:"mark"`
}

type turnRequest struct {
	Action *entity.Action `json:"action"`
}

type analyzeRequest struct {
	Board [][]entity.Mark `json:"board"`
}

type analyzeResponse struct {
	Player   entity.Mark            `json:"player"`
	Terminal bool                   `json:"terminal"`
	Winner   entity.Mark            `json:"winner,omitempty"`
	Utility  int                    `json:"utility"`
	Move     *entity.Action         `json:"move,omitempty"`
	Actions  []minimax.ScoredAction `json:"actions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.gameService.CreateGame(r.Context(), req.Mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.gameService.MakeTurn(r.Context(), chi.URLParam(r, "id"), req.Action)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

// Analyze - runs the engine on a board sent by the client, without storing anything.
func (that *handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	board, err := entity.FromRows(req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	move, err := that.searcher.BestMove(board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	scored, err := that.searcher.Evaluate(board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analyzeResponse{
		Player:   tictactoe.CurrentPlayer(board),
		Terminal: tictactoe.IsTerminal(board),
		Winner:   tictactoe.Winner(board),
		Utility:  tictactoe.Utility(board),
		Move:     move,
		Actions:  scored,
	})
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrMissingAction),
		errors.Is(err, apperror.ErrMalformedBoard):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrGameNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, repository.ErrGameConflict):
		status = http.StatusConflict
	default:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
