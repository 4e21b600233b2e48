package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-advisor/internal/entity"
)

type advisorUseCase interface {
	RandomMove(ctx context.Context, cells []*string) (*entity.Recommendation, error)
	OptimalMove(ctx context.Context, cells []*string) (*entity.Recommendation, error)
}

// BoardState - request body shared by both move endpoints.
type BoardState struct {
	State []*string `json:"state" validate:"required,len=9,dive,omitnil,oneof=X O"`
}

// RandomMoveResponse - ai_move is null when the board has no empty cell.
type RandomMoveResponse struct {
	AIMove *int `json:"ai_move"`
}

type OptimalMoveResponse struct {
	AIMove *int             `json:"ai_move"`
	Player entity.Mark      `json:"player"`
	Value  entity.GameValue `json:"value"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type moveHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	advisor  advisorUseCase
}

func newMoveHandler(logger *slog.Logger, advisor advisorUseCase) *moveHandler {
	return &moveHandler{
		logger:   logger.With("component", "rest"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		advisor:  advisor,
	}
}

func (that *moveHandler) RandomMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "RandomMove", "request_id", requestID(r.Context()))

	body, ok := that.decodeBoard(w, r, log)
	if !ok {
		return
	}

	rec, err := that.advisor.RandomMove(r.Context(), body.State)
	if err != nil {
		that.writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, RandomMoveResponse{AIMove: moveOrNull(rec)})
}

func (that *moveHandler) OptimalMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "OptimalMove", "request_id", requestID(r.Context()))

	body, ok := that.decodeBoard(w, r, log)
	if !ok {
		return
	}

	rec, err := that.advisor.OptimalMove(r.Context(), body.State)
	if err != nil {
		that.writeError(w, log, err)
		return
	}

	writeJSON(w, log, http.StatusOK, OptimalMoveResponse{
		AIMove: moveOrNull(rec),
		Player: rec.Player,
		Value:  rec.Value,
	})
}

// decodeBoard - writes the error response itself and reports false when the body is unusable.
func (that *moveHandler) decodeBoard(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*BoardState, bool) {
	var body BoardState
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Info("failed to decode request body", "error", err)
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Detail: "malformed request body"})
		return nil, false
	}

	if err := that.validate.Struct(&body); err != nil {
		log.Info("request body failed validation", "error", err)
		writeJSON(w, log, http.StatusUnprocessableEntity, errorResponse{Detail: "board state must have exactly 9 elements of \"X\", \"O\" or null"})
		return nil, false
	}

	return &body, true
}

func (that *moveHandler) writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	if errors.Is(err, apperror.ErrInvalidBoard) {
		writeJSON(w, log, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	log.Error("failed to recommend move", "error", err)
	writeJSON(w, log, http.StatusInternalServerError, errorResponse{Detail: "Internal Server Error"})
}

func moveOrNull(rec *entity.Recommendation) *int {
	if !rec.HasMove() {
		return nil
	}

	move := rec.Move
	return &move
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
