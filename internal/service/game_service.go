package service

import (
	"context"
	"strconv"

	"one-editor-be/internal/dto"
	"one-editor-be/pkg/localstore"
)

// IGameService keeps the arcade high score for a device. The stored
// value only ever goes up; submitting a lower score is a no-op.
type IGameService interface {
	HighScore(ctx context.Context, deviceId string) (*dto.HighScoreResponse, error)
	SubmitScore(ctx context.Context, deviceId string, req *dto.SubmitScoreRequest) (*dto.HighScoreResponse, error)
}

type gameService struct {
	localStore localstore.Store
}

func NewGameService(localStore localstore.Store) IGameService {
	return &gameService{localStore: localStore}
}

func (s *gameService) HighScore(ctx context.Context, deviceId string) (*dto.HighScoreResponse, error) {
	score := 0
	raw, ok, err := s.localStore.Get(ctx, deviceId, localstore.KeyHighScore)
	if err != nil {
		return nil, err
	}
	if ok {
		if stored, perr := strconv.Atoi(raw); perr == nil {
			score = stored
		}
	}
	return &dto.HighScoreResponse{HighScore: score}, nil
}

func (s *gameService) SubmitScore(ctx context.Context, deviceId string, req *dto.SubmitScoreRequest) (*dto.HighScoreResponse, error) {
	current, err := s.HighScore(ctx, deviceId)
	if err != nil {
		return nil, err
	}
	if req.Score <= current.HighScore {
		return current, nil
	}
	if err := s.localStore.Set(ctx, deviceId, localstore.KeyHighScore, strconv.Itoa(req.Score)); err != nil {
		return nil, err
	}
	return &dto.HighScoreResponse{HighScore: req.Score}, nil
}
