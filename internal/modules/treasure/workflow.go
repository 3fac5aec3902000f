// Package treasure chains puzzle generation, illustration and IPFS upload
// into one treasure map, and issues answer commitments for it.
package treasure

import (
	"context"

	"github.com/cryptohunter/core/internal/modules/puzzle"
	"github.com/cryptohunter/core/internal/modules/storage/ipfs"
	"go.uber.org/zap"
)

const (
	StepGeneratePuzzle = "generate puzzle"
	StepGenerateImage  = "generate image"
	StepUploadMetadata = "upload metadata"

	// Only the opening of the story is used as the illustration brief.
	imageDescriptionRunes = 500
)

// PuzzleGenerator is satisfied by *puzzle.Service.
type PuzzleGenerator interface {
	GeneratePuzzle(ctx context.Context, req puzzle.GenerationRequest) (*puzzle.Record, error)
	GenerateImage(ctx context.Context, description, style string) (string, error)
}

// MetadataUploader is satisfied by *ipfs.Service.
type MetadataUploader interface {
	UploadJSON(ctx context.Context, content interface{}, filename string) (ipfs.Reference, error)
	GatewayURL(uri string) string
}

// StepError names the workflow step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }

func (e *StepError) Unwrap() error { return e.Err }

// Metadata is the public document pinned for a map. It carries no answer.
type Metadata struct {
	Story      string   `json:"story"`
	Question   string   `json:"question"`
	Hints      []string `json:"hints"`
	ImageURL   string   `json:"image_url"`
	Difficulty string   `json:"difficulty"`
}

// Map is the result of a completed workflow.
type Map struct {
	Puzzle          *puzzle.Record `json:"puzzle"`
	IPFSURI         string         `json:"ipfs_uri"`
	AnswerHashInput string         `json:"answer_hash_input"`
	StorageProvider string         `json:"storage_provider"`
	GatewayURL      string         `json:"gateway_url"`
}

type Service struct {
	puzzles  PuzzleGenerator
	uploader MetadataUploader
	logger   *zap.Logger
}

func NewService(puzzles PuzzleGenerator, uploader MetadataUploader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{puzzles: puzzles, uploader: uploader, logger: logger}
}

// CreateTreasureMap runs the steps in order and stops at the first failure.
func (s *Service) CreateTreasureMap(ctx context.Context, req puzzle.GenerationRequest) (*Map, error) {
	req = req.WithDefaults()

	record, err := s.puzzles.GeneratePuzzle(ctx, req)
	if err != nil {
		return nil, s.fail(StepGeneratePuzzle, err)
	}

	imageURL, err := s.puzzles.GenerateImage(ctx, firstRunes(record.Story, imageDescriptionRunes), puzzle.DefaultImageStyle)
	if err != nil {
		return nil, s.fail(StepGenerateImage, err)
	}
	record.ImageURL = imageURL

	metadata := Metadata{
		Story:      record.Story,
		Question:   record.Question,
		Hints:      record.Hints,
		ImageURL:   imageURL,
		Difficulty: req.Difficulty,
	}
	ref, err := s.uploader.UploadJSON(ctx, metadata, ipfs.DefaultJSONFilename)
	if err != nil {
		return nil, s.fail(StepUploadMetadata, err)
	}
	if ref.IsMock() {
		s.logger.Warn("treasure map metadata was not pinned", zap.String("uri", ref.URI))
	}

	return &Map{
		Puzzle:          record,
		IPFSURI:         ref.URI,
		AnswerHashInput: record.Answer,
		StorageProvider: ref.Provider,
		GatewayURL:      s.uploader.GatewayURL(ref.URI),
	}, nil
}

func (s *Service) fail(step string, err error) error {
	s.logger.Error("treasure map workflow failed", zap.String("step", step), zap.Error(err))
	return &StepError{Step: step, Err: err}
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
