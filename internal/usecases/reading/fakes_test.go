package reading

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/hachimada/soothsayer/internal/adapters/secondary/storage/inmemory"
	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/ports/repository"
)

type fakeReadingRepo struct {
	states map[string]*domain.ReadingState
}

func newFakeReadingRepo() *fakeReadingRepo {
	return &fakeReadingRepo{states: make(map[string]*domain.ReadingState)}
}

func (r *fakeReadingRepo) Create(ctx context.Context, state *domain.ReadingState) error {
	key := state.Ref().String()
	if _, ok := r.states[key]; ok {
		return fmt.Errorf("state already exists: %s", key)
	}
	cp := *state
	r.states[key] = &cp
	return nil
}

func (r *fakeReadingRepo) GetByRef(ctx context.Context, ref domain.MessageRef) (*domain.ReadingState, error) {
	state, ok := r.states[ref.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, ref.String())
	}
	cp := *state
	return &cp, nil
}

func (r *fakeReadingRepo) Update(ctx context.Context, state *domain.ReadingState) error {
	key := state.Ref().String()
	if _, ok := r.states[key]; !ok {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, key)
	}
	cp := *state
	r.states[key] = &cp
	return nil
}

func (r *fakeReadingRepo) ListUnprocessed(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	var out []*domain.ReadingState
	for _, state := range r.states {
		if state.IsTarget && !state.HasResult() {
			cp := *state
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) ListPendingPlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	var out []*domain.ReadingState
	for _, state := range r.states {
		if state.HasVoice() && !state.IsPlayed {
			cp := *state
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) ListDeliverablePlayback(ctx context.Context, limit int) ([]*domain.ReadingState, error) {
	var out []*domain.ReadingState
	for _, state := range r.states {
		if state.HasVoice() && !state.IsPlayed && state.ChatID != 0 {
			cp := *state
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeReadingRepo) MarkPlayed(ctx context.Context, ref domain.MessageRef) error {
	state, ok := r.states[ref.String()]
	if !ok {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, ref.String())
	}
	state.IsPlayed = true
	return nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type sentVoice struct {
	chatID   int64
	filename string
	size     int
}

type fakeTelegram struct {
	messages []sentMessage
	voices   []sentVoice
}

func (t *fakeTelegram) SendMessage(ctx context.Context, botID domain.BotId, chatID int64, text string) error {
	t.messages = append(t.messages, sentMessage{chatID: chatID, text: text})
	return nil
}

func (t *fakeTelegram) SendVoice(ctx context.Context, botID domain.BotId, chatID int64, voice []byte, filename string) error {
	t.voices = append(t.voices, sentVoice{chatID: chatID, filename: filename, size: len(voice)})
	return nil
}

func (t *fakeTelegram) lastMessage() string {
	if len(t.messages) == 0 {
		return ""
	}
	return t.messages[len(t.messages)-1].text
}

type fakeAstrology struct {
	reading    domain.AstrologyResult
	readingErr error
	locErr     error
	calls      int
}

func (a *fakeAstrology) GetReading(ctx context.Context, info domain.BirthInfo, loc domain.Location) (domain.AstrologyResult, error) {
	a.calls++
	if a.readingErr != nil {
		return domain.AstrologyResult{}, a.readingErr
	}
	return a.reading, nil
}

func (a *fakeAstrology) ResolveLocation(ctx context.Context, birthplace string) (domain.Location, error) {
	if a.locErr != nil {
		return domain.Location{}, a.locErr
	}
	return domain.Location{Latitude: 35.68, Longitude: 139.69}, nil
}

type synthesisRequest struct {
	ref    domain.MessageRef
	chatID int64
	text   string
}

type fakeVoiceProducer struct {
	requests []synthesisRequest
}

func (p *fakeVoiceProducer) SendSynthesisRequest(ctx context.Context, ref domain.MessageRef, chatID int64, text string) error {
	p.requests = append(p.requests, synthesisRequest{ref: ref, chatID: chatID, text: text})
	return nil
}

func (p *fakeVoiceProducer) Close() error { return nil }

type fakeVoiceStorage struct {
	files map[string][]byte
}

func (s *fakeVoiceStorage) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	data, ok := s.files[filePath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return data, nil
}

func (s *fakeVoiceStorage) GetPresignedURL(ctx context.Context, filePath string, expires time.Duration) (string, error) {
	return "", fmt.Errorf("not implemented")
}

type fixture struct {
	svc      *Service
	repo     *fakeReadingRepo
	telegram *fakeTelegram
	astro    *fakeAstrology
	producer *fakeVoiceProducer
	storage  *fakeVoiceStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeReadingRepo()
	telegram := &fakeTelegram{}
	astro := &fakeAstrology{
		reading: domain.AstrologyResult{Value: "звёзды к тебе благосклонны", IsOK: true},
	}
	producer := &fakeVoiceProducer{}
	storage := &fakeVoiceStorage{files: make(map[string][]byte)}

	svc := New(
		repo,
		inmemory.New(),
		telegram,
		astro,
		producer,
		storage,
		domain.BotId("test-bot"),
		slog.Default(),
	)

	return &fixture{
		svc:      svc,
		repo:     repo,
		telegram: telegram,
		astro:    astro,
		producer: producer,
		storage:  storage,
	}
}
