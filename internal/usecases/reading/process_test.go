package reading

import (
	"context"
	"errors"
	"testing"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/usecases/reading/texts"
)

func satisfiedState(ref domain.MessageRef, chatID int64) *domain.ReadingState {
	state := domain.InitialReadingState(ref, true)
	state.ChatID = chatID
	state.RequiredInfo = domain.BirthInfo{
		Name:       "Алиса",
		Birthday:   "1999/07/25",
		BirthTime:  "12:30",
		Birthplace: "Tokyo",
		Worries:    "работа",
	}
	return state
}

func TestProcessReadingHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "7"}
	state := satisfiedState(ref, 100)
	if err := f.repo.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.ProcessReading(ctx, state); err != nil {
		t.Fatalf("ProcessReading: %v", err)
	}

	saved, err := f.repo.GetByRef(ctx, ref)
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}
	if saved.Result != f.astro.reading.Value {
		t.Errorf("Result = %q, want %q", saved.Result, f.astro.reading.Value)
	}
	if len(f.producer.requests) != 1 {
		t.Fatalf("synthesis requests = %d, want 1", len(f.producer.requests))
	}
	if f.producer.requests[0].text != f.astro.reading.Value {
		t.Errorf("synthesis text = %q, want reading text", f.producer.requests[0].text)
	}
	if len(f.telegram.messages) == 0 {
		t.Fatal("reading text must be delivered to the chat")
	}
}

func TestProcessReadingNotSatisfied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "8"}
	state := domain.InitialReadingState(ref, true)
	if err := f.repo.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.ProcessReading(ctx, state); err == nil {
		t.Fatal("ProcessReading must fail on unsatisfied state")
	}
	if f.astro.calls != 0 {
		t.Errorf("astro engine called %d times for unsatisfied state", f.astro.calls)
	}
}

func TestProcessReadingIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "9"}
	state := satisfiedState(ref, 100)
	state.Result = "уже посчитано"
	if err := f.repo.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.ProcessReading(ctx, state); err != nil {
		t.Fatalf("ProcessReading: %v", err)
	}
	if f.astro.calls != 0 {
		t.Errorf("astro engine called %d times for processed state", f.astro.calls)
	}
	if len(f.producer.requests) != 0 {
		t.Errorf("synthesis requested for already processed state")
	}
}

func TestProcessReadingFallbackOnEngineError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.astro.readingErr = errors.New("engine down")

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "10"}
	state := satisfiedState(ref, 100)
	if err := f.repo.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.ProcessReading(ctx, state); err != nil {
		t.Fatalf("ProcessReading: %v", err)
	}

	saved, _ := f.repo.GetByRef(ctx, ref)
	if saved.Result != texts.ReadingFallback {
		t.Errorf("Result = %q, want fallback text", saved.Result)
	}
	// фолбэк не озвучивается
	if len(f.producer.requests) != 0 {
		t.Errorf("fallback text must not be sent to synthesis")
	}
}

func TestApplyVoiceResultPlaysReading(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "11"}
	state := satisfiedState(ref, 100)
	state.Result = "текст гадания"
	if err := f.repo.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.storage.files["voices/11.ogg"] = []byte("OggS...")

	if err := f.svc.ApplyVoiceResult(ctx, ref, 100, "voices/11.ogg"); err != nil {
		t.Fatalf("ApplyVoiceResult: %v", err)
	}

	saved, _ := f.repo.GetByRef(ctx, ref)
	if saved.ResultVoicePath != "voices/11.ogg" {
		t.Errorf("ResultVoicePath = %q, want voices/11.ogg", saved.ResultVoicePath)
	}
	if !saved.IsPlayed {
		t.Error("state must be marked played after successful delivery")
	}
	if len(f.telegram.voices) != 1 {
		t.Fatalf("voices sent = %d, want 1", len(f.telegram.voices))
	}
	if f.telegram.voices[0].filename != "11.ogg" {
		t.Errorf("voice filename = %q, want 11.ogg", f.telegram.voices[0].filename)
	}
}

func TestApplyVoiceResultMissingFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "12"}
	state := satisfiedState(ref, 100)
	state.Result = "текст гадания"
	if err := f.repo.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// файла в хранилище нет - путь сохраняется, но state остаётся pending
	if err := f.svc.ApplyVoiceResult(ctx, ref, 100, "voices/missing.ogg"); err != nil {
		t.Fatalf("ApplyVoiceResult: %v", err)
	}

	saved, _ := f.repo.GetByRef(ctx, ref)
	if saved.ResultVoicePath != "voices/missing.ogg" {
		t.Errorf("ResultVoicePath = %q, want recorded path", saved.ResultVoicePath)
	}
	if saved.IsPlayed {
		t.Error("undelivered state must not be marked played")
	}

	pending, err := f.svc.PendingPlayback(ctx, 10)
	if err != nil {
		t.Fatalf("PendingPlayback: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending playback = %d, want 1", len(pending))
	}
}

func TestDeliverablePlaybackSkipsChatless(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// состояние без чата: голос есть, но доставлять некуда
	chatless := satisfiedState(domain.MessageRef{Platform: domain.PlatformTelegram, ID: "14"}, 0)
	chatless.Result = "текст"
	chatless.ResultVoicePath = "voices/14.ogg"
	if err := f.repo.Create(ctx, chatless); err != nil {
		t.Fatalf("Create: %v", err)
	}

	withChat := satisfiedState(domain.MessageRef{Platform: domain.PlatformTelegram, ID: "15"}, 100)
	withChat.Result = "текст"
	withChat.ResultVoicePath = "voices/15.ogg"
	if err := f.repo.Create(ctx, withChat); err != nil {
		t.Fatalf("Create: %v", err)
	}

	deliverable, err := f.svc.DeliverablePlayback(ctx, 10)
	if err != nil {
		t.Fatalf("DeliverablePlayback: %v", err)
	}
	if len(deliverable) != 1 {
		t.Fatalf("deliverable playback = %d, want 1", len(deliverable))
	}
	if deliverable[0].ChatID != 100 {
		t.Errorf("deliverable chat = %d, want 100", deliverable[0].ChatID)
	}

	// ручка pending по-прежнему видит оба
	pending, err := f.svc.PendingPlayback(ctx, 10)
	if err != nil {
		t.Fatalf("PendingPlayback: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending playback = %d, want 2", len(pending))
	}
}

func TestMarkPlayed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "13"}
	state := satisfiedState(ref, 100)
	state.Result = "текст"
	state.ResultVoicePath = "voices/13.ogg"
	if err := f.repo.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.MarkPlayed(ctx, ref); err != nil {
		t.Fatalf("MarkPlayed: %v", err)
	}

	saved, _ := f.repo.GetByRef(ctx, ref)
	if !saved.IsPlayed {
		t.Error("state must be played after MarkPlayed")
	}

	pending, _ := f.svc.PendingPlayback(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("pending playback = %d, want 0", len(pending))
	}
}
