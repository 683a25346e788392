package reading

import (
	"context"
	"testing"

	"github.com/hachimada/soothsayer/internal/domain"
	"github.com/hachimada/soothsayer/internal/usecases/reading/texts"
)

func testChat() *domain.Chat {
	return &domain.Chat{ID: 100, Type: "private"}
}

func TestHandleReadingOpensIntake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.HandleCommand(ctx, f.svc.BotID, testChat(), "reading", 42); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "42"}
	state, err := f.repo.GetByRef(ctx, ref)
	if err != nil {
		t.Fatalf("state was not created: %v", err)
	}
	if !state.IsTarget {
		t.Error("opened state must be a target")
	}
	if state.ChatID != 100 {
		t.Errorf("ChatID = %d, want 100", state.ChatID)
	}
	if state.RequiredInfo.SatisfiedAll() {
		t.Error("fresh state must not be satisfied")
	}
	if got := f.telegram.lastMessage(); got != texts.AskName {
		t.Errorf("first question = %q, want %q", got, texts.AskName)
	}
}

func TestHandleTextWithoutSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.HandleText(ctx, f.svc.BotID, testChat(), "Алиса", 43); err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if got := f.telegram.lastMessage(); got != texts.NoActiveReading {
		t.Errorf("got %q, want no-active-reading prompt", got)
	}
}

func TestIntakeFullWalk(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chat := testChat()

	if err := f.svc.HandleCommand(ctx, f.svc.BotID, chat, "reading", 42); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}

	answers := []struct {
		text     string
		wantNext string
	}{
		{"Алиса", texts.AskBirthday},
		{"1999/07/25", texts.AskBirthTime},
		{"12:30", texts.AskBirthplace},
		{"Tokyo", texts.AskWorries},
	}
	for _, a := range answers {
		if err := f.svc.HandleText(ctx, f.svc.BotID, chat, a.text, 43); err != nil {
			t.Fatalf("HandleText(%q): %v", a.text, err)
		}
		if got := f.telegram.lastMessage(); got != a.wantNext {
			t.Errorf("after %q next question = %q, want %q", a.text, got, a.wantNext)
		}
	}

	// последний ответ закрывает анкету и запускает пайплайн
	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "как дела на работе", 44); err != nil {
		t.Fatalf("HandleText(worries): %v", err)
	}

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "42"}
	state, err := f.repo.GetByRef(ctx, ref)
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}

	if !state.RequiredInfo.SatisfiedAll() {
		t.Error("state must be satisfied after full walk")
	}
	if state.Result == "" {
		t.Error("result must be computed after intake finishes")
	}
	if len(f.producer.requests) != 1 {
		t.Fatalf("synthesis requests = %d, want 1", len(f.producer.requests))
	}
	if f.producer.requests[0].ref != ref {
		t.Errorf("synthesis request ref = %v, want %v", f.producer.requests[0].ref, ref)
	}

	// сессия закрыта - следующий текст без /reading не принимается
	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "ещё вопрос", 45); err != nil {
		t.Fatalf("HandleText after finish: %v", err)
	}
	if got := f.telegram.lastMessage(); got != texts.NoActiveReading {
		t.Errorf("got %q, want no-active-reading prompt", got)
	}
}

func TestIntakeRepromptsOnBadDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chat := testChat()

	if err := f.svc.HandleCommand(ctx, f.svc.BotID, chat, "reading", 42); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "Алиса", 43); err != nil {
		t.Fatalf("HandleText(name): %v", err)
	}

	for _, bad := range []string{"1999-07-25", "1999/7/25", "2023/02/30", "вчера"} {
		if err := f.svc.HandleText(ctx, f.svc.BotID, chat, bad, 44); err != nil {
			t.Fatalf("HandleText(%q): %v", bad, err)
		}
		if got := f.telegram.lastMessage(); got != texts.BadBirthday {
			t.Errorf("after %q got %q, want reprompt", bad, got)
		}
	}

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "42"}
	state, err := f.repo.GetByRef(ctx, ref)
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}
	if state.RequiredInfo.Birthday != "" {
		t.Errorf("birthday must stay empty after rejected answers, got %q", state.RequiredInfo.Birthday)
	}

	// валидный ответ после отказов проходит
	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "2000/02/29", 45); err != nil {
		t.Fatalf("HandleText(valid): %v", err)
	}
	state, _ = f.repo.GetByRef(ctx, ref)
	if state.RequiredInfo.Birthday != "2000/02/29" {
		t.Errorf("birthday = %q, want 2000/02/29", state.RequiredInfo.Birthday)
	}
}

func TestIntakeRepromptsOnBadTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chat := testChat()

	if err := f.svc.HandleCommand(ctx, f.svc.BotID, chat, "reading", 42); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	for _, text := range []string{"Алиса", "1999/07/25"} {
		if err := f.svc.HandleText(ctx, f.svc.BotID, chat, text, 43); err != nil {
			t.Fatalf("HandleText(%q): %v", text, err)
		}
	}

	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "24:00", 44); err != nil {
		t.Fatalf("HandleText(24:00): %v", err)
	}
	if got := f.telegram.lastMessage(); got != texts.BadBirthTime {
		t.Errorf("got %q, want time reprompt", got)
	}
}

func TestIntakeSkipSupplementsDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chat := testChat()

	if err := f.svc.HandleCommand(ctx, f.svc.BotID, chat, "reading", 42); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}

	// пока нет имени и даты, skip отклоняется
	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "skip", 43); err != nil {
		t.Fatalf("HandleText(skip): %v", err)
	}
	if got := f.telegram.lastMessage(); got != texts.SkipNotAllowedYet {
		t.Errorf("got %q, want skip-not-allowed", got)
	}

	for _, text := range []string{"Алиса", "1999/07/25"} {
		if err := f.svc.HandleText(ctx, f.svc.BotID, chat, text, 44); err != nil {
			t.Fatalf("HandleText(%q): %v", text, err)
		}
	}

	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "skip", 45); err != nil {
		t.Fatalf("HandleText(skip): %v", err)
	}

	ref := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "42"}
	state, err := f.repo.GetByRef(ctx, ref)
	if err != nil {
		t.Fatalf("GetByRef: %v", err)
	}

	if state.RequiredInfo.BirthTime != domain.DefaultBirthTime {
		t.Errorf("birth_time = %q, want default %q", state.RequiredInfo.BirthTime, domain.DefaultBirthTime)
	}
	if state.RequiredInfo.Birthplace != domain.DefaultBirthplace {
		t.Errorf("birthplace = %q, want default %q", state.RequiredInfo.Birthplace, domain.DefaultBirthplace)
	}
	if state.RequiredInfo.Worries != "" {
		t.Errorf("worries = %q, want empty", state.RequiredInfo.Worries)
	}
	if !state.RequiredInfo.SatisfiedAll() {
		t.Error("supplemented state must be satisfied")
	}
	if state.Result == "" {
		t.Error("result must be computed after skip finishes intake")
	}
}

func TestHandleReadingTwiceContinuesIntake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chat := testChat()

	if err := f.svc.HandleCommand(ctx, f.svc.BotID, chat, "reading", 42); err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	if err := f.svc.HandleText(ctx, f.svc.BotID, chat, "Алиса", 43); err != nil {
		t.Fatalf("HandleText(name): %v", err)
	}

	// повторный /reading не затирает открытую анкету
	if err := f.svc.HandleCommand(ctx, f.svc.BotID, chat, "reading", 50); err != nil {
		t.Fatalf("HandleCommand(second): %v", err)
	}

	newRef := domain.MessageRef{Platform: domain.PlatformTelegram, ID: "50"}
	if _, err := f.repo.GetByRef(ctx, newRef); err == nil {
		t.Error("second /reading must not create a new state while intake is open")
	}
	if got := f.telegram.lastMessage(); got != texts.ReadingAlreadyOpen+texts.AskBirthday {
		t.Errorf("got %q, want already-open prompt with current question", got)
	}
}
