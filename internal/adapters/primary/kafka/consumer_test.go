package kafka

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"

	"github.com/hachimada/soothsayer/internal/domain"
)

type stubSession struct {
	ctx    context.Context
	marked []*sarama.ConsumerMessage
}

func (s *stubSession) Claims() map[string][]int32 { return nil }
func (s *stubSession) MemberID() string           { return "test-member" }
func (s *stubSession) GenerationID() int32        { return 1 }
func (s *stubSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
}
func (s *stubSession) Commit() {}
func (s *stubSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
}
func (s *stubSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.marked = append(s.marked, msg)
}
func (s *stubSession) Context() context.Context { return s.ctx }

type stubClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *stubClaim) Topic() string                            { return "voice_results" }
func (c *stubClaim) Partition() int32                         { return 0 }
func (c *stubClaim) InitialOffset() int64                     { return 0 }
func (c *stubClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *stubClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

type recordingHandler struct {
	keys []string
	err  error
}

func (h *recordingHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	h.keys = append(h.keys, key)
	return h.err
}

func TestConsumeClaimStopsOnClosedChannel(t *testing.T) {
	session := &stubSession{ctx: context.Background()}
	claim := &stubClaim{messages: make(chan *sarama.ConsumerMessage)}
	close(claim.messages)

	h := &consumerGroupHandler{
		handler: &recordingHandler{},
		log:     slog.Default(),
		topic:   "voice_results",
	}

	done := make(chan error, 1)
	go func() {
		done <- h.ConsumeClaim(session, claim)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ConsumeClaim() error = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ConsumeClaim did not return after the messages channel closed")
	}
}

func TestConsumeClaimMarksHandledMessage(t *testing.T) {
	session := &stubSession{ctx: context.Background()}
	claim := &stubClaim{messages: make(chan *sarama.ConsumerMessage, 1)}
	claim.messages <- &sarama.ConsumerMessage{
		Topic: "voice_results",
		Key:   []byte("telegram:11"),
		Value: []byte(`{}`),
	}
	close(claim.messages)

	handler := &recordingHandler{}
	h := &consumerGroupHandler{
		handler: handler,
		log:     slog.Default(),
		topic:   "voice_results",
	}

	if err := h.ConsumeClaim(session, claim); err != nil {
		t.Fatalf("ConsumeClaim() error = %v", err)
	}

	if len(handler.keys) != 1 || handler.keys[0] != "telegram:11" {
		t.Errorf("handled keys = %v, want [telegram:11]", handler.keys)
	}
	if len(session.marked) != 1 {
		t.Fatalf("marked messages = %d, want 1", len(session.marked))
	}
}

func TestConsumeClaimSkipsBusinessErrorWithoutCommit(t *testing.T) {
	session := &stubSession{ctx: context.Background()}
	claim := &stubClaim{messages: make(chan *sarama.ConsumerMessage, 1)}
	claim.messages <- &sarama.ConsumerMessage{
		Topic: "voice_results",
		Key:   []byte("telegram:12"),
		Value: []byte(`{}`),
	}
	close(claim.messages)

	handler := &recordingHandler{err: domain.WrapBusinessError(errors.New("state gone"))}
	h := &consumerGroupHandler{
		handler: handler,
		log:     slog.Default(),
		topic:   "voice_results",
	}

	if err := h.ConsumeClaim(session, claim); err != nil {
		t.Fatalf("ConsumeClaim() error = %v", err)
	}

	if len(handler.keys) != 1 {
		t.Fatalf("handled keys = %v, want one attempt", handler.keys)
	}
	if len(session.marked) != 0 {
		t.Errorf("business error must not commit the offset, marked = %d", len(session.marked))
	}
}
