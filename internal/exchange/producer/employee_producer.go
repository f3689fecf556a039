package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

type EmployeeProducer struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	log    zerolog.Logger
	now    func() time.Time
}

type Config struct {
	Topic  string
	Source string
}

func NewEmployeeProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *EmployeeProducer {
	return &EmployeeProducer{
		sp:     sp,
		topic:  cfg.Topic,
		source: cfg.Source,
		log:    log.With().Str("component", "EmployeeProducer").Logger(),
		now:    time.Now,
	}
}

// NewSyncProducer builds an idempotent sarama producer that waits for all replicas.
func NewSyncProducer(bootstrap []string, clientID string) (sarama.SyncProducer, error) {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	if clientID != "" {
		sCfg.ClientID = clientID
	}
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	return sarama.NewSyncProducer(bootstrap, sCfg)
}

func (p *EmployeeProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

func (p *EmployeeProducer) ProduceCreated(ctx context.Context, v dto.EmployeeView) error {
	return p.produceView(ctx, KindCreated, v)
}

func (p *EmployeeProducer) ProduceUpdated(ctx context.Context, v dto.EmployeeView) error {
	return p.produceView(ctx, KindUpdated, v)
}

func (p *EmployeeProducer) ProduceDeleted(ctx context.Context, id int64) error {
	env := Envelope[DeletedPayload]{
		Kind:       KindDeleted,
		MessageID:  uuid.New(),
		EmployeeID: id,
		Payload:    DeletedPayload{ID: id},
		Timestamp:  p.now().UTC(),
		Source:     p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", KindDeleted, err)
	}

	return p.send(ctx, strconv.FormatInt(id, 10), body, KindDeleted)
}

func (p *EmployeeProducer) produceView(ctx context.Context, kind string, v dto.EmployeeView) error {
	var id int64
	if v.ID != nil {
		id = *v.ID
	}

	env := Envelope[EmployeePayload]{
		Kind:       kind,
		MessageID:  uuid.New(),
		EmployeeID: id,
		Payload:    v,
		Timestamp:  p.now().UTC(),
		Source:     p.source,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", kind, err)
	}

	return p.send(ctx, strconv.FormatInt(id, 10), body, kind)
}

func (p *EmployeeProducer) send(ctx context.Context, key string, value []byte, kind string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send kafka message: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-kind"), Value: []byte(kind)},
			{Key: []byte("source"), Value: []byte(p.source)},
			{Key: []byte("content-type"), Value: []byte("application/json")},
		},
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", p.topic).
			Str("key", key).
			Str("kind", kind).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", p.topic).
		Str("key", key).
		Str("kind", kind).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}
