package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ExistsMessage(ctx context.Context, messageID uuid.UUID) (bool, error) {
	query := `
SELECT 1
FROM kafka_events
WHERE message_id = $1
LIMIT 1;
`
	row := r.pool.QueryRow(ctx, query, messageID)

	var x int
	err := row.Scan(&x)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("row.Scan: %w", err)
	}

	return true, nil
}

func (r *Repository) InsertEvent(ctx context.Context, event dto.KafkaEvent) error {
	query := `
INSERT INTO kafka_events
	(message_id, topic, msg_key, partition, "offset", payload, received_at)
VALUES
	($1, $2, $3, $4, $5, $6::jsonb, NOW());
`
	_, err := r.pool.Exec(ctx, query,
		event.MessageID, event.Topic, event.Key, event.Partition, event.Offset, string(event.Payload),
	)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (r *Repository) InsertDLQ(ctx context.Context, dlq dto.KafkaDLQ) error {
	query := `
INSERT INTO kafka_dlq
	(topic, msg_key, payload, error, received_at)
VALUES
	($1, $2, $3, $4, NOW());
`
	_, err := r.pool.Exec(ctx, query, dlq.Topic, dlq.Key, dlq.Payload, dlq.Error)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]dto.KafkaEvent, error) {
	query := `
SELECT id, message_id, topic, coalesce(msg_key, ''), partition, "offset", payload::text, to_char(received_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
FROM kafka_events
ORDER BY id DESC
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	out := make([]dto.KafkaEvent, 0)
	for rows.Next() {
		var (
			kafkaEvent dto.KafkaEvent
			payload    string
		)

		err = rows.Scan(&kafkaEvent.ID, &kafkaEvent.MessageID, &kafkaEvent.Topic, &kafkaEvent.Key,
			&kafkaEvent.Partition, &kafkaEvent.Offset, &payload, &kafkaEvent.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		kafkaEvent.Payload = []byte(payload)
		out = append(out, kafkaEvent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func (r *Repository) ListDLQ(ctx context.Context) ([]dto.KafkaDLQ, error) {
	query := `
select id, topic, coalesce(msg_key, ''), coalesce(payload, ''), error, to_char(received_at, 'YYYY-MM-DD"T"HH24:MI:SSOF')
from kafka_dlq
order by id desc
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	out := make([]dto.KafkaDLQ, 0)
	for rows.Next() {
		var kafkaDLQ dto.KafkaDLQ

		err = rows.Scan(&kafkaDLQ.ID, &kafkaDLQ.Topic, &kafkaDLQ.Key, &kafkaDLQ.Payload, &kafkaDLQ.Error, &kafkaDLQ.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		out = append(out, kafkaDLQ)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}
