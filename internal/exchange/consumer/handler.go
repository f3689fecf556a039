package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/srimathim2003/Employee-Management/internal/dto"
)

type EventsRepository interface {
	ExistsMessage(ctx context.Context, messageID uuid.UUID) (bool, error)
	InsertEvent(ctx context.Context, ev dto.KafkaEvent) error
	InsertDLQ(ctx context.Context, dlq dto.KafkaDLQ) error
}

type EmployeeCreator interface {
	CreateEmployee(ctx context.Context, in dto.EmployeeView) (dto.EmployeeView, error)
}

type handler struct {
	events      EventsRepository
	employees   EmployeeCreator
	log         zerolog.Logger
	commitOnDLQ bool
}

func NewImportRunner(
	bootstrap []string,
	topic string,
	groupID string,
	events EventsRepository,
	employees EmployeeCreator,
	log zerolog.Logger,
) *Runner {
	h := &handler{
		events:    events,
		employees: employees,
		log:       log.With().Str("consumer", "import").Logger(),
		// a message that failed validation or hit a duplicate email fails the same way on redelivery
		commitOnDLQ: true,
	}

	return newRunner(bootstrap, groupID, topic, h, log)
}

func (h *handler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *handler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if h.process(sess.Context(), msg) {
			sess.MarkMessage(msg, "")
		}
	}
	return nil
}

// process reports whether the message offset may be committed.
func (h *handler) process(ctx context.Context, msg *sarama.ConsumerMessage) bool {
	var env Envelope[ImportPayload]
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return h.toDLQ(ctx, msg, fmt.Sprintf("invalid_json: %v", err))
	}

	if verr := validateImport(env); verr != "" {
		return h.toDLQ(ctx, msg, verr)
	}

	exists, err := h.events.ExistsMessage(ctx, env.MessageID)
	if err != nil {
		h.log.Error().Err(err).Str("message_id", env.MessageID.String()).Msg("events.ExistsMessage failed")
		return false
	}

	if exists {
		h.log.Info().
			Str("message_id", env.MessageID.String()).
			Str("email", env.Payload.Email).
			Msg("duplicate message, skip (idempotency)")
		return true
	}

	created, err := h.employees.CreateEmployee(ctx, env.Payload)
	if err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			return h.toDLQ(ctx, msg, fmt.Sprintf("employee with email %s already exists", env.Payload.Email))
		}

		return h.toDLQ(ctx, msg, fmt.Sprintf("employees.CreateEmployee: %v", err))
	}

	if err := h.events.InsertEvent(ctx, dto.KafkaEvent{
		MessageID: env.MessageID,
		Topic:     msg.Topic,
		Key:       string(msg.Key),
		Partition: int(msg.Partition),
		Offset:    msg.Offset,
		Payload:   append([]byte(nil), msg.Value...),
	}); err != nil {
		h.log.Error().Err(err).Str("message_id", env.MessageID.String()).Msg("events.InsertEvent failed")
	}

	h.log.Info().
		Str("message_id", env.MessageID.String()).
		Int64("employee_id", *created.ID).
		Msg("employee imported")

	return true
}

// toDLQ reports whether the offset may be committed; a failed DLQ insert never is.
func (h *handler) toDLQ(ctx context.Context, msg *sarama.ConsumerMessage, reason string) bool {
	if err := h.events.InsertDLQ(ctx, dto.KafkaDLQ{
		Topic:   msg.Topic,
		Key:     textColumn(msg.Key),
		Payload: textColumn(msg.Value),
		Error:   reason,
	}); err != nil {
		h.log.Error().
			Err(err).
			Str("topic", msg.Topic).
			Int32("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Str("reason", reason).
			Msg("events.InsertDLQ failed, message left for redelivery")
		return false
	}

	h.log.Warn().
		Str("topic", msg.Topic).
		Int32("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("reason", reason).
		Msg("message sent to DLQ")

	return h.commitOnDLQ
}

// textColumn makes raw bytes storable in a postgres text column (valid UTF-8, no NUL).
func textColumn(b []byte) string {
	return strings.ReplaceAll(strings.ToValidUTF8(string(b), "\uFFFD"), "\x00", "")
}
