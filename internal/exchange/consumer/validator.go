package consumer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func validateImport(env Envelope[ImportPayload]) string {
	if env.MessageID == uuid.Nil {
		return "missing required field message_id"
	}

	if env.Kind != "" && env.Kind != kindImport {
		return fmt.Sprintf("invalid value in field 'kind'=%s", env.Kind)
	}

	if strings.TrimSpace(env.Payload.Email) == "" {
		return "required field 'payload.email'"
	}

	return ""
}
