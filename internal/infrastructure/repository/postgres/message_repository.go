package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) AppendMessage(ctx context.Context, message *domain.Message) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO messages (id, client_id, sender_id, sender_role, body, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, message.ID, message.ClientID, message.SenderID, string(message.SenderRole), message.Body, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// ListMessages returns the latest messages for a client thread in
// chronological order.
func (r *MessageRepository) ListMessages(ctx context.Context, clientID string, limit int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, client_id, sender_id, sender_role, body, created_at
FROM (
	SELECT id, client_id, sender_id, sender_role, body, created_at
	FROM messages
	WHERE client_id = $1
	ORDER BY created_at DESC
	LIMIT $2
) latest
ORDER BY created_at ASC
`, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Message, 0)
	for rows.Next() {
		var msg domain.Message
		var role string
		err := rows.Scan(&msg.ID, &msg.ClientID, &msg.SenderID, &role, &msg.Body, &msg.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.SenderRole = domain.SenderRole(role)
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}
