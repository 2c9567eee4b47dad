package database

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	createShiftQuery = "INSERT INTO shifts (external_id, account_id, category, slot, shift_date, status, amount, comment, created_at) " +
		"VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7, $8) " +
		"RETURNING id, external_id, account_id, category, slot, shift_date, status, amount, comment, created_at, updated_at"
	getShiftQuery = "SELECT id, external_id, account_id, category, slot, shift_date, status, amount, comment, created_at, updated_at " +
		"FROM shifts WHERE external_id = $1 LIMIT 1"
	updateShiftStatusQuery = "UPDATE shifts SET status = $2, comment = $3, updated_at = $4 WHERE id = $1 " +
		"RETURNING id, external_id, account_id, category, slot, shift_date, status, amount, comment, created_at, updated_at"
	createMessageQuery = "INSERT INTO chat_messages (id, conversation_id, sender_id, content, created_at) " +
		"VALUES ($1, (SELECT id FROM conversations WHERE external_id = $2), $3, $4, $5) " +
		"RETURNING id, sender_id, content, created_at"
	touchConversationQuery = "UPDATE conversations SET last_message_at = $2, updated_at = $2 WHERE external_id = $1"
	participantsQuery      = "SELECT a.id, a.username, a.email, a.role FROM accounts a " +
		"JOIN conversation_participants cp ON cp.account_id = a.id " +
		"JOIN conversations c ON c.id = cp.conversation_id " +
		"WHERE c.external_id = $1"
)

func (db *PgVacationRepository) GetAccountById(id string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, email, role, created_at, updated_at FROM accounts "+
			"WHERE id = $1 LIMIT 1",
		id,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.EmailAddress,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	return user, err
}

func (db *PgVacationRepository) CreateShift(params CreateShiftParams) (Shift, error) {
	res := db.conn.QueryRow(
		createShiftQuery,
		params.ExternalId,
		params.UserId,
		params.Category,
		params.Slot,
		params.Date,
		params.Amount,
		params.Comment,
		time.Now().UTC(),
	)

	return scanShift(res)
}

func (db *PgVacationRepository) GetShiftByExternalId(externalId string) (Shift, error) {
	return scanShift(db.conn.QueryRow(getShiftQuery, externalId))
}

func (db *PgVacationRepository) ListShifts(filter ShiftFilter) ([]Shift, error) {
	query := "SELECT id, external_id, account_id, category, slot, shift_date, status, amount, comment, created_at, updated_at FROM shifts WHERE 1=1"
	var args []any

	if filter.UserId != "" {
		args = append(args, filter.UserId)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND shift_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND shift_date <= $%d", len(args))
	}
	query += " ORDER BY shift_date DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var s Shift
		if err := rows.Scan(
			&s.Id,
			&s.ExternalId,
			&s.UserId,
			&s.Category,
			&s.Slot,
			&s.Date,
			&s.Status,
			&s.Amount,
			&s.Comment,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

func (db *PgVacationRepository) UpdateShiftStatus(params UpdateShiftStatusParams) (Shift, error) {
	res := db.conn.QueryRow(
		updateShiftStatusQuery,
		params.ShiftId,
		params.Status,
		params.Comment,
		time.Now().UTC(),
	)

	return scanShift(res)
}

func (db *PgVacationRepository) GetRate(category, slot string) (Rate, error) {
	row := db.conn.QueryRow(
		"SELECT id, category, slot, amount FROM rates "+
			"WHERE category = $1 AND slot = $2 LIMIT 1",
		category,
		slot,
	)

	var rate Rate
	err := row.Scan(
		&rate.Id,
		&rate.Category,
		&rate.Slot,
		&rate.Amount,
	)

	return rate, err
}

func (db *PgVacationRepository) ListRates() ([]Rate, error) {
	rows, err := db.conn.Query("SELECT id, category, slot, amount FROM rates ORDER BY category, slot")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []Rate
	for rows.Next() {
		var r Rate
		if err := rows.Scan(&r.Id, &r.Category, &r.Slot, &r.Amount); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}

	return rates, rows.Err()
}

func (db *PgVacationRepository) CreateConversation(params CreateConversationParams) (Conversation, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Conversation{}, err
	}
	defer tx.Rollback()

	res := tx.QueryRow(
		"INSERT INTO conversations (external_id, subject, created_at) "+
			"VALUES ($1, $2, $3) RETURNING id, external_id, subject, created_at, updated_at",
		params.ExternalId,
		params.Subject,
		time.Now().UTC(),
	)

	var c Conversation
	if err := res.Scan(
		&c.Id,
		&c.ExternalId,
		&c.Subject,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return Conversation{}, err
	}

	for _, accountId := range params.ParticipantIds {
		if _, err := tx.Exec(
			"INSERT INTO conversation_participants (conversation_id, account_id, created_at) VALUES ($1, $2, $3)",
			c.Id,
			accountId,
			time.Now().UTC(),
		); err != nil {
			return Conversation{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Conversation{}, err
	}

	return c, nil
}

func (db *PgVacationRepository) GetConversationByExternalId(externalId string) (Conversation, error) {
	row := db.conn.QueryRow(
		"SELECT id, external_id, subject, last_message_at, created_at, updated_at FROM conversations "+
			"WHERE external_id = $1 LIMIT 1",
		externalId,
	)

	return scanConversation(row)
}

func (db *PgVacationRepository) ListConversations(accountId string) ([]Conversation, error) {
	rows, err := db.conn.Query(
		"SELECT c.id, c.external_id, c.subject, c.last_message_at, c.created_at, c.updated_at FROM conversations c "+
			"JOIN conversation_participants cp ON cp.conversation_id = c.id "+
			"WHERE cp.account_id = $1 ORDER BY c.last_message_at DESC NULLS LAST",
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []Conversation
	for rows.Next() {
		c, err := scanConversationRows(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}

	return convs, rows.Err()
}

func (db *PgVacationRepository) GetConversationParticipants(externalId string) ([]User, error) {
	rows, err := db.conn.Query(participantsQuery, externalId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Id, &u.Username, &u.EmailAddress, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (db *PgVacationRepository) CreateChatMessage(params CreateChatMessageParams) (ChatMessage, error) {
	res := db.conn.QueryRow(
		createMessageQuery,
		params.Id,
		params.ConversationExternalId,
		params.SenderId,
		params.Content,
		params.CreatedAt,
	)

	msg := ChatMessage{ConversationId: params.ConversationExternalId}
	err := res.Scan(
		&msg.Id,
		&msg.SenderId,
		&msg.Content,
		&msg.CreatedAt,
	)

	return msg, err
}

func (db *PgVacationRepository) UpdateConversationActivity(externalId string) error {
	_, err := db.conn.Exec(touchConversationQuery, externalId, time.Now().UTC())
	return err
}

func (db *PgVacationRepository) GetChatMessages(externalId string, before string, limit int) ([]ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	query := "SELECT m.id, c.external_id, m.sender_id, a.username, m.content, m.created_at " +
		"FROM chat_messages m " +
		"JOIN conversations c ON c.id = m.conversation_id " +
		"JOIN accounts a ON a.id = m.sender_id " +
		"WHERE c.external_id = $1"
	args := []any{externalId}

	if before != "" {
		args = append(args, before)
		query += fmt.Sprintf(" AND m.created_at < (SELECT created_at FROM chat_messages WHERE id = $%d)", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d", len(args))

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []ChatMessage
	for rows.Next() {
		var m ChatMessage
		if err := rows.Scan(
			&m.Id,
			&m.ConversationId,
			&m.SenderId,
			&m.SenderName,
			&m.Content,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// rows come back newest first; callers expect newest last
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, nil
}

func scanShift(row *sql.Row) (Shift, error) {
	var s Shift
	err := row.Scan(
		&s.Id,
		&s.ExternalId,
		&s.UserId,
		&s.Category,
		&s.Slot,
		&s.Date,
		&s.Status,
		&s.Amount,
		&s.Comment,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	return s, err
}

func scanConversation(row *sql.Row) (Conversation, error) {
	var c Conversation
	var lastMessageAt sql.NullTime
	err := row.Scan(
		&c.Id,
		&c.ExternalId,
		&c.Subject,
		&lastMessageAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if lastMessageAt.Valid {
		c.LastMessageAt = lastMessageAt.Time
	}

	return c, err
}

func scanConversationRows(rows *sql.Rows) (Conversation, error) {
	var c Conversation
	var lastMessageAt sql.NullTime
	err := rows.Scan(
		&c.Id,
		&c.ExternalId,
		&c.Subject,
		&lastMessageAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if lastMessageAt.Valid {
		c.LastMessageAt = lastMessageAt.Time
	}

	return c, err
}
