package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

/* =================================================================================
							DOCUMENT MODELS
=================================================================================*/

// Crop is one crop record owned by a farmer.
type Crop struct {
	CropID    uuid.UUID `json:"cropId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Area      string    `json:"area,omitempty"`
	SowedDate string    `json:"sowedDate,omitempty"` // YYYY-MM-DD, may be empty
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CropData is the writable subset of a crop document.
type CropData struct {
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Area      string `json:"area,omitempty"`
	SowedDate string `json:"sowedDate,omitempty"`
}

// ChatMessage is a single turn in a conversation log.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type,omitempty"` // "image", "analysis", "error"
}

// Chat is an append-only conversation document.
type Chat struct {
	ChatID      uuid.UUID     `json:"chatId"`
	UserID      string        `json:"userId"`
	LastMessage string        `json:"lastMessage"`
	Messages    []ChatMessage `json:"messages"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ChatSummary is the list view of a chat, without the message array.
type ChatSummary struct {
	ChatID      uuid.UUID `json:"chatId"`
	LastMessage string    `json:"lastMessage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FarmerProfile carries the editable profile fields for one farmer.
type FarmerProfile struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	Language     string `json:"language"`
	ProfilePhoto string `json:"profilePhoto"`
}

// ErrUnknownProfileField reports an update key outside the editable profile
// fields. Callers treat it as invalid input, not a persistence failure.
var ErrUnknownProfileField = errors.New("unknown profile field")

// profileColumns whitelists the updatable profile fields; the public field
// names map to their columns so arbitrary update keys can never reach SQL.
var profileColumns = map[string]string{
	"name":         "name",
	"phone":        "phone",
	"location":     "location",
	"language":     "language",
	"profilePhoto": "profile_photo",
}

/* =================================================================================
							STORE
=================================================================================*/

// Store gives handlers access to per-farmer documents.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the tables the store needs if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS farmers (
	user_id     TEXT PRIMARY KEY,
	last_active TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS crops (
	crop_id    UUID PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	crop_type  TEXT NOT NULL DEFAULT '',
	area       TEXT NOT NULL DEFAULT '',
	sowed_date TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_crops_user ON crops (user_id);
CREATE TABLE IF NOT EXISTS chats (
	chat_id      UUID PRIMARY KEY,
	user_id      TEXT NOT NULL,
	last_message TEXT NOT NULL DEFAULT '',
	messages     JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_chats_user ON chats (user_id, created_at DESC);
CREATE TABLE IF NOT EXISTS farmer_profiles (
	user_id       TEXT PRIMARY KEY,
	name          TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	location      TEXT NOT NULL DEFAULT '',
	language      TEXT NOT NULL DEFAULT '',
	profile_photo TEXT NOT NULL DEFAULT ''
);`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// TouchFarmer records that the farmer was just active. Best-effort: callers
// log failures but never fail the request over it.
func (s *Store) TouchFarmer(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO farmers (user_id, last_active) VALUES ($1, now())
		ON CONFLICT (user_id) DO UPDATE SET last_active = now()`, userID)
	return err
}

/* ------------------------------- crops ------------------------------- */

func (s *Store) AddCrop(ctx context.Context, userID string, data CropData) (Crop, error) {
	crop := Crop{
		CropID:    uuid.New(),
		UserID:    userID,
		Name:      data.Name,
		Type:      data.Type,
		Area:      data.Area,
		SowedDate: data.SowedDate,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO crops (crop_id, user_id, name, crop_type, area, sowed_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		crop.CropID, crop.UserID, crop.Name, crop.Type, crop.Area, crop.SowedDate,
	).Scan(&crop.CreatedAt, &crop.UpdatedAt)
	if err != nil {
		return Crop{}, fmt.Errorf("failed to insert crop: %w", err)
	}
	return crop, nil
}

// UpdateCrop overwrites the fields present in data, leaving empty fields
// untouched. Returns pgx.ErrNoRows when the crop does not belong to the user.
func (s *Store) UpdateCrop(ctx context.Context, userID string, cropID uuid.UUID, data CropData) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE crops SET
			name       = COALESCE(NULLIF($3, ''), name),
			crop_type  = COALESCE(NULLIF($4, ''), crop_type),
			area       = COALESCE(NULLIF($5, ''), area),
			sowed_date = COALESCE(NULLIF($6, ''), sowed_date),
			updated_at = now()
		WHERE crop_id = $1 AND user_id = $2`,
		cropID, userID, data.Name, data.Type, data.Area, data.SowedDate)
	if err != nil {
		return fmt.Errorf("failed to update crop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteCrop(ctx context.Context, userID string, cropID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM crops WHERE crop_id = $1 AND user_id = $2`, cropID, userID)
	return err
}

func (s *Store) ListCrops(ctx context.Context, userID string) ([]Crop, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT crop_id, user_id, name, crop_type, area, sowed_date, created_at, updated_at
		FROM crops WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crops: %w", err)
	}
	defer rows.Close()

	var crops []Crop
	for rows.Next() {
		var c Crop
		if err := rows.Scan(&c.CropID, &c.UserID, &c.Name, &c.Type, &c.Area, &c.SowedDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		crops = append(crops, c)
	}
	return crops, rows.Err()
}

/* ------------------------------- chats ------------------------------- */

// GetChat loads one conversation. Returns (nil, nil) when it does not exist.
func (s *Store) GetChat(ctx context.Context, userID string, chatID uuid.UUID) (*Chat, error) {
	chat := Chat{ChatID: chatID, UserID: userID}
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT last_message, messages, created_at, updated_at
		FROM chats WHERE chat_id = $1 AND user_id = $2`, chatID, userID,
	).Scan(&chat.LastMessage, &raw, &chat.CreatedAt, &chat.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat: %w", err)
	}
	if err := json.Unmarshal(raw, &chat.Messages); err != nil {
		return nil, fmt.Errorf("corrupt message log for chat %s: %w", chatID, err)
	}
	return &chat, nil
}

func (s *Store) CreateChat(ctx context.Context, userID string, chatID uuid.UUID, messages []ChatMessage, lastMessage string) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO chats (chat_id, user_id, last_message, messages)
		VALUES ($1, $2, $3, $4)`, chatID, userID, lastMessage, raw)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	return nil
}

// AppendMessages adds turns to an existing conversation log.
func (s *Store) AppendMessages(ctx context.Context, userID string, chatID uuid.UUID, messages []ChatMessage, lastMessage string) error {
	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE chats SET
			messages     = messages || $3::jsonb,
			last_message = $4,
			updated_at   = now()
		WHERE chat_id = $1 AND user_id = $2`, chatID, userID, raw, lastMessage)
	if err != nil {
		return fmt.Errorf("failed to append chat messages: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) ListChats(ctx context.Context, userID string) ([]ChatSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT chat_id, last_message, created_at, updated_at
		FROM chats WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []ChatSummary
	for rows.Next() {
		var c ChatSummary
		if err := rows.Scan(&c.ChatID, &c.LastMessage, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

func (s *Store) DeleteAllChats(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM chats WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete chats: %w", err)
	}
	return tag.RowsAffected(), nil
}

/* ------------------------------ profiles ------------------------------ */

// GetProfile loads a farmer profile. Returns (nil, nil) when none exists.
func (s *Store) GetProfile(ctx context.Context, userID string) (*FarmerProfile, error) {
	var p FarmerProfile
	err := s.pool.QueryRow(ctx, `
		SELECT name, phone, location, language, profile_photo
		FROM farmer_profiles WHERE user_id = $1`, userID,
	).Scan(&p.Name, &p.Phone, &p.Location, &p.Language, &p.ProfilePhoto)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile applies the given field updates in one statement, creating
// the profile with empty defaults when it does not exist. Fields absent from
// updates keep their stored value. Unknown keys fail with
// ErrUnknownProfileField. Returns true when a new profile was created.
func (s *Store) UpsertProfile(ctx context.Context, userID string, updates map[string]string) (bool, error) {
	fields := make(map[string]*string, len(updates))
	for key, value := range updates {
		if _, ok := profileColumns[key]; !ok {
			return false, fmt.Errorf("%w %q", ErrUnknownProfileField, key)
		}
		v := value
		fields[key] = &v
	}

	// xmax = 0 only holds for freshly inserted rows, which distinguishes
	// create from update without a second round trip.
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO farmer_profiles (user_id, name, phone, location, language, profile_photo)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''), COALESCE($5, ''), COALESCE($6, ''))
		ON CONFLICT (user_id) DO UPDATE SET
			name          = COALESCE($2, farmer_profiles.name),
			phone         = COALESCE($3, farmer_profiles.phone),
			location      = COALESCE($4, farmer_profiles.location),
			language      = COALESCE($5, farmer_profiles.language),
			profile_photo = COALESCE($6, farmer_profiles.profile_photo)
		RETURNING (xmax = 0)`,
		userID, fields["name"], fields["phone"], fields["location"], fields["language"], fields["profilePhoto"],
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return created, nil
}
