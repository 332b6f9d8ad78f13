package service

import (
	"context"
	"fmt"

	"github.com/arslanonur06/connectme/cli/pkg/formatter"
	"github.com/arslanonur06/connectme/cli/pkg/logger"
	"github.com/arslanonur06/connectme/cli/pkg/store"
)

// SetupService provisions the backend schema for development. Every
// statement is idempotent so the command can be re-run safely.
type SetupService struct {
	store *store.Store
}

// NewSetupService creates a new setup service
func NewSetupService() *SetupService {
	return &SetupService{store: store.Default()}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id uuid PRIMARY KEY,
		email text UNIQUE NOT NULL,
		username text UNIQUE NOT NULL,
		full_name text DEFAULT '',
		avatar_url text DEFAULT '',
		bio text DEFAULT '',
		location text DEFAULT '',
		language text DEFAULT 'en',
		created_at timestamptz DEFAULT now(),
		updated_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		author_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		content text NOT NULL,
		image_url text DEFAULT '',
		likes_count int DEFAULT 0,
		comments_count int DEFAULT 0,
		saves_count int DEFAULT 0,
		created_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS post_likes (
		post_id uuid REFERENCES posts(id) ON DELETE CASCADE,
		user_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		created_at timestamptz DEFAULT now(),
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS saved_posts (
		post_id uuid REFERENCES posts(id) ON DELETE CASCADE,
		user_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		created_at timestamptz DEFAULT now(),
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		post_id uuid REFERENCES posts(id) ON DELETE CASCADE,
		author_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		content text NOT NULL,
		created_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS group_chats (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		member_count int DEFAULT 0,
		is_public boolean DEFAULT true,
		created_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS event_chats (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		member_count int DEFAULT 0,
		is_public boolean DEFAULT true,
		created_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		chat_id uuid NOT NULL,
		sender_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		content text NOT NULL,
		created_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS friend_requests (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		sender_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		receiver_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		status text DEFAULT 'pending',
		created_at timestamptz DEFAULT now(),
		UNIQUE (sender_id, receiver_id)
	)`,
	`CREATE TABLE IF NOT EXISTS connections (
		user_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		friend_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		status text DEFAULT 'accepted',
		created_at timestamptz DEFAULT now(),
		PRIMARY KEY (user_id, friend_id)
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name text NOT NULL,
		description text DEFAULT '',
		category text DEFAULT '',
		creator_id uuid,
		member_count int DEFAULT 0,
		created_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id uuid REFERENCES groups(id) ON DELETE CASCADE,
		user_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		created_at timestamptz DEFAULT now(),
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		title text NOT NULL,
		description text DEFAULT '',
		location text DEFAULT '',
		starts_at timestamptz NOT NULL,
		creator_id uuid,
		attendee_count int DEFAULT 0,
		created_at timestamptz DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS event_attendees (
		event_id uuid REFERENCES events(id) ON DELETE CASCADE,
		user_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		created_at timestamptz DEFAULT now(),
		PRIMARY KEY (event_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id uuid REFERENCES profiles(id) ON DELETE CASCADE,
		kind text NOT NULL,
		actor_id uuid,
		entity_ref text DEFAULT '',
		body text DEFAULT '',
		read boolean DEFAULT false,
		created_at timestamptz DEFAULT now()
	)`,
	`INSERT INTO group_chats (name, is_public)
		SELECT 'General', true
		WHERE NOT EXISTS (SELECT 1 FROM group_chats WHERE name = 'General')`,
}

// Run applies the schema through the exec_sql procedure
func (ss *SetupService) Run(ctx context.Context) error {
	logger.Info("Provisioning backend schema", "statements", len(schemaStatements))

	for i, stmt := range schemaStatements {
		args := map[string]interface{}{"sql": stmt}
		if err := ss.store.Rpc(ctx, "exec_sql", args, nil); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	formatter.PrintSuccess("Backend schema is up to date (%d statements)", len(schemaStatements))
	return nil
}
