package api

import "time"

// EntityStatus is the local lifecycle of a remotely persisted record.
// Only "pending" ever matters on the wire-facing side: it marks entries
// that exist purely in the client cache under a temporary id.
type EntityStatus string

const (
	StatusPending   EntityStatus = "pending"
	StatusConfirmed EntityStatus = "confirmed"
	StatusFailed    EntityStatus = "failed"
)

// Auth request/response types

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string                 `json:"email"`
	Password string                 `json:"password"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// User is a platform account/profile
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Post is a feed entry with its aggregate counters. LikedByMe/SavedByMe
// and the counters always move together: the optimistic layer flips them
// in one transform.
type Post struct {
	ID            string       `json:"id"`
	AuthorID      string       `json:"author_id"`
	Author        *User        `json:"author,omitempty"`
	Content       string       `json:"content"`
	ImageURL      string       `json:"image_url,omitempty"`
	LikesCount    int          `json:"likes_count"`
	CommentsCount int          `json:"comments_count"`
	SavesCount    int          `json:"saves_count"`
	LikedByMe     bool         `json:"liked_by_me"`
	SavedByMe     bool         `json:"saved_by_me"`
	CreatedAt     time.Time    `json:"created_at"`
	Status        EntityStatus `json:"-"`
}

// EntityID implements cache.Entity
func (p Post) EntityID() string { return p.ID }

// Comment belongs to a post
type Comment struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	AuthorID  string       `json:"author_id"`
	Author    *User        `json:"author,omitempty"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	Status    EntityStatus `json:"-"`
}

// EntityID implements cache.Entity
func (c Comment) EntityID() string { return c.ID }

// ChatKind discriminates the chat union. The kind is set at construction
// time, never inferred from which optional fields happen to be present.
type ChatKind string

const (
	ChatKindGroup ChatKind = "group"
	ChatKindEvent ChatKind = "event"
)

// Chat is a group or event conversation
type Chat struct {
	ID          string    `json:"id"`
	Kind        ChatKind  `json:"kind"`
	Name        string    `json:"name"`
	MemberCount int       `json:"member_count"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntityID implements cache.Entity
func (c Chat) EntityID() string { return c.ID }

// Message is a chat message
type Message struct {
	ID         string       `json:"id"`
	ChatID     string       `json:"chat_id"`
	SenderID   string       `json:"sender_id"`
	SenderName string       `json:"sender_name,omitempty"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"created_at"`
	Status     EntityStatus `json:"-"`
}

// EntityID implements cache.Entity
func (m Message) EntityID() string { return m.ID }

// FriendRequest is a pending connection between two users
type FriendRequest struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	Sender     *User     `json:"sender,omitempty"`
	ReceiverID string    `json:"receiver_id"`
	Status     string    `json:"status"` // pending | accepted | declined
	CreatedAt  time.Time `json:"created_at"`
}

// EntityID implements cache.Entity
func (f FriendRequest) EntityID() string { return f.ID }

// Group is a community users can join
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	MemberCount int       `json:"member_count"`
	IsMember    bool      `json:"is_member"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntityID implements cache.Entity
func (g Group) EntityID() string { return g.ID }

// Event is a scheduled gathering users can attend
type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartsAt      time.Time `json:"starts_at"`
	AttendeeCount int       `json:"attendee_count"`
	Attending     bool      `json:"attending"`
	CreatedAt     time.Time `json:"created_at"`
}

// EntityID implements cache.Entity
func (e Event) EntityID() string { return e.ID }

// Notification is an activity alert for a user
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"` // like | comment | friend_request | message | event
	ActorID   string    `json:"actor_id"`
	Actor     *User     `json:"actor,omitempty"`
	EntityRef string    `json:"entity_ref,omitempty"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID implements cache.Entity
func (n Notification) EntityID() string { return n.ID }
