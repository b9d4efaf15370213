package models

import "time"

type User struct {
	ID        string    `db:"id" json:"id"`
	Phone     string    `db:"phone" json:"phone"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Wallet struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type WalletTransaction struct {
	ID        string    `db:"id" json:"id"`
	WalletID  string    `db:"wallet_id" json:"wallet_id"`
	Type      string    `db:"type" json:"type"`
	Amount    int64     `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"`
	Meta      string    `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Booking struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CourtID   int64     `db:"court_id" json:"court_id"`
	CoachID   *int64    `db:"coach_id" json:"coach_id,omitempty"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Price     int64     `db:"price" json:"price"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Payment struct {
	ID        string    `db:"id" json:"id"`
	BookingID string    `db:"booking_id" json:"booking_id"`
	Amount    int64     `db:"amount" json:"amount"`
	Status    string    `db:"status" json:"status"`
	Method    string    `db:"method" json:"method"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Match struct {
	ID         string    `db:"id" json:"id"`
	HostID     string    `db:"host_id" json:"host_id"`
	Title      string    `db:"title" json:"title"`
	MatchType  string    `db:"match_type" json:"match_type"`
	CourtID    int64     `db:"court_id" json:"court_id"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	Capacity   int       `db:"capacity" json:"capacity"`
	Status     string    `db:"status" json:"status"`
	IsPublic   bool      `db:"is_public" json:"is_public"`
	InviteCode *string   `db:"invite_code" json:"invite_code,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type MatchInvite struct {
	ID        string    `db:"id" json:"id"`
	MatchID   string    `db:"match_id" json:"match_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Notification struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
