package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Player is the durable record for one trainee. Score is the sum of every attempt
// score; attempts and achievements live on the same row so a single update persists all three.
type Player struct {
	ID           string                           `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string                           `gorm:"not null" json:"name"`
	NameKey      string                           `gorm:"uniqueIndex;not null" json:"-"`
	SessionToken string                           `gorm:"uniqueIndex;not null" json:"-"`
	PinHash      string                           `json:"-"`
	Score        int                              `gorm:"not null;default:0" json:"score"`
	Attempts     datatypes.JSONSlice[Attempt]     `gorm:"type:jsonb" json:"attempts"`
	Achievements datatypes.JSONSlice[Achievement] `gorm:"type:jsonb" json:"achievements"`

	Timestamps
}

// Attempt is one graded submission. Never edited after it is appended.
type Attempt struct {
	GameID     string    `json:"gameId"`
	GameTitle  string    `json:"gameTitle"`
	Submission string    `json:"submission"`
	Score      int       `json:"score"`
	Skill      string    `json:"skill"`
	Timestamp  time.Time `json:"ts"`
	Feedback   string    `json:"feedback"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// HasPIN reports whether the player can be reclaimed from another device.
func (p *Player) HasPIN() bool {
	return p.PinHash != ""
}

// AttemptScoreSum recomputes the score from the attempt log.
func (p *Player) AttemptScoreSum() int {
	total := 0
	for _, a := range p.Attempts {
		total += a.Score
	}
	return total
}

// HasAchievement reports whether id is already unlocked.
func (p *Player) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// LastAttempt returns the most recent attempt, if any.
func (p *Player) LastAttempt() (Attempt, bool) {
	if len(p.Attempts) == 0 {
		return Attempt{}, false
	}
	return p.Attempts[len(p.Attempts)-1], true
}

// Clone returns a deep copy; the attempt and achievement slices are not shared.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Attempts != nil {
		cp.Attempts = make(datatypes.JSONSlice[Attempt], len(p.Attempts))
		copy(cp.Attempts, p.Attempts)
	}
	if p.Achievements != nil {
		cp.Achievements = make(datatypes.JSONSlice[Achievement], len(p.Achievements))
		copy(cp.Achievements, p.Achievements)
	}
	return &cp
}
