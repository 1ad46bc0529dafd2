package model

// User is a registered account. Everything except the password hash is
// immutable after registration.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	Email        string
	Scores       []Score `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName pins the table name independent of gorm's pluralisation rules
func (User) TableName() string { return "users" }

// Authenticatable is the identity capability handlers care about.
// *User is the only implementation.
type Authenticatable interface {
	UserID() uint
	IsAuthenticated() bool
}

// UserID returns the user's database ID
func (u *User) UserID() uint { return u.ID }

// IsAuthenticated reports whether this is a real, persisted account
func (u *User) IsAuthenticated() bool { return u != nil && u.ID != 0 }

// DisplayName returns the name shown in the nav and on the scoreboard
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}
