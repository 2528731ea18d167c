package models

import "time"

// User kayıtlı kullanıcı profilidir. Kimlik doğrulama bilgisinden (token) ayrıdır;
// kartvizit formlarını önceden doldurmak için okunur ve hiçbir akışta silinmez.
type User struct {
	UID          string    `gorm:"column:uid;type:varchar(36);primaryKey" json:"uid"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
