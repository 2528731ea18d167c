package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Card yayınlanmış dijital kartvizit kaydıdır. Slug ile public olarak erişilir.
type Card struct {
	BaseModel
	Slug       string `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	OwnerEmail string `gorm:"type:varchar(254);index;not null" json:"ownerEmail"` // Oluşturulduktan sonra değişmez

	// Kişisel ve iletişim bilgileri
	FirstName string `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(100);not null" json:"lastName"`
	Title     string `gorm:"type:varchar(100)" json:"title"`
	Company   string `gorm:"type:varchar(150)" json:"company"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`
	Email     string `gorm:"type:varchar(254)" json:"email"`

	SocialLinks []SocialLink `gorm:"type:text;serializer:json" json:"socialLinks"`
	CardStyles  CardStyles   `gorm:"embedded;embeddedPrefix:style_" json:"cardStyles"`

	ProfileImage string `gorm:"type:varchar(500)" json:"profileImage,omitempty"` // Harici olarak barındırılan görsel
	Template     string `gorm:"type:varchar(50)" json:"template,omitempty"`      // Boşsa varsayılan pass şablonu
}

// SocialLink kart üzerindeki tek bir sosyal medya bağlantısı.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// IsComplete hem platform hem URL doluysa true döner; eksik girdiler gösterilmez.
func (l SocialLink) IsComplete() bool {
	return strings.TrimSpace(l.Platform) != "" && strings.TrimSpace(l.URL) != ""
}

// CardStyles sadece sunumla ilgili renk belirteçleridir, render çağrılarına açıkça geçirilir.
type CardStyles struct {
	BackgroundColor string `gorm:"type:varchar(50)" json:"backgroundColor"`
	TextColor       string `gorm:"type:varchar(50)" json:"textColor"`
	IconColor       string `gorm:"type:varchar(50)" json:"iconColor"`
}

// FullName "Ad Soyad" biçiminde tam adı döndürür.
func (c *Card) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Initial profil görseli yoksa avatar olarak gösterilecek baş harf.
func (c *Card) Initial() string {
	for _, name := range []string{c.FirstName, c.LastName} {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(name)
		return string(unicode.ToUpper(r))
	}
	return "?"
}

// CompleteSocialLinks sırayı koruyarak sadece eksiksiz sosyal bağlantıları döndürür.
func (c *Card) CompleteSocialLinks() []SocialLink {
	links := make([]SocialLink, 0, len(c.SocialLinks))
	for _, l := range c.SocialLinks {
		if l.IsComplete() {
			links = append(links, l)
		}
	}
	return links
}
