// Package slug insan tarafından okunabilir, URL güvenli tanımlayıcılar üretir.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// MaxLength kullanıcının seçebileceği bir slug'ın azami uzunluğu.
const MaxLength = 120

var (
	// Boşluk sınıfı ASCII boşlukların yanında \v, NBSP ve diğer Unicode ayırıcıları da kapsar.
	disallowedChars = regexp.MustCompile(`[^\w\s\v\p{Z}\x{feff}-]`)
	whitespaceRuns  = regexp.MustCompile(`[\s\v\p{Z}\x{feff}]+`)
	validSlug       = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// Slugify görünen adı URL güvenli bir slug'a çevirir: küçük harfe çevirir, baştaki ve
// sondaki boşlukları atar, kelime karakteri/boşluk/tire dışındaki her şeyi siler ve
// boşluk dizilerini tek bir tireye indirger. Saf fonksiyondur, benzersizlik garanti etmez.
func Slugify(displayName string) string {
	s := strings.TrimFunc(strings.ToLower(displayName), isSpace)
	s = disallowedChars.ReplaceAllString(s, "")
	return whitespaceRuns.ReplaceAllString(s, "-")
}

// isSpace whitespaceRuns ile aynı karakter kümesini kabul eder.
func isSpace(r rune) bool {
	return strings.ContainsRune("\t\n\v\f\r \ufeff", r) || unicode.Is(unicode.Z, r)
}

// WithSuffix çakışma durumunda denenecek "base-n" adayını üretir.
func WithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}

// Valid kullanıcının elle verdiği slug'ın (yeniden adlandırma) biçimini kontrol eder.
func Valid(s string) bool {
	return len(s) <= MaxLength && validSlug.MatchString(s)
}
