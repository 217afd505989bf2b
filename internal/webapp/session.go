package webapp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookie  = "searchlight_session"
	sessionSubject = "dashboard"
)

// Sessions memeriksa password dashboard dan menerbitkan cookie sesi.
// Sesi tidak punya masa berlaku; cookie hilang saat browser ditutup
// atau saat logout.
type Sessions struct {
	hash   []byte
	secret []byte
}

// NewSessions meng-hash password sekali saat startup. Jika secret kosong,
// kunci acak dibuat sehingga sesi tidak bertahan setelah restart.
func NewSessions(password, secret string) (*Sessions, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash dashboard password: %w", err)
	}

	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}
	return &Sessions{hash: hash, secret: key}, nil
}

// CheckPassword membandingkan password yang dikirim dengan hash.
func (s *Sessions) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(s.hash, []byte(password)) == nil
}

// Issue membuat token sesi baru.
func (s *Sessions) Issue() (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  sessionSubject,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify memvalidasi token sesi.
func (s *Sessions) Verify(tokenString string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid || claims.Subject != sessionSubject {
		return errors.New("invalid session token")
	}
	return nil
}

// Authenticated melaporkan apakah request membawa cookie sesi yang sah.
func (s *Sessions) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return false
	}
	return s.Verify(c.Value) == nil
}

func (s *Sessions) setCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
