package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const cookieName string = "session"

var (
	ErrValueTooLong = errors.New("cookie value too long")
	ErrInvalidValue = errors.New("invalid cookie value")
)

// encrypt produces a tamper-proof cookie value by encrypting the session token
// along with the cookie name using AES-GCM. Including the cookie name prevents
// cookie substitution attacks where an attacker tries to move cookies between
// different cookie names.
func encrypt(token uuid.UUID, secret []byte, cookieName string) (*string, error) {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	// Unique nonce of 12 random bytes.
	nonce := make([]byte, aesGCM.NonceSize())
	_, err = io.ReadFull(rand.Reader, nonce)
	if err != nil {
		return nil, err
	}

	// The plaintext is "{cookie name}:{token}". The : character is invalid in
	// cookie names and therefore cannot appear in them.
	plaintext := fmt.Sprintf("%s:%s", cookieName, token.String())

	// Passing the nonce as the first parameter appends the encrypted data to
	// it, so the value is "{nonce}{encrypted plaintext data}".
	encryptedValue := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)

	res := base64.URLEncoding.EncodeToString(encryptedValue)
	return &res, nil
}

// decrypt validates and extracts the session token from a cookie value.
// It authenticates the encrypted content and checks the embedded cookie name,
// rejecting tampered or substituted cookies.
func decrypt(encryptedToken string, secret []byte, expectedCookieName string) (*uuid.UUID, error) {
	value, err := base64.URLEncoding.DecodeString(encryptedToken)
	if err != nil {
		return nil, ErrInvalidValue
	}

	block, err := aes.NewCipher(secret)
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()

	// Guard against an 'index out of range' panic below.
	if len(value) < nonceSize {
		return nil, ErrInvalidValue
	}

	nonce := value[:nonceSize]
	ciphertext := value[nonceSize:]

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidValue
	}

	actualName, tokenStr, ok := strings.Cut(string(plaintext), ":")
	if !ok {
		return nil, ErrInvalidValue
	}

	if actualName != expectedCookieName {
		return nil, ErrInvalidValue
	}

	res, err := uuid.Parse(tokenStr)
	if err != nil {
		return nil, ErrInvalidValue
	}
	return &res, nil
}

// GetCookie returns the session token carried by the request, if any.
func GetCookie(r *http.Request, secret []byte) (*uuid.UUID, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil, err
	}

	return decrypt(cookie.Value, secret, cookieName)
}

// SetCookie attaches an encrypted session-token cookie to the response.
func SetCookie(w http.ResponseWriter, token uuid.UUID, secret []byte) error {
	encryptedValue, err := encrypt(token, secret, cookieName)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    *encryptedValue,
		HttpOnly: true,
		// Send cookie to all routes in the app
		Path:   "/",
		Secure: true,
	})
	return nil
}

// DeleteCookie instructs the client to drop the session cookie.
func DeleteCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
