package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/apotekcloud/apotek-golang/internal/auth"
	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/gin-gonic/gin"
)

// LoginInput defines the JSON for creating a session.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/auth/session.
// It exchanges credentials for a signed session cookie. The role claim in
// the cookie comes from the credentials store, so role edits apply on the
// next login, not retroactively.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// 2. --- Look up the credential ---
	var id, email, passwordHash, role string
	query := `SELECT id, email, password_hash, role FROM auth_credentials WHERE email = ?`
	err := h.DB.QueryRow(query, input.Email).Scan(&id, &email, &passwordHash, &role)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Email atau password salah"})
			return
		}
		log.Printf("login: credential lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Gagal memulai sesi"})
		return
	}

	// 3. --- Verify the password ---
	password := models.Password{Hash: passwordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Gagal memulai sesi"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Email atau password salah"})
		return
	}

	// 4. --- Issue the session cookie ---
	token, err := auth.GenerateToken([]byte(h.Cfg.SessionSecret), id, email, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Gagal memulai sesi"})
		return
	}
	c.SetCookie(auth.SessionCookieName, token, auth.SessionMaxAgeSeconds, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout is the handler for DELETE /v1/auth/session. It only clears the
// cookie; the token itself simply ages out.
func (h *Handlers) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
