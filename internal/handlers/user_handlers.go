package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// --- User Handlers ---
//
// Users live in two stores sharing one id: the auth_credentials row (the
// identity the guard trusts) and the users profile row. The two writes
// are not transactional; creation compensates by deleting the credential
// if the profile write fails.
//

// GetUsers is the handler for GET /v1/users.
func (h *Handlers) GetUsers(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, email, role, display_name, created_at
		FROM users
		ORDER BY email`)
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		c.JSON(http.StatusOK, gin.H{"users": []models.User{}})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.DisplayName, &u.CreatedAt); err != nil {
			log.Printf("Error scanning user: %v", err)
			c.JSON(http.StatusOK, gin.H{"users": []models.User{}})
			return
		}
		users = append(users, u)
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUserInput defines the JSON for provisioning a user.
type CreateUserInput struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	Role        string  `json:"role" binding:"required,oneof=admin staff"`
	DisplayName *string `json:"displayName"`
}

// CreateUser is the handler for POST /v1/users.
// Step order matters: credential first, then profile, and a failed
// profile write deletes the credential again so the two stores don't
// drift apart.
func (h *Handlers) CreateUser(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat user"})
		return
	}

	// 3. --- Create the Credential (auth identity) ---
	userID := uuid.NewString()
	now := time.Now().UnixMilli()

	credQuery := `
		INSERT INTO auth_credentials (id, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := h.DB.Exec(credQuery, userID, input.Email, password.Hash, input.Role, now); err != nil {
		log.Printf("Error creating credential: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat user"})
		return
	}

	// 4. --- Create the Profile, compensating on failure ---
	profileQuery := `
		INSERT INTO users (id, email, role, display_name, created_at)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := h.DB.Exec(profileQuery, userID, input.Email, input.Role, input.DisplayName, now); err != nil {
		log.Printf("Error creating profile, rolling back credential: %v", err)
		if _, delErr := h.DB.Exec("DELETE FROM auth_credentials WHERE id = ?", userID); delErr != nil {
			log.Printf("Compensating credential delete failed for %s: %v", userID, delErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat user"})
		return
	}

	user := models.User{
		ID:          userID,
		Email:       input.Email,
		Role:        input.Role,
		DisplayName: input.DisplayName,
		CreatedAt:   now,
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

// UpdateUserRoleInput defines the JSON for changing a user's role.
type UpdateUserRoleInput struct {
	Role string `json:"role" binding:"required,oneof=admin staff"`
}

// UpdateUserRole is the handler for PATCH /v1/users/:id/role.
// The role is written to both stores; existing sessions keep their old
// role claim until the next login.
func (h *Handlers) UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")

	var input UpdateUserRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.DB.Exec("UPDATE users SET role = ? WHERE id = ?", input.Role, userID)
	if err != nil {
		log.Printf("Error updating user role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal update role"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Gagal update role"})
		return
	}

	// Mirror into the credentials store so the next login issues the new
	// role claim.
	if _, err := h.DB.Exec("UPDATE auth_credentials SET role = ? WHERE id = ?", input.Role, userID); err != nil {
		log.Printf("Error mirroring role to credentials: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteUser is the handler for DELETE /v1/users/:id.
// Credential first (revoking access immediately matters more), profile
// second; a failure in between leaves an orphaned profile row that the
// next delete attempt cleans up.
func (h *Handlers) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	if _, err := h.DB.Exec("DELETE FROM auth_credentials WHERE id = ?", userID); err != nil {
		log.Printf("Error deleting credential: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal menghapus user"})
		return
	}

	if _, err := h.DB.Exec("DELETE FROM users WHERE id = ?", userID); err != nil {
		log.Printf("Error deleting profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal menghapus user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
