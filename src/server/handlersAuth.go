package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	app "galleryserv/src/app"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type (
	RegisterBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

const bcryptCost = 12

// Register creates a new, unapproved account. All input checks run before
// any store access.
func (a *AppHandler) Register(c *gin.Context) {
	var body RegisterBody
	if err := c.BindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	if body.Email == "" || body.Password == "" {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(body.Password) < a.minPasswordLen {
		fail(c, http.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters long", a.minPasswordLen))
		return
	}

	email := strings.ToLower(body.Email)
	if _, err := a.users.FindByEmail(c.Request.Context(), email); err == nil {
		fail(c, http.StatusConflict, "Email is already in use")
		return
	} else if !errors.Is(err, app.ErrNotFound) {
		log.Printf("register lookup error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		log.Printf("register hash error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	// Accounts start unapproved and are activated out of band.
	user := &app.User{
		Email:        email,
		PasswordHash: string(hash),
		IsApproved:   false,
	}
	if err := a.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, app.ErrEmailTaken) {
			fail(c, http.StatusConflict, "Email is already in use")
			return
		}
		log.Printf("register create error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	ok(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"isApproved": user.IsApproved,
		"createdAt":  user.CreatedAt,
	})
}

func (a *AppHandler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.BindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	if body.Email == "" || body.Password == "" {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := a.users.FindByEmail(c.Request.Context(), body.Email)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			fail(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("login lookup error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.IsApproved {
		fail(c, http.StatusUnauthorized, "Account is awaiting approval")
		return
	}

	token, err := a.tokens.CreateAccessToken(user)
	if err != nil {
		log.Printf("login token error: %v", err)
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	ok(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
