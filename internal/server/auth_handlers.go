// file: internal/server/auth_handlers.go
// version: 1.1.0
// guid: 0c5f8b2d-7e1a-4d6c-9b3e-6a9d2c5f8b1e

package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopkit/storefront/internal/models"
	"github.com/shopkit/storefront/internal/server/middleware"
	"github.com/shopkit/storefront/internal/store"
)

func (s *Server) getProfile(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	doc, err := s.store.GetDocument(collectionUsers, identity.UID)
	if err != nil {
		RespondWithInternalError(c, "error fetching user profile", err)
		return
	}
	if doc == nil {
		RespondWithNotFound(c, "user profile", "")
		return
	}

	var profile models.UserProfile
	if err := store.Decode(doc, &profile); err != nil {
		RespondWithInternalError(c, "error fetching user profile", err)
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{
		UID:          identity.UID,
		Email:        identity.Email,
		Firstname:    profile.Firstname,
		Lastname:     profile.Lastname,
		MobileNumber: profile.MobileNumber,
	})
}

// upsertProfile creates the profile on first write and updates it afterwards.
// created_at is only set on create.
func (s *Server) upsertProfile(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		RespondWithUnauthorized(c, "authentication required")
		return
	}

	var profile models.UserProfile
	if HandleBindError(c, c.ShouldBindJSON(&profile)) {
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	userData := store.Document{
		"uid":          identity.UID,
		"email":        identity.Email,
		"firstname":    profile.Firstname,
		"lastname":     profile.Lastname,
		"mobilenumber": profile.MobileNumber,
		"updated_at":   now,
	}

	existing, err := s.store.GetDocument(collectionUsers, identity.UID)
	if err != nil {
		RespondWithInternalError(c, "error updating profile", err)
		return
	}

	action := "updated"
	if existing != nil {
		err = s.store.UpdateDocument(collectionUsers, identity.UID, userData)
	} else {
		action = "created"
		userData["created_at"] = now
		_, err = s.store.AddDocument(collectionUsers, userData, identity.UID)
	}
	if err != nil {
		RespondWithInternalError(c, "error updating profile", err)
		return
	}

	log.Printf("[INFO] Profile %s for user %s", action, identity.UID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile " + action + " successfully",
		"uid":     identity.UID,
	})
}
