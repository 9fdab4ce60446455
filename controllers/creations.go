package controllers

import (
	"errors"
	"net/http"

	dbpkg "creava/db"
	"creava/store"

	"github.com/gin-gonic/gin"
)

type ToggleLikeRequest struct {
	ID string `json:"id" form:"id"`
}

// GET /api/user/get-user-creations
func GetUserCreations(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	st, ok := creationStore(c)
	if !ok {
		return
	}

	creations, err := st.ListOwn(account.ID)
	if err != nil {
		RespondMessage(c, false, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "creations": creations})
}

// GET /api/user/get-published-creations
func GetPublishedCreations(c *gin.Context) {
	if _, ok := GetAccount(c); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	st, ok := creationStore(c)
	if !ok {
		return
	}

	creations, err := st.ListPublished()
	if err != nil {
		RespondMessage(c, false, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "creations": creations})
}

// POST /api/user/toggle-like-creations
func ToggleLikeCreations(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		RespondMessage(c, false, err.Error())
		return
	}
	if req.ID == "" {
		RespondMessage(c, false, "Creation id is required.")
		return
	}

	st, ok := creationStore(c)
	if !ok {
		return
	}

	liked, err := st.ToggleLike(req.ID, account.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondMessage(c, false, "Creation not found")
			return
		}
		RespondMessage(c, false, err.Error())
		return
	}

	if liked {
		RespondMessage(c, true, "Creation liked")
		return
	}
	RespondMessage(c, true, "Like removed")
}

func creationStore(c *gin.Context) (store.CreationStore, bool) {
	database := dbpkg.DBInstance(c)
	if database == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "database not configured in context"})
		return nil, false
	}
	return store.NewGormStore(database), true
}
