package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tinfoilsh/verification-center/bridge"
	"github.com/tinfoilsh/verification-center/config"
	"github.com/tinfoilsh/verification-center/verification"
	"github.com/tinfoilsh/verification-center/view"
)

type outboxResponse struct {
	Outbox []bridge.Message `json:"outbox"`
}

type initialResponse struct {
	view.InitialState
	Provider             string `json:"provider"`
	DarkMode             bool   `json:"darkMode"`
	ShowVerificationFlow bool   `json:"showVerificationFlow"`
	Open                 bool   `json:"open"`
}

func boolQuery(c *gin.Context, key string, def bool) (bool, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

// HandleMessage handles POST /v1/messages.
func HandleMessage(center *bridge.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reading body failed"})
			return
		}
		msg, err := bridge.Decode(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		out, err := center.Handle(msg)
		switch {
		case errors.Is(err, bridge.ErrVersionNotAllowed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case err != nil:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "handling message failed"})
			return
		}
		if out == nil {
			out = []bridge.Message{}
		}
		c.JSON(http.StatusOK, outboxResponse{Outbox: out})
	}
}

// HandleStatus handles GET /v1/status. The loading query forces a loading status.
func HandleStatus(center *bridge.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		loading, err := boolQuery(c, "loading", false)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loading parameter"})
			return
		}

		snap := center.Store().Snapshot()
		status := snap.Status
		if loading && !snap.Loading {
			status = verification.ComputeStatus(snap.Document, true)
		}
		c.JSON(http.StatusOK, status)
	}
}

// HandleBadge handles GET /v1/badge.
func HandleBadge(center *bridge.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		fallback := verification.ParseBadgeState(c.DefaultQuery("fallback", string(verification.BadgeIdle)))
		c.JSON(http.StatusOK, center.Store().Snapshot().Badge(fallback))
	}
}

// HandleSteps handles GET /v1/steps.
func HandleSteps(center *bridge.Center, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		compact, err := boolQuery(c, "compact", cfg.Compact)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid compact parameter"})
			return
		}

		snap := center.Store().Snapshot()
		c.JSON(http.StatusOK, view.Steps(snap.Document, view.Options{
			Loading: snap.Loading,
			Compact: compact,
		}))
	}
}

// HandleInitial handles GET /v1/initial.
func HandleInitial(center *bridge.Center, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := center.Store().Snapshot()
		c.JSON(http.StatusOK, initialResponse{
			InitialState:         view.Initial(snap.Document, snap.Loading),
			Provider:             cfg.Provider,
			DarkMode:             cfg.DarkMode,
			ShowVerificationFlow: cfg.ShowVerificationFlow,
			Open:                 center.IsOpen(),
		})
	}
}

// HandleDocument handles GET /v1/document, tagged with the document digest.
func HandleDocument(center *bridge.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := center.Store().Snapshot()
		if !snap.Received {
			c.JSON(http.StatusNotFound, gin.H{"error": "no verification document received"})
			return
		}

		etag := strconv.Quote(snap.Digest)
		c.Header("ETag", etag)
		if c.GetHeader("If-None-Match") == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.JSON(http.StatusOK, snap.Document)
	}
}
